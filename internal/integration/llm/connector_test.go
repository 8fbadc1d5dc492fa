package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/futig/architech-backend/internal/config"
	"github.com/futig/architech-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestConnector(t *testing.T, handler http.HandlerFunc) *Connector {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewConnector(config.LLMConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           time.Second,
			KeepAlive:             time.Second,
			IdleConnTimeout:       time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
			Token:                 "gsk_test",
			Url:                   server.URL,
		},
		Model:                   "default-model",
		ChatCompletionsEndpoint: "/chat/completions",
	}, zap.NewNop())
}

func TestComplete_JSONMode(t *testing.T) {
	c := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk_test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "default-model", body["model"])
		assert.Equal(t, map[string]any{"type": "json_object"}, body["response_format"])
		assert.InDelta(t, 0.7, body["temperature"], 1e-9)
		assert.NotContains(t, body, "tool_choice")
		assert.NotContains(t, body, "stream")

		fmt.Fprint(w, `{"model":"default-model","choices":[{"message":{"content":"{\"question\":\"Why?\"}"},"finish_reason":"stop"}]}`)
	})

	resp, err := c.Complete(context.Background(), &entity.CompletionRequest{
		Purpose:     entity.PurposeInterviewStart,
		Messages:    []entity.ChatMessage{{Role: "user", Content: "hi"}},
		Temperature: 0.7,
		JSONMode:    true,
		ToolChoice:  "required",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"question":"Why?"}`, resp.Content)
}

func TestComplete_ToolCalls(t *testing.T) {
	c := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		var body chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "override", body.Model)
		assert.Equal(t, "required", body.ToolChoice)
		require.Len(t, body.Tools, 1)

		fmt.Fprint(w, `{"choices":[{"message":{"content":"","tool_calls":[{"id":"c1","type":"function","function":{"name":"applyDocumentOperations","arguments":"{}"}}]}}]}`)
	})

	resp, err := c.Complete(context.Background(), &entity.CompletionRequest{
		Purpose:    entity.PurposeEditorChat,
		Model:      "override",
		Tools:      []entity.Tool{{Type: "function", Function: entity.ToolFunction{Name: "applyDocumentOperations"}}},
		ToolChoice: "required",
	})
	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "applyDocumentOperations", resp.ToolCalls[0].Function.Name)
}

func TestComplete_Empty(t *testing.T) {
	c := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	})

	_, err := c.Complete(context.Background(), &entity.CompletionRequest{Purpose: entity.PurposeGuide})
	assert.ErrorIs(t, err, entity.ErrEmptyCompletion)
}

func TestComplete_ProviderError(t *testing.T) {
	c := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
	})

	_, err := c.Complete(context.Background(), &entity.CompletionRequest{Purpose: entity.PurposeGuide})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestStream(t *testing.T) {
	c := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		var body chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, body.Stream)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"role\":\"assistant\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n")
		fmt.Fprint(w, "data: not json\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	var deltas []string
	err := c.Stream(context.Background(), &entity.CompletionRequest{Purpose: entity.PurposeEditorChat}, func(delta string) error {
		deltas = append(deltas, delta)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hel", "lo"}, deltas)
}

func TestMockConnector_AssessmentGrowsWithAnswers(t *testing.T) {
	m := NewMockConnector(zap.NewNop())

	assess := func(prompt string) entity.QualityAssessment {
		resp, err := m.Complete(context.Background(), &entity.CompletionRequest{
			Purpose:  entity.PurposeInterviewAssess,
			Messages: []entity.ChatMessage{{Role: "user", Content: prompt}},
		})
		require.NoError(t, err)

		var a entity.QualityAssessment
		require.NoError(t, json.Unmarshal([]byte(resp.Content), &a))
		return a
	}

	low := assess(`[{"role":"user","content":"a"}]`)
	high := assess(`[{"role":"user","content":"a"},{"role":"user","content":"b"},{"role":"user","content":"c"}]`)
	assert.Less(t, low.Completeness, high.Completeness)
	assert.InDelta(t, 0.75, high.Clarity, 1e-9)
}

func TestMockConnector_EditorChatUsesFirstTool(t *testing.T) {
	m := NewMockConnector(zap.NewNop())

	resp, err := m.Complete(context.Background(), &entity.CompletionRequest{
		Purpose: entity.PurposeEditorChat,
		Tools:   []entity.Tool{{Type: "function", Function: entity.ToolFunction{Name: "applyDocumentOperations"}}},
	})
	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "applyDocumentOperations", resp.ToolCalls[0].Function.Name)

	_, err = m.Complete(context.Background(), &entity.CompletionRequest{Purpose: "unknown"})
	assert.Error(t, err)
}
