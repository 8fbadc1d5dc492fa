package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/futig/architech-backend/internal/config"
	"github.com/futig/architech-backend/internal/entity"
	"github.com/futig/architech-backend/internal/integration/common"
	pkghttp "github.com/futig/architech-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector talks to an OpenAI-compatible chat completions API (Groq).
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionRequest struct {
	Model          string               `json:"model"`
	Messages       []entity.ChatMessage `json:"messages"`
	Temperature    *float64             `json:"temperature,omitempty"`
	MaxTokens      int                  `json:"max_completion_tokens,omitempty"`
	ResponseFormat *responseFormat      `json:"response_format,omitempty"`
	Tools          []entity.Tool        `json:"tools,omitempty"`
	ToolChoice     string               `json:"tool_choice,omitempty"`
	Stream         bool                 `json:"stream,omitempty"`
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content   string            `json:"content"`
			ToolCalls []entity.ToolCall `json:"tool_calls"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type chatCompletionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Complete runs a single chat completion.
func (c *Connector) Complete(ctx context.Context, req *entity.CompletionRequest) (*entity.CompletionResponse, error) {
	body := c.buildRequest(req, false)
	ctxzap.Info(ctx, "requesting completion",
		zap.String("purpose", string(req.Purpose)),
		zap.String("model", body.Model),
		zap.Int("tool_count", len(req.Tools)),
	)

	var resp chatCompletionResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.ChatCompletionsEndpoint, body, &resp); err != nil {
		return nil, fmt.Errorf("%s completion failed: %w", req.Purpose, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s completion: %w", req.Purpose, entity.ErrEmptyCompletion)
	}

	choice := resp.Choices[0]
	if choice.Message.Content == "" && len(choice.Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("%s completion: %w", req.Purpose, entity.ErrEmptyCompletion)
	}

	ctxzap.Info(ctx, "completion received",
		zap.String("purpose", string(req.Purpose)),
		zap.Int("content_length", len(choice.Message.Content)),
		zap.Int("tool_calls", len(choice.Message.ToolCalls)),
		zap.String("finish_reason", choice.FinishReason),
	)

	return &entity.CompletionResponse{
		Content:   choice.Message.Content,
		ToolCalls: choice.Message.ToolCalls,
		Model:     resp.Model,
	}, nil
}

// Stream runs a streamed chat completion and passes every text delta to
// onDelta in order.
func (c *Connector) Stream(ctx context.Context, req *entity.CompletionRequest, onDelta entity.StreamDelta) error {
	body := c.buildRequest(req, true)
	ctxzap.Info(ctx, "streaming completion",
		zap.String("purpose", string(req.Purpose)),
		zap.String("model", body.Model),
	)

	chunks := 0
	err := c.connector.DoStream(ctx, http.MethodPost, c.config.ChatCompletionsEndpoint, body, func(data []byte) error {
		var chunk chatCompletionChunk
		if err := json.Unmarshal(data, &chunk); err != nil {
			ctxzap.Warn(ctx, "skipping malformed stream chunk", zap.Error(err))
			return nil
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			return nil
		}
		chunks++
		return onDelta(chunk.Choices[0].Delta.Content)
	})
	if err != nil {
		return fmt.Errorf("%s stream failed: %w", req.Purpose, err)
	}

	ctxzap.Info(ctx, "stream finished", zap.String("purpose", string(req.Purpose)), zap.Int("chunks", chunks))
	return nil
}

func (c *Connector) buildRequest(req *entity.CompletionRequest, stream bool) *chatCompletionRequest {
	body := &chatCompletionRequest{
		Model:      req.Model,
		Messages:   req.Messages,
		MaxTokens:  req.MaxTokens,
		Tools:      req.Tools,
		ToolChoice: req.ToolChoice,
		Stream:     stream,
	}
	if body.Model == "" {
		body.Model = c.config.Model
	}
	if req.Temperature > 0 {
		t := req.Temperature
		body.Temperature = &t
	}
	if req.JSONMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	if len(req.Tools) == 0 {
		body.ToolChoice = ""
	}
	return body
}
