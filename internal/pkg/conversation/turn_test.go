package conversation

import (
	"encoding/json"
	"testing"

	"github.com/futig/architech-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raws(items ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		out = append(out, json.RawMessage(item))
	}
	return out
}

func TestParse_Variants(t *testing.T) {
	turn, err := Parse(json.RawMessage(`{"role":"user","content":"a budgeting app"}`))
	require.NoError(t, err)
	assert.Equal(t, TextTurn{Role: "user", Content: "a budgeting app"}, turn)

	turn, err = Parse(json.RawMessage(`{"question":"Who uses it?","answer":"students"}`))
	require.NoError(t, err)
	assert.Equal(t, PairTurn{Question: "Who uses it?", Answer: "students"}, turn)

	turn, err = Parse(json.RawMessage(`{"role":"assistant","content":["Hello ",{"type":"text","text":"there"}]}`))
	require.NoError(t, err)
	parts, ok := turn.(PartsTurn)
	require.True(t, ok)
	assert.Equal(t, "Hello there", parts.Text())

	turn, err = Parse(json.RawMessage(`{"role":"assistant","parts":[{"type":"text","text":"ok"},{"type":"tool-applyDocumentOperations","toolCallId":"c1","input":{"ops":[]}}]}`))
	require.NoError(t, err)
	parts, ok = turn.(PartsTurn)
	require.True(t, ok)
	assert.Equal(t, "ok", parts.Text())
	require.Len(t, parts.ToolCalls(), 1)
	assert.Equal(t, "c1", parts.ToolCalls()[0].ToolCallID)
}

func TestParse_Invalid(t *testing.T) {
	for _, raw := range []string{`"just text"`, `{"role":"user"}`, `{"role":"user","content":42}`} {
		_, err := Parse(json.RawMessage(raw))
		assert.ErrorIs(t, err, entity.ErrInvalidTurn, raw)
	}
}

func TestNormalize(t *testing.T) {
	conversation, err := Normalize(raws(
		`{"question":"What are you building?","answer":"A recipe planner"}`,
		`{"role":"assistant","content":"Who is it for?"}`,
		`{"role":"user","content":"Busy parents"}`,
		`{"role":"user","content":"   "}`,
	))
	require.NoError(t, err)

	assert.Equal(t, entity.Conversation{
		{Role: entity.RoleAssistant, Content: "What are you building?"},
		{Role: entity.RoleUser, Content: "A recipe planner"},
		{Role: entity.RoleAssistant, Content: "Who is it for?"},
		{Role: entity.RoleUser, Content: "Busy parents"},
	}, conversation)
	assert.Equal(t, []string{"What are you building?", "Who is it for?"}, conversation.Questions())
}

func TestNormalize_Roles(t *testing.T) {
	_, err := Normalize(raws(`{"role":"tool","content":"x"}`))
	assert.ErrorIs(t, err, entity.ErrInvalidTurn)

	conversation, err := NormalizeLenient(raws(`{"role":"tool","content":"x"}`, `{"content":"no role"}`))
	require.NoError(t, err)
	assert.Equal(t, entity.Conversation{
		{Role: entity.RoleUser, Content: "x"},
		{Role: entity.RoleUser, Content: "no role"},
	}, conversation)
}

func TestNormalize_Empty(t *testing.T) {
	conversation, err := Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, conversation)
}

func TestEditorMessages(t *testing.T) {
	messages, err := EditorMessages(raws(
		`{"role":"user","parts":[{"type":"text","text":"Make it shorter"}],"metadata":{"documentState":{"selectedBlocks":[{"id":"b1","block":"<p>Long</p>"}],"blocks":[{"id":"b1","block":"<p>Long</p>"}]}}}`,
		`{"role":"tool","content":["done"]}`,
		`{"role":"assistant","metadata":{}}`,
	))
	require.NoError(t, err)
	require.Len(t, messages, 3)

	assert.Equal(t, entity.RoleUser, messages[0].Role)
	assert.Equal(t, "Make it shorter", messages[0].Content)
	require.NotNil(t, messages[0].DocumentState)
	assert.Equal(t, "b1", messages[0].DocumentState.SelectedBlocks[0].ID)

	assert.Equal(t, entity.RoleUser, messages[1].Role)
	assert.Equal(t, "done", messages[1].Content)

	assert.Empty(t, messages[2].Content)
	assert.Nil(t, messages[2].DocumentState)
}

func TestEditorMessages_NotAnObject(t *testing.T) {
	_, err := EditorMessages(raws(`42`))
	assert.ErrorIs(t, err, entity.ErrInvalidTurn)
}
