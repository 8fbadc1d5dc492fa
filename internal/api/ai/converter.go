package ai

import (
	"bytes"
	"encoding/json"

	"github.com/futig/architech-backend/internal/entity"
	"github.com/futig/architech-backend/internal/pkg/conversation"
	"github.com/futig/architech-backend/internal/usecase/editor"
)

func toChatInput(req *entity.EditorChatRequest) (*entity.EditorChatInput, error) {
	messages, err := conversation.EditorMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	return &entity.EditorChatInput{
		Messages: messages,
		Tools:    editor.ToolsFromDefinitions(toolDefinitions(req)),
	}, nil
}

// toolDefinitions prefers toolDefinitions and falls back to tools.
func toolDefinitions(req *entity.EditorChatRequest) json.RawMessage {
	if isAbsent(req.ToolDefinitions) {
		return req.Tools
	}
	return req.ToolDefinitions
}

func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
