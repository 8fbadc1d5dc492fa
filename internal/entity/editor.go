package entity

import "encoding/json"

// EditorChatRequest is the body sent by the editor chat transport. Both
// message and tool definition shapes vary between client versions.
type EditorChatRequest struct {
	Messages        []json.RawMessage `json:"messages"`
	ToolDefinitions json.RawMessage   `json:"toolDefinitions,omitempty"`
	Tools           json.RawMessage   `json:"tools,omitempty"`
}

// DocumentBlock is one block of the editor's document state.
type DocumentBlock struct {
	ID    string `json:"id"`
	Block string `json:"block"`
}

type DocumentState struct {
	SelectedBlocks []DocumentBlock `json:"selectedBlocks"`
	Blocks         []DocumentBlock `json:"blocks"`
}

// EditorMessage is a normalized editor chat message.
type EditorMessage struct {
	Role          TurnRole
	Content       string
	DocumentState *DocumentState
}

type EditorChatInput struct {
	Messages []EditorMessage
	Tools    []Tool
}

// EditorEvent is one event of the UI message stream sent to the editor.
type EditorEvent struct {
	Type       string `json:"type"`
	MessageID  string `json:"messageId,omitempty"`
	ID         string `json:"id,omitempty"`
	Delta      string `json:"delta,omitempty"`
	ToolCallID string `json:"toolCallId,omitempty"`
	ToolName   string `json:"toolName,omitempty"`
	Input      any    `json:"input,omitempty"`
	ErrorText  string `json:"errorText,omitempty"`
}

type EditorCompletionRequest struct {
	Context string  `json:"context" validate:"required"`
	Prompt  *string `json:"prompt,omitempty"`
}

type EditorCompletionResponse struct {
	Completion string `json:"completion"`
}
