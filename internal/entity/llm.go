package entity

import "encoding/json"

// ChatMessage is a message sent to or received from the LLM provider.
type ChatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// Tool is a function the model may call.
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

type ToolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ToolCallFunction `json:"function"`
}

type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// CompletionPurpose names what a completion is used for. It is logged
// with every call and lets the mock connector pick a canned answer.
type CompletionPurpose string

const (
	PurposeInterviewStart    CompletionPurpose = "interview_start"
	PurposeInterviewAssess   CompletionPurpose = "interview_assess"
	PurposeInterviewQuestion CompletionPurpose = "interview_question"
	PurposeIdeaList          CompletionPurpose = "idea_list"
	PurposeBlueprint         CompletionPurpose = "blueprint"
	PurposeDatabaseSchema    CompletionPurpose = "database_schema"
	PurposeFlowchart         CompletionPurpose = "flowchart"
	PurposeGuide             CompletionPurpose = "guide"
	PurposeEditorChat        CompletionPurpose = "editor_chat"
	PurposeEditorCompletion  CompletionPurpose = "editor_completion"
)

// CompletionRequest describes one model call. Model is optional and
// falls back to the connector default.
type CompletionRequest struct {
	Purpose     CompletionPurpose
	Model       string
	Messages    []ChatMessage
	Temperature float64
	MaxTokens   int
	JSONMode    bool
	Tools       []Tool
	ToolChoice  string
}

type CompletionResponse struct {
	Content   string
	ToolCalls []ToolCall
	Model     string
}

// StreamDelta receives incremental text from a streamed completion.
type StreamDelta func(delta string) error
