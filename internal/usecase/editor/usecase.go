package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/futig/architech-backend/internal/entity"
	"github.com/futig/architech-backend/internal/pkg/logger"
	"github.com/futig/architech-backend/internal/prompts"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	chatTemperature       = 0.7
	toolChatMaxTokens     = 4000
	textChatMaxTokens     = 2000
	completionTemperature = 0.7
	completionMaxTokens   = 500
)

// Event types of the UI message stream.
const (
	EventStart              = "start"
	EventStartStep          = "start-step"
	EventToolInputStart     = "tool-input-start"
	EventToolInputAvailable = "tool-input-available"
	EventTextStart          = "text-start"
	EventTextDelta          = "text-delta"
	EventTextEnd            = "text-end"
	EventFinishStep         = "finish-step"
	EventFinish             = "finish"
	EventError              = "error"
)

// EditorUsecase backs the document editor's AI features
type EditorUsecase struct {
	llm    LLMConnector
	logger *zap.Logger
}

// NewUsecase creates a new editor use case
func NewUsecase(llm LLMConnector, logger *zap.Logger) *EditorUsecase {
	return &EditorUsecase{
		llm:    llm,
		logger: logger,
	}
}

func newID() string {
	return "msg_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Chat answers an editor chat turn as a stream of events. With tools the
// model must answer with tool calls that the client applies to the
// document; without tools the reply text is streamed as it arrives.
// An error stops the stream; reporting it to the client is up to the
// caller.
func (uc *EditorUsecase) Chat(ctx context.Context, in *entity.EditorChatInput, emit EventSink) error {
	messageID := newID()
	ctx = logger.AddFields(ctx, zap.String("message_id", messageID))

	ctxzap.Info(ctx, "editor chat started",
		zap.Int("messages", len(in.Messages)),
		zap.Int("tools", len(in.Tools)),
	)

	system, err := prompts.EditorChatSystem(in.Messages, len(in.Tools) > 0)
	if err != nil {
		return fmt.Errorf("render chat prompt: %w", err)
	}

	messages := []entity.ChatMessage{{Role: string(entity.RoleSystem), Content: system}}
	for _, msg := range in.Messages {
		if msg.Content == "" {
			continue
		}
		messages = append(messages, entity.ChatMessage{Role: string(msg.Role), Content: msg.Content})
	}

	if err := emit(entity.EditorEvent{Type: EventStart, MessageID: messageID}); err != nil {
		return err
	}
	if err := emit(entity.EditorEvent{Type: EventStartStep}); err != nil {
		return err
	}

	if len(in.Tools) > 0 {
		err = uc.chatWithTools(ctx, messages, in.Tools, emit)
	} else {
		err = uc.streamText(ctx, messages, emit)
	}
	if err != nil {
		return err
	}

	if err := emit(entity.EditorEvent{Type: EventFinishStep}); err != nil {
		return err
	}
	if err := emit(entity.EditorEvent{Type: EventFinish}); err != nil {
		return err
	}

	ctxzap.Info(ctx, "editor chat completed")
	return nil
}

func (uc *EditorUsecase) chatWithTools(ctx context.Context, messages []entity.ChatMessage, tools []entity.Tool, emit EventSink) error {
	resp, err := uc.llm.Complete(ctx, &entity.CompletionRequest{
		Purpose:     entity.PurposeEditorChat,
		Messages:    messages,
		Temperature: chatTemperature,
		MaxTokens:   toolChatMaxTokens,
		Tools:       tools,
		ToolChoice:  "required",
	})
	if err != nil {
		return fmt.Errorf("editor chat: %w", err)
	}

	if len(resp.ToolCalls) == 0 {
		ctxzap.Warn(ctx, "model answered without tool calls")
	}

	for _, call := range resp.ToolCalls {
		var input any = map[string]any{}
		if err := json.Unmarshal([]byte(call.Function.Arguments), &input); err != nil {
			ctxzap.Error(ctx, "failed to parse tool arguments",
				zap.String("tool", call.Function.Name),
				zap.Error(err),
			)
			input = map[string]any{}
		}

		if err := emit(entity.EditorEvent{
			Type:       EventToolInputStart,
			ToolCallID: call.ID,
			ToolName:   call.Function.Name,
		}); err != nil {
			return err
		}
		if err := emit(entity.EditorEvent{
			Type:       EventToolInputAvailable,
			ToolCallID: call.ID,
			ToolName:   call.Function.Name,
			Input:      input,
		}); err != nil {
			return err
		}

		ctxzap.Debug(ctx, "tool call relayed", zap.String("tool", call.Function.Name))
	}

	if resp.Content == "" {
		return nil
	}

	textID := newID()
	for _, event := range []entity.EditorEvent{
		{Type: EventTextStart, ID: textID},
		{Type: EventTextDelta, ID: textID, Delta: resp.Content},
		{Type: EventTextEnd, ID: textID},
	} {
		if err := emit(event); err != nil {
			return err
		}
	}
	return nil
}

func (uc *EditorUsecase) streamText(ctx context.Context, messages []entity.ChatMessage, emit EventSink) error {
	textID := newID()
	if err := emit(entity.EditorEvent{Type: EventTextStart, ID: textID}); err != nil {
		return err
	}

	err := uc.llm.Stream(ctx, &entity.CompletionRequest{
		Purpose:     entity.PurposeEditorChat,
		Messages:    messages,
		Temperature: chatTemperature,
		MaxTokens:   textChatMaxTokens,
	}, func(delta string) error {
		if delta == "" {
			return nil
		}
		return emit(entity.EditorEvent{Type: EventTextDelta, ID: textID, Delta: delta})
	})
	if err != nil {
		return fmt.Errorf("editor chat stream: %w", err)
	}

	return emit(entity.EditorEvent{Type: EventTextEnd, ID: textID})
}

// Complete continues or rewrites the given text as a co-writer
func (uc *EditorUsecase) Complete(ctx context.Context, req *entity.EditorCompletionRequest) (string, error) {
	system, err := prompts.EditorCompletionSystem()
	if err != nil {
		return "", fmt.Errorf("render completion prompt: %w", err)
	}
	user, err := prompts.EditorCompletionUser(req.Context, req.Prompt)
	if err != nil {
		return "", fmt.Errorf("render completion prompt: %w", err)
	}

	resp, err := uc.llm.Complete(ctx, &entity.CompletionRequest{
		Purpose: entity.PurposeEditorCompletion,
		Messages: []entity.ChatMessage{
			{Role: string(entity.RoleSystem), Content: system},
			{Role: string(entity.RoleUser), Content: user},
		},
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("editor completion: %w", err)
	}

	return strings.TrimSpace(resp.Content), nil
}

// ToolsFromDefinitions converts the editor's tool definitions, a map of
// name to {description, inputSchema}, into function tools ordered by name.
// Any other shape yields no tools.
func ToolsFromDefinitions(raw json.RawMessage) []entity.Tool {
	var defs map[string]struct {
		Description string          `json:"description"`
		InputSchema json.RawMessage `json:"inputSchema"`
	}
	if err := json.Unmarshal(raw, &defs); err != nil || len(defs) == 0 {
		return nil
	}

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	tools := make([]entity.Tool, 0, len(defs))
	for _, name := range names {
		def := defs[name]
		description := def.Description
		if description == "" {
			description = "Tool to " + name
		}
		params := def.InputSchema
		if len(params) == 0 || string(params) == "null" {
			params = json.RawMessage(`{"type":"object","properties":{}}`)
		}

		tools = append(tools, entity.Tool{
			Type: "function",
			Function: entity.ToolFunction{
				Name:        name,
				Description: description,
				Parameters:  params,
			},
		})
	}
	return tools
}
