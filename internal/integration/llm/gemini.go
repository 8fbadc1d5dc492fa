package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/architech-backend/internal/config"
	"github.com/futig/architech-backend/internal/entity"
	"github.com/google/generative-ai-go/genai"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiConnector serves completions from Google Gemini. Tool calling is
// not mapped; requests with tools are answered with text only.
type GeminiConnector struct {
	config config.LLMConnectorConfig
	client *genai.Client
	logger *zap.Logger
}

func NewGeminiConnector(ctx context.Context, cfg config.LLMConnectorConfig, logger *zap.Logger) (*GeminiConnector, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Token))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiConnector{
		config: cfg,
		client: client,
		logger: logger,
	}, nil
}

func (c *GeminiConnector) Complete(ctx context.Context, req *entity.CompletionRequest) (*entity.CompletionResponse, error) {
	session, last, modelName := c.prepare(ctx, req)
	ctxzap.Info(ctx, "requesting completion",
		zap.String("purpose", string(req.Purpose)),
		zap.String("model", modelName),
		zap.String("provider", config.ProviderGemini),
	)

	resp, err := session.SendMessage(ctx, last...)
	if err != nil {
		return nil, fmt.Errorf("%s completion failed: %w", req.Purpose, err)
	}

	text := textOf(resp)
	if text == "" {
		return nil, fmt.Errorf("%s completion: %w", req.Purpose, entity.ErrEmptyCompletion)
	}

	ctxzap.Info(ctx, "completion received",
		zap.String("purpose", string(req.Purpose)),
		zap.Int("content_length", len(text)),
	)

	return &entity.CompletionResponse{Content: text, Model: modelName}, nil
}

func (c *GeminiConnector) Stream(ctx context.Context, req *entity.CompletionRequest, onDelta entity.StreamDelta) error {
	session, last, modelName := c.prepare(ctx, req)
	ctxzap.Info(ctx, "streaming completion",
		zap.String("purpose", string(req.Purpose)),
		zap.String("model", modelName),
		zap.String("provider", config.ProviderGemini),
	)

	iter := session.SendMessageStream(ctx, last...)
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s stream failed: %w", req.Purpose, err)
		}

		if text := textOf(resp); text != "" {
			if err := onDelta(text); err != nil {
				return err
			}
		}
	}
}

// Close releases the underlying client.
func (c *GeminiConnector) Close() error {
	return c.client.Close()
}

// prepare maps the request onto a chat session: system messages become the
// system instruction, the last message is the one sent, the rest is history.
func (c *GeminiConnector) prepare(ctx context.Context, req *entity.CompletionRequest) (*genai.ChatSession, []genai.Part, string) {
	modelName := req.Model
	if modelName == "" {
		modelName = c.config.Model
	}

	model := c.client.GenerativeModel(modelName)
	if req.Temperature > 0 {
		model.SetTemperature(float32(req.Temperature))
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.JSONMode {
		model.ResponseMIMEType = "application/json"
	}
	if len(req.Tools) > 0 {
		ctxzap.Warn(ctx, "gemini connector ignores tools", zap.Int("tool_count", len(req.Tools)))
	}

	var system []string
	var history []*genai.Content
	for _, msg := range req.Messages {
		switch msg.Role {
		case string(entity.RoleSystem):
			system = append(system, msg.Content)
		case string(entity.RoleAssistant):
			history = append(history, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(msg.Content)}})
		default:
			history = append(history, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(msg.Content)}})
		}
	}
	if len(system) > 0 {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(strings.Join(system, "\n\n"))}}
	}

	session := model.StartChat()
	var last []genai.Part
	if n := len(history); n > 0 {
		last = history[n-1].Parts
		session.History = history[:n-1]
	} else {
		last = []genai.Part{genai.Text("")}
	}

	return session, last, modelName
}

func textOf(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
