package editor

import (
	"context"

	"github.com/futig/architech-backend/internal/entity"
)

type LLMConnector interface {
	Complete(ctx context.Context, req *entity.CompletionRequest) (*entity.CompletionResponse, error)
	Stream(ctx context.Context, req *entity.CompletionRequest, onDelta entity.StreamDelta) error
}

// EventSink receives the chat events in order.
type EventSink func(event entity.EditorEvent) error
