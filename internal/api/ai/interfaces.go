package ai

import (
	"context"

	"github.com/futig/architech-backend/internal/entity"
	"github.com/futig/architech-backend/internal/usecase/editor"
)

type EditorUsecase interface {
	Chat(ctx context.Context, in *entity.EditorChatInput, emit editor.EventSink) error
	Complete(ctx context.Context, req *entity.EditorCompletionRequest) (string, error)
}
