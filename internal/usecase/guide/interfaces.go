package guide

import (
	"context"

	"github.com/futig/architech-backend/internal/entity"
)

type LLMConnector interface {
	Complete(ctx context.Context, req *entity.CompletionRequest) (*entity.CompletionResponse, error)
}
