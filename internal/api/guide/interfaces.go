package guide

import (
	"context"

	"github.com/futig/architech-backend/internal/entity"
)

type GuideUsecase interface {
	Generate(ctx context.Context, projectID, workbenchContent string) (*entity.Guide, error)
	Get(ctx context.Context, projectID string) (*entity.Guide, error)
	UpdateProgress(ctx context.Context, req *entity.TaskProgressRequest) (*entity.TaskProgressResponse, error)
}
