package interview

import (
	"context"

	"github.com/futig/architech-backend/internal/entity"
)

type InterviewUsecase interface {
	Start(ctx context.Context, interest string) (string, error)
	Continue(ctx context.Context, in *entity.ContinueInterviewInput) (*entity.ContinueInterviewResult, error)
}
