package idea

import (
	"context"

	"github.com/futig/architech-backend/internal/entity"
)

type IdeaUsecase interface {
	GenerateIdeas(ctx context.Context, interest string, conversation entity.Conversation) ([]entity.IdeaOption, error)
	GenerateBlueprint(ctx context.Context, in *entity.GenerateBlueprintInput) (*entity.Blueprint, error)
	ExportBlueprint(ctx context.Context, projectID string, format entity.ResultFormat) (*entity.BlueprintExport, error)
	GenerateDatabaseSchema(ctx context.Context, projectID, projectContext string) (*entity.DatabaseSchema, error)
	GenerateFlowchart(ctx context.Context, projectID, projectContext string) (string, error)
	GetFlowchart(ctx context.Context, projectID string) (*string, error)
}
