package guide

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/architech-backend/internal/entity"
	"github.com/futig/architech-backend/internal/pkg/llmjson"
	"github.com/futig/architech-backend/internal/prompts"
	"github.com/futig/architech-backend/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	guideTemperature = 0.7
	guideMaxTokens   = 8000
)

var guideSchema = llmjson.MustSchema(`{
  "type": "object",
  "required": ["categories"],
  "properties": {
    "categories": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "icon": {"type": "string"},
          "tasks": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["title"],
              "properties": {
                "title": {"type": "string", "minLength": 1},
                "description": {"type": ["string", "null"]},
                "estimated_time": {"type": ["string", "null"]},
                "content_blocks": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "required": ["type", "content"],
                    "properties": {
                      "type": {"type": "string"},
                      "content": {"type": "string"},
                      "language": {"type": ["string", "null"]},
                      "filename": {"type": ["string", "null"]}
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`)

// GuideUsecase generates implementation guides and tracks task progress
type GuideUsecase struct {
	guideRepo repository.GuideRepository
	llm       LLMConnector
	logger    *zap.Logger
}

// NewUsecase creates a new guide use case
func NewUsecase(guideRepo repository.GuideRepository, llm LLMConnector, logger *zap.Logger) *GuideUsecase {
	return &GuideUsecase{
		guideRepo: guideRepo,
		llm:       llm,
		logger:    logger,
	}
}

// Generate builds a fresh guide from the blueprint workbench and replaces
// any guide the project already has
func (uc *GuideUsecase) Generate(ctx context.Context, projectID, workbenchContent string) (*entity.Guide, error) {
	prompt, err := prompts.Guide(workbenchContent)
	if err != nil {
		return nil, fmt.Errorf("render guide prompt: %w", err)
	}

	resp, err := uc.llm.Complete(ctx, &entity.CompletionRequest{
		Purpose:     entity.PurposeGuide,
		Messages:    []entity.ChatMessage{{Role: string(entity.RoleUser), Content: prompt}},
		Temperature: guideTemperature,
		MaxTokens:   guideMaxTokens,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("generate guide: %w", err)
	}

	var generated entity.GeneratedGuide
	if err := guideSchema.Decode(resp.Content, &generated); err != nil {
		return nil, err
	}

	guide, err := uc.guideRepo.ReplaceGuide(ctx, projectID, &generated)
	if err != nil {
		return nil, fmt.Errorf("save guide: %w", err)
	}

	ctxzap.Info(ctx, "guide generated",
		zap.Int("categories", len(guide.Categories)),
		zap.Int("tasks", guide.TotalTasks),
	)

	return guide, nil
}

// Get returns the project's guide with completion state
func (uc *GuideUsecase) Get(ctx context.Context, projectID string) (*entity.Guide, error) {
	guide, err := uc.guideRepo.LoadGuide(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load guide: %w", err)
	}
	return guide, nil
}

// UpdateProgress marks a task done or not done
func (uc *GuideUsecase) UpdateProgress(ctx context.Context, req *entity.TaskProgressRequest) (*entity.TaskProgressResponse, error) {
	if _, err := uc.guideRepo.GetTaskProjectID(ctx, req.TaskID); err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	now := time.Now().UTC()
	progress := &entity.TaskProgress{
		TaskID:      req.TaskID,
		ProjectID:   req.ProjectID,
		IsCompleted: req.IsCompleted,
		UpdatedAt:   now,
	}
	if req.IsCompleted {
		progress.CompletedAt = &now
	}

	if err := uc.guideRepo.UpsertTaskProgress(ctx, progress); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}

	ctxzap.Info(ctx, "task progress updated",
		zap.String("task_id", req.TaskID),
		zap.Bool("is_completed", req.IsCompleted),
	)

	return &entity.TaskProgressResponse{Success: true, IsCompleted: req.IsCompleted}, nil
}
