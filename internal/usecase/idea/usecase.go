package idea

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/futig/architech-backend/internal/entity"
	"github.com/futig/architech-backend/internal/pkg/llmjson"
	"github.com/futig/architech-backend/internal/pkg/mermaid"
	"github.com/futig/architech-backend/internal/prompts"
	"github.com/futig/architech-backend/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var blueprintSchema = llmjson.MustSchema(`{
  "type": "object",
  "required": ["projectData", "workbenchContent"],
  "properties": {
    "projectData": {"type": "object"},
    "workbenchContent": {"type": "string"}
  }
}`)

var databaseSchemaSchema = llmjson.MustSchema(`{
  "type": "object",
  "required": ["schema"],
  "properties": {
    "schema": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["table_name", "columns"],
        "properties": {
          "table_name": {"type": "string"},
          "columns": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name", "type"],
              "properties": {
                "name": {"type": "string"},
                "type": {"type": "string"}
              }
            }
          }
        }
      }
    }
  }
}`)

type rawBlueprint struct {
	ProjectData      map[string]json.RawMessage `json:"projectData"`
	WorkbenchContent string                     `json:"workbenchContent"`
}

// IdeaUsecase generates project ideas and the artifacts derived from a
// chosen idea
type IdeaUsecase struct {
	ideaRepo   repository.IdeaRepository
	llm        LLMConnector
	formatters FormatterFactory
	logger     *zap.Logger
}

// NewUsecase creates a new idea use case
func NewUsecase(
	ideaRepo repository.IdeaRepository,
	llm LLMConnector,
	formatters FormatterFactory,
	logger *zap.Logger,
) *IdeaUsecase {
	return &IdeaUsecase{
		ideaRepo:   ideaRepo,
		llm:        llm,
		formatters: formatters,
		logger:     logger,
	}
}

// GenerateIdeas proposes project ideas for the interview outcome
func (uc *IdeaUsecase) GenerateIdeas(ctx context.Context, interest string, conversation entity.Conversation) ([]entity.IdeaOption, error) {
	prompt, err := prompts.IdeaList(interest, conversation)
	if err != nil {
		return nil, fmt.Errorf("render idea prompt: %w", err)
	}

	resp, err := uc.complete(ctx, entity.PurposeIdeaList, prompt, 0.8, 4000, true)
	if err != nil {
		return nil, fmt.Errorf("generate ideas: %w", err)
	}

	var raw json.RawMessage
	if err := llmjson.Decode(resp.Content, &raw); err != nil {
		return nil, err
	}

	ideas, err := parseIdeas(raw)
	if err != nil {
		return nil, &llmjson.DecodeError{Stage: llmjson.StageParse, Raw: resp.Content, Err: err}
	}

	if len(ideas) == 0 {
		ctxzap.Warn(ctx, "idea list has unexpected shape", zap.ByteString("raw", raw))
	}
	ctxzap.Info(ctx, "ideas generated", zap.Int("count", len(ideas)))

	return ideas, nil
}

// GenerateBlueprint expands a chosen idea into a blueprint and stores it
// when a project is given
func (uc *IdeaUsecase) GenerateBlueprint(ctx context.Context, in *entity.GenerateBlueprintInput) (*entity.Blueprint, error) {
	prompt, err := prompts.Blueprint(*in)
	if err != nil {
		return nil, fmt.Errorf("render blueprint prompt: %w", err)
	}

	resp, err := uc.complete(ctx, entity.PurposeBlueprint, prompt, 0.7, 6000, true)
	if err != nil {
		return nil, fmt.Errorf("generate blueprint: %w", err)
	}

	var raw rawBlueprint
	if err := blueprintSchema.Decode(resp.Content, &raw); err != nil {
		return nil, err
	}

	projectData, err := decodeProjectData(raw.ProjectData)
	if err != nil {
		return nil, &llmjson.DecodeError{Stage: llmjson.StageParse, Raw: resp.Content, Err: err}
	}

	blueprint := &entity.Blueprint{
		ProjectData:      projectData,
		WorkbenchContent: raw.WorkbenchContent,
	}

	if in.ProjectID != nil {
		if err := uc.ideaRepo.UpsertBlueprint(ctx, *in.ProjectID, blueprint); err != nil {
			return nil, fmt.Errorf("save blueprint: %w", err)
		}
		ctxzap.Info(ctx, "blueprint saved", zap.String("project_id", *in.ProjectID))
	}

	return blueprint, nil
}

// ExportBlueprint renders the stored blueprint of a project
func (uc *IdeaUsecase) ExportBlueprint(ctx context.Context, projectID string, format entity.ResultFormat) (*entity.BlueprintExport, error) {
	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, err
	}

	stored, err := uc.ideaRepo.GetBlueprint(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get blueprint: %w", err)
	}

	data, err := f.Format(&stored.Blueprint)
	if err != nil {
		return nil, fmt.Errorf("format blueprint: %w", err)
	}

	return &entity.BlueprintExport{
		Data:        data,
		ContentType: f.ContentType(),
		Filename:    "blueprint-" + projectID + f.FileExtension(),
	}, nil
}

// GenerateDatabaseSchema infers a relational schema from the project
// context and stores it
func (uc *IdeaUsecase) GenerateDatabaseSchema(ctx context.Context, projectID, projectContext string) (*entity.DatabaseSchema, error) {
	prompt, err := prompts.DatabaseSchema(projectContext)
	if err != nil {
		return nil, fmt.Errorf("render schema prompt: %w", err)
	}

	resp, err := uc.complete(ctx, entity.PurposeDatabaseSchema, prompt, 0.7, 0, true)
	if err != nil {
		return nil, fmt.Errorf("generate database schema: %w", err)
	}

	var schema entity.DatabaseSchema
	if err := databaseSchemaSchema.Decode(resp.Content, &schema); err != nil {
		return nil, err
	}

	if err := uc.ideaRepo.UpsertDatabaseSchema(ctx, projectID, &schema); err != nil {
		return nil, fmt.Errorf("save database schema: %w", err)
	}

	ctxzap.Info(ctx, "database schema saved", zap.Int("tables", len(schema.Schema)))

	return &schema, nil
}

// GenerateFlowchart produces a cleaned Mermaid architecture chart and
// stores it
func (uc *IdeaUsecase) GenerateFlowchart(ctx context.Context, projectID, projectContext string) (string, error) {
	prompt, err := prompts.Flowchart(projectContext)
	if err != nil {
		return "", fmt.Errorf("render flowchart prompt: %w", err)
	}

	resp, err := uc.complete(ctx, entity.PurposeFlowchart, prompt, 0.1, 2000, false)
	if err != nil {
		return "", fmt.Errorf("generate flowchart: %w", err)
	}

	chart := mermaid.Sanitize(resp.Content)
	if chart == "" {
		return "", fmt.Errorf("generate flowchart: %w", entity.ErrEmptyCompletion)
	}

	if err := uc.ideaRepo.UpsertFlowchart(ctx, projectID, chart); err != nil {
		return "", fmt.Errorf("save flowchart: %w", err)
	}

	return chart, nil
}

// GetFlowchart returns the stored chart, or nil when there is none
func (uc *IdeaUsecase) GetFlowchart(ctx context.Context, projectID string) (*string, error) {
	flowchart, err := uc.ideaRepo.GetFlowchart(ctx, projectID)
	if err != nil {
		if errors.Is(err, entity.ErrFlowchartNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get flowchart: %w", err)
	}

	return &flowchart.ChartCode, nil
}

func (uc *IdeaUsecase) complete(
	ctx context.Context,
	purpose entity.CompletionPurpose,
	prompt string,
	temperature float64,
	maxTokens int,
	jsonMode bool,
) (*entity.CompletionResponse, error) {
	return uc.llm.Complete(ctx, &entity.CompletionRequest{
		Purpose:     purpose,
		Messages:    []entity.ChatMessage{{Role: string(entity.RoleUser), Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		JSONMode:    jsonMode,
	})
}
