package idea

import (
	"net/http"

	"github.com/futig/architech-backend/internal/api/common"
	"github.com/futig/architech-backend/internal/entity"
	"github.com/futig/architech-backend/internal/pkg/conversation"
	"github.com/futig/architech-backend/internal/pkg/logger"
	"github.com/futig/architech-backend/internal/pkg/response"
	"github.com/futig/architech-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   IdeaUsecase
	validator *validator.Validator
}

func NewHandler(usecase IdeaUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// GenerateIdeas handles POST /api/idea/generate-list
func (h *Handler) GenerateIdeas(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateIdeas")

	var req entity.GenerateIdeasRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	conv, err := conversation.NormalizeLenient(req.Conversation)
	if err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	ideas, err := h.usecase.GenerateIdeas(ctx, req.Interest, conv)
	if err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "ideas generated", zap.Int("count", len(ideas)))
	response.Success(w, &entity.GenerateIdeasResponse{Ideas: ideas})
}

// GenerateBlueprint handles POST /api/idea/generate-blueprint
func (h *Handler) GenerateBlueprint(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateBlueprint")

	var req entity.GenerateBlueprintRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	in, err := toBlueprintInput(&req)
	if err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}
	if in.ProjectID != nil {
		ctx = logger.AddFields(ctx, zap.String("project_id", *in.ProjectID))
	}

	blueprint, err := h.usecase.GenerateBlueprint(ctx, in)
	if err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, blueprint)
}

// ExportBlueprint handles GET /api/idea/{projectId}/blueprint
func (h *Handler) ExportBlueprint(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	ctx := logger.WithProject(r.Context(), "ExportBlueprint", projectID)

	if err := h.validator.UUID("projectId", projectID); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	format := toResultFormat(r.URL.Query().Get("format"))
	export, err := h.usecase.ExportBlueprint(ctx, projectID, format)
	if err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Debug(ctx, "blueprint exported",
		zap.String("format", string(format)),
		zap.Int("bytes", len(export.Data)),
	)
	response.File(w, export.ContentType, export.Filename, export.Data)
}

// GenerateDatabaseSchema handles POST /api/idea/generate-database-schema
func (h *Handler) GenerateDatabaseSchema(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateDatabaseSchema")

	var req entity.ProjectContextRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}
	ctx = logger.AddFields(ctx, zap.String("project_id", req.ProjectID))

	schema, err := h.usecase.GenerateDatabaseSchema(ctx, req.ProjectID, req.ProjectContext)
	if err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, schema)
}

// GenerateFlowchart handles POST /api/idea/generate-flowchart
func (h *Handler) GenerateFlowchart(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateFlowchart")

	var req entity.ProjectContextRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}
	ctx = logger.AddFields(ctx, zap.String("project_id", req.ProjectID))

	chart, err := h.usecase.GenerateFlowchart(ctx, req.ProjectID, req.ProjectContext)
	if err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, &entity.FlowchartResponse{Chart: &chart})
}

// GetFlowchart handles GET /api/idea/flowchart/{projectId}
func (h *Handler) GetFlowchart(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	ctx := logger.WithProject(r.Context(), "GetFlowchart", projectID)

	if err := h.validator.UUID("projectId", projectID); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	chart, err := h.usecase.GetFlowchart(ctx, projectID)
	if err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, &entity.FlowchartResponse{Chart: chart})
}
