package guide

import (
	"net/http"

	"github.com/futig/architech-backend/internal/api/common"
	"github.com/futig/architech-backend/internal/entity"
	"github.com/futig/architech-backend/internal/pkg/logger"
	"github.com/futig/architech-backend/internal/pkg/response"
	"github.com/futig/architech-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   GuideUsecase
	validator *validator.Validator
}

func NewHandler(usecase GuideUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// GenerateGuide handles POST /api/guide/generate/{projectId}
func (h *Handler) GenerateGuide(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	ctx := logger.WithProject(r.Context(), "GenerateGuide", projectID)

	if err := h.validator.UUID("projectId", projectID); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	var req entity.GenerateGuideRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	guide, err := h.usecase.Generate(ctx, projectID, req.WorkbenchContent)
	if err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "guide generated",
		zap.Int("categories", len(guide.Categories)),
		zap.Int("total_tasks", guide.TotalTasks),
	)
	response.Success(w, guide)
}

// GetGuide handles GET /api/guide/{projectId}
func (h *Handler) GetGuide(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	ctx := logger.WithProject(r.Context(), "GetGuide", projectID)

	if err := h.validator.UUID("projectId", projectID); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	guide, err := h.usecase.Get(ctx, projectID)
	if err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, guide)
}

// UpdateProgress handles POST /api/guide/progress
func (h *Handler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdateTaskProgress")

	var req entity.TaskProgressRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}
	ctx = logger.AddFields(ctx,
		zap.String("project_id", req.ProjectID),
		zap.String("task_id", req.TaskID),
	)

	resp, err := h.usecase.UpdateProgress(ctx, &req)
	if err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}
