package interview

import (
	"net/http"

	"github.com/futig/architech-backend/internal/api/common"
	"github.com/futig/architech-backend/internal/entity"
	"github.com/futig/architech-backend/internal/pkg/logger"
	"github.com/futig/architech-backend/internal/pkg/response"
	"github.com/futig/architech-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   InterviewUsecase
	validator *validator.Validator
}

func NewHandler(usecase InterviewUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// StartInterview handles POST /api/interview/start
func (h *Handler) StartInterview(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartInterview")

	var req entity.StartInterviewRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	question, err := h.usecase.Start(ctx, req.Interest)
	if err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, &entity.StartInterviewResponse{Question: question})
}

// ContinueInterview handles POST /api/interview/continue
func (h *Handler) ContinueInterview(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ContinueInterview")

	var req entity.ContinueInterviewRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	in, err := toContinueInput(&req)
	if err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	if in.SessionID != nil {
		ctx = logger.AddFields(ctx, zap.String("session_id", *in.SessionID))
	}
	ctxzap.Debug(ctx, "continuing interview", zap.Int("turn_count", in.TurnCount))

	result, err := h.usecase.Continue(ctx, in)
	if err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toContinueResponse(result))
}
