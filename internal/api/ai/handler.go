package ai

import (
	"net/http"

	"github.com/futig/architech-backend/internal/api/common"
	"github.com/futig/architech-backend/internal/entity"
	"github.com/futig/architech-backend/internal/pkg/logger"
	"github.com/futig/architech-backend/internal/pkg/response"
	"github.com/futig/architech-backend/internal/pkg/validator"
	"github.com/futig/architech-backend/internal/usecase/editor"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   EditorUsecase
	validator *validator.Validator
}

func NewHandler(usecase EditorUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Chat handles POST /api/ai/chat. Once the stream has started every
// outcome, including failures, is reported in-stream and the stream is
// always terminated with [DONE].
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "EditorChat")

	var req entity.EditorChatRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	in, err := toChatInput(&req)
	if err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	stream, err := newEventWriter(w)
	if err != nil {
		common.RespondError(ctx, w, http.StatusInternalServerError, "streaming not supported", err)
		return
	}

	if err := h.usecase.Chat(ctx, in, stream.WriteEvent); err != nil {
		ctxzap.Error(ctx, "editor chat failed", zap.Error(err))
		if werr := stream.WriteEvent(entity.EditorEvent{Type: editor.EventError, ErrorText: err.Error()}); werr != nil {
			ctxzap.Warn(ctx, "failed to write error event", zap.Error(werr))
		}
	}

	if err := stream.WriteDone(); err != nil {
		ctxzap.Warn(ctx, "failed to terminate event stream", zap.Error(err))
	}
}

// EditorCompletion handles POST /api/ai/editor-completion
func (h *Handler) EditorCompletion(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "EditorCompletion")

	var req entity.EditorCompletionRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	completion, err := h.usecase.Complete(ctx, &req)
	if err != nil {
		common.HandleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, &entity.EditorCompletionResponse{Completion: completion})
}
