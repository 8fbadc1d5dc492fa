// Package common holds the request decoding and error mapping shared by
// the HTTP handlers.
package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/futig/architech-backend/internal/entity"
	"github.com/futig/architech-backend/internal/pkg/response"
	"github.com/futig/architech-backend/internal/policy"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const maxBodyBytes = 4 << 20

// DecodeJSON reads a JSON request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: request body: %v", entity.ErrInvalidFormat, err)
	}
	return nil
}

// RespondError logs and writes an error response.
func RespondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Error(err))
	}
	response.Error(w, status, message, err)
}

// HandleUsecaseError maps domain errors to HTTP statuses. Anything not
// recognised, including upstream model and database failures, is a 500.
func HandleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrProjectNotFound),
		errors.Is(err, entity.ErrBlueprintNotFound),
		errors.Is(err, entity.ErrFlowchartNotFound),
		errors.Is(err, entity.ErrTaskNotFound),
		errors.Is(err, entity.ErrSessionNotFound):
		RespondError(ctx, w, http.StatusNotFound, "resource not found", err)
	case errors.Is(err, entity.ErrSessionConcluded):
		RespondError(ctx, w, http.StatusConflict, "interview already concluded", err)
	case errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidFormat),
		errors.Is(err, entity.ErrInvalidTurn),
		errors.Is(err, policy.ErrPreconditionViolation):
		RespondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	default:
		RespondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
