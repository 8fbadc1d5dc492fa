package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/futig/architech-backend/internal/entity"
	"github.com/futig/architech-backend/internal/pkg/llmjson"
	"github.com/futig/architech-backend/internal/pkg/response"
	"github.com/futig/architech-backend/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleUsecaseError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("get task: %w", entity.ErrTaskNotFound), http.StatusNotFound},
		{entity.ErrBlueprintNotFound, http.StatusNotFound},
		{entity.ErrSessionConcluded, http.StatusConflict},
		{fmt.Errorf("%w: interest", entity.ErrMissingField), http.StatusBadRequest},
		{&policy.PreconditionError{Field: "depth", Value: 2}, http.StatusBadRequest},
		{&llmjson.DecodeError{Stage: llmjson.StageSchema}, http.StatusInternalServerError},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleUsecaseError(context.Background(), rec, tt.err)
			assert.Equal(t, tt.status, rec.Code)

			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, http.StatusText(tt.status), body.Error)
			assert.Equal(t, tt.err.Error(), body.Detail)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Interest string `json:"interest"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"interest":"games"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "games", dst.Interest)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"interest":`))
	assert.ErrorIs(t, DecodeJSON(req, &dst), entity.ErrInvalidFormat)
}
