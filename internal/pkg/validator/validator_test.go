package validator

import (
	"testing"

	"github.com/futig/architech-backend/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestStruct(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(&entity.StartInterviewRequest{Interest: "a budgeting app"}))

	err := v.Struct(&entity.StartInterviewRequest{})
	assert.ErrorIs(t, err, entity.ErrMissingField)
	assert.Contains(t, err.Error(), "interest")

	bad := "not-a-uuid"
	err = v.Struct(&entity.ContinueInterviewRequest{Interest: "x", SessionID: &bad})
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "sessionId")
}

func TestStruct_MissingWinsOverInvalid(t *testing.T) {
	err := New().Struct(&entity.TaskProgressRequest{TaskID: "nope"})
	assert.ErrorIs(t, err, entity.ErrMissingField)
	assert.Contains(t, err.Error(), "projectId")
}

func TestUUID(t *testing.T) {
	v := New()
	assert.NoError(t, v.UUID("projectId", "7b0f3d6c-1f5e-4b7a-9f41-2d8c0b9e6a11"))
	assert.ErrorIs(t, v.UUID("projectId", "42"), entity.ErrInvalidParameter)
	assert.ErrorIs(t, v.UUID("projectId", ""), entity.ErrInvalidParameter)
}
