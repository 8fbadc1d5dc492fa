package entity

import "errors"

// Domain errors
var (
	// Project errors
	ErrProjectNotFound   = errors.New("project not found")
	ErrBlueprintNotFound = errors.New("blueprint not found")
	ErrFlowchartNotFound = errors.New("flowchart not found")

	// Guide errors
	ErrTaskNotFound = errors.New("task not found")

	// Interview errors
	ErrSessionNotFound  = errors.New("interview session not found")
	ErrSessionConcluded = errors.New("interview session is already concluded")
	ErrInvalidTurn      = errors.New("invalid conversation turn")

	// LLM errors
	ErrEmptyCompletion = errors.New("model returned an empty completion")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
