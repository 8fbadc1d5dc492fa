package entity

import "encoding/json"

type GenerateIdeasRequest struct {
	Interest     string            `json:"interest" validate:"required"`
	Conversation []json.RawMessage `json:"conversation"`
}

type GenerateIdeasResponse struct {
	Ideas []IdeaOption `json:"ideas"`
}

type GenerateBlueprintRequest struct {
	Interest                 string            `json:"interest" validate:"required"`
	Conversation             []json.RawMessage `json:"conversation"`
	ProjectName              string            `json:"projectName" validate:"required"`
	ProjectDescription       string            `json:"projectDescription" validate:"required"`
	MVPFeatures              []string          `json:"mvpFeatures"`
	UniqueSellingProposition string            `json:"uniqueSellingProposition"`
	ReasonProjectName        string            `json:"reasonProjectName"`
	ProjectID                *string           `json:"projectId,omitempty" validate:"omitempty,uuid"`
}

// GenerateBlueprintInput is GenerateBlueprintRequest with a normalized
// conversation.
type GenerateBlueprintInput struct {
	Interest                 string
	Conversation             Conversation
	ProjectName              string
	ProjectDescription       string
	MVPFeatures              []string
	UniqueSellingProposition string
	ReasonProjectName        string
	ProjectID                *string
}

type ProjectContextRequest struct {
	ProjectID      string `json:"projectId" validate:"required,uuid"`
	ProjectContext string `json:"projectContext" validate:"required"`
}

type FlowchartResponse struct {
	Chart *string `json:"chart"`
}
