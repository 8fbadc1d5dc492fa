package entity

import "encoding/json"

type StartInterviewRequest struct {
	Interest string `json:"interest" validate:"required"`
}

type StartInterviewResponse struct {
	Question string `json:"question"`
}

// ContinueInterviewRequest keeps conversation entries raw; they are
// normalized into InterviewTurn values before any use case sees them.
type ContinueInterviewRequest struct {
	Interest     string            `json:"interest" validate:"required"`
	Conversation []json.RawMessage `json:"conversation"`
	SessionID    *string           `json:"sessionId,omitempty" validate:"omitempty,uuid"`
}

type AnalysisDTO struct {
	Completeness  float64 `json:"completeness"`
	Clarity       float64 `json:"clarity"`
	Depth         float64 `json:"depth"`
	Actionability float64 `json:"actionability"`
}

type ContinueInterviewResponse struct {
	ShouldContinue bool           `json:"shouldContinue"`
	Question       string         `json:"question"`
	Reason         DecisionReason `json:"reason"`
	Confidence     float64        `json:"confidence"`
	Analysis       AnalysisDTO    `json:"analysis"`
	Phase          InterviewPhase `json:"phase"`
}

// ContinueInterviewInput is the normalized form of ContinueInterviewRequest.
type ContinueInterviewInput struct {
	Interest     string
	Conversation Conversation
	TurnCount    int
	SessionID    *string
}

type ContinueInterviewResult struct {
	Decision PolicyDecision
	Phase    InterviewPhase
}
