package entity

import "time"

// TurnRole identifies the author of a conversation turn.
type TurnRole string

const (
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
	RoleSystem    TurnRole = "system"
)

func (r TurnRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	default:
		return false
	}
}

// InterviewTurn is one recorded exchange. Turns are never mutated once
// appended to a Conversation.
type InterviewTurn struct {
	Role    TurnRole `json:"role"`
	Content string   `json:"content"`
}

// Conversation is the chronological interview transcript.
type Conversation []InterviewTurn

// Questions returns the assistant turns in order.
func (c Conversation) Questions() []string {
	questions := make([]string, 0, len(c))
	for _, turn := range c {
		if turn.Role == RoleAssistant {
			questions = append(questions, turn.Content)
		}
	}
	return questions
}

// QualityAssessment holds the scorer's view of the conversation, every
// field in [0, 1].
type QualityAssessment struct {
	Completeness  float64 `json:"completeness"`
	Clarity       float64 `json:"clarity"`
	Depth         float64 `json:"depth"`
	Actionability float64 `json:"actionability"`
}

// DecisionReason explains a continuation decision.
type DecisionReason string

const (
	ReasonMaxReached        DecisionReason = "max_reached"
	ReasonNeedMoreContext   DecisionReason = "need_more_context"
	ReasonSufficientInfo    DecisionReason = "sufficient_info"
	ReasonNeedClarification DecisionReason = "need_clarification"
)

// PolicyDecision is the outcome of the interview continuation policy.
// ShouldContinue is false iff NextQuestion is empty.
type PolicyDecision struct {
	ShouldContinue bool
	NextQuestion   string
	Reason         DecisionReason
	Confidence     float64
	Assessment     QualityAssessment
}

// InterviewPhase is the state of an interview as seen by the policy.
type InterviewPhase string

const (
	PhaseAwaitingFirstTurns InterviewPhase = "awaiting_first_turns"
	PhaseEvaluating         InterviewPhase = "evaluating"
	PhaseConcluded          InterviewPhase = "concluded"
)

// InterviewSession is the server-side record of a tracked interview.
type InterviewSession struct {
	ID          string
	Interest    string
	Phase       InterviewPhase
	Reason      *DecisionReason
	Confidence  *float64
	TurnCount   int
	ConcludedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
