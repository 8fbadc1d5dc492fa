// Package policy decides whether an adaptive interview keeps asking
// questions or concludes.
//
// Evaluate is a pure function of the number of completed turns and the
// quality assessment produced for the current turn. It performs no I/O
// and never fails; input validation belongs to the caller (see
// Validate).
package policy

import (
	"errors"
	"fmt"

	"github.com/futig/architech-backend/internal/entity"
)

const (
	// MaxTurns is the hard ceiling on completed turns.
	MaxTurns = 10
	// MinTurns is the number of turns that must complete before the
	// quality signal may end the interview.
	MinTurns = 2
	// ConfidenceThreshold is the mean score at which the interview has
	// gathered enough to build a blueprint.
	ConfidenceThreshold = 0.75
)

// ErrPreconditionViolation is returned by Validate for input Evaluate
// must never see.
var ErrPreconditionViolation = errors.New("policy precondition violated")

// PreconditionError names the offending input.
type PreconditionError struct {
	Field string
	Value float64
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s=%v", ErrPreconditionViolation, e.Field, e.Value)
}

func (e *PreconditionError) Unwrap() error {
	return ErrPreconditionViolation
}

// Validate checks the documented preconditions of Evaluate: a
// non-negative turn count and every score inside [0, 1].
func Validate(turnCount int, assessment entity.QualityAssessment) error {
	if turnCount < 0 {
		return &PreconditionError{Field: "turnCount", Value: float64(turnCount)}
	}

	for _, d := range dimensions(assessment) {
		// NaN fails both comparisons, so test for the valid range.
		if !(d.score >= 0 && d.score <= 1) {
			return &PreconditionError{Field: d.name, Value: d.score}
		}
	}

	return nil
}

// Confidence is the mean of the four assessment dimensions.
func Confidence(a entity.QualityAssessment) float64 {
	return (a.Completeness + a.Clarity + a.Depth + a.Actionability) / 4
}

// Evaluate applies the termination rules in order; the first match wins.
// The returned decision never carries a question: when ShouldContinue is
// true the caller generates one and attaches it with WithQuestion.
func Evaluate(turnCount int, assessment entity.QualityAssessment) entity.PolicyDecision {
	decision := entity.PolicyDecision{
		Confidence: Confidence(assessment),
		Assessment: assessment,
	}

	switch {
	case turnCount >= MaxTurns:
		decision.Reason = entity.ReasonMaxReached
	case turnCount < MinTurns:
		decision.ShouldContinue = true
		decision.Reason = entity.ReasonNeedMoreContext
	case decision.Confidence >= ConfidenceThreshold:
		decision.Reason = entity.ReasonSufficientInfo
	default:
		decision.ShouldContinue = true
		decision.Reason = entity.ReasonNeedClarification
	}

	return decision
}

// WithQuestion attaches the generated follow-up question to a continuing
// decision. A concluding decision is returned unchanged, and an empty
// question is rejected so the continue/question invariant holds.
func WithQuestion(decision entity.PolicyDecision, question string) (entity.PolicyDecision, error) {
	if !decision.ShouldContinue {
		return decision, nil
	}
	if question == "" {
		return decision, fmt.Errorf("%w: continuing decision needs a question", entity.ErrEmptyCompletion)
	}

	decision.NextQuestion = question
	return decision, nil
}

// WeakestDimension returns the name of the lowest scoring dimension; ties
// resolve in declaration order.
func WeakestDimension(a entity.QualityAssessment) string {
	dims := dimensions(a)
	weakest := dims[0]
	for _, d := range dims[1:] {
		if d.score < weakest.score {
			weakest = d
		}
	}
	return weakest.name
}

type dimension struct {
	name  string
	score float64
}

func dimensions(a entity.QualityAssessment) []dimension {
	return []dimension{
		{name: "completeness", score: a.Completeness},
		{name: "clarity", score: a.Clarity},
		{name: "depth", score: a.Depth},
		{name: "actionability", score: a.Actionability},
	}
}
