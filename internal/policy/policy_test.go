package policy

import (
	"errors"
	"math"
	"testing"

	"github.com/futig/architech-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(score float64) entity.QualityAssessment {
	return entity.QualityAssessment{
		Completeness:  score,
		Clarity:       score,
		Depth:         score,
		Actionability: score,
	}
}

func TestEvaluate_FloorAlwaysContinues(t *testing.T) {
	for turnCount := 0; turnCount < MinTurns; turnCount++ {
		for _, score := range []float64{0, 0.5, 0.75, 1} {
			decision := Evaluate(turnCount, uniform(score))

			assert.True(t, decision.ShouldContinue, "turn %d score %v", turnCount, score)
			assert.Equal(t, entity.ReasonNeedMoreContext, decision.Reason)
		}
	}
}

func TestEvaluate_CeilingAlwaysConcludes(t *testing.T) {
	for _, turnCount := range []int{MaxTurns, MaxTurns + 1, 50} {
		for _, score := range []float64{0, 0.5, 1} {
			decision := Evaluate(turnCount, uniform(score))

			assert.False(t, decision.ShouldContinue, "turn %d score %v", turnCount, score)
			assert.Equal(t, entity.ReasonMaxReached, decision.Reason)
			assert.Empty(t, decision.NextQuestion)
		}
	}
}

func TestEvaluate_ThresholdWindow(t *testing.T) {
	tests := []struct {
		name       string
		turnCount  int
		assessment entity.QualityAssessment
		wantCont   bool
		wantReason entity.DecisionReason
	}{
		{"exact threshold concludes", 2, uniform(0.75), false, entity.ReasonSufficientInfo},
		{"just below threshold continues", 2, uniform(0.749999), true, entity.ReasonNeedClarification},
		{"last turn before ceiling with zero score", 9, uniform(0), true, entity.ReasonNeedClarification},
		{"high score mid interview", 5, uniform(0.9), false, entity.ReasonSufficientInfo},
		{"mixed scores below threshold", 4, entity.QualityAssessment{Completeness: 1, Clarity: 1, Depth: 0.5, Actionability: 0.4}, true, entity.ReasonNeedClarification},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Evaluate(tt.turnCount, tt.assessment)

			assert.Equal(t, tt.wantCont, decision.ShouldContinue)
			assert.Equal(t, tt.wantReason, decision.Reason)
		})
	}
}

func TestEvaluate_CeilingTakesPrecedenceOverSufficiency(t *testing.T) {
	decision := Evaluate(10, uniform(1))

	assert.False(t, decision.ShouldContinue)
	assert.Equal(t, entity.ReasonMaxReached, decision.Reason)
	assert.InDelta(t, 1.0, decision.Confidence, 1e-9)
}

func TestEvaluate_Scenarios(t *testing.T) {
	t.Run("empty conversation", func(t *testing.T) {
		decision := Evaluate(0, uniform(0))

		assert.True(t, decision.ShouldContinue)
		assert.Equal(t, entity.ReasonNeedMoreContext, decision.Reason)
		assert.InDelta(t, 0.0, decision.Confidence, 1e-9)
	})

	t.Run("sufficient after three turns", func(t *testing.T) {
		assessment := entity.QualityAssessment{Completeness: 0.9, Clarity: 0.8, Depth: 0.7, Actionability: 0.9}
		decision := Evaluate(3, assessment)

		assert.False(t, decision.ShouldContinue)
		assert.Equal(t, entity.ReasonSufficientInfo, decision.Reason)
		assert.InDelta(t, 0.825, decision.Confidence, 1e-9)
		assert.Equal(t, assessment, decision.Assessment)
	})
}

func TestEvaluate_ConfidenceIsMean(t *testing.T) {
	assessment := entity.QualityAssessment{Completeness: 0.1, Clarity: 0.2, Depth: 0.3, Actionability: 0.4}

	for turnCount := 0; turnCount <= 12; turnCount++ {
		decision := Evaluate(turnCount, assessment)
		assert.InDelta(t, 0.25, decision.Confidence, 1e-9)
	}
}

func TestEvaluate_IsDeterministic(t *testing.T) {
	assessment := entity.QualityAssessment{Completeness: 0.6, Clarity: 0.7, Depth: 0.8, Actionability: 0.9}

	assert.Equal(t, Evaluate(4, assessment), Evaluate(4, assessment))
}

func TestEvaluate_ContinueIffQuestionInvariant(t *testing.T) {
	for turnCount := 0; turnCount <= 11; turnCount++ {
		for _, score := range []float64{0, 0.3, 0.75, 1} {
			decision, err := WithQuestion(Evaluate(turnCount, uniform(score)), "What problem does it solve?")
			require.NoError(t, err)

			assert.Equal(t, decision.ShouldContinue, decision.NextQuestion != "",
				"turn %d score %v", turnCount, score)
		}
	}
}

func TestWithQuestion(t *testing.T) {
	t.Run("concluding decision keeps empty question", func(t *testing.T) {
		decision, err := WithQuestion(Evaluate(10, uniform(1)), "ignored")

		require.NoError(t, err)
		assert.Empty(t, decision.NextQuestion)
	})

	t.Run("continuing decision rejects empty question", func(t *testing.T) {
		_, err := WithQuestion(Evaluate(0, uniform(0)), "")

		assert.ErrorIs(t, err, entity.ErrEmptyCompletion)
	})
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(0, uniform(0)))
	require.NoError(t, Validate(3, uniform(1)))

	tests := []struct {
		name       string
		turnCount  int
		assessment entity.QualityAssessment
		field      string
	}{
		{"negative turn count", -1, uniform(0.5), "turnCount"},
		{"score above one", 2, entity.QualityAssessment{Completeness: 1.2}, "completeness"},
		{"negative score", 2, entity.QualityAssessment{Depth: -0.1}, "depth"},
		{"NaN score", 2, entity.QualityAssessment{Actionability: math.NaN()}, "actionability"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.turnCount, tt.assessment)

			require.ErrorIs(t, err, ErrPreconditionViolation)
			var precondition *PreconditionError
			require.True(t, errors.As(err, &precondition))
			assert.Equal(t, tt.field, precondition.Field)
		})
	}
}

func TestWeakestDimension(t *testing.T) {
	assert.Equal(t, "depth", WeakestDimension(entity.QualityAssessment{
		Completeness: 0.8, Clarity: 0.7, Depth: 0.2, Actionability: 0.5,
	}))
	assert.Equal(t, "completeness", WeakestDimension(uniform(0.5)))
}
