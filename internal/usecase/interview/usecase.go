package interview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/futig/architech-backend/internal/entity"
	"github.com/futig/architech-backend/internal/pkg/llmjson"
	"github.com/futig/architech-backend/internal/policy"
	"github.com/futig/architech-backend/internal/prompts"
	"github.com/futig/architech-backend/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	assessTemperature   = 0.2
	questionTemperature = 0.7
)

var assessmentSchema = llmjson.MustSchema(`{
  "type": "object",
  "required": ["completeness", "clarity", "depth", "actionability"],
  "properties": {
    "completeness":  {"type": "number", "minimum": 0, "maximum": 1},
    "clarity":       {"type": "number", "minimum": 0, "maximum": 1},
    "depth":         {"type": "number", "minimum": 0, "maximum": 1},
    "actionability": {"type": "number", "minimum": 0, "maximum": 1}
  }
}`)

var questionSchema = llmjson.MustSchema(`{
  "type": "object",
  "required": ["question"],
  "properties": {
    "question": {"type": "string", "minLength": 1}
  }
}`)

type questionOutput struct {
	Question string `json:"question"`
}

// InterviewUsecase runs the adaptive interview: scoring, the continuation
// policy and follow-up question generation
type InterviewUsecase struct {
	sessionRepo repository.InterviewSessionRepository
	llm         LLMConnector
	model       string
	logger      *zap.Logger
}

// NewUsecase creates a new interview use case. model is the model used for
// every interview completion.
func NewUsecase(
	sessionRepo repository.InterviewSessionRepository,
	llm LLMConnector,
	model string,
	logger *zap.Logger,
) *InterviewUsecase {
	return &InterviewUsecase{
		sessionRepo: sessionRepo,
		llm:         llm,
		model:       model,
		logger:      logger,
	}
}

// Start returns the opening question for an interest
func (uc *InterviewUsecase) Start(ctx context.Context, interest string) (string, error) {
	prompt, err := prompts.StartInterview(interest)
	if err != nil {
		return "", fmt.Errorf("render start prompt: %w", err)
	}

	question, err := uc.askQuestion(ctx, entity.PurposeInterviewStart, prompt, 0)
	if err != nil {
		return "", fmt.Errorf("generate opening question: %w", err)
	}

	ctxzap.Info(ctx, "interview started")

	return question, nil
}

// Continue scores the conversation, applies the continuation policy and,
// when the interview goes on, generates the next question. A tracked
// session that has already concluded is rejected with ErrSessionConcluded.
func (uc *InterviewUsecase) Continue(ctx context.Context, in *entity.ContinueInterviewInput) (*entity.ContinueInterviewResult, error) {
	var session *entity.InterviewSession
	if in.SessionID != nil {
		var err error
		session, err = uc.loadSession(ctx, *in.SessionID, in.Interest)
		if err != nil {
			return nil, err
		}
	}

	assessment, err := uc.assess(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("assess conversation: %w", err)
	}

	if err := policy.Validate(in.TurnCount, assessment); err != nil {
		return nil, err
	}

	decision := policy.Evaluate(in.TurnCount, assessment)

	ctxzap.Info(ctx, "interview turn evaluated",
		zap.Int("turn_count", in.TurnCount),
		zap.String("reason", string(decision.Reason)),
		zap.Float64("confidence", decision.Confidence),
	)

	if decision.ShouldContinue {
		question, err := uc.nextQuestion(ctx, in, policy.WeakestDimension(assessment))
		if err != nil {
			return nil, fmt.Errorf("generate next question: %w", err)
		}

		decision, err = policy.WithQuestion(decision, question)
		if err != nil {
			return nil, err
		}
	}

	phase, err := policy.ResolvePhase(in.TurnCount, decision)
	if err != nil {
		return nil, fmt.Errorf("resolve phase: %w", err)
	}

	if session != nil {
		if err := uc.recordTurn(ctx, session, in.TurnCount, decision, phase); err != nil {
			return nil, err
		}
	}

	return &entity.ContinueInterviewResult{
		Decision: decision,
		Phase:    phase,
	}, nil
}

func (uc *InterviewUsecase) loadSession(ctx context.Context, id, interest string) (*entity.InterviewSession, error) {
	session, err := uc.sessionRepo.GetSession(ctx, id)
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		ctxzap.Debug(ctx, "tracking new interview session", zap.String("session_id", id))
		return &entity.InterviewSession{
			ID:       id,
			Interest: interest,
			Phase:    entity.PhaseAwaitingFirstTurns,
		}, nil
	case err != nil:
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Phase == entity.PhaseConcluded {
		ctxzap.Warn(ctx, "turn submitted to concluded interview", zap.String("session_id", id))
		return nil, entity.ErrSessionConcluded
	}

	return session, nil
}

func (uc *InterviewUsecase) recordTurn(
	ctx context.Context,
	session *entity.InterviewSession,
	turnCount int,
	decision entity.PolicyDecision,
	phase entity.InterviewPhase,
) error {
	reason := decision.Reason
	confidence := decision.Confidence

	session.Phase = phase
	session.Reason = &reason
	session.Confidence = &confidence
	session.TurnCount = turnCount
	if phase == entity.PhaseConcluded {
		now := time.Now().UTC()
		session.ConcludedAt = &now
	}

	if _, err := uc.sessionRepo.SaveSession(ctx, session); err != nil {
		if errors.Is(err, entity.ErrSessionConcluded) {
			return err
		}
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (uc *InterviewUsecase) assess(ctx context.Context, in *entity.ContinueInterviewInput) (entity.QualityAssessment, error) {
	prompt, err := prompts.AssessInterview(in.Interest, in.Conversation, in.TurnCount)
	if err != nil {
		return entity.QualityAssessment{}, fmt.Errorf("render assess prompt: %w", err)
	}

	resp, err := uc.llm.Complete(ctx, &entity.CompletionRequest{
		Purpose:     entity.PurposeInterviewAssess,
		Model:       uc.model,
		Messages:    []entity.ChatMessage{{Role: string(entity.RoleUser), Content: prompt}},
		Temperature: assessTemperature,
		JSONMode:    true,
	})
	if err != nil {
		return entity.QualityAssessment{}, err
	}

	var assessment entity.QualityAssessment
	if err := assessmentSchema.Decode(resp.Content, &assessment); err != nil {
		ctxzap.Error(ctx, "scorer returned malformed assessment", zap.Error(err))
		return entity.QualityAssessment{}, err
	}

	return assessment, nil
}

func (uc *InterviewUsecase) nextQuestion(ctx context.Context, in *entity.ContinueInterviewInput, weakest string) (string, error) {
	prompt, err := prompts.NextQuestion(in.Interest, in.Conversation, weakest)
	if err != nil {
		return "", fmt.Errorf("render question prompt: %w", err)
	}
	return uc.askQuestion(ctx, entity.PurposeInterviewQuestion, prompt, questionTemperature)
}

func (uc *InterviewUsecase) askQuestion(ctx context.Context, purpose entity.CompletionPurpose, prompt string, temperature float64) (string, error) {
	resp, err := uc.llm.Complete(ctx, &entity.CompletionRequest{
		Purpose:     purpose,
		Model:       uc.model,
		Messages:    []entity.ChatMessage{{Role: string(entity.RoleUser), Content: prompt}},
		Temperature: temperature,
		JSONMode:    true,
	})
	if err != nil {
		return "", err
	}

	var out questionOutput
	if err := questionSchema.Decode(resp.Content, &out); err != nil {
		return "", err
	}

	return out.Question, nil
}
