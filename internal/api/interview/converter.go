package interview

import (
	"github.com/futig/architech-backend/internal/entity"
	"github.com/futig/architech-backend/internal/pkg/conversation"
)

// toContinueInput normalizes the raw conversation. The turn count is the
// number of entries the client sent.
func toContinueInput(req *entity.ContinueInterviewRequest) (*entity.ContinueInterviewInput, error) {
	conv, err := conversation.Normalize(req.Conversation)
	if err != nil {
		return nil, err
	}

	return &entity.ContinueInterviewInput{
		Interest:     req.Interest,
		Conversation: conv,
		TurnCount:    len(req.Conversation),
		SessionID:    req.SessionID,
	}, nil
}

func toContinueResponse(result *entity.ContinueInterviewResult) *entity.ContinueInterviewResponse {
	d := result.Decision
	return &entity.ContinueInterviewResponse{
		ShouldContinue: d.ShouldContinue,
		Question:       d.NextQuestion,
		Reason:         d.Reason,
		Confidence:     d.Confidence,
		Analysis: entity.AnalysisDTO{
			Completeness:  d.Assessment.Completeness,
			Clarity:       d.Assessment.Clarity,
			Depth:         d.Assessment.Depth,
			Actionability: d.Assessment.Actionability,
		},
		Phase: result.Phase,
	}
}
