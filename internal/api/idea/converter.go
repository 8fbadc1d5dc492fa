package idea

import (
	"github.com/futig/architech-backend/internal/entity"
	"github.com/futig/architech-backend/internal/pkg/conversation"
)

func toBlueprintInput(req *entity.GenerateBlueprintRequest) (*entity.GenerateBlueprintInput, error) {
	conv, err := conversation.NormalizeLenient(req.Conversation)
	if err != nil {
		return nil, err
	}

	features := req.MVPFeatures
	if features == nil {
		features = []string{}
	}

	return &entity.GenerateBlueprintInput{
		Interest:                 req.Interest,
		Conversation:             conv,
		ProjectName:              req.ProjectName,
		ProjectDescription:       req.ProjectDescription,
		MVPFeatures:              features,
		UniqueSellingProposition: req.UniqueSellingProposition,
		ReasonProjectName:        req.ReasonProjectName,
		ProjectID:                req.ProjectID,
	}, nil
}

// toResultFormat reads the ?format= query value; empty means markdown.
func toResultFormat(value string) entity.ResultFormat {
	if value == "" {
		return entity.FormatMarkdown
	}
	return entity.ResultFormat(value)
}
