package conversation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/architech-backend/internal/entity"
)

type editorEnvelope struct {
	Metadata struct {
		DocumentState *entity.DocumentState `json:"documentState"`
	} `json:"metadata"`
}

// EditorMessages normalizes editor chat messages. Roles are lenient and
// messages without text are kept so their document state still counts.
func EditorMessages(raws []json.RawMessage) ([]entity.EditorMessage, error) {
	messages := make([]entity.EditorMessage, 0, len(raws))
	for i, raw := range raws {
		var env editorEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("messages[%d]: %w: %v", i, entity.ErrInvalidTurn, err)
		}

		msg := entity.EditorMessage{Role: entity.RoleUser, DocumentState: env.Metadata.DocumentState}

		turn, err := Parse(raw)
		switch {
		case errors.Is(err, entity.ErrInvalidTurn):
			// no usable content; document state only
		case err != nil:
			return nil, fmt.Errorf("messages[%d]: %w", i, err)
		default:
			msg.Role, msg.Content = editorText(turn)
		}

		messages = append(messages, msg)
	}
	return messages, nil
}

func editorText(turn Turn) (entity.TurnRole, string) {
	switch t := turn.(type) {
	case TextTurn:
		role, _ := parseRole(t.Role, true)
		return role, t.Content
	case PartsTurn:
		role, _ := parseRole(t.Role, true)
		return role, t.Text()
	case PairTurn:
		return entity.RoleUser, strings.TrimSpace(t.Question + "\n" + t.Answer)
	default:
		return entity.RoleUser, ""
	}
}
