// Package conversation normalizes the message shapes clients send into
// entity.InterviewTurn values.
package conversation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/futig/architech-backend/internal/entity"
)

// Turn is one decoded conversation entry. The concrete types are
// TextTurn, PairTurn and PartsTurn.
type Turn interface {
	Turns(lenient bool) ([]entity.InterviewTurn, error)
}

// TextTurn is {"role": "...", "content": "..."}.
type TextTurn struct {
	Role    string
	Content string
}

// PairTurn is {"question": "...", "answer": "..."} as recorded by the
// interview UI.
type PairTurn struct {
	Question string
	Answer   string
}

// PartsTurn is a structured message whose content is a list of parts,
// possibly including tool calls.
type PartsTurn struct {
	Role  string
	Parts []Part
}

// Part is one element of a structured message.
type Part struct {
	Type       string          `json:"type"`
	Text       string          `json:"text,omitempty"`
	ToolCallID string          `json:"toolCallId,omitempty"`
	ToolName   string          `json:"toolName,omitempty"`
	Input      json.RawMessage `json:"input,omitempty"`
}

// IsToolCall reports whether the part is a tool invocation rather than text.
func (p Part) IsToolCall() bool {
	return p.Type == "tool-call" || strings.HasPrefix(p.Type, "tool-")
}

func (t TextTurn) Turns(lenient bool) ([]entity.InterviewTurn, error) {
	role, err := parseRole(t.Role, lenient)
	if err != nil {
		return nil, err
	}
	return nonEmpty(entity.InterviewTurn{Role: role, Content: t.Content}), nil
}

func (t PairTurn) Turns(bool) ([]entity.InterviewTurn, error) {
	return nonEmpty(
		entity.InterviewTurn{Role: entity.RoleAssistant, Content: t.Question},
		entity.InterviewTurn{Role: entity.RoleUser, Content: t.Answer},
	), nil
}

func (t PartsTurn) Turns(lenient bool) ([]entity.InterviewTurn, error) {
	role, err := parseRole(t.Role, lenient)
	if err != nil {
		return nil, err
	}
	return nonEmpty(entity.InterviewTurn{Role: role, Content: t.Text()}), nil
}

// Text concatenates the text parts; tool calls carry no transcript text.
func (t PartsTurn) Text() string {
	var b strings.Builder
	for _, part := range t.Parts {
		if part.Type == "text" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// ToolCalls returns the tool invocation parts.
func (t PartsTurn) ToolCalls() []Part {
	var calls []Part
	for _, part := range t.Parts {
		if part.IsToolCall() {
			calls = append(calls, part)
		}
	}
	return calls
}

type envelope struct {
	Role     string          `json:"role"`
	Content  json.RawMessage `json:"content"`
	Parts    []Part          `json:"parts"`
	Question *string         `json:"question"`
	Answer   *string         `json:"answer"`
}

// Parse decodes a single raw entry into its Turn variant.
func Parse(raw json.RawMessage) (Turn, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidTurn, err)
	}

	if env.Question != nil || env.Answer != nil {
		return PairTurn{Question: deref(env.Question), Answer: deref(env.Answer)}, nil
	}

	content := bytes.TrimSpace(env.Content)
	switch {
	case len(content) > 0 && content[0] == '"':
		var text string
		if err := json.Unmarshal(content, &text); err != nil {
			return nil, fmt.Errorf("%w: content: %v", entity.ErrInvalidTurn, err)
		}
		return TextTurn{Role: env.Role, Content: text}, nil
	case len(content) > 0 && content[0] == '[':
		parts, err := parseContentParts(content)
		if err != nil {
			return nil, err
		}
		return PartsTurn{Role: env.Role, Parts: parts}, nil
	case env.Parts != nil:
		return PartsTurn{Role: env.Role, Parts: env.Parts}, nil
	default:
		return nil, fmt.Errorf("%w: no content, parts or question/answer", entity.ErrInvalidTurn)
	}
}

// content arrays mix bare strings and part objects
func parseContentParts(content json.RawMessage) ([]Part, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(content, &items); err != nil {
		return nil, fmt.Errorf("%w: content: %v", entity.ErrInvalidTurn, err)
	}

	parts := make([]Part, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '"' {
			var text string
			if err := json.Unmarshal(item, &text); err != nil {
				return nil, fmt.Errorf("%w: content part: %v", entity.ErrInvalidTurn, err)
			}
			parts = append(parts, Part{Type: "text", Text: text})
			continue
		}

		var part Part
		if err := json.Unmarshal(item, &part); err != nil {
			return nil, fmt.Errorf("%w: content part: %v", entity.ErrInvalidTurn, err)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// Normalize decodes every entry and flattens it into the transcript.
// Unknown roles are rejected.
func Normalize(raws []json.RawMessage) (entity.Conversation, error) {
	return normalize(raws, false)
}

// NormalizeLenient is Normalize with unknown roles treated as user turns.
func NormalizeLenient(raws []json.RawMessage) (entity.Conversation, error) {
	return normalize(raws, true)
}

func normalize(raws []json.RawMessage, lenient bool) (entity.Conversation, error) {
	conversation := make(entity.Conversation, 0, len(raws))
	for i, raw := range raws {
		turn, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("conversation[%d]: %w", i, err)
		}

		turns, err := turn.Turns(lenient)
		if err != nil {
			return nil, fmt.Errorf("conversation[%d]: %w", i, err)
		}
		conversation = append(conversation, turns...)
	}
	return conversation, nil
}

func parseRole(role string, lenient bool) (entity.TurnRole, error) {
	if role == "" {
		return entity.RoleUser, nil
	}

	r := entity.TurnRole(strings.ToLower(role))
	if r.IsValid() {
		return r, nil
	}
	if lenient {
		return entity.RoleUser, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", entity.ErrInvalidTurn, role)
}

func nonEmpty(turns ...entity.InterviewTurn) []entity.InterviewTurn {
	out := make([]entity.InterviewTurn, 0, len(turns))
	for _, t := range turns {
		if strings.TrimSpace(t.Content) != "" {
			out = append(out, t)
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
