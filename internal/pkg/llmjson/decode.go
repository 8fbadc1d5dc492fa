// Package llmjson turns model completions into typed values. The only
// repair applied is removing markdown code fences; anything else that
// does not parse or does not match the expected schema is a DecodeError.
package llmjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Stage is the decode step that rejected a completion.
type Stage string

const (
	StageEmpty  Stage = "empty"
	StageParse  Stage = "parse"
	StageSchema Stage = "schema"
)

// ErrDecode matches every DecodeError with errors.Is.
var ErrDecode = errors.New("malformed model output")

// DecodeError reports a completion that could not be turned into the
// requested value.
type DecodeError struct {
	Stage    Stage
	Raw      string
	Problems []string
	Err      error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)", ErrDecode, e.Stage)
	if len(e.Problems) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Problems, "; "))
	} else if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDecode}
	}
	return []error{ErrDecode, e.Err}
}

// Clean strips surrounding whitespace and markdown code fences
// (```json, ```mermaid, ```) from a completion.
func Clean(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.IndexByte(text, '\n'); idx >= 0 && !strings.ContainsAny(text[:idx], "{[") {
		// drop the info string (json, mermaid, ...)
		text = text[idx+1:]
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// Decode cleans raw and unmarshals it into v.
func Decode(raw string, v any) error {
	cleaned := Clean(raw)
	if cleaned == "" {
		return &DecodeError{Stage: StageEmpty, Raw: raw}
	}

	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return &DecodeError{Stage: StageParse, Raw: raw, Err: err}
	}
	return nil
}

// Schema validates completions against a JSON schema before decoding.
type Schema struct {
	schema *gojsonschema.Schema
}

// NewSchema compiles a JSON schema document.
func NewSchema(document string) (*Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(document))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{schema: schema}, nil
}

// MustSchema is NewSchema for package level schemas.
func MustSchema(document string) *Schema {
	s, err := NewSchema(document)
	if err != nil {
		panic(err)
	}
	return s
}

// Decode cleans raw, checks it against the schema and unmarshals it into v.
func (s *Schema) Decode(raw string, v any) error {
	cleaned := Clean(raw)
	if cleaned == "" {
		return &DecodeError{Stage: StageEmpty, Raw: raw}
	}

	result, err := s.schema.Validate(gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		// gojsonschema fails here when the document is not JSON at all
		return &DecodeError{Stage: StageParse, Raw: raw, Err: err}
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return &DecodeError{Stage: StageSchema, Raw: raw, Problems: problems}
	}

	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return &DecodeError{Stage: StageParse, Raw: raw, Err: err}
	}
	return nil
}
