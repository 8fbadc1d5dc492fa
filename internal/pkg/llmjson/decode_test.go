package llmjson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `  {"a":1}  `, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n[1,2]\n```", `[1,2]`},
		{"fence on one line", "```{\"a\":1}```", `{"a":1}`},
		{"mermaid fence", "```mermaid\ngraph TD\n  A --> B\n```", "graph TD\n  A --> B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestDecode(t *testing.T) {
	var out struct {
		Question string `json:"question"`
	}

	require.NoError(t, Decode("```json\n{\"question\":\"Who is it for?\"}\n```", &out))
	assert.Equal(t, "Who is it for?", out.Question)
}

func TestDecode_Errors(t *testing.T) {
	var out map[string]any

	err := Decode("   ", &out)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, StageEmpty, decodeErr.Stage)

	err = Decode(`{"question": `, &out)
	require.ErrorIs(t, err, ErrDecode)
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, StageParse, decodeErr.Stage)
}

const scoreSchema = `{
  "type": "object",
  "required": ["score"],
  "properties": {
    "score": {"type": "number", "minimum": 0, "maximum": 1}
  }
}`

func TestSchemaDecode(t *testing.T) {
	schema := MustSchema(scoreSchema)

	var out struct {
		Score float64 `json:"score"`
	}
	require.NoError(t, schema.Decode(`{"score": 0.4}`, &out))
	assert.InDelta(t, 0.4, out.Score, 1e-9)

	tests := []struct {
		name  string
		raw   string
		stage Stage
	}{
		{"missing field", `{}`, StageSchema},
		{"out of range", `{"score": 1.5}`, StageSchema},
		{"wrong type", `{"score": "high"}`, StageSchema},
		{"not json", `score is high`, StageParse},
		{"empty", "", StageEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.Decode(tt.raw, &out)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, tt.stage, decodeErr.Stage)
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestNewSchema_Invalid(t *testing.T) {
	_, err := NewSchema(`{"type": 12}`)
	assert.Error(t, err)
}
