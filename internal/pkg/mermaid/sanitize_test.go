package mermaid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "fenced",
			in:   "```mermaid\ngraph TD\nA --> B\n```",
			want: "graph TD\nA --> B",
		},
		{
			name: "arrow ending",
			in:   "graph TD\nA -->|Request|> B",
			want: "graph TD\nA -->|Request| B",
		},
		{
			name: "mixed brackets",
			in:   "graph TD\nBE --> Auth{(Auth Service)}\nX({Y})",
			want: "graph TD\nBE --> Auth{{Auth Service}}\nX{{Y}}",
		},
		{
			name: "label spaces",
			in:   "graph TD\nA -->| Query | B",
			want: "graph TD\nA -->|Query|B",
		},
		{
			name: "indentation collapsed",
			in:   "graph TD\n    FE[Frontend] --> BE[Backend]",
			want: "graph TD\n FE[Frontend] --> BE[Backend]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}
