package formatter

import (
	"bytes"
	"fmt"

	"github.com/futig/architech-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(bp *entity.Blueprint) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", blueprintTitle(bp))

	for _, s := range blueprintSections(bp) {
		fmt.Fprintf(&buf, "\n## %s\n\n", s.Heading)
		for _, p := range s.Paragraphs {
			fmt.Fprintf(&buf, "%s\n\n", p)
		}
		for _, b := range s.Bullets {
			fmt.Fprintf(&buf, "- %s\n", b)
		}
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
