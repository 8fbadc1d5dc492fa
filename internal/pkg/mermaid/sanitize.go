// Package mermaid cleans flowchart source produced by a model so that
// Mermaid.js can render it.
package mermaid

import (
	"regexp"
	"strings"
)

var (
	mixedOpen      = strings.NewReplacer("{(", "{{", "({", "{{", ")}", "}}", "})", "}}")
	labelOpenSpace = regexp.MustCompile(`-->\s*\|\s+`)
	labelEndSpace  = regexp.MustCompile(`\s+\|(\s)`)
	doubleSpace    = regexp.MustCompile(`  +`)
)

// Sanitize removes code fences and rewrites the syntax mistakes models
// commonly make:
//
//	A -->|x|> B     becomes  A -->|x| B
//	Auth{(Auth)}    becomes  Auth{{Auth}}
//	A -->| x | B    becomes  A -->|x|B
func Sanitize(code string) string {
	code = strings.ReplaceAll(code, "```mermaid", "")
	code = strings.ReplaceAll(code, "```", "")
	code = strings.TrimSpace(code)

	code = strings.ReplaceAll(code, "|>", "|")
	code = mixedOpen.Replace(code)

	code = labelOpenSpace.ReplaceAllString(code, "-->|")
	code = labelEndSpace.ReplaceAllString(code, "|")

	return doubleSpace.ReplaceAllString(code, " ")
}
