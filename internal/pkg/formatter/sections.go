package formatter

import (
	"fmt"
	"strings"

	"github.com/futig/architech-backend/internal/entity"
)

const untitledBlueprint = "Project Blueprint"

// section is a format-neutral piece of an exported blueprint.
type section struct {
	Heading    string
	Paragraphs []string
	Bullets    []string
}

func blueprintTitle(bp *entity.Blueprint) string {
	if title := strings.TrimSpace(bp.ProjectData.Title); title != "" {
		return title
	}
	return untitledBlueprint
}

func blueprintSections(bp *entity.Blueprint) []section {
	pd := bp.ProjectData
	var sections []section

	if pd.TitleReason != "" {
		sections = append(sections, section{Heading: "Why this name", Paragraphs: []string{pd.TitleReason}})
	}
	if pd.ProblemStatement != "" {
		sections = append(sections, section{Heading: "Problem Statement", Paragraphs: []string{pd.ProblemStatement}})
	}

	if len(pd.TargetAudience) > 0 {
		s := section{Heading: "Target Audience"}
		for _, a := range pd.TargetAudience {
			s.Bullets = append(s.Bullets, a.Text)
		}
		sections = append(sections, s)
	}

	if len(pd.SuccessMetrics) > 0 {
		s := section{Heading: "Success Metrics"}
		for _, m := range pd.SuccessMetrics {
			s.Bullets = append(s.Bullets, fmt.Sprintf("%s: %s", m.Type, m.Text))
		}
		sections = append(sections, s)
	}

	if len(pd.TechStack) > 0 {
		sections = append(sections, section{Heading: "Tech Stack", Bullets: pd.TechStack})
	}

	if workbench := strings.TrimSpace(bp.WorkbenchContent); workbench != "" {
		sections = append(sections, section{Heading: "Workbench", Paragraphs: splitParagraphs(workbench)})
	}

	return sections
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
