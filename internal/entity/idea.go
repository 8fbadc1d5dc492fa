package entity

import "time"

type IdeaOption struct {
	ProjectName              string   `json:"projectName"`
	ReasonProjectName        string   `json:"reasonProjectName"`
	ProjectDescription       string   `json:"projectDescription"`
	UniqueSellingProposition string   `json:"uniqueSellingProposition"`
	MVPFeatures              []string `json:"mvpFeatures"`
}

type Audience struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

type SuccessMetric struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type ProjectData struct {
	Title            string          `json:"title"`
	TitleReason      string          `json:"title_reason"`
	ProblemStatement string          `json:"problem_statement"`
	TargetAudience   []Audience      `json:"target_audience"`
	SuccessMetrics   []SuccessMetric `json:"success_metrics"`
	TechStack        []string        `json:"tech_stack"`
}

type Blueprint struct {
	ProjectData      ProjectData `json:"projectData"`
	WorkbenchContent string      `json:"workbenchContent"`
}

// StoredBlueprint is a blueprint persisted for a project.
type StoredBlueprint struct {
	ProjectID string
	Blueprint Blueprint
	UpdatedAt time.Time
}

type SchemaColumn struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	IsPrimaryKey bool   `json:"is_primary_key,omitempty"`
	IsForeignKey bool   `json:"is_foreign_key,omitempty"`
	References   string `json:"references,omitempty"`
}

type SchemaTable struct {
	TableName string         `json:"table_name"`
	Columns   []SchemaColumn `json:"columns"`
}

type DatabaseSchema struct {
	Schema []SchemaTable `json:"schema"`
}

type Flowchart struct {
	ProjectID string
	ChartCode string
	UpdatedAt time.Time
}

// ResultFormat is an export format for stored blueprints.
type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

// BlueprintExport is a rendered blueprint ready for download.
type BlueprintExport struct {
	Data        []byte
	ContentType string
	Filename    string
}
