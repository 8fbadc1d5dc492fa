package entity

import "time"

// ContentBlockType is the kind of a guide content block.
type ContentBlockType string

const (
	BlockText     ContentBlockType = "text"
	BlockTerminal ContentBlockType = "terminal"
	BlockCode     ContentBlockType = "code"
	BlockTip      ContentBlockType = "tip"
)

type ContentBlock struct {
	ID           string           `json:"id"`
	Type         ContentBlockType `json:"type"`
	Content      string           `json:"content"`
	Language     *string          `json:"language"`
	Filename     *string          `json:"filename"`
	DisplayOrder int              `json:"display_order"`
}

type GuideTask struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	EstimatedTime *string        `json:"estimated_time"`
	DisplayOrder  int            `json:"display_order"`
	ContentBlocks []ContentBlock `json:"content_blocks"`
	IsCompleted   bool           `json:"is_completed"`
}

type TaskCategory struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Icon         string      `json:"icon"`
	DisplayOrder int         `json:"display_order"`
	Tasks        []GuideTask `json:"tasks"`
}

type Guide struct {
	Categories     []TaskCategory `json:"categories"`
	TotalTasks     int            `json:"total_tasks"`
	CompletedTasks int            `json:"completed_tasks"`
	LastUpdated    *time.Time     `json:"last_updated,omitempty"`
}

// GeneratedGuide is the guide shape the model is asked to produce.
type GeneratedGuide struct {
	Categories []GeneratedCategory `json:"categories"`
}

type GeneratedCategory struct {
	Name  string          `json:"name"`
	Icon  string          `json:"icon"`
	Tasks []GeneratedTask `json:"tasks"`
}

type GeneratedTask struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	EstimatedTime *string          `json:"estimated_time"`
	ContentBlocks []GeneratedBlock `json:"content_blocks"`
}

type GeneratedBlock struct {
	Type     ContentBlockType `json:"type"`
	Content  string           `json:"content"`
	Language *string          `json:"language"`
	Filename *string          `json:"filename"`
}

// TaskProgress is the completion record of one guide task.
type TaskProgress struct {
	TaskID      string
	ProjectID   string
	IsCompleted bool
	CompletedAt *time.Time
	UpdatedAt   time.Time
}

type GenerateGuideRequest struct {
	WorkbenchContent string `json:"workbenchContent" validate:"required"`
}

type TaskProgressRequest struct {
	TaskID      string `json:"taskId" validate:"required,uuid"`
	ProjectID   string `json:"projectId" validate:"required,uuid"`
	IsCompleted bool   `json:"isCompleted"`
}

type TaskProgressResponse struct {
	Success     bool `json:"success"`
	IsCompleted bool `json:"is_completed"`
}
