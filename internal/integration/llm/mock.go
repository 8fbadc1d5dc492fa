package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/architech-backend/internal/entity"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector answers every completion with canned, well-formed output
// so the whole flow can run without a provider.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Complete(ctx context.Context, req *entity.CompletionRequest) (*entity.CompletionResponse, error) {
	ctxzap.Info(ctx, "[MOCK] requesting completion", zap.String("purpose", string(req.Purpose)))

	resp := &entity.CompletionResponse{Model: "mock"}
	switch req.Purpose {
	case entity.PurposeInterviewStart:
		resp.Content = `{"question": "Sounds exciting! Who do you see as the main users of this idea?"}`
	case entity.PurposeInterviewAssess:
		resp.Content = mockAssessment(req)
	case entity.PurposeInterviewQuestion:
		resp.Content = `{"question": "What is the single most important problem the first version must solve?"}`
	case entity.PurposeIdeaList:
		resp.Content = mockIdeas
	case entity.PurposeBlueprint:
		resp.Content = mockBlueprint
	case entity.PurposeDatabaseSchema:
		resp.Content = mockSchema
	case entity.PurposeFlowchart:
		resp.Content = mockFlowchart
	case entity.PurposeGuide:
		resp.Content = mockGuide
	case entity.PurposeEditorChat:
		if len(req.Tools) > 0 {
			resp.ToolCalls = []entity.ToolCall{{
				ID:   "call_" + uuid.NewString(),
				Type: "function",
				Function: entity.ToolCallFunction{
					Name:      req.Tools[0].Function.Name,
					Arguments: `{"operations":[]}`,
				},
			}}
		} else {
			resp.Content = mockEditorText
		}
	case entity.PurposeEditorCompletion:
		resp.Content = "and the rest of the story unfolded from there."
	default:
		return nil, fmt.Errorf("[MOCK] unsupported purpose %q", req.Purpose)
	}

	ctxzap.Info(ctx, "[MOCK] completion generated", zap.Int("content_length", len(resp.Content)))
	return resp, nil
}

func (m *MockConnector) Stream(ctx context.Context, req *entity.CompletionRequest, onDelta entity.StreamDelta) error {
	ctxzap.Info(ctx, "[MOCK] streaming completion", zap.String("purpose", string(req.Purpose)))

	words := strings.SplitAfter(mockEditorText, " ")
	for _, word := range words {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := onDelta(word); err != nil {
			return err
		}
	}
	return nil
}

// mockAssessment grows with the number of user answers in the prompt so
// that a mocked interview concludes after a few turns.
func mockAssessment(req *entity.CompletionRequest) string {
	answers := 0
	for _, msg := range req.Messages {
		answers += strings.Count(msg.Content, `"role":"user"`)
	}

	score := 0.3 + 0.15*float64(answers)
	if score > 0.95 {
		score = 0.95
	}
	return fmt.Sprintf(`{"completeness": %.2f, "clarity": %.2f, "depth": %.2f, "actionability": %.2f}`, score, score, score, score)
}

const mockEditorText = "Here is a clearer version of the selected text."

const mockIdeas = `{"ideas": [
  {"projectName": "StudyPulse", "reasonProjectName": "It keeps a steady rhythm of study sessions.", "projectDescription": "A planner that turns course syllabi into daily study sessions.", "uniqueSellingProposition": "Schedules adapt to missed sessions automatically.", "mvpFeatures": ["Syllabus import", "Daily plan", "Progress streaks"]},
  {"projectName": "PeerNote", "reasonProjectName": "Notes shared between peers.", "projectDescription": "A collaborative note space per course.", "uniqueSellingProposition": "Notes are linked to lecture timestamps.", "mvpFeatures": ["Shared notes", "Lecture links", "Comments"]},
  {"projectName": "QuizForge", "reasonProjectName": "It forges quizzes from notes.", "projectDescription": "Generates practice quizzes from uploaded notes.", "uniqueSellingProposition": "Questions target weak topics.", "mvpFeatures": ["Note upload", "Quiz generation", "Weak topic report"]}
]}`

const mockBlueprint = `{
  "projectData": {
    "title": "StudyPulse",
    "title_reason": "It keeps a steady rhythm of study sessions.",
    "problem_statement": "Students struggle to turn a syllabus into a realistic study plan.",
    "target_audience": [
      {"icon": "student", "text": "University students with heavy course loads"},
      {"icon": "professional", "text": "Working professionals taking evening classes"},
      {"icon": "user", "text": "Self-learners following online courses"}
    ],
    "success_metrics": [
      {"type": "Kuantitatif", "text": "1,000 monthly active users within 6 months"},
      {"type": "Kuantitatif", "text": "40% retention after 30 days"},
      {"type": "Kualitatif", "text": "Users report less exam stress"}
    ],
    "tech_stack": ["Next.js", "Go", "PostgreSQL", "Redis", "Docker"]
  },
  "workbenchContent": "## Fitur Utama\nSyllabus import, daily plan and streaks.\n\n## Roadmap\nMVP, Phase 2, Future.\n\n## Task Breakdown\n- Frontend: plan view\n- Backend: scheduling API\n\n## User Stories\nAs a student I want a daily plan.\n\n## System Architecture\nA web client talks to a Go API backed by PostgreSQL.\n\n## API Endpoints\nGET /plans\n\n## Strategi Monetisasi\nFreemium subscription."
}`

const mockSchema = `{"schema": [
  {"table_name": "users", "columns": [
    {"name": "id", "type": "UUID", "is_primary_key": true},
    {"name": "email", "type": "TEXT"},
    {"name": "created_at", "type": "TIMESTAMPTZ"}
  ]},
  {"table_name": "study_sessions", "columns": [
    {"name": "id", "type": "UUID", "is_primary_key": true},
    {"name": "user_id", "type": "UUID", "is_foreign_key": true, "references": "users(id)"},
    {"name": "starts_at", "type": "TIMESTAMPTZ"}
  ]}
]}`

const mockFlowchart = "```mermaid\ngraph TD\n    User((User)) -->| Request | FE[Frontend]\n    FE -->|API Call| BE[Backend]\n    BE -->|Query| DB[(Database)]\n```"

const mockGuide = `{"categories": [
  {"name": "Project Setup", "icon": "rocket", "tasks": [
    {"title": "Initialize the repository", "description": "Create the project skeleton.", "estimated_time": "10 min", "content_blocks": [
      {"type": "text", "content": "Create a new Go module for the API."},
      {"type": "terminal", "content": "go mod init example.com/studypulse"},
      {"type": "tip", "content": "Commit early and often."}
    ]}
  ]},
  {"name": "Backend", "icon": "code", "tasks": [
    {"title": "Add the plans endpoint", "description": "Serve the daily plan.", "estimated_time": "30 min", "content_blocks": [
      {"type": "code", "language": "go", "filename": "main.go", "content": "http.HandleFunc(\"/plans\", plans)"}
    ]}
  ]}
]}`
