package idea

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/futig/architech-backend/internal/entity"
	"github.com/futig/architech-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectID = "5b0f3d4c-0a7e-4c1e-9f57-3f1f2b8a6d21"

type fakeUsecase struct {
	ideas     []entity.IdeaOption
	blueprint *entity.Blueprint
	export    *entity.BlueprintExport
	schema    *entity.DatabaseSchema
	chart     *string
	err       error

	blueprintIn *entity.GenerateBlueprintInput
	format      entity.ResultFormat
}

func (f *fakeUsecase) GenerateIdeas(context.Context, string, entity.Conversation) ([]entity.IdeaOption, error) {
	return f.ideas, f.err
}

func (f *fakeUsecase) GenerateBlueprint(_ context.Context, in *entity.GenerateBlueprintInput) (*entity.Blueprint, error) {
	f.blueprintIn = in
	return f.blueprint, f.err
}

func (f *fakeUsecase) ExportBlueprint(_ context.Context, _ string, format entity.ResultFormat) (*entity.BlueprintExport, error) {
	f.format = format
	return f.export, f.err
}

func (f *fakeUsecase) GenerateDatabaseSchema(context.Context, string, string) (*entity.DatabaseSchema, error) {
	return f.schema, f.err
}

func (f *fakeUsecase) GenerateFlowchart(context.Context, string, string) (string, error) {
	if f.chart == nil {
		return "", f.err
	}
	return *f.chart, f.err
}

func (f *fakeUsecase) GetFlowchart(context.Context, string) (*string, error) {
	return f.chart, f.err
}

func serve(uc *fakeUsecase, method, path, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(uc, validator.New()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestGenerateIdeas(t *testing.T) {
	uc := &fakeUsecase{ideas: []entity.IdeaOption{{ProjectName: "Pantry", MVPFeatures: []string{"scan"}}}}

	rec := serve(uc, http.MethodPost, "/api/idea/generate-list",
		`{"interest":"cooking","conversation":[{"role":"user","content":"I cook a lot"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ideas":[{
		"projectName":"Pantry","reasonProjectName":"","projectDescription":"",
		"uniqueSellingProposition":"","mvpFeatures":["scan"]
	}]}`, rec.Body.String())

	rec = serve(&fakeUsecase{ideas: []entity.IdeaOption{}}, http.MethodPost, "/api/idea/generate-list", `{"interest":"cooking"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ideas":[]}`, rec.Body.String())
}

func TestGenerateBlueprint(t *testing.T) {
	uc := &fakeUsecase{blueprint: &entity.Blueprint{WorkbenchContent: "# Plan"}}

	body := `{"interest":"cooking","projectName":"Pantry","projectDescription":"Tracks food","projectId":"` + projectID + `"}`
	rec := serve(uc, http.MethodPost, "/api/idea/generate-blueprint", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"workbenchContent":"# Plan"`)

	require.NotNil(t, uc.blueprintIn)
	assert.Equal(t, projectID, *uc.blueprintIn.ProjectID)
	assert.Equal(t, []string{}, uc.blueprintIn.MVPFeatures)

	rec = serve(uc, http.MethodPost, "/api/idea/generate-blueprint", `{"interest":"cooking","projectName":"Pantry"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportBlueprint(t *testing.T) {
	uc := &fakeUsecase{export: &entity.BlueprintExport{
		Data:        []byte("# Pantry"),
		ContentType: "text/markdown; charset=utf-8",
		Filename:    "blueprint-" + projectID + ".md",
	}}

	rec := serve(uc, http.MethodGet, "/api/idea/"+projectID+"/blueprint", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.FormatMarkdown, uc.format)
	assert.Equal(t, "# Pantry", rec.Body.String())
	assert.Equal(t, `attachment; filename="blueprint-`+projectID+`.md"`, rec.Header().Get("Content-Disposition"))

	serve(uc, http.MethodGet, "/api/idea/"+projectID+"/blueprint?format=pdf", "")
	assert.Equal(t, entity.FormatPDF, uc.format)

	rec = serve(&fakeUsecase{err: entity.ErrBlueprintNotFound}, http.MethodGet, "/api/idea/"+projectID+"/blueprint", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(uc, http.MethodGet, "/api/idea/not-a-uuid/blueprint", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFlowchart(t *testing.T) {
	chart := "graph TD\n  A --> B"

	rec := serve(&fakeUsecase{chart: &chart}, http.MethodPost, "/api/idea/generate-flowchart",
		`{"projectId":"`+projectID+`","projectContext":"a pantry app"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"chart":"graph TD\n  A --> B"}`, rec.Body.String())

	rec = serve(&fakeUsecase{}, http.MethodGet, "/api/idea/flowchart/"+projectID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"chart":null}`, rec.Body.String())

	rec = serve(&fakeUsecase{err: entity.ErrEmptyCompletion}, http.MethodPost, "/api/idea/generate-flowchart",
		`{"projectId":"`+projectID+`","projectContext":"a pantry app"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGenerateDatabaseSchema(t *testing.T) {
	uc := &fakeUsecase{schema: &entity.DatabaseSchema{Schema: []entity.SchemaTable{{
		TableName: "users",
		Columns:   []entity.SchemaColumn{{Name: "id", Type: "uuid", IsPrimaryKey: true}},
	}}}}

	rec := serve(uc, http.MethodPost, "/api/idea/generate-database-schema",
		`{"projectId":"`+projectID+`","projectContext":"a pantry app"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"schema":[{"table_name":"users","columns":[{"name":"id","type":"uuid","is_primary_key":true}]}]}`, rec.Body.String())

	rec = serve(uc, http.MethodPost, "/api/idea/generate-database-schema", `{"projectId":"x","projectContext":"a"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
