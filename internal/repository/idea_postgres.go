package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/futig/architech-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IdeaRepository persists the generated artifacts of a project
type IdeaRepository interface {
	UpsertBlueprint(ctx context.Context, projectID string, blueprint *entity.Blueprint) error
	GetBlueprint(ctx context.Context, projectID string) (*entity.StoredBlueprint, error)
	UpsertDatabaseSchema(ctx context.Context, projectID string, schema *entity.DatabaseSchema) error
	UpsertFlowchart(ctx context.Context, projectID, chartCode string) error
	GetFlowchart(ctx context.Context, projectID string) (*entity.Flowchart, error)
}

var _ IdeaRepository = &IdeaPostgres{}

// IdeaPostgres implements IdeaRepository using PostgreSQL
type IdeaPostgres struct {
	db *pgxpool.Pool
}

func NewIdeaPostgres(db *pgxpool.Pool) *IdeaPostgres {
	return &IdeaPostgres{db: db}
}

func (r *IdeaPostgres) UpsertBlueprint(ctx context.Context, projectID string, blueprint *entity.Blueprint) error {
	id, err := toPgUUID(projectID)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	projectData, err := json.Marshal(blueprint.ProjectData)
	if err != nil {
		return fmt.Errorf("marshal project data: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO blueprints (project_id, project_data, workbench_content, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (project_id) DO UPDATE SET
			project_data      = EXCLUDED.project_data,
			workbench_content = EXCLUDED.workbench_content,
			updated_at        = now()`,
		id, projectData, blueprint.WorkbenchContent,
	)
	if err != nil {
		return fmt.Errorf("upsert blueprint: %w", err)
	}

	return nil
}

func (r *IdeaPostgres) GetBlueprint(ctx context.Context, projectID string) (*entity.StoredBlueprint, error) {
	id, err := toPgUUID(projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	var (
		projectData []byte
		updatedAt   pgtype.Timestamptz
		stored      = entity.StoredBlueprint{ProjectID: projectID}
	)

	err = r.db.QueryRow(ctx,
		`SELECT project_data, workbench_content, updated_at FROM blueprints WHERE project_id = $1`, id,
	).Scan(&projectData, &stored.Blueprint.WorkbenchContent, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrBlueprintNotFound
		}
		return nil, fmt.Errorf("get blueprint: %w", err)
	}

	if err := json.Unmarshal(projectData, &stored.Blueprint.ProjectData); err != nil {
		return nil, fmt.Errorf("decode project data: %w", err)
	}
	stored.UpdatedAt = updatedAt.Time

	return &stored, nil
}

func (r *IdeaPostgres) UpsertDatabaseSchema(ctx context.Context, projectID string, schema *entity.DatabaseSchema) error {
	id, err := toPgUUID(projectID)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	schemaData, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO database_schemas (project_id, schema_data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (project_id) DO UPDATE SET
			schema_data = EXCLUDED.schema_data,
			updated_at  = now()`,
		id, schemaData,
	)
	if err != nil {
		return fmt.Errorf("upsert database schema: %w", err)
	}

	return nil
}

func (r *IdeaPostgres) UpsertFlowchart(ctx context.Context, projectID, chartCode string) error {
	id, err := toPgUUID(projectID)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO flowcharts (project_id, chart_code, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (project_id) DO UPDATE SET
			chart_code = EXCLUDED.chart_code,
			updated_at = now()`,
		id, chartCode,
	)
	if err != nil {
		return fmt.Errorf("upsert flowchart: %w", err)
	}

	return nil
}

func (r *IdeaPostgres) GetFlowchart(ctx context.Context, projectID string) (*entity.Flowchart, error) {
	id, err := toPgUUID(projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	var (
		updatedAt pgtype.Timestamptz
		chart     = entity.Flowchart{ProjectID: projectID}
	)

	err = r.db.QueryRow(ctx,
		`SELECT chart_code, updated_at FROM flowcharts WHERE project_id = $1`, id,
	).Scan(&chart.ChartCode, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrFlowchartNotFound
		}
		return nil, fmt.Errorf("get flowchart: %w", err)
	}
	chart.UpdatedAt = updatedAt.Time

	return &chart, nil
}
