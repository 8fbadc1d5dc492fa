package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/futig/architech-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// GuideRepository persists implementation guides and task progress
type GuideRepository interface {
	ReplaceGuide(ctx context.Context, projectID string, guide *entity.GeneratedGuide) (*entity.Guide, error)
	LoadGuide(ctx context.Context, projectID string) (*entity.Guide, error)
	GetTaskProjectID(ctx context.Context, taskID string) (string, error)
	UpsertTaskProgress(ctx context.Context, progress *entity.TaskProgress) error
}

var _ GuideRepository = &GuidePostgres{}

// GuidePostgres implements GuideRepository using PostgreSQL
type GuidePostgres struct {
	db *pgxpool.Pool
}

func NewGuidePostgres(db *pgxpool.Pool) *GuidePostgres {
	return &GuidePostgres{db: db}
}

const defaultCategoryIcon = "folder"

// ReplaceGuide drops the project's current guide, including progress, and
// stores the generated one in a single transaction.
func (r *GuidePostgres) ReplaceGuide(ctx context.Context, projectID string, generated *entity.GeneratedGuide) (*entity.Guide, error) {
	projectUUID, err := toPgUUID(projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM task_categories WHERE project_id = $1`, projectUUID); err != nil {
		return nil, fmt.Errorf("delete existing guide: %w", err)
	}

	guide := &entity.Guide{Categories: make([]entity.TaskCategory, 0, len(generated.Categories))}
	for catIdx, category := range generated.Categories {
		icon := category.Icon
		if icon == "" {
			icon = defaultCategoryIcon
		}

		categoryID := newPgUUID()
		_, err := tx.Exec(ctx,
			`INSERT INTO task_categories (id, project_id, name, icon, display_order) VALUES ($1, $2, $3, $4, $5)`,
			categoryID, projectUUID, category.Name, icon, catIdx,
		)
		if err != nil {
			return nil, fmt.Errorf("insert category %q: %w", category.Name, err)
		}

		saved := entity.TaskCategory{
			ID:           fromPgUUID(categoryID),
			Name:         category.Name,
			Icon:         icon,
			DisplayOrder: catIdx,
			Tasks:        make([]entity.GuideTask, 0, len(category.Tasks)),
		}

		for taskIdx, task := range category.Tasks {
			taskID := newPgUUID()
			_, err := tx.Exec(ctx, `
				INSERT INTO tasks (id, category_id, project_id, title, description, estimated_time, display_order)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				taskID, categoryID, projectUUID, task.Title, task.Description, toPgText(task.EstimatedTime), taskIdx,
			)
			if err != nil {
				return nil, fmt.Errorf("insert task %q: %w", task.Title, err)
			}

			savedTask := entity.GuideTask{
				ID:            fromPgUUID(taskID),
				Title:         task.Title,
				Description:   task.Description,
				EstimatedTime: task.EstimatedTime,
				DisplayOrder:  taskIdx,
				ContentBlocks: make([]entity.ContentBlock, 0, len(task.ContentBlocks)),
			}

			for blockIdx, block := range task.ContentBlocks {
				blockID := newPgUUID()
				_, err := tx.Exec(ctx, `
					INSERT INTO task_content_blocks (id, task_id, block_type, content, language, filename, display_order)
					VALUES ($1, $2, $3, $4, $5, $6, $7)`,
					blockID, taskID, string(block.Type), block.Content, toPgText(block.Language), toPgText(block.Filename), blockIdx,
				)
				if err != nil {
					return nil, fmt.Errorf("insert content block: %w", err)
				}

				savedTask.ContentBlocks = append(savedTask.ContentBlocks, entity.ContentBlock{
					ID:           fromPgUUID(blockID),
					Type:         block.Type,
					Content:      block.Content,
					Language:     block.Language,
					Filename:     block.Filename,
					DisplayOrder: blockIdx,
				})
			}

			saved.Tasks = append(saved.Tasks, savedTask)
			guide.TotalTasks++
		}

		guide.Categories = append(guide.Categories, saved)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit guide: %w", err)
	}

	return guide, nil
}

type categoryRow struct {
	ID           string
	Name         string
	Icon         string
	DisplayOrder int
}

type taskRow struct {
	ID            string
	CategoryID    string
	Title         string
	Description   string
	EstimatedTime *string
	DisplayOrder  int
}

type blockRow struct {
	TaskID string
	Block  entity.ContentBlock
}

// LoadGuide reads categories, tasks, blocks and progress concurrently and
// assembles the nested guide.
func (r *GuidePostgres) LoadGuide(ctx context.Context, projectID string) (*entity.Guide, error) {
	projectUUID, err := toPgUUID(projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	var (
		categories  []categoryRow
		tasks       []taskRow
		blocks      []blockRow
		progress    map[string]bool
		lastUpdated *time.Time
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = r.loadCategories(gctx, projectUUID)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = r.loadTasks(gctx, projectUUID)
		return err
	})
	g.Go(func() error {
		var err error
		blocks, err = r.loadBlocks(gctx, projectUUID)
		return err
	})
	g.Go(func() error {
		var err error
		progress, err = r.loadProgress(gctx, projectUUID)
		return err
	})
	g.Go(func() error {
		var err error
		lastUpdated, err = r.loadLastUpdated(gctx, projectUUID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load guide: %w", err)
	}

	return assembleGuide(categories, tasks, blocks, progress, lastUpdated), nil
}

func (r *GuidePostgres) loadCategories(ctx context.Context, projectID pgtype.UUID) ([]categoryRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, icon, display_order
		FROM task_categories
		WHERE project_id = $1
		ORDER BY display_order`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (categoryRow, error) {
		var (
			id pgtype.UUID
			c  categoryRow
		)
		err := row.Scan(&id, &c.Name, &c.Icon, &c.DisplayOrder)
		c.ID = fromPgUUID(id)
		return c, err
	})
}

func (r *GuidePostgres) loadTasks(ctx context.Context, projectID pgtype.UUID) ([]taskRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, category_id, title, description, estimated_time, display_order
		FROM tasks
		WHERE project_id = $1
		ORDER BY display_order`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (taskRow, error) {
		var (
			id, categoryID pgtype.UUID
			estimatedTime  pgtype.Text
			t              taskRow
		)
		err := row.Scan(&id, &categoryID, &t.Title, &t.Description, &estimatedTime, &t.DisplayOrder)
		t.ID = fromPgUUID(id)
		t.CategoryID = fromPgUUID(categoryID)
		t.EstimatedTime = fromPgText(estimatedTime)
		return t, err
	})
}

func (r *GuidePostgres) loadBlocks(ctx context.Context, projectID pgtype.UUID) ([]blockRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.task_id, b.block_type, b.content, b.language, b.filename, b.display_order
		FROM task_content_blocks b
		JOIN tasks t ON t.id = b.task_id
		WHERE t.project_id = $1
		ORDER BY b.display_order`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query content blocks: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (blockRow, error) {
		var (
			id, taskID         pgtype.UUID
			blockType          string
			language, filename pgtype.Text
			b                  blockRow
		)
		err := row.Scan(&id, &taskID, &blockType, &b.Block.Content, &language, &filename, &b.Block.DisplayOrder)
		b.TaskID = fromPgUUID(taskID)
		b.Block.ID = fromPgUUID(id)
		b.Block.Type = entity.ContentBlockType(blockType)
		b.Block.Language = fromPgText(language)
		b.Block.Filename = fromPgText(filename)
		return b, err
	})
}

func (r *GuidePostgres) loadProgress(ctx context.Context, projectID pgtype.UUID) (map[string]bool, error) {
	rows, err := r.db.Query(ctx, `SELECT task_id, is_completed FROM task_progress WHERE project_id = $1`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	progress := make(map[string]bool)
	for rows.Next() {
		var (
			taskID    pgtype.UUID
			completed bool
		)
		if err := rows.Scan(&taskID, &completed); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		progress[fromPgUUID(taskID)] = completed
	}

	return progress, rows.Err()
}

func (r *GuidePostgres) loadLastUpdated(ctx context.Context, projectID pgtype.UUID) (*time.Time, error) {
	var updatedAt pgtype.Timestamptz
	err := r.db.QueryRow(ctx,
		`SELECT max(updated_at) FROM task_progress WHERE project_id = $1`, projectID,
	).Scan(&updatedAt)
	if err != nil {
		return nil, fmt.Errorf("query last update: %w", err)
	}
	return fromPgTimestamptz(updatedAt), nil
}

// assembleGuide nests blocks into tasks and tasks into categories, keeping
// the order of the input slices.
func assembleGuide(categories []categoryRow, tasks []taskRow, blocks []blockRow, progress map[string]bool, lastUpdated *time.Time) *entity.Guide {
	blocksByTask := make(map[string][]entity.ContentBlock)
	for _, b := range blocks {
		blocksByTask[b.TaskID] = append(blocksByTask[b.TaskID], b.Block)
	}

	guide := &entity.Guide{
		Categories: make([]entity.TaskCategory, 0, len(categories)),
		TotalTasks: len(tasks),
	}
	if len(categories) == 0 {
		guide.TotalTasks = 0
		return guide
	}

	tasksByCategory := make(map[string][]entity.GuideTask)
	for _, t := range tasks {
		completed := progress[t.ID]
		if completed {
			guide.CompletedTasks++
		}

		contentBlocks := blocksByTask[t.ID]
		if contentBlocks == nil {
			contentBlocks = []entity.ContentBlock{}
		}

		tasksByCategory[t.CategoryID] = append(tasksByCategory[t.CategoryID], entity.GuideTask{
			ID:            t.ID,
			Title:         t.Title,
			Description:   t.Description,
			EstimatedTime: t.EstimatedTime,
			DisplayOrder:  t.DisplayOrder,
			ContentBlocks: contentBlocks,
			IsCompleted:   completed,
		})
	}

	for _, c := range categories {
		categoryTasks := tasksByCategory[c.ID]
		if categoryTasks == nil {
			categoryTasks = []entity.GuideTask{}
		}
		guide.Categories = append(guide.Categories, entity.TaskCategory{
			ID:           c.ID,
			Name:         c.Name,
			Icon:         c.Icon,
			DisplayOrder: c.DisplayOrder,
			Tasks:        categoryTasks,
		})
	}
	guide.LastUpdated = lastUpdated

	return guide
}

func (r *GuidePostgres) GetTaskProjectID(ctx context.Context, taskID string) (string, error) {
	id, err := toPgUUID(taskID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	var projectID pgtype.UUID
	if err := r.db.QueryRow(ctx, `SELECT project_id FROM tasks WHERE id = $1`, id).Scan(&projectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", entity.ErrTaskNotFound
		}
		return "", fmt.Errorf("get task: %w", err)
	}

	return fromPgUUID(projectID), nil
}

func (r *GuidePostgres) UpsertTaskProgress(ctx context.Context, progress *entity.TaskProgress) error {
	taskID, err := toPgUUID(progress.TaskID)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}
	projectID, err := toPgUUID(progress.ProjectID)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	var completedAt pgtype.Timestamptz
	if progress.CompletedAt != nil {
		completedAt = pgtype.Timestamptz{Time: *progress.CompletedAt, Valid: true}
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO task_progress (task_id, project_id, is_completed, completed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (task_id) DO UPDATE SET
			project_id   = EXCLUDED.project_id,
			is_completed = EXCLUDED.is_completed,
			completed_at = EXCLUDED.completed_at,
			updated_at   = EXCLUDED.updated_at`,
		taskID, projectID, progress.IsCompleted, completedAt, progress.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert task progress: %w", err)
	}

	return nil
}
