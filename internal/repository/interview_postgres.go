package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/architech-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InterviewSessionRepository persists tracked interview sessions
type InterviewSessionRepository interface {
	GetSession(ctx context.Context, id string) (*entity.InterviewSession, error)
	SaveSession(ctx context.Context, session *entity.InterviewSession) (*entity.InterviewSession, error)
}

var _ InterviewSessionRepository = &InterviewPostgres{}

// InterviewPostgres implements InterviewSessionRepository using PostgreSQL
type InterviewPostgres struct {
	db *pgxpool.Pool
}

func NewInterviewPostgres(db *pgxpool.Pool) *InterviewPostgres {
	return &InterviewPostgres{db: db}
}

const sessionColumns = `id, interest, status, reason, confidence, turn_count, concluded_at, created_at, updated_at`

func (r *InterviewPostgres) GetSession(ctx context.Context, id string) (*entity.InterviewSession, error) {
	sessionID, err := toPgUUID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	row := r.db.QueryRow(ctx, `SELECT `+sessionColumns+` FROM interview_sessions WHERE id = $1`, sessionID)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get interview session: %w", err)
	}

	return session, nil
}

// SaveSession inserts or updates a session. A session that is already
// concluded is never updated; saving it again returns ErrSessionConcluded.
func (r *InterviewPostgres) SaveSession(ctx context.Context, session *entity.InterviewSession) (*entity.InterviewSession, error) {
	sessionID, err := toPgUUID(session.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	var reason pgtype.Text
	if session.Reason != nil {
		reason = pgtype.Text{String: string(*session.Reason), Valid: true}
	}

	var confidence pgtype.Float8
	if session.Confidence != nil {
		confidence = pgtype.Float8{Float64: *session.Confidence, Valid: true}
	}

	var concludedAt pgtype.Timestamptz
	if session.ConcludedAt != nil {
		concludedAt = pgtype.Timestamptz{Time: *session.ConcludedAt, Valid: true}
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO interview_sessions (id, interest, status, reason, confidence, turn_count, concluded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			status       = EXCLUDED.status,
			reason       = EXCLUDED.reason,
			confidence   = EXCLUDED.confidence,
			turn_count   = EXCLUDED.turn_count,
			concluded_at = EXCLUDED.concluded_at,
			updated_at   = now()
		WHERE interview_sessions.status <> $8
		RETURNING `+sessionColumns,
		sessionID, session.Interest, string(session.Phase), reason, confidence, session.TurnCount, concludedAt,
		string(entity.PhaseConcluded),
	)

	saved, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionConcluded
		}
		return nil, fmt.Errorf("save interview session: %w", err)
	}

	return saved, nil
}

func scanSession(row pgx.Row) (*entity.InterviewSession, error) {
	var (
		id          pgtype.UUID
		status      string
		reason      pgtype.Text
		confidence  pgtype.Float8
		concludedAt pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
		session     entity.InterviewSession
	)

	err := row.Scan(&id, &session.Interest, &status, &reason, &confidence, &session.TurnCount, &concludedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	session.ID = fromPgUUID(id)
	session.Phase = entity.InterviewPhase(status)
	if reason.Valid {
		r := entity.DecisionReason(reason.String)
		session.Reason = &r
	}
	if confidence.Valid {
		c := confidence.Float64
		session.Confidence = &c
	}
	session.ConcludedAt = fromPgTimestamptz(concludedAt)
	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return &session, nil
}
