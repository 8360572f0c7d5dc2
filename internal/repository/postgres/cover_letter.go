package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/interview-coach/internal/model"
)

var _ model.CoverLetterStore = (*CoverLetterRepository)(nil)

const coverLetterColumns = `id, user_id, content, status, feedback, created_at, updated_at`

type CoverLetterRepository struct {
	db *Connection
}

func NewCoverLetterRepository(db *Connection) *CoverLetterRepository {
	return &CoverLetterRepository{
		db: db,
	}
}

func scanCoverLetter(row pgx.Row) (model.CoverLetter, error) {
	var cl model.CoverLetter
	err := row.Scan(
		&cl.ID, &cl.UserID, &cl.Content, &cl.Status, &cl.Feedback, &cl.CreatedAt, &cl.UpdatedAt,
	)
	return cl, err
}

func (r *CoverLetterRepository) Create(ctx context.Context, coverLetter model.CoverLetter) (model.CoverLetter, error) {
	query := `INSERT INTO cover_letters (id, user_id, content, status)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + coverLetterColumns

	saved, err := scanCoverLetter(r.db.QueryRow(ctx, query,
		coverLetter.ID, coverLetter.UserID, coverLetter.Content, string(coverLetter.Status),
	))
	if err != nil {
		return model.CoverLetter{}, fmt.Errorf("failed to create cover letter: %w", err)
	}

	return saved, nil
}

func (r *CoverLetterRepository) GetByID(ctx context.Context, id uuid.UUID) (model.CoverLetter, error) {
	query := `SELECT ` + coverLetterColumns + ` FROM cover_letters WHERE id = $1`

	cl, err := scanCoverLetter(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CoverLetter{}, model.ErrNotFound
		}
		return model.CoverLetter{}, fmt.Errorf("failed to get cover letter by id: %w", err)
	}

	return cl, nil
}

func (r *CoverLetterRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.CoverLetter, error) {
	query := `SELECT ` + coverLetterColumns + `
			  FROM cover_letters WHERE user_id = $1
			  ORDER BY created_at DESC`

	return r.list(ctx, query, userID)
}

func (r *CoverLetterRepository) GetPending(ctx context.Context) ([]model.CoverLetter, error) {
	query := `SELECT ` + coverLetterColumns + `
			  FROM cover_letters WHERE status = 'PENDING'
			  ORDER BY created_at ASC`

	return r.list(ctx, query)
}

func (r *CoverLetterRepository) Resolve(ctx context.Context, id uuid.UUID, status model.CoverLetterStatus, feedback string) (model.CoverLetter, error) {
	if !status.Terminal() {
		return model.CoverLetter{}, fmt.Errorf("cannot resolve cover letter to status %s", status)
	}

	query := `UPDATE cover_letters SET status = $2, feedback = $3, updated_at = NOW()
			  WHERE id = $1 AND status = 'PENDING'
			  RETURNING ` + coverLetterColumns

	cl, err := scanCoverLetter(r.db.QueryRow(ctx, query, id, string(status), feedback))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CoverLetter{}, r.missingOrResolved(ctx, id)
		}
		return model.CoverLetter{}, fmt.Errorf("failed to resolve cover letter: %w", err)
	}

	return cl, nil
}

// missingOrResolved tells apart an unknown id from a row that already left PENDING.
func (r *CoverLetterRepository) missingOrResolved(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return model.ErrStateConflict
}

func (r *CoverLetterRepository) list(ctx context.Context, query string, args ...any) ([]model.CoverLetter, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cover letters: %w", err)
	}
	defer rows.Close()

	var coverLetters []model.CoverLetter
	for rows.Next() {
		cl, err := scanCoverLetter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cover letter: %w", err)
		}
		coverLetters = append(coverLetters, cl)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return coverLetters, nil
}
