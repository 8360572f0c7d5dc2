package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/interview-coach/internal/model"
)

var _ model.InterviewStore = (*InterviewRepository)(nil)

const (
	sessionColumns = `id, user_id, cover_letter_id, type, feedback, created_at, updated_at`
	turnColumns    = `id, session_id, turn_number, question, answer, feedback, time_limit, created_at, updated_at`
)

type InterviewRepository struct {
	db *Connection
}

func NewInterviewRepository(db *Connection) *InterviewRepository {
	return &InterviewRepository{
		db: db,
	}
}

func scanSession(row pgx.Row) (model.Session, error) {
	var s model.Session
	err := row.Scan(&s.ID, &s.UserID, &s.CoverLetterID, &s.Type, &s.Feedback, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func scanTurn(row pgx.Row) (model.Turn, error) {
	var t model.Turn
	err := row.Scan(
		&t.ID, &t.SessionID, &t.TurnNumber, &t.Question, &t.Answer, &t.Feedback,
		&t.TimeLimit, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

const insertTurnQuery = `INSERT INTO interview_turns (id, session_id, turn_number, question, time_limit)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + turnColumns

func (r *InterviewRepository) CreateSession(ctx context.Context, session model.Session, firstTurn model.Turn) (model.Session, model.Turn, error) {
	query := `INSERT INTO interview_sessions (id, user_id, cover_letter_id, type)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + sessionColumns

	var (
		savedSession model.Session
		savedTurn    model.Turn
	)
	err := r.db.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		savedSession, err = scanSession(tx.QueryRow(ctx, query,
			session.ID, session.UserID, session.CoverLetterID, string(session.Type),
		))
		if err != nil {
			return fmt.Errorf("failed to create interview session: %w", err)
		}

		savedTurn, err = scanTurn(tx.QueryRow(ctx, insertTurnQuery,
			firstTurn.ID, savedSession.ID, firstTurn.TurnNumber, firstTurn.Question, firstTurn.TimeLimit,
		))
		if err != nil {
			return fmt.Errorf("failed to create first turn: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Session{}, model.Turn{}, err
	}

	return savedSession, savedTurn, nil
}

func (r *InterviewRepository) GetSession(ctx context.Context, id uuid.UUID) (model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM interview_sessions WHERE id = $1`

	s, err := scanSession(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to get interview session by id: %w", err)
	}

	return s, nil
}

func (r *InterviewRepository) GetSessionsByUserID(ctx context.Context, userID uuid.UUID) ([]model.Session, error) {
	query := `SELECT ` + sessionColumns + `
			  FROM interview_sessions WHERE user_id = $1
			  ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query interview sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interview session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *InterviewRepository) SetSessionFeedback(ctx context.Context, id uuid.UUID, feedback string) (model.Session, error) {
	query := `UPDATE interview_sessions SET feedback = $2, updated_at = NOW()
			  WHERE id = $1 AND feedback IS NULL
			  RETURNING ` + sessionColumns

	s, err := scanSession(r.db.QueryRow(ctx, query, id, feedback))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetSession(ctx, id); getErr != nil {
				return model.Session{}, getErr
			}
			return model.Session{}, model.ErrStateConflict
		}
		return model.Session{}, fmt.Errorf("failed to set session feedback: %w", err)
	}

	return s, nil
}

func (r *InterviewRepository) GetTurn(ctx context.Context, id uuid.UUID) (model.Turn, error) {
	query := `SELECT ` + turnColumns + ` FROM interview_turns WHERE id = $1`

	t, err := scanTurn(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Turn{}, model.ErrNotFound
		}
		return model.Turn{}, fmt.Errorf("failed to get interview turn by id: %w", err)
	}

	return t, nil
}

func (r *InterviewRepository) GetTurns(ctx context.Context, sessionID uuid.UUID) ([]model.Turn, error) {
	query := `SELECT ` + turnColumns + `
			  FROM interview_turns WHERE session_id = $1
			  ORDER BY turn_number ASC`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query interview turns: %w", err)
	}
	defer rows.Close()

	var turns []model.Turn
	for rows.Next() {
		t, err := scanTurn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interview turn: %w", err)
		}
		turns = append(turns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return turns, nil
}

func (r *InterviewRepository) CountTurns(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM interview_turns WHERE session_id = $1`, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count interview turns: %w", err)
	}
	return count, nil
}

func (r *InterviewRepository) CreateTurn(ctx context.Context, turn model.Turn) (model.Turn, error) {
	t, err := scanTurn(r.db.QueryRow(ctx, insertTurnQuery,
		turn.ID, turn.SessionID, turn.TurnNumber, turn.Question, turn.TimeLimit,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Turn{}, model.ErrAlreadyExists
		}
		return model.Turn{}, fmt.Errorf("failed to create interview turn: %w", err)
	}

	return t, nil
}

func (r *InterviewRepository) AnswerTurn(ctx context.Context, id uuid.UUID, answer, feedback string) (model.Turn, error) {
	query := `UPDATE interview_turns SET answer = $2, feedback = $3, updated_at = NOW()
			  WHERE id = $1 AND answer IS NULL
			  RETURNING ` + turnColumns

	t, err := scanTurn(r.db.QueryRow(ctx, query, id, answer, feedback))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetTurn(ctx, id); getErr != nil {
				return model.Turn{}, getErr
			}
			return model.Turn{}, model.ErrStateConflict
		}
		return model.Turn{}, fmt.Errorf("failed to answer interview turn: %w", err)
	}

	return t, nil
}
