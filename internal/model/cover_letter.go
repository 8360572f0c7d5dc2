package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MinCoverLetterLength is the minimum essay length in characters.
const MinCoverLetterLength = 100

// CoverLetterFallbackFeedback is stored when feedback generation fails.
const CoverLetterFallbackFeedback = "Feedback could not be generated. Please submit your cover letter again."

// CoverLetterStore defines persistence operations for cover letters.
type CoverLetterStore interface {
	Create(ctx context.Context, coverLetter CoverLetter) (CoverLetter, error)
	GetByID(ctx context.Context, id uuid.UUID) (CoverLetter, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]CoverLetter, error)
	GetPending(ctx context.Context) ([]CoverLetter, error)
	// Resolve moves a PENDING cover letter to status with feedback.
	// It returns ErrStateConflict when the row is no longer PENDING.
	Resolve(ctx context.Context, id uuid.UUID, status CoverLetterStatus, feedback string) (CoverLetter, error)
}

// CoverLetter represents one submitted essay.
type CoverLetter struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Content   string
	Status    CoverLetterStatus
	Feedback  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CoverLetterStatus enumerates feedback generation states.
type CoverLetterStatus string

const (
	// CoverLetterStatusPending means feedback is being generated.
	CoverLetterStatusPending CoverLetterStatus = "PENDING"
	// CoverLetterStatusCompleted means feedback was generated.
	CoverLetterStatusCompleted CoverLetterStatus = "COMPLETED"
	// CoverLetterStatusError means feedback generation failed.
	CoverLetterStatusError CoverLetterStatus = "ERROR"
)

// Terminal reports whether no further transition is possible.
func (s CoverLetterStatus) Terminal() bool {
	return s == CoverLetterStatusCompleted || s == CoverLetterStatusError
}
