package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a registered applicant and the profile used in prompts.
type User struct {
	ID          uuid.UUID
	Name        string
	Email       *string
	JobCategory string
	Experience  string
	Age         int
	Gender      string
	CreatedAt   time.Time
}

// CreateUserParams contains parameters to register a user.
type CreateUserParams struct {
	Name        string
	Email       string
	JobCategory string
	Experience  string
	Age         int
	Gender      string
}

// UserOverview is a user together with everything they own.
type UserOverview struct {
	User         User
	CoverLetters []CoverLetter
	Sessions     []Session
}

const (
	// MinAge is the youngest accepted applicant age.
	MinAge = 18
	// MaxAge is the oldest accepted applicant age.
	MaxAge = 100
)
