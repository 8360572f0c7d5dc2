package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/interview-coach/internal/apierror"
	"github.com/dtroode/interview-coach/internal/logger"
	"github.com/dtroode/interview-coach/internal/model"
)

type User struct {
	userStore        model.UserStore
	coverLetterStore model.CoverLetterStore
	interviewStore   model.InterviewStore
	logger           *logger.Logger
}

func NewUser(
	userStore model.UserStore,
	coverLetterStore model.CoverLetterStore,
	interviewStore model.InterviewStore,
	logger *logger.Logger,
) *User {
	return &User{
		userStore:        userStore,
		coverLetterStore: coverLetterStore,
		interviewStore:   interviewStore,
		logger:           logger,
	}
}

// CreateUser validates the profile and registers a user.
func (s *User) CreateUser(ctx context.Context, params model.CreateUserParams) (model.User, error) {
	if err := validateUser(params); err != nil {
		return model.User{}, err
	}

	user := model.User{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(params.Name),
		JobCategory: strings.TrimSpace(params.JobCategory),
		Experience:  strings.TrimSpace(params.Experience),
		Age:         params.Age,
		Gender:      strings.TrimSpace(params.Gender),
	}
	if email := strings.TrimSpace(params.Email); email != "" {
		user.Email = &email
	}

	created, err := s.userStore.Create(ctx, user)
	if errors.Is(err, model.ErrAlreadyExists) {
		s.logger.Info("User service: email already in use")
		return model.User{}, apierror.NewErrEmailIsTaken()
	}
	if err != nil {
		s.logger.Error("User service: failed to create user",
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User service: user created",
		"user_id", created.ID)

	return created, nil
}

// GetUser returns the user with cover letters and interview sessions, newest first.
func (s *User) GetUser(ctx context.Context, id uuid.UUID) (model.UserOverview, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.UserOverview{}, apierror.NewErrUserNotFound(id)
	}
	if err != nil {
		return model.UserOverview{}, fmt.Errorf("failed to get user: %w", err)
	}

	coverLetters, err := s.coverLetterStore.GetByUserID(ctx, id)
	if err != nil {
		return model.UserOverview{}, fmt.Errorf("failed to get cover letters: %w", err)
	}

	sessions, err := s.interviewStore.GetSessionsByUserID(ctx, id)
	if err != nil {
		return model.UserOverview{}, fmt.Errorf("failed to get interview sessions: %w", err)
	}

	return model.UserOverview{
		User:         user,
		CoverLetters: coverLetters,
		Sessions:     sessions,
	}, nil
}

func validateUser(params model.CreateUserParams) error {
	required := []struct {
		name  string
		value string
	}{
		{"name", params.Name},
		{"jobCategory", params.JobCategory},
		{"experience", params.Experience},
		{"gender", params.Gender},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return apierror.NewErrValidation(fmt.Sprintf("%s is required", f.name))
		}
	}

	if params.Age < model.MinAge || params.Age > model.MaxAge {
		return apierror.NewErrValidation(fmt.Sprintf("age must be between %d and %d", model.MinAge, model.MaxAge))
	}

	return nil
}
