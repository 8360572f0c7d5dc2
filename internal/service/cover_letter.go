package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/dtroode/interview-coach/internal/apierror"
	"github.com/dtroode/interview-coach/internal/logger"
	"github.com/dtroode/interview-coach/internal/model"
	"github.com/dtroode/interview-coach/internal/prompt"
	"github.com/dtroode/interview-coach/internal/worker"
)

// resolveTimeout bounds the final status write, which runs even after the task context expired.
const resolveTimeout = 10 * time.Second

// TaskQueue accepts background tasks.
type TaskQueue interface {
	Enqueue(task worker.Task) error
}

type CoverLetter struct {
	coverLetterStore model.CoverLetterStore
	userStore        model.UserStore
	completer        model.Completer
	queue            TaskQueue
	logger           *logger.Logger
}

func NewCoverLetter(
	coverLetterStore model.CoverLetterStore,
	userStore model.UserStore,
	completer model.Completer,
	queue TaskQueue,
	logger *logger.Logger,
) *CoverLetter {
	return &CoverLetter{
		coverLetterStore: coverLetterStore,
		userStore:        userStore,
		completer:        completer,
		queue:            queue,
		logger:           logger,
	}
}

// EssayLength counts characters after NFC normalisation.
func EssayLength(content string) int {
	return utf8.RuneCountInString(norm.NFC.String(content))
}

// Submit stores a PENDING cover letter and schedules feedback generation.
func (s *CoverLetter) Submit(ctx context.Context, userID uuid.UUID, content string) (model.CoverLetter, error) {
	if userID == uuid.Nil {
		return model.CoverLetter{}, apierror.NewErrValidation("userId is required")
	}
	if EssayLength(content) < model.MinCoverLetterLength {
		return model.CoverLetter{}, apierror.NewErrValidation(
			fmt.Sprintf("cover letter must be at least %d characters", model.MinCoverLetterLength))
	}

	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.CoverLetter{}, apierror.NewErrUserNotFound(userID)
		}
		return model.CoverLetter{}, fmt.Errorf("failed to get user: %w", err)
	}

	coverLetter, err := s.coverLetterStore.Create(ctx, model.CoverLetter{
		ID:      uuid.New(),
		UserID:  userID,
		Content: content,
		Status:  model.CoverLetterStatusPending,
	})
	if err != nil {
		s.logger.Error("Cover letter service: failed to create cover letter",
			"user_id", userID,
			"error", err.Error())
		return model.CoverLetter{}, fmt.Errorf("failed to create cover letter: %w", err)
	}

	if err := s.dispatch(coverLetter.ID); err != nil {
		s.logger.Warn("Cover letter service: failed to dispatch feedback task",
			"cover_letter_id", coverLetter.ID,
			"error", err.Error())

		resolved, resolveErr := s.coverLetterStore.Resolve(ctx, coverLetter.ID, model.CoverLetterStatusError, model.CoverLetterFallbackFeedback)
		if resolveErr != nil {
			return model.CoverLetter{}, fmt.Errorf("failed to resolve undispatched cover letter: %w", resolveErr)
		}
		return resolved, nil
	}

	s.logger.Info("Cover letter service: cover letter submitted",
		"cover_letter_id", coverLetter.ID,
		"user_id", userID)

	return coverLetter, nil
}

// GetCoverLetter returns one cover letter.
func (s *CoverLetter) GetCoverLetter(ctx context.Context, id uuid.UUID) (model.CoverLetter, error) {
	coverLetter, err := s.coverLetterStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.CoverLetter{}, apierror.NewErrCoverLetterNotFound(id)
	}
	if err != nil {
		return model.CoverLetter{}, fmt.Errorf("failed to get cover letter: %w", err)
	}
	return coverLetter, nil
}

// ListCoverLetters returns the user's cover letters, newest first.
func (s *CoverLetter) ListCoverLetters(ctx context.Context, userID uuid.UUID) ([]model.CoverLetter, error) {
	list, err := s.coverLetterStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cover letters: %w", err)
	}
	return list, nil
}

// RecoverPending re-dispatches every cover letter still waiting for feedback.
func (s *CoverLetter) RecoverPending(ctx context.Context) (int, error) {
	pending, err := s.coverLetterStore.GetPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get pending cover letters: %w", err)
	}

	dispatched := 0
	for _, cl := range pending {
		if err := s.dispatch(cl.ID); err != nil {
			s.logger.Warn("Cover letter service: failed to re-dispatch pending cover letter",
				"cover_letter_id", cl.ID,
				"error", err.Error())
			continue
		}
		dispatched++
	}

	s.logger.Info("Cover letter service: pending cover letters recovered",
		"pending", len(pending),
		"dispatched", dispatched)

	return dispatched, nil
}

// ProcessFeedback generates feedback for a PENDING cover letter and resolves it.
// Any failure, including a panic, moves the cover letter to ERROR with the fallback message.
func (s *CoverLetter) ProcessFeedback(ctx context.Context, id uuid.UUID) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s.logger.Error("Cover letter service: feedback task panicked",
			"cover_letter_id", id,
			"panic", fmt.Sprint(r))
		if resolveErr := s.resolve(ctx, id, model.CoverLetterStatusError, model.CoverLetterFallbackFeedback); resolveErr != nil {
			err = fmt.Errorf("feedback task panicked: %v: %w", r, resolveErr)
			return
		}
		err = fmt.Errorf("feedback task panicked: %v", r)
	}()

	coverLetter, err := s.coverLetterStore.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get cover letter: %w", err)
	}
	if coverLetter.Status.Terminal() {
		s.logger.Debug("Cover letter service: cover letter already resolved",
			"cover_letter_id", id,
			"status", coverLetter.Status)
		return nil
	}

	feedback, genErr := s.generateFeedback(ctx, coverLetter)
	if genErr != nil {
		s.logger.Error("Cover letter service: feedback generation failed",
			"cover_letter_id", id,
			"error", genErr.Error())
		if err := s.resolve(ctx, id, model.CoverLetterStatusError, model.CoverLetterFallbackFeedback); err != nil {
			return err
		}
		return genErr
	}

	if err := s.resolve(ctx, id, model.CoverLetterStatusCompleted, feedback); err != nil {
		return err
	}

	s.logger.Info("Cover letter service: feedback completed",
		"cover_letter_id", id)

	return nil
}

func (s *CoverLetter) generateFeedback(ctx context.Context, coverLetter model.CoverLetter) (string, error) {
	user, err := s.userStore.GetByID(ctx, coverLetter.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	feedback, err := s.completer.Generate(ctx,
		prompt.CoverLetterFeedback(prompt.ProfileOf(user), coverLetter.Content),
		coverLetterFeedbackOptions)
	if err != nil {
		return "", fmt.Errorf("failed to generate cover letter feedback: %w", err)
	}

	return feedback, nil
}

// resolve writes the final status with a context that survives the task deadline.
func (s *CoverLetter) resolve(ctx context.Context, id uuid.UUID, status model.CoverLetterStatus, feedback string) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resolveTimeout)
	defer cancel()

	_, err := s.coverLetterStore.Resolve(ctx, id, status, feedback)
	if errors.Is(err, model.ErrStateConflict) {
		s.logger.Warn("Cover letter service: cover letter resolved concurrently",
			"cover_letter_id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to resolve cover letter: %w", err)
	}
	return nil
}

func (s *CoverLetter) dispatch(id uuid.UUID) error {
	return s.queue.Enqueue(worker.Task{
		Name: "cover-letter-feedback:" + id.String(),
		Run: func(ctx context.Context) error {
			return s.ProcessFeedback(ctx, id)
		},
	})
}
