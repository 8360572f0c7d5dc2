package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dtroode/interview-coach/internal/apierror"
	"github.com/dtroode/interview-coach/internal/logger"
	"github.com/dtroode/interview-coach/internal/model"
	"github.com/dtroode/interview-coach/internal/prompt"
)

// Feedback reviews arbitrary essays without storing anything.
type Feedback struct {
	completer model.Completer
	logger    *logger.Logger
}

func NewFeedback(completer model.Completer, logger *logger.Logger) *Feedback {
	return &Feedback{
		completer: completer,
		logger:    logger,
	}
}

// QuickFeedback returns a general review of content.
func (s *Feedback) QuickFeedback(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", apierror.NewErrValidation("coverLetter is required")
	}

	feedback, err := s.completer.Generate(ctx, prompt.QuickFeedback(content), quickFeedbackOptions)
	if err != nil {
		s.logger.Error("Feedback service: failed to generate quick feedback",
			"error", err.Error())
		return "", fmt.Errorf("failed to generate quick feedback: %w", err)
	}

	return feedback, nil
}

// StreamQuickFeedback delivers the review to onChunk as it is generated.
func (s *Feedback) StreamQuickFeedback(ctx context.Context, content string, onChunk func(chunk string) error) error {
	if strings.TrimSpace(content) == "" {
		return apierror.NewErrValidation("coverLetter is required")
	}

	if err := s.completer.Stream(ctx, prompt.QuickFeedback(content), quickFeedbackOptions, onChunk); err != nil {
		s.logger.Error("Feedback service: failed to stream quick feedback",
			"error", err.Error())
		return fmt.Errorf("failed to stream quick feedback: %w", err)
	}

	return nil
}
