package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/interview-coach/internal/model"
)

// CoverLetterService is a mock of the cover letter handler's service.
type CoverLetterService struct {
	mock.Mock
}

// NewCoverLetterService creates a CoverLetterService whose expectations are asserted on cleanup.
func NewCoverLetterService(t interface {
	mock.TestingT
	Cleanup(func())
}) *CoverLetterService {
	m := &CoverLetterService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CoverLetterService) Submit(ctx context.Context, userID uuid.UUID, content string) (model.CoverLetter, error) {
	args := m.Called(ctx, userID, content)
	return args.Get(0).(model.CoverLetter), args.Error(1)
}

func (m *CoverLetterService) GetCoverLetter(ctx context.Context, id uuid.UUID) (model.CoverLetter, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.CoverLetter), args.Error(1)
}

func (m *CoverLetterService) ListCoverLetters(ctx context.Context, userID uuid.UUID) ([]model.CoverLetter, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.CoverLetter)
	return list, args.Error(1)
}
