package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/interview-coach/internal/model"
)

var _ model.CoverLetterStore = (*CoverLetterStore)(nil)

// CoverLetterStore is a mock of model.CoverLetterStore.
type CoverLetterStore struct {
	mock.Mock
}

func (m *CoverLetterStore) Create(ctx context.Context, coverLetter model.CoverLetter) (model.CoverLetter, error) {
	args := m.Called(ctx, coverLetter)
	return args.Get(0).(model.CoverLetter), args.Error(1)
}

func (m *CoverLetterStore) GetByID(ctx context.Context, id uuid.UUID) (model.CoverLetter, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.CoverLetter), args.Error(1)
}

func (m *CoverLetterStore) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.CoverLetter, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.CoverLetter)
	return list, args.Error(1)
}

func (m *CoverLetterStore) GetPending(ctx context.Context) ([]model.CoverLetter, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.CoverLetter)
	return list, args.Error(1)
}

func (m *CoverLetterStore) Resolve(ctx context.Context, id uuid.UUID, status model.CoverLetterStatus, feedback string) (model.CoverLetter, error) {
	args := m.Called(ctx, id, status, feedback)
	return args.Get(0).(model.CoverLetter), args.Error(1)
}
