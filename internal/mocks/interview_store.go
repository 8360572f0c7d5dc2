package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/interview-coach/internal/model"
)

var _ model.InterviewStore = (*InterviewStore)(nil)

// InterviewStore is a mock of model.InterviewStore.
type InterviewStore struct {
	mock.Mock
}

func (m *InterviewStore) CreateSession(ctx context.Context, session model.Session, firstTurn model.Turn) (model.Session, model.Turn, error) {
	args := m.Called(ctx, session, firstTurn)
	return args.Get(0).(model.Session), args.Get(1).(model.Turn), args.Error(2)
}

func (m *InterviewStore) GetSession(ctx context.Context, id uuid.UUID) (model.Session, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *InterviewStore) GetSessionsByUserID(ctx context.Context, userID uuid.UUID) ([]model.Session, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.Session)
	return list, args.Error(1)
}

func (m *InterviewStore) SetSessionFeedback(ctx context.Context, id uuid.UUID, feedback string) (model.Session, error) {
	args := m.Called(ctx, id, feedback)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *InterviewStore) GetTurn(ctx context.Context, id uuid.UUID) (model.Turn, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Turn), args.Error(1)
}

func (m *InterviewStore) GetTurns(ctx context.Context, sessionID uuid.UUID) ([]model.Turn, error) {
	args := m.Called(ctx, sessionID)
	list, _ := args.Get(0).([]model.Turn)
	return list, args.Error(1)
}

func (m *InterviewStore) CountTurns(ctx context.Context, sessionID uuid.UUID) (int, error) {
	args := m.Called(ctx, sessionID)
	return args.Int(0), args.Error(1)
}

func (m *InterviewStore) CreateTurn(ctx context.Context, turn model.Turn) (model.Turn, error) {
	args := m.Called(ctx, turn)
	return args.Get(0).(model.Turn), args.Error(1)
}

func (m *InterviewStore) AnswerTurn(ctx context.Context, id uuid.UUID, answer, feedback string) (model.Turn, error) {
	args := m.Called(ctx, id, answer, feedback)
	return args.Get(0).(model.Turn), args.Error(1)
}
