package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/interview-coach/internal/model"
)

// InterviewService is a mock of the interview handler's service.
type InterviewService struct {
	mock.Mock
}

// NewInterviewService creates an InterviewService whose expectations are asserted on cleanup.
func NewInterviewService(t interface {
	mock.TestingT
	Cleanup(func())
}) *InterviewService {
	m := &InterviewService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *InterviewService) Start(ctx context.Context, params model.StartInterviewParams) (model.Session, model.Turn, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Session), args.Get(1).(model.Turn), args.Error(2)
}

func (m *InterviewService) Advance(ctx context.Context, params model.AdvanceInterviewParams) (model.AdvanceResult, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.AdvanceResult), args.Error(1)
}

func (m *InterviewService) End(ctx context.Context, params model.EndInterviewParams) (model.EndResult, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.EndResult), args.Error(1)
}

func (m *InterviewService) GetSession(ctx context.Context, id uuid.UUID) (model.SessionDetails, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.SessionDetails), args.Error(1)
}

func (m *InterviewService) GetReport(ctx context.Context, id uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, id)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}
