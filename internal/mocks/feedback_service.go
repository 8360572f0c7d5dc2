package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// FeedbackService is a mock of the quick feedback handler's service.
type FeedbackService struct {
	mock.Mock
}

// NewFeedbackService creates a FeedbackService whose expectations are asserted on cleanup.
func NewFeedbackService(t interface {
	mock.TestingT
	Cleanup(func())
}) *FeedbackService {
	m := &FeedbackService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *FeedbackService) QuickFeedback(ctx context.Context, content string) (string, error) {
	args := m.Called(ctx, content)
	return args.String(0), args.Error(1)
}

// StreamQuickFeedback passes every chunk returned as the first value to onChunk,
// then returns the second value.
func (m *FeedbackService) StreamQuickFeedback(ctx context.Context, content string, onChunk func(chunk string) error) error {
	args := m.Called(ctx, content)
	chunks, _ := args.Get(0).([]string)
	for _, c := range chunks {
		if err := onChunk(c); err != nil {
			return err
		}
	}
	return args.Error(1)
}
