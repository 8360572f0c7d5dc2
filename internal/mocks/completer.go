package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/interview-coach/internal/model"
)

var _ model.Completer = (*Completer)(nil)

// Completer is a mock of model.Completer.
// Stream replays the []string returned as the first value through onChunk.
type Completer struct {
	mock.Mock
}

func (m *Completer) Generate(ctx context.Context, prompt string, opts model.GenerateOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

func (m *Completer) Stream(ctx context.Context, prompt string, opts model.GenerateOptions, onChunk func(chunk string) error) error {
	args := m.Called(ctx, prompt, opts)
	if chunks, ok := args.Get(0).([]string); ok {
		for _, c := range chunks {
			if err := onChunk(c); err != nil {
				return err
			}
		}
	}
	return args.Error(1)
}
