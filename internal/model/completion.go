package model

import "context"

// GenerateOptions controls a single completion call.
type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
}

// Completer generates text from a prompt.
type Completer interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	// Stream delivers the generated text in chunks as it arrives.
	Stream(ctx context.Context, prompt string, opts GenerateOptions, onChunk func(chunk string) error) error
}
