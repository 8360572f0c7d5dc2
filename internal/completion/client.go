// Package completion talks to large language model providers.
package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dtroode/interview-coach/internal/config"
	"github.com/dtroode/interview-coach/internal/logger"
	"github.com/dtroode/interview-coach/internal/model"
)

// Provider is a raw text generation backend.
type Provider interface {
	Complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
	CompleteStream(ctx context.Context, prompt string, temperature float64, maxTokens int, onChunk func(string) error) error
}

var _ model.Completer = (*Client)(nil)

// Client bounds every provider call with a timeout and reports failures as model.ErrGenerationFailed.
type Client struct {
	provider Provider
	timeout  time.Duration
	logger   *logger.Logger
}

// NewClient wraps a provider.
func NewClient(provider Provider, timeout time.Duration, logger *logger.Logger) *Client {
	return &Client{
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}
}

// NewProvider builds the provider selected in configuration.
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.Completion.Provider {
	case config.ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("openai api key is not set")
		}
		return NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL, nil), nil
	case config.ProviderVertexAI:
		return NewVertexAI(ctx, cfg.VertexAI.Project, cfg.VertexAI.Location, cfg.VertexAI.Model)
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Completion.Provider)
	}
}

// Generate returns the trimmed completion. Empty output counts as a failure.
func (c *Client) Generate(ctx context.Context, prompt string, opts model.GenerateOptions) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	text, err := c.provider.Complete(ctx, prompt, opts.Temperature, opts.MaxTokens)
	if err != nil {
		c.logger.Error("Completion client: generate failed", "error", err, "elapsed", time.Since(start))
		return "", fmt.Errorf("%w: %w", model.ErrGenerationFailed, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		c.logger.Warn("Completion client: empty response", "elapsed", time.Since(start))
		return "", fmt.Errorf("%w: empty response", model.ErrGenerationFailed)
	}

	c.logger.Debug("Completion client: generated", "chars", len(text), "elapsed", time.Since(start))
	return text, nil
}

// Stream forwards chunks to onChunk as they arrive. A stream that yields nothing is a failure.
func (c *Client) Stream(ctx context.Context, prompt string, opts model.GenerateOptions, onChunk func(chunk string) error) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var received bool
	err := c.provider.CompleteStream(ctx, prompt, opts.Temperature, opts.MaxTokens, func(chunk string) error {
		received = true
		return onChunk(chunk)
	})
	if err != nil {
		c.logger.Error("Completion client: stream failed", "error", err)
		return fmt.Errorf("%w: %w", model.ErrGenerationFailed, err)
	}
	if !received {
		return fmt.Errorf("%w: empty stream", model.ErrGenerationFailed)
	}

	return nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
