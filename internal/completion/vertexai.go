package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/iterator"
)

var _ Provider = (*VertexAI)(nil)

// responseIterator is the part of *genai.GenerateContentResponseIterator we use.
type responseIterator interface {
	Next() (*genai.GenerateContentResponse, error)
}

// vertexAPI lets tests replace the Gemini client.
type vertexAPI interface {
	GenerateContent(ctx context.Context, model string, temperature float32, maxTokens int32, prompt string) (*genai.GenerateContentResponse, error)
	GenerateContentStream(ctx context.Context, model string, temperature float32, maxTokens int32, prompt string) responseIterator
	Close() error
}

type genaiClientWrapper struct{ c *genai.Client }

// generativeModel returns a fresh model handle so concurrent calls never share generation settings.
func (w genaiClientWrapper) generativeModel(model string, temperature float32, maxTokens int32) *genai.GenerativeModel {
	m := w.c.GenerativeModel(model)
	m.SetTemperature(temperature)
	m.SetMaxOutputTokens(maxTokens)
	return m
}

func (w genaiClientWrapper) GenerateContent(ctx context.Context, model string, temperature float32, maxTokens int32, prompt string) (*genai.GenerateContentResponse, error) {
	return w.generativeModel(model, temperature, maxTokens).GenerateContent(ctx, genai.Text(prompt))
}

func (w genaiClientWrapper) GenerateContentStream(ctx context.Context, model string, temperature float32, maxTokens int32, prompt string) responseIterator {
	return w.generativeModel(model, temperature, maxTokens).GenerateContentStream(ctx, genai.Text(prompt))
}

func (w genaiClientWrapper) Close() error {
	return w.c.Close()
}

// VertexAI generates text with Gemini models on Vertex AI.
type VertexAI struct {
	api   vertexAPI
	model string
}

// NewVertexAI creates a Vertex AI provider using application default credentials.
func NewVertexAI(ctx context.Context, project, location, model string) (*VertexAI, error) {
	if project == "" {
		return nil, fmt.Errorf("vertex ai project is not set")
	}

	client, err := genai.NewClient(ctx, project, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
	}

	return newVertexAIWithAPI(genaiClientWrapper{c: client}, model), nil
}

func newVertexAIWithAPI(api vertexAPI, model string) *VertexAI {
	return &VertexAI{api: api, model: model}
}

// Complete returns the text of the first candidate.
func (v *VertexAI) Complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	resp, err := v.api.GenerateContent(ctx, v.model, float32(temperature), int32(maxTokens), prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, ok := candidateText(resp)
	if !ok {
		return "", fmt.Errorf("no response candidates returned")
	}
	return text, nil
}

// CompleteStream forwards the text of every streamed response.
func (v *VertexAI) CompleteStream(ctx context.Context, prompt string, temperature float64, maxTokens int, onChunk func(string) error) error {
	it := v.api.GenerateContentStream(ctx, v.model, float32(temperature), int32(maxTokens), prompt)
	for {
		resp, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to stream content: %w", err)
		}

		text, ok := candidateText(resp)
		if !ok || text == "" {
			continue
		}
		if err := onChunk(text); err != nil {
			return err
		}
	}
}

// Close releases the underlying client.
func (v *VertexAI) Close() error {
	return v.api.Close()
}

func candidateText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", false
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), true
}
