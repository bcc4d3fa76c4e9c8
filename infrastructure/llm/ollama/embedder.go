// ABOUTME: Ollama-backed text embedder implementing the Embedder interface
// ABOUTME: Produces fixed-dimension vectors through langchaingo's embedding layer

package ollama

import (
	"context"
	"errors"

	"news-genai-api/core/interfaces"

	"github.com/tmc/langchaingo/embeddings"
	lcollama "github.com/tmc/langchaingo/llms/ollama"
)

// Embedder implements the Embedder interface against a local Ollama server
type Embedder struct {
	embedder embeddings.Embedder
	deps     interfaces.Dependencies
}

// NewEmbedder creates a new Ollama embedder for the given server URL and model
func NewEmbedder(deps interfaces.Dependencies, serverURL, model string) (*Embedder, error) {
	if serverURL == "" {
		return nil, errors.New("ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, errors.New("ollama embedding model cannot be empty")
	}

	llm, err := lcollama.New(
		lcollama.WithServerURL(serverURL),
		lcollama.WithModel(model),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder: embedder,
		deps:     deps,
	}, nil
}

// EmbedText returns the embedding vector for a single text
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, errors.New("cannot embed empty text")
	}
	return e.embedder.EmbedQuery(ctx, text)
}
