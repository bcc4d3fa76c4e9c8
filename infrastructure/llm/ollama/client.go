// ABOUTME: Ollama-backed language model client implementing the LanguageModel interface
// ABOUTME: Wraps langchaingo's ollama binding for prompt completion

package ollama

import (
	"context"
	"errors"

	"news-genai-api/core/interfaces"

	"github.com/tmc/langchaingo/llms"
	lcollama "github.com/tmc/langchaingo/llms/ollama"
)

// Client implements the LanguageModel interface against a local Ollama server
type Client struct {
	llm  *lcollama.LLM
	deps interfaces.Dependencies
}

// NewClient creates a new Ollama client for the given server URL and model
func NewClient(deps interfaces.Dependencies, serverURL, model string) (*Client, error) {
	if serverURL == "" {
		return nil, errors.New("ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, errors.New("ollama model cannot be empty")
	}

	llm, err := lcollama.New(
		lcollama.WithServerURL(serverURL),
		lcollama.WithModel(model),
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		llm:  llm,
		deps: deps,
	}, nil
}

// Complete returns the model's completion for a prompt
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, c.llm, prompt)
}
