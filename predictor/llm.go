package predictor

import (
	"context"
	"fmt"
)

// LLMClient abstracts the text-generation backend so it can be swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// LLMSettings is the base configuration handed to concrete clients.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

type unavailableLLM struct {
	err error
}

// Unavailable returns a client whose every call fails with the init error.
// The page still renders when the credential is bad; predictions fail later.
func Unavailable(err error) LLMClient {
	return unavailableLLM{err: err}
}

func (u unavailableLLM) Complete(context.Context, string) (string, error) {
	return "", fmt.Errorf("llm client not configured: %w", u.err)
}
