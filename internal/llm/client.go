// Package llm provides the feedback-provider abstraction and its
// implementations. Providers are interchangeable: each one turns a prompt into
// the raw text of a single model completion.
package llm

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-reviewer/internal/config"
)

// Client is an abstraction over LLM providers.
type Client interface {
	// Complete sends the prompt as a single user message and returns the raw
	// text of one completion. Exactly one round trip; no retries.
	Complete(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a client for the configured provider.
func NewClient(ctx context.Context, cfg *config.Config) (Client, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.APIKey, DefaultGeminiModel)
	case config.ProviderGroq:
		return NewGroqClient(cfg.APIKey, DefaultGroqModel), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// ProviderError wraps a transport or API failure from a provider.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
