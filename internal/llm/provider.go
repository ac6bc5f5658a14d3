// Package llm provides chat-completion provider adapters and fallback
// chaining for the help assistant.
package llm

import (
	"context"
	"errors"
	"time"
)

// ErrAllProvidersFailed indicates that every provider in a chain failed.
var ErrAllProvidersFailed = errors.New("all completion providers failed")

// Message is one chat turn sent to a completion provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationConfig holds per-request generation parameters.
type GenerationConfig struct {
	Temperature float64
	MaxTokens   int
}

// Provider is a chat-completion capability. Implementations must be safe
// for concurrent use.
type Provider interface {
	Name() string
	Model() string
	Complete(ctx context.Context, messages []Message, cfg GenerationConfig) (string, error)
}

// Attempt describes one provider call for usage accounting.
type Attempt struct {
	Provider         string
	Model            string
	PromptTokens     int
	CompletionTokens int
	Latency          time.Duration
	Err              error
}

// Chain tries providers in order until one succeeds. The notify hook fires
// once per attempt, success or failure; it must not block.
type Chain struct {
	providers []Provider
	notify    func(Attempt)
}

// NewChain creates a provider chain. notify may be nil.
func NewChain(providers []Provider, notify func(Attempt)) *Chain {
	return &Chain{
		providers: providers,
		notify:    notify,
	}
}

// Complete runs the chain. Returns the first successful reply, or
// ErrAllProvidersFailed wrapping nothing when every provider fails.
func (c *Chain) Complete(ctx context.Context, messages []Message, cfg GenerationConfig) (string, error) {
	promptTokens := 0
	for _, m := range messages {
		promptTokens += EstimateTokens(m.Content)
	}

	var lastErr error
	for _, p := range c.providers {
		start := time.Now()
		reply, err := p.Complete(ctx, messages, cfg)
		attempt := Attempt{
			Provider:     p.Name(),
			Model:        p.Model(),
			PromptTokens: promptTokens,
			Latency:      time.Since(start),
			Err:          err,
		}
		if err == nil {
			attempt.CompletionTokens = EstimateTokens(reply)
		}
		if c.notify != nil {
			c.notify(attempt)
		}

		if err == nil {
			return reply, nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return "", errors.Join(ErrAllProvidersFailed, lastErr)
	}
	return "", ErrAllProvidersFailed
}

// EstimateTokens gives a rough token count for usage accounting. Four bytes
// per token is close enough for both English and Arabic text.
func EstimateTokens(s string) int {
	return (len(s) + 3) / 4
}
