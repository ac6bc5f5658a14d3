// Package monitoring provides fire-and-forget usage accounting for
// completion-provider calls.
package monitoring

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wakti-app/help-engine/internal/llm"
	"github.com/wakti-app/help-engine/internal/observability"
	"github.com/wakti-app/help-engine/internal/storage"
)

// UsageLogger records provider usage events. Persistence is asynchronous
// and best-effort: a failed write is logged and swallowed, it never affects
// the response returned to the user.
type UsageLogger struct {
	logger *observability.Logger
	repo   *storage.UsageRepository
}

// NewUsageLogger creates a new usage logger. repo may be nil, in which case
// events are only logged.
func NewUsageLogger(logger *observability.Logger, repo *storage.UsageRepository) *UsageLogger {
	return &UsageLogger{
		logger: logger,
		repo:   repo,
	}
}

// Record logs one provider attempt and persists it in the background.
func (u *UsageLogger) Record(attempt llm.Attempt) {
	errText := ""
	if attempt.Err != nil {
		errText = attempt.Err.Error()
	}

	u.logger.Info().
		Str("provider", attempt.Provider).
		Str("model", attempt.Model).
		Int("prompt_tokens", attempt.PromptTokens).
		Int("completion_tokens", attempt.CompletionTokens).
		Dur("latency", attempt.Latency).
		Bool("success", attempt.Err == nil).
		Msg("Provider usage")

	if u.repo == nil {
		return
	}

	event := &storage.UsageEvent{
		ID:               uuid.New(),
		Provider:         attempt.Provider,
		Model:            attempt.Model,
		PromptTokens:     attempt.PromptTokens,
		CompletionTokens: attempt.CompletionTokens,
		LatencyMs:        attempt.Latency.Milliseconds(),
		Success:          attempt.Err == nil,
		ErrorText:        errText,
		OccurredAt:       time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := u.repo.Insert(ctx, event); err != nil {
			u.logger.Warn().Err(err).Msg("Failed to persist usage event")
		}
	}()
}
