package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wakti-app/help-engine/internal/llm"
	"github.com/wakti-app/help-engine/internal/observability"
)

func TestUsageLogger_Record_NilRepo(t *testing.T) {
	logger := NewUsageLogger(observability.Nop(), nil)

	// Without a repository, recording only logs. Must not panic for
	// either outcome.
	assert.NotPanics(t, func() {
		logger.Record(llm.Attempt{
			Provider:         "deepseek",
			Model:            "deepseek-chat",
			PromptTokens:     120,
			CompletionTokens: 40,
			Latency:          250 * time.Millisecond,
		})
		logger.Record(llm.Attempt{
			Provider: "openai",
			Model:    "gpt-4o-mini",
			Err:      errors.New("timeout"),
		})
	})
}
