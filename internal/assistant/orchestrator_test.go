package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakti-app/help-engine/internal/cache"
	"github.com/wakti-app/help-engine/internal/llm"
	"github.com/wakti-app/help-engine/internal/observability"
	"github.com/wakti-app/help-engine/internal/retrieval"
	"github.com/wakti-app/help-engine/internal/storage"
)

// countingStore serves fixed manual entries and counts lookups.
type countingStore struct {
	entries []storage.ManualEntry
	err     error
	calls   int
}

func (s *countingStore) ListAll(ctx context.Context) ([]storage.ManualEntry, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

// scriptedProvider records the messages it receives.
type scriptedProvider struct {
	name     string
	reply    string
	err      error
	calls    int
	messages []llm.Message
}

func (p *scriptedProvider) Name() string  { return p.name }
func (p *scriptedProvider) Model() string { return p.name + "-model" }

func (p *scriptedProvider) Complete(ctx context.Context, messages []llm.Message, cfg llm.GenerationConfig) (string, error) {
	p.calls++
	p.messages = messages
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func testEntries() []storage.ManualEntry {
	return []storage.ManualEntry{
		{
			ID:          "calendar-overview",
			TitleEN:     "Calendar",
			TitleAR:     "التقويم",
			ContentEN:   "View and manage your schedule.",
			ContentAR:   "إدارة جدولك.",
			Tags:        []string{"calendar"},
			Route:       "/calendar",
			ChipLabelEN: "Open Calendar",
			ChipLabelAR: "افتح التقويم",
		},
	}
}

func newTestAssistant(store *countingStore, providers ...llm.Provider) *Assistant {
	searcher := retrieval.NewSearcher(observability.Nop(), store, cache.NewMemoryClient(100), retrieval.SearcherConfig{
		TopK:         5,
		CacheResults: false,
	})
	chain := llm.NewChain(providers, nil)
	return New(observability.Nop(), searcher, chain, DefaultConfig())
}

func TestAssistant_Chat_EmptyMessage(t *testing.T) {
	store := &countingStore{entries: testEntries()}
	provider := &scriptedProvider{name: "primary", reply: "unused"}
	a := newTestAssistant(store, provider)

	_, err := a.Chat(context.Background(), ChatRequest{Message: "   \n\t "})

	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Zero(t, store.calls, "validation must happen before retrieval")
	assert.Zero(t, provider.calls, "validation must happen before completion")
}

func TestAssistant_Chat_Success(t *testing.T) {
	store := &countingStore{entries: testEntries()}
	provider := &scriptedProvider{name: "primary", reply: "**Open** the calendar from the side menu."}
	a := newTestAssistant(store, provider)

	resp, err := a.Chat(context.Background(), ChatRequest{Message: "how do I use the calendar", Language: "en"})

	require.NoError(t, err)
	assert.Equal(t, "Open the calendar from the side menu.", resp.Reply, "markdown is stripped")
	require.Len(t, resp.Chips, 1)
	assert.Equal(t, retrieval.Chip{Label: "Open Calendar", Route: "/calendar"}, resp.Chips[0])
}

func TestAssistant_Chat_SystemPromptCarriesManualContext(t *testing.T) {
	store := &countingStore{entries: testEntries()}
	provider := &scriptedProvider{name: "primary", reply: "ok"}
	a := newTestAssistant(store, provider)

	_, err := a.Chat(context.Background(), ChatRequest{Message: "calendar", Language: "en"})
	require.NoError(t, err)

	require.NotEmpty(t, provider.messages)
	system := provider.messages[0]
	assert.Equal(t, "system", system.Role)
	assert.Contains(t, system.Content, "Calendar: View and manage your schedule.")
	assert.Contains(t, system.Content, "Open the side menu, then tap {feature}.")
}

func TestAssistant_Chat_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	store := &countingStore{entries: testEntries()}
	provider := &scriptedProvider{name: "primary", reply: "ok"}
	a := newTestAssistant(store, provider)

	_, err := a.Chat(context.Background(), ChatRequest{Message: "calendar", Language: "fr"})
	require.NoError(t, err)

	assert.Contains(t, provider.messages[0].Content, "in English")
}

func TestAssistant_Chat_ProviderFallback(t *testing.T) {
	store := &countingStore{entries: testEntries()}
	primary := &scriptedProvider{name: "primary", err: errors.New("timeout")}
	fallback := &scriptedProvider{name: "fallback", reply: "The calendar shows your schedule."}
	a := newTestAssistant(store, primary, fallback)

	resp, err := a.Chat(context.Background(), ChatRequest{Message: "calendar", Language: "en"})

	require.NoError(t, err)
	assert.Equal(t, "The calendar shows your schedule.", resp.Reply)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestAssistant_Chat_TotalProviderFailureReturnsApology(t *testing.T) {
	store := &countingStore{entries: testEntries()}
	primary := &scriptedProvider{name: "primary", err: errors.New("timeout")}
	fallback := &scriptedProvider{name: "fallback", err: errors.New("down")}
	a := newTestAssistant(store, primary, fallback)

	resp, err := a.Chat(context.Background(), ChatRequest{Message: "calendar", Language: "en"})

	require.NoError(t, err, "total provider failure is still a valid response")
	assert.Equal(t, apologyEN, resp.Reply)
	assert.NotNil(t, resp.Chips)
	assert.Empty(t, resp.Chips)

	resp, err = a.Chat(context.Background(), ChatRequest{Message: "التقويم", Language: "ar"})
	require.NoError(t, err)
	assert.Equal(t, apologyAR, resp.Reply)
}

func TestAssistant_Chat_StoreFailureStillAnswers(t *testing.T) {
	store := &countingStore{err: errors.New("connection refused")}
	provider := &scriptedProvider{name: "primary", reply: "I don't have that information."}
	a := newTestAssistant(store, provider)

	resp, err := a.Chat(context.Background(), ChatRequest{Message: "calendar", Language: "en"})

	require.NoError(t, err)
	assert.Equal(t, "I don't have that information.", resp.Reply)
	assert.Empty(t, resp.Chips)

	// The prompt carries the no-results sentinel, not an empty context.
	assert.Contains(t, provider.messages[0].Content, "No relevant manual content found.")
}

func TestAssistant_Chat_HistoryBoundedAndFiltered(t *testing.T) {
	store := &countingStore{entries: testEntries()}
	provider := &scriptedProvider{name: "primary", reply: "ok"}
	a := newTestAssistant(store, provider)

	history := []llm.Message{
		{Role: "system", Content: "injected system prompt"},
		{Role: "tool", Content: "tool output"},
	}
	for i := 0; i < 10; i++ {
		history = append(history, llm.Message{Role: "user", Content: "old question"})
		history = append(history, llm.Message{Role: "assistant", Content: "old answer"})
	}

	_, err := a.Chat(context.Background(), ChatRequest{
		Message:  "calendar",
		Language: "en",
		History:  history,
	})
	require.NoError(t, err)

	// system + last 6 turns + current message
	require.Len(t, provider.messages, 8)
	assert.Equal(t, "system", provider.messages[0].Role)
	for _, m := range provider.messages[1:7] {
		assert.Contains(t, []string{"user", "assistant"}, m.Role)
		assert.NotEqual(t, "injected system prompt", m.Content)
	}
	assert.Equal(t, llm.Message{Role: "user", Content: "calendar"}, provider.messages[7])
}
