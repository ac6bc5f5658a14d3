// Package assistant orchestrates the help chat pipeline: manual retrieval,
// prompt assembly, the external completion call, and response shaping.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wakti-app/help-engine/internal/llm"
	"github.com/wakti-app/help-engine/internal/observability"
	"github.com/wakti-app/help-engine/internal/retrieval"
	"github.com/wakti-app/help-engine/internal/storage"
)

// ErrEmptyMessage indicates a request with no message after trimming.
var ErrEmptyMessage = errors.New("message is required")

// Fixed apologies returned when every provider fails. The contract is
// "always answer something": total provider failure is a 200 with this
// text, never an error payload.
const (
	apologyEN = "Sorry, I can't answer right now. Please try again in a moment."
	apologyAR = "عذراً، لا يمكنني الإجابة الآن. يرجى المحاولة مرة أخرى بعد قليل."
)

// Config holds assistant settings.
type Config struct {
	MaxHistory  int
	Temperature float64
	MaxTokens   int
}

// DefaultConfig returns the default assistant configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistory:  6,
		Temperature: 0.3,
		MaxTokens:   700,
	}
}

// ChatRequest is one help question with optional conversation history.
type ChatRequest struct {
	Message  string
	Language string
	History  []llm.Message
}

// ChatResponse is the assistant's answer plus at most one navigation chip.
type ChatResponse struct {
	Reply string
	Chips []retrieval.Chip
}

// Assistant wires retrieval, prompting, and the provider chain into a
// single sequential pipeline per request.
type Assistant struct {
	logger   *observability.Logger
	searcher *retrieval.Searcher
	chain    *llm.Chain
	config   Config
}

// New creates a new assistant.
func New(logger *observability.Logger, searcher *retrieval.Searcher, chain *llm.Chain, cfg Config) *Assistant {
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = 6
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 700
	}

	return &Assistant{
		logger:   logger,
		searcher: searcher,
		chain:    chain,
		config:   cfg,
	}
}

// Chat answers one help question. The only error it returns is
// ErrEmptyMessage; every downstream failure degrades into a valid response.
func (a *Assistant) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	start := time.Now()

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	lang := storage.NormalizeLanguage(req.Language)

	entries := a.searcher.Search(ctx, message, lang)
	manualContext := retrieval.BuildContext(entries, lang)

	messages := a.buildMessages(manualContext, req.History, message, lang)

	reply, err := a.chain.Complete(ctx, messages, llm.GenerationConfig{
		Temperature: a.config.Temperature,
		MaxTokens:   a.config.MaxTokens,
	})
	if err != nil {
		a.logger.Error().Err(err).Msg("All completion providers failed")
		if lang == storage.LanguageAR {
			reply = apologyAR
		} else {
			reply = apologyEN
		}
		return &ChatResponse{Reply: reply, Chips: []retrieval.Chip{}}, nil
	}

	// Chips come from the reranked manual entries, never from model output.
	chips := a.searcher.Scorer().ExtractChips(entries, message, lang)

	a.logger.Info().
		Str("language", string(lang)).
		Int("entries", len(entries)).
		Int("chips", len(chips)).
		Dur("latency", time.Since(start)).
		Msg("Chat complete")

	return &ChatResponse{
		Reply: retrieval.CleanReply(reply),
		Chips: chips,
	}, nil
}

// buildMessages assembles system prompt, a bounded tail of history, and the
// current message. History turns with unknown roles are dropped.
func (a *Assistant) buildMessages(manualContext string, history []llm.Message, message string, lang storage.Language) []llm.Message {
	var turns []llm.Message
	for _, m := range history {
		if m.Role != "user" && m.Role != "assistant" {
			continue
		}
		turns = append(turns, m)
	}
	if len(turns) > a.config.MaxHistory {
		turns = turns[len(turns)-a.config.MaxHistory:]
	}

	messages := make([]llm.Message, 0, len(turns)+2)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: buildSystemPrompt(manualContext, lang),
	})
	messages = append(messages, turns...)
	messages = append(messages, llm.Message{
		Role:    "user",
		Content: message,
	})

	return messages
}
