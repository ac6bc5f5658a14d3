package retrieval

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/wakti-app/help-engine/internal/cache"
	"github.com/wakti-app/help-engine/internal/observability"
	"github.com/wakti-app/help-engine/internal/storage"
)

// ManualStore abstracts knowledge-base access. The real store is a database
// repository; tests substitute a fake.
type ManualStore interface {
	ListAll(ctx context.Context) ([]storage.ManualEntry, error)
}

// SearcherConfig holds searcher settings.
type SearcherConfig struct {
	TopK         int
	CacheResults bool
	CacheTTL     time.Duration
}

// DefaultSearcherConfig returns the default searcher configuration.
func DefaultSearcherConfig() SearcherConfig {
	return SearcherConfig{
		TopK:         5,
		CacheResults: true,
		CacheTTL:     2 * time.Minute,
	}
}

// Searcher retrieves and ranks manual entries for a query. Results are
// cached per (language, lowercased query) for a short TTL; the cache is an
// optimization only, never a correctness dependency.
type Searcher struct {
	logger *observability.Logger
	store  ManualStore
	cache  cache.Client
	scorer *Scorer
	config SearcherConfig
}

// NewSearcher creates a new searcher.
func NewSearcher(logger *observability.Logger, store ManualStore, cacheClient cache.Client, cfg SearcherConfig) *Searcher {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 2 * time.Minute
	}

	return &Searcher{
		logger: logger,
		store:  store,
		cache:  cacheClient,
		scorer: NewScorer(),
		config: cfg,
	}
}

// Scorer returns the searcher's scorer, shared so chip extraction reranks
// with the same tables.
func (s *Searcher) Scorer() *Scorer {
	return s.scorer
}

// Search returns the top-K manual entries for the query, best first. It
// never returns an error: store failures degrade to an empty result, which
// downstream renders as the no-results sentinel. The empty result is cached
// too, so repeated failures within the TTL don't hammer the store.
func (s *Searcher) Search(ctx context.Context, query string, lang storage.Language) []storage.ManualEntry {
	key := cache.Key("manual", string(lang), strings.ToLower(query))

	if s.config.CacheResults && s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil {
			var cached []storage.ManualEntry
			if decodeErr := json.Unmarshal(data, &cached); decodeErr == nil {
				s.logger.Debug().Str("query", query).Msg("Manual cache hit")
				return cached
			} else {
				s.logger.Warn().Err(decodeErr).Msg("Failed to decode cached manual results")
			}
		}
	}

	entries, err := s.store.ListAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Manual store unavailable, degrading to empty results")
		entries = nil
	}

	candidates := s.prefilter(entries, query, lang)
	ranked := s.scorer.Rerank(candidates, query, lang)
	if len(ranked) > s.config.TopK {
		ranked = ranked[:s.config.TopK]
	}

	if s.config.CacheResults && s.cache != nil {
		if data, err := json.Marshal(ranked); err == nil {
			if err := s.cache.Set(ctx, key, data, s.config.CacheTTL); err != nil {
				s.logger.Debug().Err(err).Msg("Failed to cache manual results")
			}
		}
	}

	s.logger.Debug().
		Str("query", query).
		Str("language", string(lang)).
		Int("candidates", len(candidates)).
		Int("ranked", len(ranked)).
		Msg("Manual search complete")

	return ranked
}

// prefilter is a cheap recall-maximizing pass before scoring: an entry
// survives if any keyword appears in its concatenated title, content, and
// tags. Queries with no extractable keywords pass everything through so
// very short or symbol-only input still returns something to rank.
func (s *Searcher) prefilter(entries []storage.ManualEntry, query string, lang storage.Language) []storage.ManualEntry {
	keywords := BuildKeywords(query)
	if len(keywords) == 0 {
		return entries
	}

	var passed []storage.ManualEntry
	for _, entry := range entries {
		haystack := strings.ToLower(
			entry.Title(lang) + " " + entry.Content(lang) + " " + strings.Join(entry.Tags, " "),
		)
		for _, kw := range keywords {
			if strings.Contains(haystack, kw) {
				passed = append(passed, entry)
				break
			}
		}
	}
	return passed
}
