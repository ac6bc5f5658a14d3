package retrieval

import (
	"sort"
	"strings"

	"github.com/wakti-app/help-engine/internal/storage"
)

// Signal weights. Absolute values are tuning starting points; the relative
// order (phrase > tag phrase > intent > title keyword > deep link > tag
// keyword > chip > full-text keyword) is the contract the tests pin down.
const (
	phraseTitleBonus  = 30
	phraseTagBonus    = 25
	intentBonus       = 20
	keywordTitleBonus = 8
	deepLinkBonus     = 7
	keywordTagBonus   = 6
	chipBonus         = 3
	keywordTextBonus  = 2
)

// ScoredEntry pairs a manual entry with its relevance score and the
// diagnostic reasons that produced it. Created fresh per request, never
// persisted.
type ScoredEntry struct {
	Entry   storage.ManualEntry
	Score   int
	Reasons []string
}

// Scorer computes deterministic relevance scores for manual entries.
// Scoring is strictly additive over independent signals; no signal ever
// decreases a score.
type Scorer struct {
	rules []IntentRule
	hints []DeepLinkHint
}

// NewScorer creates a scorer with the built-in intent and deep-link tables.
func NewScorer() *Scorer {
	return &Scorer{
		rules: buildIntentRules(),
		hints: buildDeepLinkHints(),
	}
}

// ScoreEntry scores one entry against the query in the given language.
func (s *Scorer) ScoreEntry(entry storage.ManualEntry, query string, lang storage.Language) ScoredEntry {
	scored := ScoredEntry{Entry: entry}

	rawQuery := strings.ToLower(query)
	normQuery := NormalizeText(query)
	keywords := BuildKeywords(query)

	normTitle := NormalizeText(entry.Title(lang))
	normContent := NormalizeText(entry.Content(lang))

	normTags := make([]string, 0, len(entry.Tags))
	for _, tag := range entry.Tags {
		normTags = append(normTags, NormalizeText(tag))
	}

	fullText := normTitle + " " + normContent + " " + strings.Join(normTags, " ")

	// Exact-phrase containment: the whole normalized query inside the
	// localized title, or matching a tag as substring either direction.
	if normQuery != "" {
		if strings.Contains(normTitle, normQuery) {
			scored.Score += phraseTitleBonus
			scored.Reasons = append(scored.Reasons, "phrase_title")
		}
		for _, tag := range normTags {
			if tag == "" {
				continue
			}
			if strings.Contains(tag, normQuery) || strings.Contains(normQuery, tag) {
				scored.Score += phraseTagBonus
				scored.Reasons = append(scored.Reasons, "phrase_tag")
				break
			}
		}
	}

	// Per-keyword partial matches, title > tag > full text.
	for _, kw := range keywords {
		if strings.Contains(normTitle, kw) {
			scored.Score += keywordTitleBonus
			scored.Reasons = append(scored.Reasons, "kw_title:"+kw)
		}
		for _, tag := range normTags {
			if strings.Contains(tag, kw) {
				scored.Score += keywordTagBonus
				scored.Reasons = append(scored.Reasons, "kw_tag:"+kw)
				break
			}
		}
		if strings.Contains(fullText, kw) {
			scored.Score += keywordTextBonus
			scored.Reasons = append(scored.Reasons, "kw_text:"+kw)
		}
	}

	// Deep-link specificity: the raw query names a sub-feature and the route
	// carries that sub-feature's query parameter.
	if strings.Contains(entry.Route, "?") {
		for _, hint := range s.hints {
			if !strings.Contains(entry.Route, hint.RouteParam) {
				continue
			}
			for _, term := range hint.Terms {
				if strings.Contains(rawQuery, term) {
					scored.Score += deepLinkBonus
					scored.Reasons = append(scored.Reasons, "deep_link")
					break
				}
			}
		}
	}

	// Domain-intent bias: only the entry whose route equals a fired rule's
	// canonical route benefits.
	for _, rule := range firedRules(s.rules, rawQuery) {
		if entry.Route == rule.TargetRoute {
			scored.Score += rule.Bonus
			scored.Reasons = append(scored.Reasons, "intent:"+rule.Name)
		}
	}

	// All else equal, prefer entries that can surface a navigable chip.
	// Chip availability is a tie-breaker between already-relevant entries,
	// never a relevance signal on its own: with no query signal the score
	// stays zero and the entry is excluded from reranked output.
	if scored.Score > 0 && entry.HasChip(lang) {
		scored.Score += chipBonus
		scored.Reasons = append(scored.Reasons, "chip")
	}

	return scored
}

// Rerank scores every entry and returns the relevant ones in rank order:
// score descending, then localized title ascending, then route ascending
// (entries without a route sort first). Zero-score entries are dropped.
// Pure and deterministic for fixed inputs.
func (s *Scorer) Rerank(entries []storage.ManualEntry, query string, lang storage.Language) []storage.ManualEntry {
	scored := make([]ScoredEntry, 0, len(entries))
	for _, entry := range entries {
		se := s.ScoreEntry(entry, query, lang)
		if se.Score > 0 {
			scored = append(scored, se)
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		ti, tj := scored[i].Entry.Title(lang), scored[j].Entry.Title(lang)
		if ti != tj {
			return ti < tj
		}
		return scored[i].Entry.Route < scored[j].Entry.Route
	})

	ranked := make([]storage.ManualEntry, len(scored))
	for i, se := range scored {
		ranked[i] = se.Entry
	}
	return ranked
}
