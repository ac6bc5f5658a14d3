package retrieval

import (
	"strings"

	"github.com/wakti-app/help-engine/internal/storage"
)

// Chip is a single suggested in-app navigation shortcut. Chips are derived
// exclusively from manual entries, never from model output.
type Chip struct {
	Label string `json:"label"`
	Route string `json:"route"`
}

// Sentinels returned when retrieval finds nothing. The system prompt tells
// the model that this text means "say you don't know"; they must never be
// empty strings.
const (
	noResultsEN = "No relevant manual content found."
	noResultsAR = "لم يتم العثور على محتوى ذي صلة في الدليل."
)

// BuildContext concatenates the entries' localized titles and contents as
// grounding material, most relevant first. Empty input yields the localized
// no-results sentinel.
func BuildContext(entries []storage.ManualEntry, lang storage.Language) string {
	if len(entries) == 0 {
		if lang == storage.LanguageAR {
			return noResultsAR
		}
		return noResultsEN
	}

	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, entry.Title(lang)+": "+entry.Content(lang))
	}
	return strings.Join(parts, "\n\n")
}

// ExtractChips reranks the candidate set against the raw query and returns
// the best entry that can actually navigate somewhere: non-empty route and a
// localized chip label. At most one chip is ever returned.
func (s *Scorer) ExtractChips(entries []storage.ManualEntry, query string, lang storage.Language) []Chip {
	for _, entry := range s.Rerank(entries, query, lang) {
		if !entry.HasChip(lang) {
			continue
		}
		return []Chip{{
			Label: entry.ChipLabel(lang),
			Route: entry.Route,
		}}
	}
	return []Chip{}
}
