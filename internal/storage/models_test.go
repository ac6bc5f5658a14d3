package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, LanguageAR, NormalizeLanguage("ar"))
	assert.Equal(t, LanguageEN, NormalizeLanguage("en"))
	assert.Equal(t, LanguageEN, NormalizeLanguage(""))
	assert.Equal(t, LanguageEN, NormalizeLanguage("fr"))
	assert.Equal(t, LanguageEN, NormalizeLanguage("AR"), "normalization is exact-match")
}

func TestManualEntry_LocalizedAccessors(t *testing.T) {
	entry := ManualEntry{
		TitleEN:     "Calendar",
		TitleAR:     "التقويم",
		ContentEN:   "Manage your schedule.",
		ChipLabelEN: "Open Calendar",
	}

	assert.Equal(t, "Calendar", entry.Title(LanguageEN))
	assert.Equal(t, "التقويم", entry.Title(LanguageAR))

	// Missing Arabic text falls back to English.
	assert.Equal(t, "Manage your schedule.", entry.Content(LanguageAR))
	assert.Equal(t, "Open Calendar", entry.ChipLabel(LanguageAR))
}

func TestManualEntry_HasChip(t *testing.T) {
	tests := []struct {
		name     string
		entry    ManualEntry
		lang     Language
		expected bool
	}{
		{
			name:     "route and label",
			entry:    ManualEntry{Route: "/calendar", ChipLabelEN: "Open Calendar"},
			lang:     LanguageEN,
			expected: true,
		},
		{
			name:     "missing route",
			entry:    ManualEntry{ChipLabelEN: "Open Calendar"},
			lang:     LanguageEN,
			expected: false,
		},
		{
			name:     "missing label",
			entry:    ManualEntry{Route: "/calendar"},
			lang:     LanguageEN,
			expected: false,
		},
		{
			name:     "arabic falls back to english label",
			entry:    ManualEntry{Route: "/calendar", ChipLabelEN: "Open Calendar"},
			lang:     LanguageAR,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.entry.HasChip(tt.lang))
		})
	}
}
