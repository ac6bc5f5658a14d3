package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakti-app/help-engine/internal/storage"
)

func TestBuildContext_EmptyReturnsSentinel(t *testing.T) {
	en := BuildContext(nil, storage.LanguageEN)
	ar := BuildContext(nil, storage.LanguageAR)

	assert.NotEmpty(t, en)
	assert.NotEmpty(t, ar)
	assert.NotEqual(t, en, ar)
}

func TestBuildContext_JoinsLocalizedEntries(t *testing.T) {
	entries := []storage.ManualEntry{
		{TitleEN: "Calendar", TitleAR: "التقويم", ContentEN: "Manage your schedule.", ContentAR: "إدارة جدولك."},
		{TitleEN: "Tasks", ContentEN: "Organize your tasks."},
	}

	en := BuildContext(entries, storage.LanguageEN)
	assert.Equal(t, "Calendar: Manage your schedule.\n\nTasks: Organize your tasks.", en)

	// Arabic uses localized text, falling back to English where missing.
	ar := BuildContext(entries, storage.LanguageAR)
	assert.Equal(t, "التقويم: إدارة جدولك.\n\nTasks: Organize your tasks.", ar)
}

func TestExtractChips_ReturnsBestNavigableEntry(t *testing.T) {
	scorer := NewScorer()
	entries := []storage.ManualEntry{voiceOverviewEntry(), translatorEntry()}

	chips := scorer.ExtractChips(entries, "text translator", storage.LanguageEN)

	require.Len(t, chips, 1)
	assert.Equal(t, Chip{Label: "Open Translator", Route: "/voice?tab=translate"}, chips[0])
}

func TestExtractChips_SkipsEntriesWithoutChip(t *testing.T) {
	scorer := NewScorer()
	entries := []storage.ManualEntry{
		{ID: "word-games", TitleEN: "Word Games", Route: "/games?tab=word"},
		{ID: "games", TitleEN: "Games", ContentEN: "Play word games.", Route: "/games", ChipLabelEN: "Open Games"},
	}

	// The best-ranked entry has a route but no label; the chip comes from
	// the best entry that can actually render one.
	chips := scorer.ExtractChips(entries, "word games", storage.LanguageEN)

	require.Len(t, chips, 1)
	assert.Equal(t, "Open Games", chips[0].Label)
}

func TestExtractChips_EmptyWhenNothingNavigable(t *testing.T) {
	scorer := NewScorer()
	entries := []storage.ManualEntry{
		{ID: "about", TitleEN: "About", ContentEN: "Version information."},
	}

	chips := scorer.ExtractChips(entries, "about", storage.LanguageEN)

	assert.NotNil(t, chips)
	assert.Empty(t, chips)
}

func TestExtractChips_ArabicLabel(t *testing.T) {
	scorer := NewScorer()

	chips := scorer.ExtractChips([]storage.ManualEntry{calendarEntry()}, "التقويم", storage.LanguageAR)

	require.Len(t, chips, 1)
	assert.Equal(t, "افتح التقويم", chips[0].Label)
	assert.Equal(t, "/calendar", chips[0].Route)
}
