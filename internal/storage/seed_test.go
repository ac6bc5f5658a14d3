package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manual.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSeedFile(t *testing.T) {
	path := writeSeedFile(t, `entries:
  - id: calendar-overview
    section: productivity
    title_en: Calendar
    title_ar: التقويم
    content_en: View and manage your schedule.
    tags: [calendar, schedule]
    route: /calendar
    chip_label_en: Open Calendar
  - id: about
    section: general
    title_en: About
    content_en: Version information.
`)

	entries, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "calendar-overview", entries[0].ID)
	assert.Equal(t, "التقويم", entries[0].TitleAR)
	assert.Equal(t, []string{"calendar", "schedule"}, entries[0].Tags)
	assert.Equal(t, "/calendar", entries[0].Route)

	assert.Empty(t, entries[1].Route)
}

func TestLoadSeedFile_MissingTitleRejected(t *testing.T) {
	path := writeSeedFile(t, `entries:
  - id: broken
    content_en: No title.
`)

	_, err := LoadSeedFile(path)
	assert.ErrorContains(t, err, "title_en is required")
}

func TestLoadSeedFile_MissingFile(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "read seed file")
}

func TestLoadSeedFile_MalformedYAML(t *testing.T) {
	path := writeSeedFile(t, "entries: [unclosed")

	_, err := LoadSeedFile(path)
	assert.ErrorContains(t, err, "parse seed file")
}
