package storage

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedEntry is the YAML shape of one manual entry in a seed file.
type SeedEntry struct {
	ID          string   `yaml:"id"`
	Section     string   `yaml:"section"`
	TitleEN     string   `yaml:"title_en"`
	TitleAR     string   `yaml:"title_ar"`
	ContentEN   string   `yaml:"content_en"`
	ContentAR   string   `yaml:"content_ar"`
	Tags        []string `yaml:"tags"`
	Route       string   `yaml:"route"`
	ChipLabelEN string   `yaml:"chip_label_en"`
	ChipLabelAR string   `yaml:"chip_label_ar"`
}

// SeedFile is the top-level YAML shape of a manual seed file.
type SeedFile struct {
	Entries []SeedEntry `yaml:"entries"`
}

// LoadSeedFile parses a YAML seed file into manual entries.
func LoadSeedFile(path string) ([]ManualEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	entries := make([]ManualEntry, 0, len(file.Entries))
	for i, se := range file.Entries {
		if se.TitleEN == "" {
			return nil, fmt.Errorf("seed entry %d: title_en is required", i)
		}
		entries = append(entries, ManualEntry{
			ID:          se.ID,
			Section:     se.Section,
			TitleEN:     se.TitleEN,
			TitleAR:     se.TitleAR,
			ContentEN:   se.ContentEN,
			ContentAR:   se.ContentAR,
			Tags:        se.Tags,
			Route:       se.Route,
			ChipLabelEN: se.ChipLabelEN,
			ChipLabelAR: se.ChipLabelAR,
		})
	}

	return entries, nil
}

// SeedManual upserts all entries from a seed file into the repository.
// Returns the number of entries written.
func SeedManual(ctx context.Context, repo *ManualRepository, path string) (int, error) {
	entries, err := LoadSeedFile(path)
	if err != nil {
		return 0, err
	}

	for i := range entries {
		if err := repo.Upsert(ctx, &entries[i]); err != nil {
			return i, fmt.Errorf("upsert entry %q: %w", entries[i].TitleEN, err)
		}
	}

	return len(entries), nil
}
