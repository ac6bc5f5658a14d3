package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrNotFound = errors.New("record not found")
)

// DB represents a database connection interface.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// ManualRepository handles manual entry access. The table is small (tens of
// entries), so reads are always fetch-all.
type ManualRepository struct {
	db DB
}

// NewManualRepository creates a new manual repository.
func NewManualRepository(db DB) *ManualRepository {
	return &ManualRepository{db: db}
}

// ListAll returns every manual entry.
func (r *ManualRepository) ListAll(ctx context.Context) ([]ManualEntry, error) {
	query := `
		SELECT id, section, title_en, title_ar, content_en, content_ar,
			tags, route, chip_label_en, chip_label_ar, created_at, updated_at
		FROM manual_entries
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list manual entries: %w", err)
	}
	defer rows.Close()

	var entries []ManualEntry
	for rows.Next() {
		var e ManualEntry
		var tagsJSON []byte
		if err := rows.Scan(
			&e.ID, &e.Section, &e.TitleEN, &e.TitleAR, &e.ContentEN, &e.ContentAR,
			&tagsJSON, &e.Route, &e.ChipLabelEN, &e.ChipLabelAR, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan manual entry: %w", err)
		}
		if len(tagsJSON) > 0 {
			if err := json.Unmarshal(tagsJSON, &e.Tags); err != nil {
				return nil, fmt.Errorf("decode tags for %s: %w", e.ID, err)
			}
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// GetByID retrieves a single manual entry.
func (r *ManualRepository) GetByID(ctx context.Context, id string) (*ManualEntry, error) {
	query := `
		SELECT id, section, title_en, title_ar, content_en, content_ar,
			tags, route, chip_label_en, chip_label_ar, created_at, updated_at
		FROM manual_entries WHERE id = $1
	`
	var e ManualEntry
	var tagsJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Section, &e.TitleEN, &e.TitleAR, &e.ContentEN, &e.ContentAR,
		&tagsJSON, &e.Route, &e.ChipLabelEN, &e.ChipLabelAR, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &e.Tags); err != nil {
			return nil, fmt.Errorf("decode tags for %s: %w", e.ID, err)
		}
	}
	return &e, nil
}

// Upsert inserts or replaces a manual entry by ID. Used by seeding.
func (r *ManualRepository) Upsert(ctx context.Context, entry *ManualEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	tagsJSON, err := json.Marshal(entry.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	query := `
		INSERT INTO manual_entries (id, section, title_en, title_ar, content_en, content_ar,
			tags, route, chip_label_en, chip_label_ar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			section = EXCLUDED.section,
			title_en = EXCLUDED.title_en,
			title_ar = EXCLUDED.title_ar,
			content_en = EXCLUDED.content_en,
			content_ar = EXCLUDED.content_ar,
			tags = EXCLUDED.tags,
			route = EXCLUDED.route,
			chip_label_en = EXCLUDED.chip_label_en,
			chip_label_ar = EXCLUDED.chip_label_ar,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		entry.ID, entry.Section, entry.TitleEN, entry.TitleAR, entry.ContentEN, entry.ContentAR,
		tagsJSON, entry.Route, entry.ChipLabelEN, entry.ChipLabelAR, entry.CreatedAt, entry.UpdatedAt,
	)
	return err
}

// Count returns the number of manual entries.
func (r *ManualRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM manual_entries`).Scan(&n)
	return n, err
}

// UsageRepository persists completion-provider usage events.
type UsageRepository struct {
	db DB
}

// NewUsageRepository creates a new usage repository.
func NewUsageRepository(db DB) *UsageRepository {
	return &UsageRepository{db: db}
}

// Insert records a usage event.
func (r *UsageRepository) Insert(ctx context.Context, event *UsageEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	query := `
		INSERT INTO usage_events (id, provider, model, prompt_tokens, completion_tokens,
			latency_ms, success, error_text, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Provider, event.Model, event.PromptTokens, event.CompletionTokens,
		event.LatencyMs, event.Success, event.ErrorText, event.OccurredAt,
	)
	return err
}
