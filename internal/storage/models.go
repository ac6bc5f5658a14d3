// Package storage provides database models and repositories for the help engine.
package storage

import (
	"time"

	"github.com/google/uuid"
)

// Language identifies a supported response language.
type Language string

const (
	LanguageEN Language = "en"
	LanguageAR Language = "ar"
)

// NormalizeLanguage maps arbitrary input to the closed language set.
// Anything that is not Arabic is treated as English.
func NormalizeLanguage(s string) Language {
	if s == "ar" {
		return LanguageAR
	}
	return LanguageEN
}

// ManualEntry is one knowledge-base record describing a single app feature
// or page, used as grounding material for help answers.
type ManualEntry struct {
	ID          string    `json:"id"`
	Section     string    `json:"section"`
	TitleEN     string    `json:"title_en"`
	TitleAR     string    `json:"title_ar"`
	ContentEN   string    `json:"content_en"`
	ContentAR   string    `json:"content_ar"`
	Tags        []string  `json:"tags"`
	Route       string    `json:"route"` // empty = no navigable destination
	ChipLabelEN string    `json:"chip_label_en"`
	ChipLabelAR string    `json:"chip_label_ar"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Title returns the localized title, falling back to English.
func (e *ManualEntry) Title(lang Language) string {
	if lang == LanguageAR && e.TitleAR != "" {
		return e.TitleAR
	}
	return e.TitleEN
}

// Content returns the localized body text, falling back to English.
func (e *ManualEntry) Content(lang Language) string {
	if lang == LanguageAR && e.ContentAR != "" {
		return e.ContentAR
	}
	return e.ContentEN
}

// ChipLabel returns the localized chip label, falling back to English.
// May be empty; entries without a chip label never produce a chip.
func (e *ManualEntry) ChipLabel(lang Language) string {
	if lang == LanguageAR && e.ChipLabelAR != "" {
		return e.ChipLabelAR
	}
	return e.ChipLabelEN
}

// HasChip reports whether the entry can produce a navigable chip in lang.
func (e *ManualEntry) HasChip(lang Language) bool {
	return e.Route != "" && e.ChipLabel(lang) != ""
}

// UsageEvent records one completion-provider call for accounting.
type UsageEvent struct {
	ID               uuid.UUID `json:"id"`
	Provider         string    `json:"provider"`
	Model            string    `json:"model"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	LatencyMs        int64     `json:"latency_ms"`
	Success          bool      `json:"success"`
	ErrorText        string    `json:"error_text,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}
