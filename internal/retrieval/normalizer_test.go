package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and strips punctuation",
			input:    "How do I Create an Event?!",
			expected: "how do i create an event",
		},
		{
			name:     "collapses whitespace",
			input:    "  voice \t recording \n  ",
			expected: "voice recording",
		},
		{
			name:     "keeps navigation arrow and hyphen",
			input:    "Settings → To-Do",
			expected: "settings → to-do",
		},
		{
			name:     "arabic letters survive",
			input:    "كيف أنشئ مناسبة؟",
			expected: "كيف أنشئ مناسبة",
		},
		{
			name:     "symbols only",
			input:    "?!...###",
			expected: "",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeText(tt.input))
		})
	}
}

func TestBuildKeywords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "drops short tokens",
			input:    "how do I use the word games",
			expected: []string{"how", "use", "the", "word", "games"},
		},
		{
			name:     "arabic tokens counted by runes",
			input:    "ما هي المهام",
			expected: []string{"المهام"},
		},
		{
			name:     "no extractable keywords",
			input:    "a b ?!",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildKeywords(tt.input))
		})
	}
}

func TestBuildKeywords_CapsKeywordCount(t *testing.T) {
	keywords := BuildKeywords("alpha bravo charlie delta echo foxtrot golf hotel india juliett")
	assert.Len(t, keywords, maxKeywords)
	assert.Equal(t, "hotel", keywords[maxKeywords-1])
}
