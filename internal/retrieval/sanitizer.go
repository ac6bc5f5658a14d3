package retrieval

import (
	"regexp"
	"strings"
)

var (
	chipMarkerRe = regexp.MustCompile(`(?i)\[\s*chip\s*:[^\]]*\]`)
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	bulletRe     = regexp.MustCompile(`(?m)^\s*[-•]\s+`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// CleanReply strips markdown emphasis, heading and bullet markers, and any
// inline chip-marker tokens from a model reply. Numbered-list markers are
// left alone. The UI renders plain text and chips travel on a separate
// channel, so inline chip syntax must not survive.
//
// The strip passes run to a fixed point: removing one marker can uncover
// another (a bullet behind bold markers, a chip marker nested inside a chip
// marker), so a single pass is not enough. Every pass only deletes
// characters, which bounds the iteration. Total and idempotent.
func CleanReply(text string) string {
	for {
		next := stripOnce(text)
		if next == text {
			return text
		}
		text = next
	}
}

func stripOnce(text string) string {
	text = chipMarkerRe.ReplaceAllString(text, "")
	text = headingRe.ReplaceAllString(text, "")
	text = bulletRe.ReplaceAllString(text, "")

	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = strings.ReplaceAll(text, "*", "")

	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
