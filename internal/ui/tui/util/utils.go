package util

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// TruncateString cuts a string to fit within maxWidth visual width
func TruncateString(s string, maxWidth int) string {
	width := 0
	for i, r := range s {
		charWidth := runewidth.RuneWidth(r)
		// Check if adding this rune would exceed maxWidth
		if width+charWidth > maxWidth-3 { // Reserve space for "..."
			return s[:i] + "..."
		}
		width += charWidth
	}
	return s // Return as is if it fits
}

// FormatScore formats an average score for display, using N/A for unscored entries
func FormatScore(score float64) string {
	if score <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", score)
}
