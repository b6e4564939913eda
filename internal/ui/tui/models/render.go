package models

import (
	"fmt"
	"strings"

	"github.com/yozora-app/yozora/internal/domain"
	"github.com/yozora-app/yozora/internal/ui/tui/styles"
	"github.com/yozora-app/yozora/internal/ui/tui/util"
)

// renderAnimeRow renders a single catalog entry line for list-style views
func renderAnimeRow(anime domain.Anime, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = "> "
	}

	title := util.TruncateString(anime.Title, width-30)
	meta := "★ " + util.FormatScore(anime.Score)
	if len(anime.Genres) > 0 {
		meta += " • " + anime.Genres[0].Name
	}

	row := fmt.Sprintf("%s%s  %s", marker, title, styles.Subtle.Render(meta))
	if selected {
		return styles.Selected.Render(fmt.Sprintf("%s%s", marker, title)) + "  " + styles.Subtle.Render(meta)
	}
	return row
}

// renderAnimeRows renders a window of catalog entries around the cursor so long
// lists stay within the view height
func renderAnimeRows(anime []domain.Anime, cursor, width, maxRows int) string {
	if len(anime) == 0 {
		return styles.Subtle.Render("  Nothing here yet.")
	}

	start := 0
	if cursor >= maxRows {
		start = cursor - maxRows + 1
	}
	end := min(start+maxRows, len(anime))

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderAnimeRow(anime[i], i == cursor, width))
		b.WriteString("\n")
	}
	if end < len(anime) {
		b.WriteString(styles.Subtle.Render(fmt.Sprintf("  ... %d more", len(anime)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

// clampCursor keeps a list cursor within bounds after the backing list changes
func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}
