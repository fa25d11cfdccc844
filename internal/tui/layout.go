package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// truncateLine cuts s to width columns (ANSI-aware), marking the cut with an ellipsis.
func truncateLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return xansi.Cut(s, 0, 1)
	}
	// Avoid computing width over enormous strings.
	if len(s) > 8192 {
		s = xansi.Cut(s, 0, width)
	}
	return xansi.Cut(s, 0, width-1) + "…"
}

// normalizePane forces s to exactly width columns and height lines, so the footer stays pinned
// to the bottom regardless of body length.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		ln = truncateLine(ln, width)
		if w := xansi.StringWidth(ln); w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}
