package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

type rendererKey struct {
	style string
	width int
}

// previewRenderers caches one glamour renderer per style and wrap width. The preview re-renders
// on every frame, and building a renderer parses the whole style sheet.
var previewRenderers sync.Map // rendererKey -> *glamour.TermRenderer

func previewRenderer(k rendererKey) (*glamour.TermRenderer, error) {
	if r, ok := previewRenderers.Load(k); ok {
		return r.(*glamour.TermRenderer), nil
	}
	// A fixed standard style; WithAutoStyle queries the terminal and can block.
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(k.style),
		glamour.WithWordWrap(k.width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, err
	}
	actual, _ := previewRenderers.LoadOrStore(k, r)
	return actual.(*glamour.TermRenderer), nil
}

// renderMarkdown renders md for the preview pane. On renderer errors the raw Markdown is shown.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	r, err := previewRenderer(rendererKey{style: markdownStyle(), width: max(width, 10)})
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
