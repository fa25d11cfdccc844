package tui

import (
	"strings"
	"testing"
)

func TestRenderMarkdown_EmptyAndCached(t *testing.T) {
	if got := renderMarkdown("  \n", 40); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}

	out := renderMarkdown("# Evening\n\n1. **Read** (15m)", 40)
	if !strings.Contains(out, "Evening") || !strings.Contains(out, "Read") {
		t.Fatalf("unexpected render:\n%s", out)
	}

	k := rendererKey{style: markdownStyle(), width: 40}
	a, err := previewRenderer(k)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	b, _ := previewRenderer(k)
	if a != b {
		t.Fatalf("expected cached renderer")
	}
}
