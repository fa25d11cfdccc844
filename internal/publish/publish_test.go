package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"loops-cli/internal/model"
)

func fixtureLoop() model.Loop {
	cat := "fit"
	s := model.DefaultLoopSettings()
	s.IsRepeatable = true
	s.MaxIterations = 3
	s.BreakBetweenIterations = 30
	return model.Loop{
		ID:          "loop-abc",
		Title:       "Morning Routine",
		Description: "Wake up **slowly**.",
		CategoryID:  &cat,
		Tags:        []string{"am", " "},
		Activities: []model.Activity{
			{ID: "a1", Title: "Stretch", Duration: 5, Icon: "🧘"},
			{ID: "a2", Title: "Pushups", Duration: 70, Repetition: &model.Repetition{Count: 3, RestSeconds: 20}},
			{ID: "a3", Title: "Plan", Duration: 10, Checklist: []model.ChecklistItem{{Text: "calendar", Done: true}, {Text: "inbox"}}},
		},
		Settings: s,
	}
}

func TestRenderLoopMarkdown(t *testing.T) {
	t.Parallel()

	md := RenderLoopMarkdown(fixtureLoop(), RenderOptions{
		Categories:      []model.Category{{ID: "fit", Name: "Fitness"}},
		IncludeSettings: true,
	})
	for _, want := range []string{
		"# Morning Routine\n",
		"Wake up **slowly**.",
		"- Category: Fitness",
		"- Tags: `am`\n",
		"- Total: 1h 25m",
		"1. **🧘 Stretch** (5m)",
		"2. **Pushups** (1h 10m) × 3, rest 20s",
		"   - [x] calendar",
		"   - [ ] inbox",
		"- Repeats: 3 iterations",
		"- Break between iterations: 30s",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in:\n%s", want, md)
		}
	}
}

func TestRenderLoopMarkdown_Blank(t *testing.T) {
	t.Parallel()

	md := RenderLoopMarkdown(model.Loop{}, RenderOptions{})
	if !strings.HasPrefix(md, "# Untitled loop\n") || !strings.Contains(md, "_No activities yet._") {
		t.Fatalf("unexpected blank render:\n%s", md)
	}
	if strings.Contains(md, "## Settings") {
		t.Fatalf("settings should be opt-in")
	}
}

func TestRenderLoopHTML_EscapesRawHTML(t *testing.T) {
	t.Parallel()

	l := fixtureLoop()
	l.Title = "<script>alert(1)</script> Loop"
	out, err := RenderLoopHTML(l, RenderOptions{})
	if err != nil {
		t.Fatalf("RenderLoopHTML: %v", err)
	}
	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Fatalf("raw html leaked:\n%s", out)
	}
	if !strings.Contains(out, "<strong>slowly</strong>") || !strings.Contains(out, "<ol>") {
		t.Fatalf("expected rendered markdown:\n%s", out)
	}
}

func TestWriteLoop_Overwrite(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "nested", "loop.html")
	res, err := WriteLoop(fixtureLoop(), FormatHTML, out, WriteOptions{})
	if err != nil {
		t.Fatalf("WriteLoop: %v", err)
	}
	if res.Written != out || res.Format != FormatHTML {
		t.Fatalf("unexpected result: %+v", res)
	}
	if _, err := WriteLoop(fixtureLoop(), FormatHTML, out, WriteOptions{}); err == nil {
		t.Fatalf("expected exists error")
	}
	if _, err := WriteLoop(fixtureLoop(), FormatMarkdown, out, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("WriteLoop overwrite: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(b), "# Morning Routine") {
		t.Fatalf("unexpected contents: %q", string(b))
	}
}

func TestFormatMinutes(t *testing.T) {
	t.Parallel()
	for in, want := range map[int]string{0: "0m", 45: "45m", 60: "1h 00m", 125: "2h 05m"} {
		if got := FormatMinutes(in); got != want {
			t.Fatalf("FormatMinutes(%d) = %q, want %q", in, got, want)
		}
	}
}
