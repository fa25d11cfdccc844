package publish

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"loops-cli/internal/model"
)

type RenderOptions struct {
	// Categories resolves Loop.CategoryID to a display name. Optional.
	Categories []model.Category
	// IncludeSettings adds the repeat/notification section.
	IncludeSettings bool
}

// FormatMinutes renders minutes as "45m" or "1h 05m".
func FormatMinutes(m int) string {
	if m < 60 {
		return strconv.Itoa(m) + "m"
	}
	return fmt.Sprintf("%dh %02dm", m/60, m%60)
}

func categoryName(opt RenderOptions, id *string) string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return ""
	}
	for _, c := range opt.Categories {
		if c.ID == *id {
			return strings.TrimSpace(c.Name)
		}
	}
	return *id
}

// RenderLoopMarkdown renders l as a Markdown document. It never fails; a blank title renders
// as "Untitled loop".
func RenderLoopMarkdown(l model.Loop, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(l.Title)
	if title == "" {
		title = "Untitled loop"
	}
	writeLn("# " + title)
	writeLn("")

	if d := strings.TrimSpace(l.Description); d != "" {
		writeLn(d)
		writeLn("")
	}

	meta := make([]string, 0, 4)
	if strings.TrimSpace(l.ID) != "" {
		meta = append(meta, "- ID: "+l.ID)
	}
	if name := categoryName(opt, l.CategoryID); name != "" {
		meta = append(meta, "- Category: "+name)
	}
	if len(l.Tags) > 0 {
		tags := make([]string, 0, len(l.Tags))
		for _, t := range l.Tags {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, "`"+t+"`")
			}
		}
		if len(tags) > 0 {
			meta = append(meta, "- Tags: "+strings.Join(tags, " "))
		}
	}
	total := 0
	for _, a := range l.Activities {
		total += a.Duration
	}
	meta = append(meta, "- Total: "+FormatMinutes(total))
	for _, m := range meta {
		writeLn(m)
	}
	writeLn("")

	writeLn("## Activities")
	writeLn("")
	if len(l.Activities) == 0 {
		writeLn("_No activities yet._")
		writeLn("")
	}
	for i, a := range l.Activities {
		label := strings.TrimSpace(a.Title)
		if label == "" {
			label = "(untitled)"
		}
		if a.Icon != "" {
			label = a.Icon + " " + label
		}
		line := fmt.Sprintf("%d. **%s** (%s)", i+1, label, FormatMinutes(a.Duration))
		if a.Repetition != nil && a.Repetition.Count > 1 {
			line += fmt.Sprintf(" × %d", a.Repetition.Count)
			if a.Repetition.RestSeconds > 0 {
				line += fmt.Sprintf(", rest %ds", a.Repetition.RestSeconds)
			}
		}
		writeLn(line)
		for _, c := range a.Checklist {
			box := "[ ]"
			if c.Done {
				box = "[x]"
			}
			writeLn("   - " + box + " " + strings.TrimSpace(c.Text))
		}
	}
	if len(l.Activities) > 0 {
		writeLn("")
	}

	if opt.IncludeSettings {
		s := l.Settings
		writeLn("## Settings")
		writeLn("")
		if s.IsRepeatable {
			writeLn(fmt.Sprintf("- Repeats: %d iterations", s.MaxIterations))
			writeLn(fmt.Sprintf("- Break between iterations: %ds", s.BreakBetweenIterations))
		} else {
			writeLn("- Repeats: no")
		}
		writeLn("- Auto start: " + yesNo(s.AutoStart))
		writeLn("- Notifications: " + yesNo(s.NotificationsEnabled))
		writeLn("- Sound: " + yesNo(s.SoundEnabled))
		writeLn("- Vibration: " + yesNo(s.VibrationEnabled))
		writeLn("- Background execution: " + yesNo(s.BackgroundExecution))
		writeLn("")
	}

	return strings.TrimRight(buf.String(), "\n") + "\n"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
