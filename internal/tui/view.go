package tui

import (
	"fmt"
	"strconv"
	"strings"

	"loops-cli/internal/builder"
	"loops-cli/internal/model"
	"loops-cli/internal/publish"

	"github.com/charmbracelet/lipgloss"
)

func (m builderModel) View() string {
	if !m.sess.Active() {
		return ""
	}

	var body string
	switch {
	case m.confirmDiscard:
		body = m.viewConfirmDiscard()
	case m.form != nil:
		body = m.viewActivityForm()
	default:
		switch m.sess.CurrentStep() {
		case builder.StepDetails:
			body = m.viewDetails()
		case builder.StepActivities:
			body = m.viewActivities()
		case builder.StepSettings:
			body = m.viewSettings()
		case builder.StepPreview:
			body = m.viewPreview()
		}
	}

	return strings.Join([]string{
		normalizePane(m.viewHeader(), m.width, headerLines),
		normalizePane(body, m.width, m.bodyHeight()),
		normalizePane(m.viewFooter(), m.width, footerLines),
	}, "\n")
}

func (m builderModel) viewHeader() string {
	d := m.draft()
	title := "New loop"
	if m.sess.IsEditing() {
		title = "Editing " + strings.TrimSpace(d.Title)
	}
	if m.sess.HasUnsavedChanges() {
		title += " •"
	}
	top := lipgloss.NewStyle().Bold(true).Render("Loops") + styleMuted().Render(" · ") + title

	cur := m.sess.CurrentStep()
	parts := make([]string, 0, len(builder.Steps))
	for _, st := range builder.Steps {
		label := strconv.Itoa(st.Index()+1) + " " + st.Label()
		switch {
		case st == cur:
			label = styleAccent().Render(" " + label + " ")
		case !m.sess.CanNavigateTo(st):
			label = styleMuted().Render(label + " ·locked")
		case m.sess.StepComplete(st):
			label = lipgloss.NewStyle().Foreground(colorOK).Render(label + " ✓")
		}
		parts = append(parts, label)
	}
	progress := fmt.Sprintf("%3.0f%%", m.sess.Stats().Progress*100)
	steps := strings.Join(parts, styleMuted().Render(" › ")) + "  " + styleMuted().Render(progress)

	return top + "\n" + steps + "\n"
}

func (m builderModel) viewFooter() string {
	errLine := ""
	if msg := firstError(m.sess.ValidationErrors()); msg != "" {
		errLine = styleError().Render("✗ " + msg)
	}
	status := m.minibuffer

	var help string
	switch {
	case m.confirmDiscard:
		help = "y/enter: discard   n/esc: keep editing"
	case m.form != nil && m.form.picking:
		help = "↑/↓: choose   enter: select   esc: cancel"
	case m.form != nil:
		help = helpLine(m.keys.NextField) + "   enter: save activity   esc: cancel"
	case m.sess.IsDragging():
		help = "↑/↓: move   enter: drop   esc: cancel drag"
	default:
		switch m.sess.CurrentStep() {
		case builder.StepDetails:
			help = helpLine(m.keys.NextField, m.keys.NextStep)
		case builder.StepActivities:
			help = helpLine(m.keys.Add, m.keys.Edit, m.keys.Duplicate, m.keys.Remove, m.keys.MoveUp, m.keys.MoveDown, m.keys.Drag)
		case builder.StepSettings:
			help = helpLine(m.keys.Toggle, m.keys.Increase, m.keys.Decrease)
		case builder.StepPreview:
			help = helpLine(m.keys.Up, m.keys.Down)
		}
		help += "   " + helpLine(m.keys.PrevStep, m.keys.NextStep, m.keys.Save, m.keys.Suspend, m.keys.Cancel)
	}
	return errLine + "\n" + status + "\n" + styleMuted().Render(help)
}

func (m builderModel) viewDetails() string {
	d := m.draft()
	label := func(s string, f detailsField) string {
		st := lipgloss.NewStyle().Width(14)
		if m.focus == f {
			st = st.Bold(true).Foreground(colorAccent)
		}
		return st.Render(s)
	}

	category := "none"
	if d.CategoryID != nil {
		category = *d.CategoryID
		if c, ok := m.cfg.Category(*d.CategoryID); ok {
			category = c.Name
		}
	}
	if len(m.cfg.Categories) == 0 {
		category = styleMuted().Render("none configured")
	} else {
		category = "‹ " + category + " ›"
	}

	titleHint := styleMuted().Render(fmt.Sprintf("%d/%d", len([]rune(strings.TrimSpace(d.Title))), builder.MaxTitleLength))

	return strings.Join([]string{
		label("Title", fieldTitle) + m.titleInput.View() + "  " + titleHint,
		"",
		label("Description", fieldDescription),
		m.descInput.View(),
		"",
		label("Category", fieldCategory) + category,
		label("Tags", fieldTags) + m.tagsInput.View(),
	}, "\n")
}

func (m builderModel) viewActivities() string {
	st := m.sess.Stats()
	heading := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Activities (%d)", st.ActivityCount)) +
		styleMuted().Render(" · "+publish.FormatMinutes(st.TotalDuration)+" total")
	lines := []string{heading, ""}

	xs := m.sess.PreviewOrder()
	if len(xs) == 0 {
		lines = append(lines, styleMuted().Render("No activities yet. Press a to add one."))
		return strings.Join(lines, "\n")
	}

	ds := m.sess.DragState()
	moving := -1
	if ds.IsDragging {
		moving = ds.DraggedIndex
		if ds.HasDropTarget {
			moving = ds.DropTargetIndex
		}
	}

	rows := m.visibleActivityRows()
	for i := m.listOffset; i < len(xs) && i < m.listOffset+rows; i++ {
		lines = append(lines, m.renderActivityRow(i, xs[i], i == moving))
	}
	return strings.Join(lines, "\n")
}

func (m builderModel) renderActivityRow(i int, a model.Activity, moving bool) string {
	title := strings.TrimSpace(a.Title)
	if title == "" {
		title = "(untitled)"
	}
	if a.Icon != "" {
		title = a.Icon + " " + title
	}
	row := fmt.Sprintf("%2d. %s  %s", i+1, title, publish.FormatMinutes(a.Duration))
	if a.Repetition != nil && a.Repetition.Count > 1 {
		row += fmt.Sprintf(" ×%d", a.Repetition.Count)
	}
	if n := len(a.Checklist); n > 0 {
		row += styleMuted().Render(fmt.Sprintf("  [%d]", n))
	}
	if !builder.ActivityValid(a) {
		row += "  " + styleError().Render("needs title and duration")
	}

	switch {
	case moving:
		return lipgloss.NewStyle().Foreground(colorDropTarget).Bold(true).Render("≡ " + row)
	case !m.sess.IsDragging() && i == m.cursor:
		return styleSelected().Render("› " + row)
	default:
		return "  " + row
	}
}

func (m builderModel) viewSettings() string {
	s := m.draft().Settings
	check := func(b bool) string {
		if b {
			return "[x]"
		}
		return "[ ]"
	}
	labels := map[settingsRow]string{
		settingRepeatable:    check(s.IsRepeatable) + " Repeat",
		settingIterations:    fmt.Sprintf("    Iterations: %d", s.MaxIterations),
		settingBreak:         fmt.Sprintf("    Break between iterations: %ds", s.BreakBetweenIterations),
		settingAutoStart:     check(s.AutoStart) + " Auto start",
		settingNotifications: check(s.NotificationsEnabled) + " Notifications",
		settingSound:         check(s.SoundEnabled) + " Sound",
		settingVibration:     check(s.VibrationEnabled) + " Vibration",
		settingBackground:    check(s.BackgroundExecution) + " Run in background",
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Render("Settings"), ""}
	for i, r := range settingsRows {
		ln := labels[r]
		if !s.IsRepeatable && (r == settingIterations || r == settingBreak) {
			ln = styleMuted().Render(ln)
		}
		if i == m.settingsCursor {
			ln = styleSelected().Render("› " + ln)
		} else {
			ln = "  " + ln
		}
		lines = append(lines, ln)
	}
	return strings.Join(lines, "\n")
}

func (m builderModel) viewPreview() string {
	d := m.draft()
	st := m.sess.Stats()

	summary := fmt.Sprintf("%d activities · %s per iteration · shortest %s · longest %s",
		st.ActivityCount, publish.FormatMinutes(st.TotalDuration), publish.FormatMinutes(st.Shortest), publish.FormatMinutes(st.Longest))
	if st.Iterations > 1 {
		summary += fmt.Sprintf(" · ×%d with %ds breaks · %s total", st.Iterations, st.BreakTime, publish.FormatMinutes(st.TotalWithIterations))
	}

	md := publish.RenderLoopMarkdown(d, publish.RenderOptions{Categories: m.cfg.Categories, IncludeSettings: true})
	rendered := renderMarkdown(md, m.width-2)

	lines := strings.Split(rendered, "\n")
	off := m.previewOffset
	if off > len(lines)-1 {
		off = len(lines) - 1
	}
	if off < 0 {
		off = 0
	}
	saveHint := styleMuted().Render("Not ready to save")
	if m.sess.CanSave() {
		saveHint = lipgloss.NewStyle().Foreground(colorOK).Render("Ready to save (ctrl+s)")
	} else if m.sess.IsValid() {
		saveHint = styleMuted().Render("No unsaved changes")
	}
	return styleMuted().Render(summary) + "  " + saveHint + "\n" + strings.Join(lines[off:], "\n")
}

func (m builderModel) viewConfirmDiscard() string {
	btn := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
	body := strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Render("Discard changes?"),
		"",
		"This loop has unsaved changes.",
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, styleAccent().Padding(0, 1).Render("Discard (y)"), " ", btn.Render("Keep editing (n)")),
	}, "\n")
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(1, 2).Render(body)
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, box)
}
