package tui

import (
	"strconv"
	"strings"

	"loops-cli/internal/builder"
	"loops-cli/internal/model"
	"loops-cli/internal/publish"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type templateItem struct {
	tmpl  *model.ActivityTemplate
	title string
	desc  string
}

func (i templateItem) Title() string       { return i.title }
func (i templateItem) Description() string { return i.desc }
func (i templateItem) FilterValue() string { return i.title }

type formField int

const (
	formTitle formField = iota
	formDuration
	formIcon
)

var formFields = []formField{formTitle, formDuration, formIcon}

// activityForm is the nested activity editor. New activities start on a template picker.
type activityForm struct {
	picking bool
	picker  list.Model

	seed     model.Activity
	title    textinput.Model
	duration textinput.Model
	icon     textinput.Model
	focus    formField
	err      string
}

func newTemplatePicker(templates []model.ActivityTemplate, width, height int) list.Model {
	items := make([]list.Item, 0, len(templates)+1)
	items = append(items, templateItem{title: "Blank activity", desc: "Start from scratch"})
	for i := range templates {
		t := templates[i]
		desc := publish.FormatMinutes(t.Duration)
		if t.Icon != "" {
			desc = t.Icon + "  " + desc
		}
		items = append(items, templateItem{tmpl: &t, title: t.Name, desc: desc})
	}
	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Start from"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func newActivityForm(seed model.Activity, width int) *activityForm {
	f := &activityForm{}
	f.fill(seed, width)
	return f
}

func (f *activityForm) fill(seed model.Activity, width int) {
	w := width - 20
	if w < 10 {
		w = 10
	}
	f.seed = seed

	f.title = textinput.New()
	f.title.Prompt = ""
	f.title.Placeholder = "Activity title"
	f.title.Width = w
	f.title.SetValue(seed.Title)

	f.duration = textinput.New()
	f.duration.Prompt = ""
	f.duration.Placeholder = "minutes"
	f.duration.Width = 6
	f.duration.CharLimit = 4
	if seed.Duration > 0 {
		f.duration.SetValue(strconv.Itoa(seed.Duration))
	}

	f.icon = textinput.New()
	f.icon.Prompt = ""
	f.icon.Placeholder = "emoji (optional)"
	f.icon.Width = 8
	f.icon.SetValue(seed.Icon)

	f.picking = false
	f.err = ""
	f.setFocus(formTitle)
}

func (f *activityForm) setFocus(ff formField) {
	f.focus = ff
	f.title.Blur()
	f.duration.Blur()
	f.icon.Blur()
	switch ff {
	case formTitle:
		f.title.Focus()
	case formDuration:
		f.duration.Focus()
	case formIcon:
		f.icon.Focus()
	}
}

func (f *activityForm) cycleFocus(delta int) {
	i := (int(f.focus) + delta + len(formFields)) % len(formFields)
	f.setFocus(formFields[i])
}

// value builds the activity from the inputs. Seed fields the form doesn't edit are kept.
func (f *activityForm) value() (model.Activity, string) {
	a := f.seed.Clone()
	a.Title = strings.TrimSpace(f.title.Value())
	a.Icon = strings.TrimSpace(f.icon.Value())
	raw := strings.TrimSpace(f.duration.Value())
	if raw == "" {
		return a, "Duration is required"
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return a, "Duration must be a whole number of minutes"
	}
	a.Duration = n
	if !builder.ActivityValid(a) {
		return a, "Activity needs a title and a duration above 0"
	}
	return a, ""
}

func (m builderModel) openNewActivityForm() builderModel {
	m.sess.OpenNewActivity(nil)
	f := &activityForm{picking: true}
	f.picker = newTemplatePicker(m.cfg.Templates(), m.width-4, m.bodyHeight())
	m.form = f
	return m
}

func (m builderModel) openEditActivityForm(i int) builderModel {
	m.sess.OpenActivityEditor(i)
	if !m.sess.SubEditorOpen() {
		return m
	}
	m.form = newActivityForm(m.sess.SeedActivity(), m.width)
	return m
}

func (m builderModel) closeActivityForm() builderModel {
	m.sess.CloseActivityEditor()
	m.form = nil
	return m
}

func (m builderModel) updateActivityForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form

	if f.picking {
		switch {
		case matches(msg, m.keys.Cancel):
			return m.closeActivityForm(), nil
		case msg.String() == "enter":
			var tmpl *model.ActivityTemplate
			if it, ok := f.picker.SelectedItem().(templateItem); ok {
				tmpl = it.tmpl
			}
			m.sess.SetTemplate(tmpl)
			f.fill(m.sess.SeedActivity(), m.width)
			return m, nil
		}
		var cmd tea.Cmd
		f.picker, cmd = f.picker.Update(msg)
		return m, cmd
	}

	switch {
	case matches(msg, m.keys.Cancel):
		return m.closeActivityForm(), nil
	case matches(msg, m.keys.NextField):
		f.cycleFocus(1)
		return m, nil
	case matches(msg, m.keys.PrevField):
		f.cycleFocus(-1)
		return m, nil
	case msg.String() == "enter":
		a, problem := f.value()
		if problem != "" {
			f.err = problem
			return m, nil
		}
		editing := m.sess.IsEditingExisting()
		m.sess.CommitActivityEditor(a)
		m.form = nil
		if editing {
			m.flash("Activity updated")
		} else {
			m.cursor = len(m.sess.Activities()) - 1
			m.flash("Activity added")
		}
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case formTitle:
		f.title, cmd = f.title.Update(msg)
	case formDuration:
		f.duration, cmd = f.duration.Update(msg)
	case formIcon:
		f.icon, cmd = f.icon.Update(msg)
	}
	f.err = ""
	return m, cmd
}

func (m builderModel) viewActivityForm() string {
	f := m.form
	if f.picking {
		return f.picker.View()
	}

	heading := "New activity"
	if m.sess.IsEditingExisting() {
		heading = "Edit activity"
		if i, ok := m.sess.EditingActivityIndex(); ok {
			heading += " #" + strconv.Itoa(i+1)
		}
	}
	if t := m.sess.SubEditor().Template; t != nil {
		heading += styleMuted().Render("  from " + t.Name)
	}

	label := func(s string, ff formField) string {
		st := lipgloss.NewStyle().Width(12)
		if f.focus == ff {
			st = st.Bold(true).Foreground(colorAccent)
		}
		return st.Render(s)
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(heading),
		"",
		label("Title", formTitle) + f.title.View(),
		label("Minutes", formDuration) + f.duration.View(),
		label("Icon", formIcon) + f.icon.View(),
	}
	if n := len(f.seed.Checklist); n > 0 {
		lines = append(lines, "", styleMuted().Render("Checklist: "+strconv.Itoa(n)+" items (kept)"))
	}
	if f.err != "" {
		lines = append(lines, "", styleError().Render(f.err))
	}
	return strings.Join(lines, "\n")
}
