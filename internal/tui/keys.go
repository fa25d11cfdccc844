package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	NextField key.Binding
	PrevField key.Binding
	NextStep  key.Binding
	PrevStep  key.Binding
	Save      key.Binding
	Suspend   key.Binding
	Cancel    key.Binding

	Up        key.Binding
	Down      key.Binding
	Add       key.Binding
	Edit      key.Binding
	Duplicate key.Binding
	Remove    key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Drag      key.Binding
	Drop      key.Binding

	Toggle   key.Binding
	Increase key.Binding
	Decrease key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		NextStep:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next step")),
		PrevStep:  key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev step")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Suspend:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "suspend")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:      key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter/e", "edit")),
		Duplicate: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "duplicate")),
		Remove:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		MoveUp:    key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown:  key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Drag:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "drag")),
		Drop:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),

		Toggle:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
		Increase: key.NewBinding(key.WithKeys("+", "=", "right", "l"), key.WithHelp("+", "increase")),
		Decrease: key.NewBinding(key.WithKeys("-", "left", "h"), key.WithHelp("-", "decrease")),
	}
}

// helpLine renders "key: desc" pairs separated by three spaces.
func helpLine(bs ...key.Binding) string {
	parts := make([]string, 0, len(bs))
	for _, b := range bs {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, "   ")
}

func matches(msg tea.KeyMsg, bs ...key.Binding) bool {
	return key.Matches(msg, bs...)
}
