package tui

import (
	"io"
	"log/slog"

	"loops-cli/internal/builder"
	"loops-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Store   store.Store
	Config  *store.GlobalConfig
	Session *builder.Session
	Logger  *slog.Logger
}

type Outcome string

const (
	OutcomeSaved     Outcome = "saved"
	OutcomeSuspended Outcome = "suspended"
	OutcomeCancelled Outcome = "cancelled"
)

// Result reports how the builder exited. LoopID is set when Outcome is OutcomeSaved.
type Result struct {
	Outcome Outcome
	LoopID  string
}

// Run opens the builder on opts.Session and blocks until the user saves, suspends or cancels.
func Run(opts Options) (Result, error) {
	applyColorProfilePreference()
	applyBackgroundPreference()
	applyThemeName(opts.Config.ThemeName())

	m := newBuilderModel(opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return Result{}, err
	}
	if bm, ok := final.(builderModel); ok {
		return bm.result, nil
	}
	return Result{Outcome: OutcomeCancelled}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
