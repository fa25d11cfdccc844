package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"loops-cli/internal/builder"
	"loops-cli/internal/store"
	"loops-cli/internal/tui"

	"github.com/spf13/cobra"
)

type builderLaunch struct {
	loopID      string
	resume      bool
	resumeIfAny bool
}

func newNewCmd(app *App) *cobra.Command {
	var resume bool
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Open the builder for a new loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuilder(cmd, app, builderLaunch{resume: resume})
		},
	}
	cmd.Flags().BoolVar(&resume, "resume", false, "Continue the interrupted session instead")
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var resume bool
	cmd := &cobra.Command{
		Use:   "edit <loop-id>",
		Short: "Open the builder on an existing loop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuilder(cmd, app, builderLaunch{loopID: args[0], resume: resume})
		},
	}
	cmd.Flags().BoolVar(&resume, "resume", false, "Continue the interrupted session if it edits this loop")
	return cmd
}

// prepareSession builds the Session the builder opens with.
func prepareSession(cmd *cobra.Command, s store.Store, opt builderLaunch) (*builder.Session, error) {
	if opt.resume || opt.resumeIfAny {
		snap, err := s.LoadDraftSnapshot()
		switch {
		case err == nil && (opt.loopID == "" || snap.EditingLoopID == opt.loopID):
			return builder.Restore(*snap), nil
		case err == nil:
			return nil, fmt.Errorf("saved draft edits %q, not %q (discard it with `loops draft discard`)", snap.EditingLoopID, opt.loopID)
		case errors.Is(err, store.ErrNoDraft):
			if opt.resume {
				return nil, store.ErrNoDraft
			}
		default:
			return nil, err
		}
	}

	sess := builder.NewSession()
	if opt.loopID == "" {
		sess.Initialize(nil)
		return sess, nil
	}
	l, err := s.GetLoop(cmd.Context(), opt.loopID)
	if err != nil {
		return nil, err
	}
	sess.Initialize(l)
	return sess, nil
}

func runBuilder(cmd *cobra.Command, app *App, opt builderLaunch) error {
	s, err := loadStore(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return writeErr(cmd, err)
	}
	sess, err := prepareSession(cmd, s, opt)
	if err != nil {
		return writeErr(cmd, err)
	}

	// The TUI owns the terminal; logs go to a file in the store dir.
	if err := s.Ensure(); err != nil {
		return writeErr(cmd, err)
	}
	lf, err := os.OpenFile(s.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer lf.Close()
	lvl, _ := parseLogLevel(app.LogLevel)
	logger := newLogger(lf, lvl).With(slog.String("component", "tui"))
	s.Logger = logger

	res, err := tui.Run(tui.Options{
		Store:   s,
		Config:  cfg,
		Session: sess,
		Logger:  logger,
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	switch res.Outcome {
	case tui.OutcomeSaved:
		return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": res.LoopID, "outcome": string(res.Outcome)}})
	case tui.OutcomeSuspended:
		fmt.Fprintln(cmd.ErrOrStderr(), "draft saved; resume with `loops new --resume`")
	}
	return nil
}
