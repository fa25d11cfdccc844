package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"loops-cli/internal/format"
	"loops-cli/internal/store"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
	LogLevel   string

	logger *slog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "loops",
		Short:        "Build and manage routine loops (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the interactive builder (resumes an interrupted session if one exists)
  loops

  # Scriptable creation
  loops create --title "Morning Routine" --activity "Stretch:5" --activity "Read:20"

  # Direct loop lookup (shortcut for: loops show <loop-id>)
  loops loop-abcd1234
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive builder.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runBuilder(cmd, app, builderLaunch{resumeIfAny: true})
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		lvl, err := parseLogLevel(app.LogLevel)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.logger = newLogger(cmd.ErrOrStderr(), lvl)
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("LOOPS_DIR", ""), "Path to store dir (default: nearest .loops directory, else ~/.loops/data)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("LOOPS_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("LOOPS_LOG_LEVEL", "warn"), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newDuplicateCmd(app))
	cmd.AddCommand(newCreateCmd(app))
	cmd.AddCommand(newNewCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newTemplatesCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newDraftCmd(app))
	cmd.AddCommand(newEventsCmd(app))

	return cmd
}

// loadStore resolves the store directory: --dir / $LOOPS_DIR, else store.DefaultDir().
func loadStore(app *App) (store.Store, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}
	return store.Store{Dir: dir, Logger: app.log()}, nil
}

func (app *App) log() *slog.Logger {
	if app.logger != nil {
		return app.logger
	}
	return newLogger(io.Discard, slog.LevelError)
}

func parseLogLevel(v string) (slog.Level, error) {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "warn", "warning":
		lvl = slog.LevelWarn
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		return lvl, fmt.Errorf("invalid --log-level %q (want debug|info|warn|error)", v)
	}
	return lvl, nil
}

func newLogger(w io.Writer, lvl slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
