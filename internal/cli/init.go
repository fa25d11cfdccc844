package cli

import (
	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize local storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Init(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			app.log().Info("store initialized", "dir", s.Dir)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"dir": s.Dir}})
		},
	}
}
