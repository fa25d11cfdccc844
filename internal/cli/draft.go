package cli

import (
	"errors"

	"loops-cli/internal/builder"
	"loops-cli/internal/store"

	"github.com/spf13/cobra"
)

func newDraftCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Inspect or discard the interrupted builder session",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resumable draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			snap, err := s.LoadDraftSnapshot()
			if errors.Is(err, store.ErrNoDraft) {
				return writeOut(cmd, app, map[string]any{"data": nil})
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			sess := builder.Restore(*snap)
			return writeOut(cmd, app, map[string]any{
				"data": snap,
				"meta": map[string]any{
					"stats":   sess.Stats(),
					"canSave": sess.CanSave(),
					"editing": sess.IsEditing(),
				},
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "discard",
		Short: "Delete the resumable draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, loadErr := s.LoadDraftSnapshot()
			if err := s.ClearDraftSnapshot(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"discarded": loadErr == nil}})
		},
	})
	return cmd
}
