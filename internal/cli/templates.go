package cli

import (
	"loops-cli/internal/model"
	"loops-cli/internal/store"

	"github.com/spf13/cobra"
)

func newTemplatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Activity templates (from config.json)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List activity templates (built-ins when none are configured)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": cfg.Templates(),
				"meta": map[string]any{"builtin": len(cfg.ActivityTemplates) == 0},
			})
		},
	})
	return cmd
}

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Loop categories (from config.json)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			out := cfg.Categories
			if out == nil {
				out = []model.Category{}
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	})
	return cmd
}
