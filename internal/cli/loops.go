package cli

import (
	"fmt"
	"strings"

	"loops-cli/internal/builder"
	"loops-cli/internal/publish"
	"loops-cli/internal/store"

	"github.com/spf13/cobra"
)

// loopSummary is the list row shape: enough to pick a loop without the full activity payload.
type loopSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	CategoryID    string `json:"categoryId,omitempty"`
	Activities    int    `json:"activities"`
	TotalMinutes  int    `json:"totalMinutes"`
	UpdatedAtUnix int64  `json:"updatedAt"`
}

func newListCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored loops (most recently updated first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			loops, err := s.ListLoops(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			category = strings.TrimSpace(category)
			out := make([]loopSummary, 0, len(loops))
			for _, l := range loops {
				row := loopSummary{
					ID:            l.ID,
					Title:         l.Title,
					Activities:    len(l.Activities),
					UpdatedAtUnix: l.UpdatedAt.Unix(),
				}
				if l.CategoryID != nil {
					row.CategoryID = *l.CategoryID
				}
				if category != "" && row.CategoryID != category {
					continue
				}
				for _, a := range l.Activities {
					row.TotalMinutes += a.Duration
				}
				out = append(out, row)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only loops in this category id")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	var asMarkdown bool

	cmd := &cobra.Command{
		Use:   "show <loop-id>",
		Short: "Show a loop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			l, err := s.GetLoop(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if asMarkdown {
				cfg, err := store.LoadConfig()
				if err != nil {
					return writeErr(cmd, err)
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), publish.RenderLoopMarkdown(*l, publish.RenderOptions{
					Categories:      cfg.Categories,
					IncludeSettings: true,
				}))
				return err
			}

			sess := builder.NewSession()
			sess.Initialize(l)
			return writeOut(cmd, app, map[string]any{
				"data": l,
				"meta": map[string]any{"stats": sess.Stats(), "valid": sess.IsValid()},
			})
		},
	}
	cmd.Flags().BoolVar(&asMarkdown, "md", false, "Print as Markdown instead of the JSON envelope")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <loop-id>",
		Short: "Delete a loop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if err := s.DeleteLoop(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": true}})
		},
	}
}

func newDuplicateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <loop-id>",
		Short: "Copy a loop under a new id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			src, err := s.GetLoop(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			cp := src.Clone()
			cp.ID = ""

			sess := builder.NewSession()
			sess.Initialize(&cp)
			sess.Patch(builder.SetTitle(strings.TrimSpace(src.Title) + " (Copy)"))
			if errs := sess.Validate(); !errs.Empty() {
				return writeErr(cmd, ValidationError{Errors: errs})
			}
			saved, err := s.SaveLoop(cmd.Context(), *sess.Draft())
			if err != nil {
				return writeErr(cmd, err)
			}
			sess.MarkSaved()
			return writeOut(cmd, app, map[string]any{"data": saved})
		},
	}
}
