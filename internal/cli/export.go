package cli

import (
	"errors"
	"fmt"
	"strings"

	"loops-cli/internal/publish"
	"loops-cli/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		asHTML    bool
		asMD      bool
		outPath   string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "export <loop-id>",
		Short: "Export a loop as Markdown or HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if asHTML && asMD {
				return writeErr(cmd, errors.New("use only one of --html or --md"))
			}
			f := publish.FormatMarkdown
			if asHTML {
				f = publish.FormatHTML
			}

			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			l, err := s.GetLoop(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			opt := publish.RenderOptions{Categories: cfg.Categories, IncludeSettings: true}

			if strings.TrimSpace(outPath) == "" {
				content, err := publish.Render(*l, f, opt)
				if err != nil {
					return writeErr(cmd, err)
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}
			res, err := publish.WriteLoop(*l, f, outPath, publish.WriteOptions{Render: opt, Overwrite: overwrite})
			if err != nil {
				return writeErr(cmd, err)
			}
			app.log().Info("loop exported", "id", l.ID, "path", res.Written, "format", string(res.Format))
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "Export as a standalone HTML page")
	cmd.Flags().BoolVar(&asMD, "md", false, "Export as Markdown (default)")
	cmd.Flags().StringVar(&outPath, "out", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing --out file")
	return cmd
}
