package cli

import (
	"fmt"
	"strconv"
	"strings"

	"loops-cli/internal/builder"
	"loops-cli/internal/model"
	"loops-cli/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// activityListFlag collects repeated --activity "Title:minutes" values.
type activityListFlag []model.Activity

var _ pflag.Value = (*activityListFlag)(nil)

func (f *activityListFlag) String() string {
	if f == nil || len(*f) == 0 {
		return ""
	}
	parts := make([]string, 0, len(*f))
	for _, a := range *f {
		parts = append(parts, a.Title+":"+strconv.Itoa(a.Duration))
	}
	return strings.Join(parts, ",")
}

func (f *activityListFlag) Set(v string) error {
	a, err := parseActivitySpec(v)
	if err != nil {
		return err
	}
	*f = append(*f, a)
	return nil
}

func (f *activityListFlag) Type() string { return "title:minutes" }

// parseActivitySpec parses "Title:minutes". The last colon separates the duration so titles
// may contain colons. Duration bounds are left to the validator.
func parseActivitySpec(v string) (model.Activity, error) {
	i := strings.LastIndex(v, ":")
	if i < 0 {
		return model.Activity{}, fmt.Errorf("invalid activity %q (want Title:minutes)", v)
	}
	title := strings.TrimSpace(v[:i])
	n, err := strconv.Atoi(strings.TrimSpace(v[i+1:]))
	if err != nil {
		return model.Activity{}, fmt.Errorf("invalid activity minutes in %q: %w", v, err)
	}
	return model.Activity{Title: title, Duration: n}, nil
}

func newCreateCmd(app *App) *cobra.Command {
	var (
		title       string
		description string
		tags        []string
		category    string
		activities  activityListFlag
		templateIDs []string
		repeat      int
		breakSecs   int
		autoStart   bool
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a loop non-interactively",
		Example: strings.TrimSpace(`
  loops create --title "Morning Routine" --activity "Stretch:5" --activity "Read:20"
  loops create --title "Deep work" --template tpl-focus --template tpl-break --repeat 4 --break 60
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}

			sess := builder.NewSession()
			sess.Initialize(nil)

			settings := model.DefaultLoopSettings()
			if repeat > 1 {
				settings.IsRepeatable = true
				settings.MaxIterations = repeat
			}
			settings.BreakBetweenIterations = breakSecs
			settings.AutoStart = autoStart

			fields := []builder.Field{
				builder.SetTitle(title),
				builder.SetDescription(description),
				builder.SetTags(cleanTags(tags)),
				builder.SetSettings(settings),
			}
			if category = strings.TrimSpace(category); category != "" {
				if _, ok := cfg.Category(category); !ok {
					return writeErr(cmd, store.NotFoundError{Kind: "category", ID: category})
				}
				fields = append(fields, builder.SetCategory(category))
			}
			sess.Patch(fields...)

			// Templates go through the sub-editor the same way the TUI uses it.
			templates := cfg.Templates()
			for _, id := range templateIDs {
				tmpl, ok := findTemplate(templates, id)
				if !ok {
					return writeErr(cmd, store.NotFoundError{Kind: "template", ID: id})
				}
				sess.OpenNewActivity(&tmpl)
				sess.CommitActivityEditor(sess.SeedActivity())
			}
			for _, a := range activities {
				sess.AddActivity(a)
			}

			if errs := sess.Validate(); !errs.Empty() {
				return writeErr(cmd, ValidationError{Errors: errs})
			}
			if dryRun {
				return writeOut(cmd, app, map[string]any{"data": sess.Draft(), "meta": map[string]any{"stats": sess.Stats(), "dryRun": true}})
			}

			s, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			saved, err := s.SaveLoop(cmd.Context(), *sess.Draft())
			if err != nil {
				return writeErr(cmd, err)
			}
			sess.MarkSaved()
			return writeOut(cmd, app, map[string]any{"data": saved})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Loop title (3-100 characters)")
	cmd.Flags().StringVar(&description, "description", "", "Loop description")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().StringVar(&category, "category", "", "Category id (from config)")
	cmd.Flags().Var(&activities, "activity", "Activity as Title:minutes (repeatable)")
	cmd.Flags().StringArrayVar(&templateIDs, "template", nil, "Add an activity from a template id (repeatable)")
	cmd.Flags().IntVar(&repeat, "repeat", 1, "Number of iterations (>1 makes the loop repeatable)")
	cmd.Flags().IntVar(&breakSecs, "break", 0, "Break between iterations, in seconds")
	cmd.Flags().BoolVar(&autoStart, "auto-start", false, "Start automatically")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and print the draft without saving")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

// cleanTags trims tags and drops empty ones. Order and duplicates are kept.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func findTemplate(xs []model.ActivityTemplate, id string) (model.ActivityTemplate, bool) {
	id = strings.TrimSpace(id)
	for _, t := range xs {
		if t.ID == id {
			return t, true
		}
	}
	return model.ActivityTemplate{}, false
}
