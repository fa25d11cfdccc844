package builder

import (
	"strings"
	"testing"

	"loops-cli/internal/model"
)

func validLoop() *model.Loop {
	return &model.Loop{
		Title:      "Morning Routine",
		Activities: []model.Activity{{ID: "a1", Title: "Stretch", Duration: 5}},
		Settings:   model.DefaultLoopSettings(),
	}
}

func TestValidate_Title(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "empty", title: "", want: MsgTitleRequired},
		{name: "spaces", title: "   ", want: MsgTitleRequired},
		{name: "len_2", title: "AM", want: MsgTitleTooShort},
		{name: "len_2_padded", title: "  AM  ", want: MsgTitleTooShort},
		{name: "len_3", title: "Run", want: ""},
		{name: "len_50", title: strings.Repeat("a", 50), want: ""},
		{name: "len_100", title: strings.Repeat("a", 100), want: ""},
		{name: "len_101", title: strings.Repeat("a", 101), want: MsgTitleTooLong},
		{name: "len_100_trailing_spaces", title: strings.Repeat("a", 100) + "  ", want: MsgTitleTooLong},
		{name: "len_98_padded", title: " " + strings.Repeat("a", 98) + " ", want: ""},
		{name: "multibyte_runes", title: "ééé", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLoop()
			l.Title = tt.title
			errs := Validate(l)
			got, ok := errs[FieldTitle]
			if tt.want == "" {
				if ok {
					t.Fatalf("expected no title error, got %q", got)
				}
				return
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
			if errs.Has(FieldActivities) || errs.Has(FieldGeneral) {
				t.Fatalf("unexpected extra errors: %v", errs)
			}
		})
	}
}

func TestValidate_Activities(t *testing.T) {
	tests := []struct {
		name string
		xs   []model.Activity
		want string
	}{
		{name: "nil", xs: nil, want: MsgActivitiesRequired},
		{name: "empty", xs: []model.Activity{}, want: MsgActivitiesRequired},
		{name: "zero_duration", xs: []model.Activity{{ID: "a", Title: "A", Duration: 5}, {ID: "b", Title: "B", Duration: 0}}, want: MsgActivitiesInvalid},
		{name: "negative_duration", xs: []model.Activity{{ID: "a", Title: "A", Duration: -1}}, want: MsgActivitiesInvalid},
		{name: "blank_title", xs: []model.Activity{{ID: "a", Title: " ", Duration: 1}}, want: MsgActivitiesInvalid},
		{name: "ok", xs: []model.Activity{{ID: "a", Title: "A", Duration: 1}}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLoop()
			l.Activities = tt.xs
			got, ok := Validate(l)[FieldActivities]
			if tt.want == "" {
				if ok {
					t.Fatalf("expected no activities error, got %q", got)
				}
				return
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValidate_RulesAreIndependent(t *testing.T) {
	errs := Validate(&model.Loop{Title: "", Activities: nil})
	if errs[FieldTitle] != MsgTitleRequired || errs[FieldActivities] != MsgActivitiesRequired {
		t.Fatalf("expected both errors, got %v", errs)
	}
}

func TestValidate_NilDraft(t *testing.T) {
	errs := Validate(nil)
	if len(errs) != 1 || errs[FieldGeneral] != MsgNoDraft {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	l := validLoop()
	l.Title = " x "
	before := l.Clone()
	Validate(l)
	if l.Title != before.Title || len(l.Activities) != len(before.Activities) {
		t.Fatalf("validate mutated its input")
	}
}

func TestValidate_SettingsNotChecked(t *testing.T) {
	l := validLoop()
	l.Settings.MaxIterations = 0
	l.Settings.BreakBetweenIterations = -10
	if errs := Validate(l); !errs.Empty() {
		t.Fatalf("validator should only check title/activities, got %v", errs)
	}
}
