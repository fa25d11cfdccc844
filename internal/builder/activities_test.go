package builder

import (
	"reflect"
	"sort"
	"testing"

	"loops-cli/internal/model"
)

func sessionWithActivities(t *testing.T, titles ...string) *Session {
	t.Helper()
	s := newTestSession(t)
	xs := make([]model.Activity, 0, len(titles))
	for _, title := range titles {
		xs = append(xs, model.Activity{ID: "id-" + title, Title: title, Duration: 5})
	}
	s.Patch(SetTitle("Routine"), SetActivities(xs))
	s.MarkSaved()
	return s
}

func titles(xs []model.Activity) []string {
	out := make([]string, 0, len(xs))
	for _, a := range xs {
		out = append(out, a.Title)
	}
	return out
}

func TestAddActivity(t *testing.T) {
	s := newTestSession(t)
	s.Validate()

	s.AddActivity(model.Activity{Title: "Stretch", Duration: 5})
	s.AddActivity(model.Activity{ID: "fixed", Title: "Run", Duration: 20})
	s.AddActivity(model.Activity{ID: "fixed", Title: "Walk", Duration: 10})

	xs := s.Activities()
	if got := titles(xs); !reflect.DeepEqual(got, []string{"Stretch", "Run", "Walk"}) {
		t.Fatalf("unexpected order: %v", got)
	}
	if xs[0].ID == "" {
		t.Fatalf("expected generated id")
	}
	if xs[1].ID != "fixed" || xs[2].ID == "fixed" {
		t.Fatalf("ids must stay unique: %q %q", xs[1].ID, xs[2].ID)
	}
	if !s.HasUnsavedChanges() {
		t.Fatalf("expected dirty")
	}
	if s.ValidationErrors().Has(FieldActivities) {
		t.Fatalf("expected activities error cleared")
	}
}

func TestUpdateRemove_OutOfRangeIsNoop(t *testing.T) {
	s := sessionWithActivities(t, "A", "B")

	for _, i := range []int{-1, 2, 99} {
		s.UpdateActivity(i, model.Activity{Title: "Z", Duration: 1})
		s.RemoveActivity(i)
		s.DuplicateActivity(i)
	}
	if got := titles(s.Activities()); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("list changed: %v", got)
	}
	if s.HasUnsavedChanges() {
		t.Fatalf("out-of-range calls must not mark dirty")
	}

	s.UpdateActivity(1, model.Activity{ID: "id-B", Title: "B2", Duration: 3})
	s.RemoveActivity(0)
	if got := titles(s.Activities()); !reflect.DeepEqual(got, []string{"B2"}) {
		t.Fatalf("unexpected list: %v", got)
	}
	if !s.HasUnsavedChanges() {
		t.Fatalf("expected dirty")
	}
}

func TestDuplicateActivity(t *testing.T) {
	s := sessionWithActivities(t, "A", "B", "C")
	before := s.Activities()

	s.DuplicateActivity(1)

	xs := s.Activities()
	if len(xs) != len(before)+1 {
		t.Fatalf("expected length %d, got %d", len(before)+1, len(xs))
	}
	if xs[2].Title != "B (Copy)" || xs[2].Duration != before[1].Duration {
		t.Fatalf("unexpected duplicate: %+v", xs[2])
	}
	for _, a := range before {
		if a.ID == xs[2].ID {
			t.Fatalf("duplicate reused id %q", a.ID)
		}
	}
	if got := titles(xs); !reflect.DeepEqual(got, []string{"A", "B", "B (Copy)", "C"}) {
		t.Fatalf("unexpected order: %v", got)
	}
	if !s.HasUnsavedChanges() {
		t.Fatalf("expected dirty")
	}
}

func TestDuplicateActivity_DeepCopiesExtras(t *testing.T) {
	s := newTestSession(t)
	s.AddActivity(model.Activity{
		ID: "a", Title: "Pushups", Duration: 2,
		Icon:       "💪",
		Repetition: &model.Repetition{Count: 3, RestSeconds: 30},
		Checklist:  []model.ChecklistItem{{Text: "warm up"}},
	})
	s.DuplicateActivity(0)

	xs := s.Activities()
	if xs[1].Icon != "💪" || xs[1].Repetition == nil || xs[1].Repetition.Count != 3 || len(xs[1].Checklist) != 1 {
		t.Fatalf("extras not carried over: %+v", xs[1])
	}
	s.UpdateActivity(1, model.Activity{ID: xs[1].ID, Title: "Other", Duration: 1})
	if got := s.Activities()[0]; got.Repetition == nil || got.Checklist[0].Text != "warm up" {
		t.Fatalf("original changed: %+v", got)
	}
}

func TestReorderActivities_PreservesMultiset(t *testing.T) {
	base := []string{"A", "B", "C", "D", "E"}
	for i := range base {
		for j := range base {
			if i == j {
				continue
			}
			s := sessionWithActivities(t, base...)
			moved := s.Activities()[i]

			s.ReorderActivities(i, j)

			xs := s.Activities()
			if len(xs) != len(base) {
				t.Fatalf("reorder(%d,%d): length %d", i, j, len(xs))
			}
			if xs[j].ID != moved.ID {
				t.Fatalf("reorder(%d,%d): expected %s at %d, got %v", i, j, moved.Title, j, titles(xs))
			}
			got := titles(xs)
			sort.Strings(got)
			if !reflect.DeepEqual(got, base) {
				t.Fatalf("reorder(%d,%d): multiset changed: %v", i, j, got)
			}
			if !s.HasUnsavedChanges() {
				t.Fatalf("reorder(%d,%d): expected dirty", i, j)
			}
		}
	}
}

func TestReorderActivities_SameIndexIsNoop(t *testing.T) {
	s := sessionWithActivities(t, "A", "B", "C")
	s.ReorderActivities(1, 1)
	if got := titles(s.Activities()); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Fatalf("list changed: %v", got)
	}
	if s.HasUnsavedChanges() {
		t.Fatalf("same-index reorder must not mark dirty")
	}
}

func TestReorderActivities_BadIndicesDoNotPanic(t *testing.T) {
	s := sessionWithActivities(t, "A", "B")
	s.ReorderActivities(-1, 0)
	s.ReorderActivities(0, 5)
	if got := titles(s.Activities()); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("list changed: %v", got)
	}
}
