package builder

import (
	"reflect"
	"testing"

	"loops-cli/internal/model"
)

func TestSubEditor_EditExisting(t *testing.T) {
	s := sessionWithActivities(t, "A", "B", "C")

	s.OpenActivityEditor(1)
	st := s.SubEditor()
	if !st.IsOpen || st.Editing == nil || st.Editing.Title != "B" || !st.HasIndex || st.Index != 1 {
		t.Fatalf("unexpected state: %+v", st)
	}
	if !s.IsEditingExisting() {
		t.Fatalf("expected edit mode")
	}

	a := s.SeedActivity()
	a.Title = "B edited"
	s.CommitActivityEditor(a)

	if got := titles(s.Activities()); !reflect.DeepEqual(got, []string{"A", "B edited", "C"}) {
		t.Fatalf("unexpected list: %v", got)
	}
	if s.SubEditorOpen() {
		t.Fatalf("commit should close")
	}
}

func TestSubEditor_IndexFollowsActivityAcrossReorder(t *testing.T) {
	s := sessionWithActivities(t, "A", "B", "C")
	s.OpenActivityEditor(0)
	s.ReorderActivities(0, 2)

	i, ok := s.EditingActivityIndex()
	if !ok || i != 2 {
		t.Fatalf("expected index 2, got %d %v", i, ok)
	}

	a := s.SeedActivity()
	a.Title = "A edited"
	s.CommitActivityEditor(a)
	if got := titles(s.Activities()); !reflect.DeepEqual(got, []string{"B", "C", "A edited"}) {
		t.Fatalf("wrote back to the wrong element: %v", got)
	}
}

func TestSubEditor_RemovedActivityIsNotResurrected(t *testing.T) {
	s := sessionWithActivities(t, "A", "B")
	s.OpenActivityEditor(1)
	s.RemoveActivity(1)

	if s.IsEditingExisting() {
		t.Fatalf("activity is gone; should not report edit mode")
	}
	s.CommitActivityEditor(model.Activity{Title: "ghost", Duration: 1})
	if got := titles(s.Activities()); !reflect.DeepEqual(got, []string{"A"}) {
		t.Fatalf("unexpected list: %v", got)
	}
}

func TestSubEditor_CreateFromTemplate(t *testing.T) {
	s := newTestSession(t)
	tmpl := &model.ActivityTemplate{ID: "tpl-med", Name: "Meditate", Duration: 10, Icon: "🧘", Checklist: []model.ChecklistItem{{Text: "breathe"}}}

	s.OpenNewActivity(tmpl)
	tmpl.Checklist[0].Text = "mutated"
	if s.IsEditingExisting() {
		t.Fatalf("expected create mode")
	}

	a := s.SeedActivity()
	if a.ID == "" || a.Title != "Meditate" || a.Duration != 10 || a.Icon != "🧘" || a.Checklist[0].Text != "breathe" {
		t.Fatalf("unexpected seed: %+v", a)
	}

	s.SetTemplate(&model.ActivityTemplate{ID: "tpl-run", Name: "Run", Title: "Morning run", Duration: 20})
	if got := s.SeedActivity(); got.Title != "Morning run" || got.Duration != 20 {
		t.Fatalf("template switch ignored: %+v", got)
	}
	s.SetTemplate(nil)
	if got := s.SeedActivity(); got.Title != "" || got.Duration != 0 {
		t.Fatalf("expected blank seed, got %+v", got)
	}

	s.CommitActivityEditor(model.Activity{Title: "Sit", Duration: 3})
	if got := titles(s.Activities()); !reflect.DeepEqual(got, []string{"Sit"}) {
		t.Fatalf("unexpected list: %v", got)
	}
}

func TestSubEditor_CloseWritesNothing(t *testing.T) {
	s := sessionWithActivities(t, "A")
	s.OpenActivityEditor(0)
	s.CloseActivityEditor()

	st := s.SubEditor()
	if st.IsOpen || st.Editing != nil || st.HasIndex || st.Template != nil {
		t.Fatalf("expected reset state: %+v", st)
	}
	if s.HasUnsavedChanges() {
		t.Fatalf("close must not mark dirty")
	}
}

func TestSubEditor_OpenOutOfRange(t *testing.T) {
	s := sessionWithActivities(t, "A")
	s.OpenActivityEditor(3)
	if s.SubEditorOpen() {
		t.Fatalf("out-of-range open should be ignored")
	}
}
