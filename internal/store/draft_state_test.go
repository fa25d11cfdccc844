package store

import (
	"errors"
	"os"
	"testing"

	"loops-cli/internal/builder"
	"loops-cli/internal/model"
)

func TestDraftSnapshot_SaveLoadClear(t *testing.T) {
	t.Parallel()
	s := Store{Dir: t.TempDir()}

	if _, err := s.LoadDraftSnapshot(); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}

	sess := builder.NewSession()
	sess.Initialize(&model.Loop{ID: "loop-1", Title: "Morning", Settings: model.DefaultLoopSettings()})
	sess.Patch(builder.SetDescription("wake up"))
	sess.SetStep(builder.StepActivities)

	if err := s.SaveDraftSnapshot(sess.Snapshot()); err != nil {
		t.Fatalf("SaveDraftSnapshot: %v", err)
	}
	snap, err := s.LoadDraftSnapshot()
	if err != nil {
		t.Fatalf("LoadDraftSnapshot: %v", err)
	}
	r := builder.Restore(*snap)
	if r.EditingLoopID() != "loop-1" || r.CurrentStep() != builder.StepActivities || !r.HasUnsavedChanges() {
		t.Fatalf("unexpected restored session: id=%q step=%v", r.EditingLoopID(), r.CurrentStep())
	}
	if r.Draft().Description != "wake up" {
		t.Fatalf("draft not restored: %+v", r.Draft())
	}

	if err := s.ClearDraftSnapshot(); err != nil {
		t.Fatalf("ClearDraftSnapshot: %v", err)
	}
	if err := s.ClearDraftSnapshot(); err != nil {
		t.Fatalf("ClearDraftSnapshot (missing): %v", err)
	}
	if _, err := s.LoadDraftSnapshot(); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft after clear, got %v", err)
	}
}

func TestDraftSnapshot_CorruptedIsMissing(t *testing.T) {
	t.Parallel()
	s := Store{Dir: t.TempDir()}
	if err := os.WriteFile(s.draftPath(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.LoadDraftSnapshot(); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}
}

func TestDraftSnapshot_InactiveSessionClears(t *testing.T) {
	t.Parallel()
	s := Store{Dir: t.TempDir()}
	sess := builder.NewSession()
	sess.Initialize(nil)
	if err := s.SaveDraftSnapshot(sess.Snapshot()); err != nil {
		t.Fatalf("SaveDraftSnapshot: %v", err)
	}
	sess.Clear()
	if err := s.SaveDraftSnapshot(sess.Snapshot()); err != nil {
		t.Fatalf("SaveDraftSnapshot (inactive): %v", err)
	}
	if _, err := os.Stat(s.draftPath()); !os.IsNotExist(err) {
		t.Fatalf("expected draft file removed, stat err=%v", err)
	}
}
