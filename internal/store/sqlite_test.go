package store

import (
	"context"
	"errors"
	"testing"

	"loops-cli/internal/model"
)

func sampleLoop() model.Loop {
	cat := "work"
	return model.Loop{
		Title:      "Morning Routine",
		CategoryID: &cat,
		Tags:       []string{"am"},
		Activities: []model.Activity{
			{ID: "act-1", Title: "Stretch", Duration: 5},
			{ID: "act-2", Title: "Read", Duration: 20, Checklist: []model.ChecklistItem{{Text: "chapter"}}},
		},
		Settings: model.DefaultLoopSettings(),
	}
}

func TestSaveLoop_AssignsIDAndRoundTrips(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	saved, err := s.SaveLoop(ctx, sampleLoop())
	if err != nil {
		t.Fatalf("SaveLoop: %v", err)
	}
	if saved.ID == "" || saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Fatalf("expected id and timestamps, got %+v", saved)
	}

	got, err := s.GetLoop(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetLoop: %v", err)
	}
	if got.Title != "Morning Routine" || len(got.Activities) != 2 || got.Activities[1].Checklist[0].Text != "chapter" {
		t.Fatalf("unexpected loop: %+v", got)
	}
	if got.CategoryID == nil || *got.CategoryID != "work" {
		t.Fatalf("category not persisted: %+v", got.CategoryID)
	}
}

func TestSaveLoop_UpdateKeepsCreatedAt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	first, err := s.SaveLoop(ctx, sampleLoop())
	if err != nil {
		t.Fatalf("SaveLoop: %v", err)
	}
	first.Title = "Evening Routine"
	second, err := s.SaveLoop(ctx, first)
	if err != nil {
		t.Fatalf("SaveLoop (update): %v", err)
	}
	if second.ID != first.ID || !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("update changed identity: first=%+v second=%+v", first, second)
	}

	loops, err := s.ListLoops(ctx)
	if err != nil {
		t.Fatalf("ListLoops: %v", err)
	}
	if len(loops) != 1 || loops[0].Title != "Evening Routine" {
		t.Fatalf("unexpected list: %+v", loops)
	}

	evs, err := s.ReadEvents(ctx, 0)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evs))
	}
	types := map[string]bool{}
	for _, ev := range evs {
		types[ev.Type] = true
		if ev.EntityID != first.ID {
			t.Fatalf("unexpected entity: %+v", ev)
		}
	}
	if !types["loop.create"] || !types["loop.update"] {
		t.Fatalf("unexpected event types: %v", types)
	}
}

func TestListLoops_EmptyStore(t *testing.T) {
	t.Parallel()
	s := Store{Dir: t.TempDir()}
	loops, err := s.ListLoops(context.Background())
	if err != nil {
		t.Fatalf("ListLoops: %v", err)
	}
	if loops == nil || len(loops) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", loops)
	}
}

func TestGetLoop_NotFound(t *testing.T) {
	t.Parallel()
	s := Store{Dir: t.TempDir()}
	_, err := s.GetLoop(context.Background(), "loop-missing")
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "loop" || nf.ID != "loop-missing" {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDeleteLoop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	saved, err := s.SaveLoop(ctx, sampleLoop())
	if err != nil {
		t.Fatalf("SaveLoop: %v", err)
	}
	if err := s.DeleteLoop(ctx, saved.ID); err != nil {
		t.Fatalf("DeleteLoop: %v", err)
	}
	if _, err := s.GetLoop(ctx, saved.ID); err == nil {
		t.Fatalf("expected loop to be gone")
	}
	var nf NotFoundError
	if err := s.DeleteLoop(ctx, saved.ID); !errors.As(err, &nf) {
		t.Fatalf("second delete: expected NotFoundError, got %v", err)
	}

	evs, err := s.ReadEvents(ctx, 1)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("limit not applied: %d", len(evs))
	}
}

func TestStore_EmptyDir(t *testing.T) {
	t.Parallel()
	if _, err := (Store{}).ListLoops(context.Background()); err == nil {
		t.Fatalf("expected error for empty store dir")
	}
}
