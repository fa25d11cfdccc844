// Package builder implements the Loop draft-editing session: a four-step wizard over one
// in-memory draft, with list editing, drag-and-drop reordering, a nested activity editor,
// validation and read-only derived views.
//
// A Session is owned by one UI at a time and is not safe for concurrent use.
// Every operation is synchronous; malformed indices are ignored rather than reported.
package builder

import (
	"strings"

	"loops-cli/internal/model"
)

type Session struct {
	draft         *model.Loop
	editingLoopID string
	step          Step
	unsaved       bool
	errors        ValidationErrors

	drag dragState
	sub  subEditorState

	newID func() string
}

type Option func(*Session)

// WithIDGenerator overrides the activity ID generator (tests use a deterministic one).
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		errors: ValidationErrors{},
		newID:  NewActivityID,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewBlankLoop is the draft used when creating a loop from scratch.
func NewBlankLoop() model.Loop {
	return model.Loop{
		Tags:       []string{},
		Activities: []model.Activity{},
		Settings:   model.DefaultLoopSettings(),
	}
}

// Initialize starts a session. With existing != nil the draft is a deep copy of it and the
// session edits existing.ID (when set); otherwise the draft is NewBlankLoop().
func (s *Session) Initialize(existing *model.Loop) {
	var d model.Loop
	s.editingLoopID = ""
	if existing != nil {
		d = existing.Clone()
		d.Settings = d.Settings.Normalize()
		s.editingLoopID = strings.TrimSpace(existing.ID)
	} else {
		d = NewBlankLoop()
	}
	s.draft = &d
	s.step = StepDetails
	s.unsaved = false
	s.errors = ValidationErrors{}
	s.drag = dragState{}
	s.sub = subEditorState{}
}

func (s *Session) Active() bool { return s.draft != nil }

func (s *Session) IsEditing() bool { return s.editingLoopID != "" }

func (s *Session) EditingLoopID() string { return s.editingLoopID }

func (s *Session) CurrentStep() Step { return s.step }

func (s *Session) HasUnsavedChanges() bool { return s.unsaved }

// ValidationErrors returns a copy of the errors stored by the last Validate (minus any
// optimistically cleared by Patch/AddActivity).
func (s *Session) ValidationErrors() ValidationErrors { return s.errors.clone() }

// Draft returns a deep copy of the draft, or nil when no session is active.
func (s *Session) Draft() *model.Loop {
	if s.draft == nil {
		return nil
	}
	d := s.draft.Clone()
	return &d
}

// Patch shallow-merges fields into the draft and marks it dirty.
//
// Patching the title clears the title error and patching the activities clears the
// activities error. Nothing is revalidated: remaining errors are stale until Validate.
func (s *Session) Patch(fields ...Field) {
	if s.draft == nil || len(fields) == 0 {
		return
	}
	for _, f := range fields {
		if f.apply == nil {
			continue
		}
		f.apply(s.draft)
		switch f.name {
		case FieldTitle:
			delete(s.errors, FieldTitle)
		case FieldActivities:
			delete(s.errors, FieldActivities)
		}
	}
	s.unsaved = true
}

// Clear drops the draft and resets every sub-state.
func (s *Session) Clear() {
	s.draft = nil
	s.editingLoopID = ""
	s.step = StepDetails
	s.unsaved = false
	s.errors = ValidationErrors{}
	s.drag = dragState{}
	s.sub = subEditorState{}
}

func (s *Session) SetStep(step Step) {
	if !step.Valid() {
		return
	}
	s.step = step
}

func (s *Session) AdvanceStep() { s.step = s.step.Next() }

func (s *Session) RetreatStep() { s.step = s.step.Prev() }

// MarkSaved is called by the persistence side after it wrote Draft().
func (s *Session) MarkSaved() { s.unsaved = false }

// Validate runs Validate on the draft, stores the result and returns a copy.
func (s *Session) Validate() ValidationErrors {
	s.errors = Validate(s.draft)
	return s.errors.clone()
}

func (s *Session) markDirty() { s.unsaved = true }
