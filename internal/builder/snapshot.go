package builder

import "loops-cli/internal/model"

// Snapshot is the persisted form of a session, used to resume an interrupted edit.
// Drag and sub-editor state are transient and not included.
type Snapshot struct {
	Version       int              `json:"version"`
	Draft         *model.Loop      `json:"draft"`
	EditingLoopID string           `json:"editingLoopId,omitempty"`
	Step          Step             `json:"step"`
	Unsaved       bool             `json:"unsaved"`
	Errors        ValidationErrors `json:"errors,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Version:       1,
		Draft:         s.Draft(),
		EditingLoopID: s.editingLoopID,
		Step:          s.step,
		Unsaved:       s.unsaved,
		Errors:        s.errors.clone(),
	}
}

// Restore builds a session from snap. A snapshot without a draft yields an inactive session.
func Restore(snap Snapshot, opts ...Option) *Session {
	s := NewSession(opts...)
	if snap.Draft == nil {
		return s
	}
	d := snap.Draft.Clone()
	d.Settings = d.Settings.Normalize()
	s.draft = &d
	s.editingLoopID = snap.EditingLoopID
	if snap.Step.Valid() {
		s.step = snap.Step
	}
	s.unsaved = snap.Unsaved
	if snap.Errors != nil {
		s.errors = snap.Errors.clone()
	}
	return s
}
