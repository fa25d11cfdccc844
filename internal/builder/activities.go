package builder

import "loops-cli/internal/model"

const copySuffix = " (Copy)"

func (s *Session) activityCount() int {
	if s.draft == nil {
		return 0
	}
	return len(s.draft.Activities)
}

func (s *Session) inRange(i int) bool {
	return i >= 0 && i < s.activityCount()
}

func (s *Session) indexOfActivity(id string) int {
	if s.draft == nil || id == "" {
		return -1
	}
	for i, a := range s.draft.Activities {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Activities returns a copy of the draft's activity list in execution order.
func (s *Session) Activities() []model.Activity {
	if s.draft == nil {
		return nil
	}
	out := make([]model.Activity, len(s.draft.Activities))
	for i, a := range s.draft.Activities {
		out[i] = a.Clone()
	}
	return out
}

// AddActivity appends a to the list and clears the activities error. An empty or
// already-used ID is replaced so IDs stay unique within the draft.
func (s *Session) AddActivity(a model.Activity) {
	if s.draft == nil {
		return
	}
	if a.ID == "" || s.indexOfActivity(a.ID) >= 0 {
		a.ID = uniqueActivityID(s.newID, s.draft.Activities)
	}
	s.draft.Activities = append(s.draft.Activities, a.Clone())
	delete(s.errors, FieldActivities)
	s.markDirty()
}

func (s *Session) UpdateActivity(i int, a model.Activity) {
	if !s.inRange(i) {
		return
	}
	s.draft.Activities[i] = a.Clone()
	s.markDirty()
}

func (s *Session) RemoveActivity(i int) {
	if !s.inRange(i) {
		return
	}
	xs := s.draft.Activities
	out := make([]model.Activity, 0, len(xs)-1)
	out = append(out, xs[:i]...)
	out = append(out, xs[i+1:]...)
	s.draft.Activities = out
	s.markDirty()
}

// DuplicateActivity inserts a copy of activity i at i+1 with a fresh ID and a "(Copy)" title.
func (s *Session) DuplicateActivity(i int) {
	if !s.inRange(i) {
		return
	}
	xs := s.draft.Activities
	dup := xs[i].Clone()
	dup.ID = uniqueActivityID(s.newID, xs)
	dup.Title = xs[i].Title + copySuffix

	out := make([]model.Activity, 0, len(xs)+1)
	out = append(out, xs[:i+1]...)
	out = append(out, dup)
	out = append(out, xs[i+1:]...)
	s.draft.Activities = out
	s.markDirty()
}

// ReorderActivities moves the activity at from so that it ends up at index to. to is an
// index into the list after removal, so to == len-1 moves the element last.
func (s *Session) ReorderActivities(from, to int) {
	if from == to || !s.inRange(from) || !s.inRange(to) {
		return
	}
	s.draft.Activities = moveActivity(s.draft.Activities, from, to)
	s.markDirty()
}

// moveActivity returns a new slice; xs is left untouched.
func moveActivity(xs []model.Activity, from, to int) []model.Activity {
	moved := xs[from]
	rest := make([]model.Activity, 0, len(xs)-1)
	rest = append(rest, xs[:from]...)
	rest = append(rest, xs[from+1:]...)

	out := make([]model.Activity, 0, len(xs))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return out
}
