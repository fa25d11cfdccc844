package builder

import "loops-cli/internal/model"

// subEditorState tracks the nested activity editor. In edit mode it keeps the activity's ID
// and the index it had when opened; EditingActivityIndex re-resolves the ID on every call.
type subEditorState struct {
	open     bool
	editing  *model.Activity
	openedAt int
	template *model.ActivityTemplate
}

// SubEditorState is a read-only view of the nested editor.
type SubEditorState struct {
	IsOpen   bool
	Editing  *model.Activity
	Index    int
	HasIndex bool
	Template *model.ActivityTemplate
}

func (s *Session) SubEditor() SubEditorState {
	out := SubEditorState{IsOpen: s.sub.open}
	if s.sub.editing != nil {
		a := s.sub.editing.Clone()
		out.Editing = &a
	}
	out.Index, out.HasIndex = s.EditingActivityIndex()
	if s.sub.template != nil {
		t := *s.sub.template
		out.Template = &t
	}
	return out
}

func (s *Session) SubEditorOpen() bool { return s.sub.open }

// OpenActivityEditor opens the editor on a copy of activity i.
func (s *Session) OpenActivityEditor(i int) {
	if !s.inRange(i) {
		return
	}
	a := s.draft.Activities[i].Clone()
	s.sub = subEditorState{open: true, editing: &a, openedAt: i}
}

// OpenNewActivity opens the editor in create mode, optionally seeded from tmpl.
func (s *Session) OpenNewActivity(tmpl *model.ActivityTemplate) {
	s.sub = subEditorState{open: true}
	s.SetTemplate(tmpl)
}

func (s *Session) CloseActivityEditor() {
	s.sub = subEditorState{}
}

// SetTemplate switches the seed template; nil clears it.
func (s *Session) SetTemplate(tmpl *model.ActivityTemplate) {
	if tmpl == nil {
		s.sub.template = nil
		return
	}
	t := *tmpl
	if tmpl.Checklist != nil {
		t.Checklist = append([]model.ChecklistItem(nil), tmpl.Checklist...)
	}
	s.sub.template = &t
}

func (s *Session) IsEditingExisting() bool {
	_, ok := s.EditingActivityIndex()
	return s.sub.editing != nil && ok
}

// EditingActivityIndex resolves the edited activity's current position by ID, so list
// mutations made while the editor is open cannot point it at the wrong element.
func (s *Session) EditingActivityIndex() (int, bool) {
	if s.sub.editing == nil {
		return 0, false
	}
	if s.inRange(s.sub.openedAt) && s.draft.Activities[s.sub.openedAt].ID == s.sub.editing.ID {
		return s.sub.openedAt, true
	}
	if i := s.indexOfActivity(s.sub.editing.ID); i >= 0 {
		return i, true
	}
	return 0, false
}

// SeedActivity is the value the editor form starts from.
func (s *Session) SeedActivity() model.Activity {
	if s.sub.editing != nil {
		return s.sub.editing.Clone()
	}
	var existing []model.Activity
	if s.draft != nil {
		existing = s.draft.Activities
	}
	a := model.Activity{ID: uniqueActivityID(s.newID, existing)}
	if t := s.sub.template; t != nil {
		a.Title = t.Title
		if a.Title == "" {
			a.Title = t.Name
		}
		a.Duration = t.Duration
		a.Icon = t.Icon
		if t.Checklist != nil {
			a.Checklist = append([]model.ChecklistItem(nil), t.Checklist...)
		}
	}
	return a
}

// CommitActivityEditor writes a back (update in edit mode, append in create mode) and closes
// the editor. In edit mode, an activity removed while the editor was open is not re-added.
func (s *Session) CommitActivityEditor(a model.Activity) {
	if !s.sub.open || s.draft == nil {
		return
	}
	if s.sub.editing != nil {
		if i, ok := s.EditingActivityIndex(); ok {
			a.ID = s.sub.editing.ID
			s.UpdateActivity(i, a)
		}
	} else {
		s.AddActivity(a)
	}
	s.CloseActivityEditor()
}
