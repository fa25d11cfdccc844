package builder

import "loops-cli/internal/model"

type dragState struct {
	dragging   bool
	dragged    int
	hasDragged bool
	target     int
	hasTarget  bool
}

// DragState is a read-only view of an in-progress reorder gesture.
type DragState struct {
	IsDragging      bool
	DraggedIndex    int
	HasDragged      bool
	DropTargetIndex int
	HasDropTarget   bool
}

func (s *Session) DragState() DragState {
	return DragState{
		IsDragging:      s.drag.dragging,
		DraggedIndex:    s.drag.dragged,
		HasDragged:      s.drag.hasDragged,
		DropTargetIndex: s.drag.target,
		HasDropTarget:   s.drag.hasTarget,
	}
}

func (s *Session) IsDragging() bool { return s.drag.dragging }

// StartDragging picks up activity i. Any stale drop target is cleared.
func (s *Session) StartDragging(i int) {
	if !s.inRange(i) {
		return
	}
	s.drag = dragState{dragging: true, dragged: i, hasDragged: true}
}

// SetDropTarget records the prospective drop index. Ignored unless dragging.
func (s *Session) SetDropTarget(i int) {
	if !s.drag.dragging {
		return
	}
	if !s.inRange(i) {
		s.ClearDropTarget()
		return
	}
	s.drag.target = i
	s.drag.hasTarget = true
}

func (s *Session) ClearDropTarget() {
	if !s.drag.dragging {
		return
	}
	s.drag.target = 0
	s.drag.hasTarget = false
}

// EndDragging commits the gesture. The list changes only when both indices are present and
// differ; dropping on the pickup index leaves the list and the dirty flag alone.
// It reports whether a reorder happened.
func (s *Session) EndDragging() bool {
	d := s.drag
	s.drag = dragState{}
	if !d.dragging || !d.hasDragged || !d.hasTarget || d.dragged == d.target {
		return false
	}
	if !s.inRange(d.dragged) || !s.inRange(d.target) {
		return false
	}
	s.ReorderActivities(d.dragged, d.target)
	return true
}

// CancelDragging aborts without looking at the drop target.
func (s *Session) CancelDragging() {
	s.drag = dragState{}
}

// PreviewOrder is the activity order the list would have if the gesture ended now.
func (s *Session) PreviewOrder() []model.Activity {
	xs := s.Activities()
	d := s.drag
	if !d.dragging || !d.hasTarget || d.dragged == d.target {
		return xs
	}
	if d.dragged < 0 || d.dragged >= len(xs) || d.target < 0 || d.target >= len(xs) {
		return xs
	}
	return moveActivity(xs, d.dragged, d.target)
}
