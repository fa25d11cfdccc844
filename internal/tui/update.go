package tui

import (
	"context"
	"strings"

	"loops-cli/internal/builder"

	tea "github.com/charmbracelet/bubbletea"
)

func (m builderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeInputs()
		if m.form != nil && m.form.picking {
			m.form.picker.SetSize(m.width-4, m.bodyHeight())
		}
		m.clampCursor()
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		m.minibuffer = ""
		return m.updateKey(msg)
	}
	return m, nil
}

func (m builderModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDiscard {
		switch msg.String() {
		case "y", "enter":
			return m.discardAndQuit()
		case "n", "esc":
			m.confirmDiscard = false
		}
		return m, nil
	}

	if matches(msg, m.keys.Suspend) {
		return m.suspendAndQuit()
	}

	if m.form != nil {
		return m.updateActivityForm(msg)
	}

	if m.sess.IsDragging() && !m.mouseDrag {
		return m.updateKeyboardDrag(msg)
	}

	switch {
	case matches(msg, m.keys.NextStep):
		m.advanceStep()
		return m, nil
	case matches(msg, m.keys.PrevStep):
		m.retreatStep()
		return m, nil
	case matches(msg, m.keys.Save):
		return m.save()
	case matches(msg, m.keys.Cancel):
		if m.sess.HasUnsavedChanges() {
			m.confirmDiscard = true
			return m, nil
		}
		return m.discardAndQuit()
	}

	switch m.sess.CurrentStep() {
	case builder.StepDetails:
		return m.updateDetails(msg)
	case builder.StepActivities:
		return m.updateActivities(msg)
	case builder.StepSettings:
		return m.updateSettings(msg)
	case builder.StepPreview:
		switch {
		case matches(msg, m.keys.Up):
			if m.previewOffset > 0 {
				m.previewOffset--
			}
		case matches(msg, m.keys.Down):
			m.previewOffset++
		}
	}
	return m, nil
}

// stepField is the validation field that gates leaving step.
func stepField(step builder.Step) string {
	switch step {
	case builder.StepDetails:
		return builder.FieldTitle
	case builder.StepActivities:
		return builder.FieldActivities
	default:
		return ""
	}
}

func (m *builderModel) advanceStep() {
	cur := m.sess.CurrentStep()
	next := cur.Next()
	if next == cur {
		return
	}
	if f := stepField(cur); f != "" {
		errs := m.sess.Validate()
		if msg, ok := errs[f]; ok {
			m.flash(msg)
			return
		}
	}
	if !m.sess.CanNavigateTo(next) {
		if msg := firstError(m.sess.ValidationErrors()); msg != "" {
			m.flash(msg)
		} else {
			m.flash("Finish " + cur.Label() + " first")
		}
		return
	}
	m.sess.SetStep(next)
	m.enterStep()
}

func (m *builderModel) retreatStep() {
	m.sess.RetreatStep()
	m.enterStep()
}

func (m *builderModel) enterStep() {
	m.previewOffset = 0
	if m.sess.CurrentStep() == builder.StepDetails {
		m.setDetailsFocus(m.focus)
	} else {
		m.titleInput.Blur()
		m.descInput.Blur()
		m.tagsInput.Blur()
	}
	m.clampCursor()
}

func (m builderModel) save() (tea.Model, tea.Cmd) {
	if errs := m.sess.Validate(); !errs.Empty() {
		m.flash(firstError(errs))
		return m, nil
	}
	if !m.sess.CanSave() {
		m.flash("No changes to save")
		return m, nil
	}
	saved, err := m.store.SaveLoop(context.Background(), *m.sess.Draft())
	if err != nil {
		m.log.Error("save loop failed", "err", err)
		m.flash("Save failed: " + err.Error())
		return m, nil
	}
	m.sess.MarkSaved()
	if err := m.store.ClearDraftSnapshot(); err != nil {
		m.log.Warn("clear draft snapshot failed", "err", err)
	}
	m.log.Info("builder saved loop", "id", saved.ID, "editing", m.sess.IsEditing())
	m.result = Result{Outcome: OutcomeSaved, LoopID: saved.ID}
	return m, tea.Quit
}

// suspendAndQuit keeps unsaved work as a resumable snapshot.
func (m builderModel) suspendAndQuit() (tea.Model, tea.Cmd) {
	if !m.sess.HasUnsavedChanges() {
		return m.discardAndQuit()
	}
	if err := m.store.SaveDraftSnapshot(m.sess.Snapshot()); err != nil {
		m.log.Error("save draft snapshot failed", "err", err)
		m.flash("Could not keep draft: " + err.Error())
		return m, nil
	}
	m.log.Info("builder suspended", "step", m.sess.CurrentStep().String())
	m.result = Result{Outcome: OutcomeSuspended}
	return m, tea.Quit
}

func (m builderModel) discardAndQuit() (tea.Model, tea.Cmd) {
	if err := m.store.ClearDraftSnapshot(); err != nil {
		m.log.Warn("clear draft snapshot failed", "err", err)
	}
	m.sess.Clear()
	m.confirmDiscard = false
	m.result = Result{Outcome: OutcomeCancelled}
	return m, tea.Quit
}

func (m *builderModel) setDetailsFocus(f detailsField) {
	m.focus = f
	m.titleInput.Blur()
	m.descInput.Blur()
	m.tagsInput.Blur()
	switch f {
	case fieldTitle:
		m.titleInput.Focus()
	case fieldDescription:
		m.descInput.Focus()
	case fieldTags:
		m.tagsInput.Focus()
	}
}

func (m builderModel) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case matches(msg, m.keys.NextField):
		m.setDetailsFocus(detailsFields[(int(m.focus)+1)%len(detailsFields)])
		return m, nil
	case matches(msg, m.keys.PrevField):
		m.setDetailsFocus(detailsFields[(int(m.focus)+len(detailsFields)-1)%len(detailsFields)])
		return m, nil
	}

	var cmd tea.Cmd
	d := m.draft()
	switch m.focus {
	case fieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
		if v := m.titleInput.Value(); v != d.Title {
			m.sess.Patch(builder.SetTitle(v))
		}
	case fieldDescription:
		m.descInput, cmd = m.descInput.Update(msg)
		if v := m.descInput.Value(); v != d.Description {
			m.sess.Patch(builder.SetDescription(v))
		}
	case fieldTags:
		m.tagsInput, cmd = m.tagsInput.Update(msg)
		tags := splitTags(m.tagsInput.Value())
		if strings.Join(tags, "\x00") != strings.Join(d.Tags, "\x00") {
			m.sess.Patch(builder.SetTags(tags))
		}
	case fieldCategory:
		switch {
		case matches(msg, m.keys.Increase), matches(msg, m.keys.Toggle):
			m.cycleCategory(1)
		case matches(msg, m.keys.Decrease):
			m.cycleCategory(-1)
		}
	}
	return m, cmd
}

// cycleCategory steps through "none" plus the configured categories.
func (m *builderModel) cycleCategory(delta int) {
	cats := m.cfg.Categories
	if len(cats) == 0 {
		m.flash("No categories configured")
		return
	}
	cur := 0
	if d := m.draft(); d.CategoryID != nil {
		for i, c := range cats {
			if c.ID == *d.CategoryID {
				cur = i + 1
				break
			}
		}
	}
	n := len(cats) + 1
	next := (cur + delta + n) % n
	if next == 0 {
		m.sess.Patch(builder.SetCategory(""))
		return
	}
	m.sess.Patch(builder.SetCategory(cats[next-1].ID))
}

func (m builderModel) updateActivities(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.sess.Activities())
	switch {
	case matches(msg, m.keys.Add):
		return m.openNewActivityForm(), nil
	case matches(msg, m.keys.Edit):
		if n > 0 {
			return m.openEditActivityForm(m.cursor), nil
		}
	case matches(msg, m.keys.Duplicate):
		if n > 0 {
			m.sess.DuplicateActivity(m.cursor)
			m.cursor++
			m.flash("Activity duplicated")
		}
	case matches(msg, m.keys.Remove):
		if n > 0 {
			m.sess.RemoveActivity(m.cursor)
			m.flash("Activity removed")
		}
	case matches(msg, m.keys.MoveUp):
		if m.cursor > 0 {
			m.sess.ReorderActivities(m.cursor, m.cursor-1)
			m.cursor--
		}
	case matches(msg, m.keys.MoveDown):
		if m.cursor < n-1 {
			m.sess.ReorderActivities(m.cursor, m.cursor+1)
			m.cursor++
		}
	case matches(msg, m.keys.Drag):
		if n > 0 {
			m.sess.StartDragging(m.cursor)
			m.sess.SetDropTarget(m.cursor)
			m.mouseDrag = false
		}
	case matches(msg, m.keys.Up):
		m.cursor--
	case matches(msg, m.keys.Down):
		m.cursor++
	}
	m.clampCursor()
	return m, nil
}

func (m builderModel) updateKeyboardDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ds := m.sess.DragState()
	target := ds.DraggedIndex
	if ds.HasDropTarget {
		target = ds.DropTargetIndex
	}
	n := len(m.sess.Activities())

	switch {
	case matches(msg, m.keys.Up):
		if target > 0 {
			m.sess.SetDropTarget(target - 1)
		}
	case matches(msg, m.keys.Down):
		if target < n-1 {
			m.sess.SetDropTarget(target + 1)
		}
	case matches(msg, m.keys.Drop):
		if m.sess.EndDragging() {
			m.cursor = target
			m.flash("Activity moved")
		}
	case matches(msg, m.keys.Cancel):
		m.sess.CancelDragging()
	}
	m.clampCursor()
	return m, nil
}

func (m builderModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.form != nil || m.confirmDiscard || m.sess.CurrentStep() != builder.StepActivities {
		return m, nil
	}
	idx, onRow := m.activityRowAt(msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if onRow {
				m.cursor = idx
				m.sess.StartDragging(idx)
				m.mouseDrag = true
			}
		case tea.MouseButtonWheelUp:
			m.cursor--
		case tea.MouseButtonWheelDown:
			m.cursor++
		}
	case tea.MouseActionMotion:
		if m.mouseDrag && m.sess.IsDragging() {
			if onRow {
				m.sess.SetDropTarget(idx)
			} else {
				m.sess.ClearDropTarget()
			}
		}
	case tea.MouseActionRelease:
		if m.mouseDrag {
			ds := m.sess.DragState()
			if m.sess.EndDragging() {
				m.cursor = ds.DropTargetIndex
				m.flash("Activity moved")
			}
			m.mouseDrag = false
		}
	}
	m.clampCursor()
	return m, nil
}

func (m builderModel) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case matches(msg, m.keys.Up):
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
		return m, nil
	case matches(msg, m.keys.Down):
		if m.settingsCursor < len(settingsRows)-1 {
			m.settingsCursor++
		}
		return m, nil
	}

	delta := 0
	toggle := false
	switch {
	case matches(msg, m.keys.Toggle):
		toggle = true
	case matches(msg, m.keys.Increase):
		delta = 1
	case matches(msg, m.keys.Decrease):
		delta = -1
	default:
		return m, nil
	}

	s := m.draft().Settings
	switch settingsRows[m.settingsCursor] {
	case settingRepeatable:
		s.IsRepeatable = !s.IsRepeatable
	case settingIterations:
		if toggle {
			return m, nil
		}
		s.MaxIterations += delta
		if s.MaxIterations > 1 {
			s.IsRepeatable = true
		}
	case settingBreak:
		if toggle {
			return m, nil
		}
		s.BreakBetweenIterations += delta * breakStepSeconds
	case settingAutoStart:
		s.AutoStart = !s.AutoStart
	case settingNotifications:
		s.NotificationsEnabled = !s.NotificationsEnabled
	case settingSound:
		s.SoundEnabled = !s.SoundEnabled
	case settingVibration:
		s.VibrationEnabled = !s.VibrationEnabled
	case settingBackground:
		s.BackgroundExecution = !s.BackgroundExecution
	}
	m.sess.Patch(builder.SetSettings(s))
	return m, nil
}
