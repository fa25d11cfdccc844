package builder

import (
	"strings"
	"unicode/utf8"
)

func (s *Session) trimmedTitle() string {
	if s.draft == nil {
		return ""
	}
	return strings.TrimSpace(s.draft.Title)
}

func (s *Session) detailsComplete() bool {
	return utf8.RuneCountInString(s.trimmedTitle()) >= MinTitleLength
}

func (s *Session) activitiesComplete() bool {
	return s.activityCount() > 0 && allActivitiesValid(s.draft.Activities)
}

// StepComplete reports whether step's required fields are satisfied.
func (s *Session) StepComplete(step Step) bool {
	switch step {
	case StepDetails:
		return s.detailsComplete()
	case StepActivities:
		return s.activitiesComplete()
	case StepSettings:
		return true
	case StepPreview:
		return s.detailsComplete() && s.activitiesComplete() && s.errors.Empty()
	default:
		return false
	}
}

// CanNavigateTo reports whether the wizard may show step.
func (s *Session) CanNavigateTo(step Step) bool {
	switch step {
	case StepDetails, StepActivities:
		return true
	case StepSettings:
		return s.trimmedTitle() != ""
	case StepPreview:
		return s.trimmedTitle() != "" && s.activityCount() > 0 && s.errors.Empty()
	default:
		return false
	}
}

// Stats aggregates durations over the draft. Durations are minutes; BreakTime is the
// settings' break value, folded into TotalWithIterations as-is.
type Stats struct {
	ActivityCount       int
	TotalDuration       int
	BreakTime           int
	Iterations          int
	TotalWithIterations int
	Shortest            int
	Longest             int
	CompletedSteps      int
	Progress            float64
}

func (s *Session) Stats() Stats {
	var st Stats
	for _, step := range Steps {
		if s.StepComplete(step) {
			st.CompletedSteps++
		}
	}
	st.Progress = float64(st.CompletedSteps) / float64(len(Steps))
	if s.draft == nil {
		return st
	}

	xs := s.draft.Activities
	st.ActivityCount = len(xs)
	for i, a := range xs {
		st.TotalDuration += a.Duration
		if i == 0 || a.Duration < st.Shortest {
			st.Shortest = a.Duration
		}
		if i == 0 || a.Duration > st.Longest {
			st.Longest = a.Duration
		}
	}

	set := s.draft.Settings
	st.Iterations = set.MaxIterations
	if st.Iterations < 1 {
		st.Iterations = 1
	}
	if set.IsRepeatable && set.MaxIterations > 1 {
		st.BreakTime = set.BreakBetweenIterations
	}
	st.TotalWithIterations = st.TotalDuration*st.Iterations + st.BreakTime*(st.Iterations-1)
	return st
}

// IsValid reports whether the draft currently passes every rule and no stored error remains.
func (s *Session) IsValid() bool {
	if s.draft == nil {
		return false
	}
	return validateTitle(s.draft.Title) == "" && validateActivities(s.draft.Activities) == "" && s.errors.Empty()
}

// CanSave is true when the draft is valid and has unsaved changes.
func (s *Session) CanSave() bool {
	return s.IsValid() && s.unsaved
}
