package builder

import (
	"strings"
	"unicode/utf8"

	"loops-cli/internal/model"
)

const (
	FieldTitle      = "title"
	FieldActivities = "activities"
	FieldGeneral    = "general"
)

const (
	MinTitleLength = 3
	MaxTitleLength = 100
)

const (
	MsgTitleRequired      = "Title is required"
	MsgTitleTooShort      = "Title must be at least 3 characters"
	MsgTitleTooLong       = "Title must be less than 100 characters"
	MsgActivitiesRequired = "At least one activity is required"
	MsgActivitiesInvalid  = "All activities must have a title and valid duration"
	MsgNoDraft            = "No loop to validate"
)

// ValidationErrors maps a field name (FieldTitle, FieldActivities, FieldGeneral) to a message.
type ValidationErrors map[string]string

func (e ValidationErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e ValidationErrors) Empty() bool { return len(e) == 0 }

func (e ValidationErrors) clone() ValidationErrors {
	out := make(ValidationErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Validate computes field-level and list-level errors for draft. It never mutates its input.
func Validate(draft *model.Loop) ValidationErrors {
	errs := ValidationErrors{}
	if draft == nil {
		errs[FieldGeneral] = MsgNoDraft
		return errs
	}
	if msg := validateTitle(draft.Title); msg != "" {
		errs[FieldTitle] = msg
	}
	if msg := validateActivities(draft.Activities); msg != "" {
		errs[FieldActivities] = msg
	}
	return errs
}

func validateTitle(title string) string {
	// Only the minimum ignores surrounding whitespace; the maximum counts the title as stored.
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	switch {
	case n == 0:
		return MsgTitleRequired
	case n < MinTitleLength:
		return MsgTitleTooShort
	case utf8.RuneCountInString(title) > MaxTitleLength:
		return MsgTitleTooLong
	}
	return ""
}

func validateActivities(xs []model.Activity) string {
	if len(xs) == 0 {
		return MsgActivitiesRequired
	}
	if !allActivitiesValid(xs) {
		return MsgActivitiesInvalid
	}
	return ""
}

// ActivityValid reports whether a has a non-blank title and a positive duration.
func ActivityValid(a model.Activity) bool {
	return strings.TrimSpace(a.Title) != "" && a.Duration > 0
}

func allActivitiesValid(xs []model.Activity) bool {
	for _, a := range xs {
		if !ActivityValid(a) {
			return false
		}
	}
	return true
}
