package cli

import (
	"sort"
	"strings"

	"loops-cli/internal/builder"
)

// ValidationError reports a draft that did not pass the builder's validator.
type ValidationError struct {
	Errors builder.ValidationErrors
}

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.Errors[f])
	}
	return "invalid loop: " + strings.Join(parts, "; ")
}
