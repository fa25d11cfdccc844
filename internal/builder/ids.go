package builder

import (
	"fmt"
	"strings"

	"loops-cli/internal/model"

	"github.com/google/uuid"
)

const activityIDPrefix = "act"

// NewActivityID returns act-<8 hex chars>.
func NewActivityID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return activityIDPrefix + "-" + raw[:8]
}

// uniqueActivityID draws from gen until the id is not used in xs. A generator that keeps
// colliding gets a numeric suffix instead of looping forever.
func uniqueActivityID(gen func() string, xs []model.Activity) string {
	taken := make(map[string]bool, len(xs))
	for _, a := range xs {
		taken[a.ID] = true
	}
	var id string
	for attempt := 0; attempt < 8; attempt++ {
		id = strings.TrimSpace(gen())
		if id != "" && !taken[id] {
			return id
		}
	}
	if id == "" {
		id = NewActivityID()
	}
	for n := 2; ; n++ {
		cand := fmt.Sprintf("%s-%d", id, n)
		if !taken[cand] {
			return cand
		}
	}
}
