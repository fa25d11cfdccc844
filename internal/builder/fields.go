package builder

import "loops-cli/internal/model"

// Field is one top-level draft field for Patch.
type Field struct {
	name  string
	apply func(*model.Loop)
}

func (f Field) Name() string { return f.name }

func SetTitle(v string) Field {
	return Field{name: FieldTitle, apply: func(l *model.Loop) { l.Title = v }}
}

func SetDescription(v string) Field {
	return Field{name: "description", apply: func(l *model.Loop) { l.Description = v }}
}

// SetCategory sets the category reference; an empty id clears it.
func SetCategory(id string) Field {
	return Field{name: "category", apply: func(l *model.Loop) {
		if id == "" {
			l.CategoryID = nil
			return
		}
		c := id
		l.CategoryID = &c
	}}
}

func SetTags(tags []string) Field {
	cp := append([]string(nil), tags...)
	return Field{name: "tags", apply: func(l *model.Loop) { l.Tags = cp }}
}

func SetActivities(xs []model.Activity) Field {
	cp := make([]model.Activity, len(xs))
	for i, a := range xs {
		cp[i] = a.Clone()
	}
	return Field{name: FieldActivities, apply: func(l *model.Loop) { l.Activities = cp }}
}

// SetSettings replaces the whole settings bag, normalized.
func SetSettings(s model.LoopSettings) Field {
	s = s.Normalize()
	return Field{name: "settings", apply: func(l *model.Loop) { l.Settings = s }}
}
