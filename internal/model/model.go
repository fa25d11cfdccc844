package model

import "time"

const (
	DefaultMaxIterations          = 1
	DefaultBreakBetweenIterations = 0
)

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// LoopSettings is the repeat/notification bag of a Loop.
// BreakBetweenIterations is in seconds.
type LoopSettings struct {
	IsRepeatable           bool `json:"isRepeatable"`
	MaxIterations          int  `json:"maxIterations"`
	BreakBetweenIterations int  `json:"breakBetweenIterations"`
	AutoStart              bool `json:"autoStart"`
	NotificationsEnabled   bool `json:"notificationsEnabled"`
	SoundEnabled           bool `json:"soundEnabled"`
	VibrationEnabled       bool `json:"vibrationEnabled"`
	BackgroundExecution    bool `json:"backgroundExecution"`
}

func DefaultLoopSettings() LoopSettings {
	return LoopSettings{
		IsRepeatable:           false,
		MaxIterations:          DefaultMaxIterations,
		BreakBetweenIterations: DefaultBreakBetweenIterations,
		AutoStart:              false,
		NotificationsEnabled:   true,
		SoundEnabled:           true,
		VibrationEnabled:       true,
		BackgroundExecution:    true,
	}
}

// Normalize clamps MaxIterations to >= 1 and BreakBetweenIterations to >= 0.
func (s LoopSettings) Normalize() LoopSettings {
	if s.MaxIterations < 1 {
		s.MaxIterations = 1
	}
	if s.BreakBetweenIterations < 0 {
		s.BreakBetweenIterations = 0
	}
	return s
}

type Repetition struct {
	Count       int `json:"count"`
	RestSeconds int `json:"restSeconds,omitempty"`
}

type ChecklistItem struct {
	Text string `json:"text"`
	Done bool   `json:"done,omitempty"`
}

// Activity is one step of a Loop. Duration is in minutes.
//
// Icon, Repetition and Checklist are carried through the builder unmodified.
type Activity struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration"`

	Icon       string          `json:"icon,omitempty"`
	Repetition *Repetition     `json:"repetition,omitempty"`
	Checklist  []ChecklistItem `json:"checklist,omitempty"`
}

func (a Activity) Clone() Activity {
	out := a
	if a.Repetition != nil {
		r := *a.Repetition
		out.Repetition = &r
	}
	if a.Checklist != nil {
		out.Checklist = append([]ChecklistItem(nil), a.Checklist...)
	}
	return out
}

type Loop struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	CategoryID  *string  `json:"categoryId,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	// Activities are stored in execution order.
	Activities []Activity   `json:"activities"`
	Settings   LoopSettings `json:"settings"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy that shares no slices or pointers with l.
func (l Loop) Clone() Loop {
	out := l
	if l.CategoryID != nil {
		c := *l.CategoryID
		out.CategoryID = &c
	}
	if l.Tags != nil {
		out.Tags = append([]string(nil), l.Tags...)
	}
	if l.Activities != nil {
		out.Activities = make([]Activity, len(l.Activities))
		for i, a := range l.Activities {
			out.Activities[i] = a.Clone()
		}
	}
	return out
}

// ActivityTemplate is seed data for a brand-new activity.
type ActivityTemplate struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Title     string          `json:"title,omitempty"`
	Duration  int             `json:"duration,omitempty"`
	Icon      string          `json:"icon,omitempty"`
	Checklist []ChecklistItem `json:"checklist,omitempty"`
}

type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload"`
}
