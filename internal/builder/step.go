package builder

type Step int

const (
	StepDetails Step = iota
	StepActivities
	StepSettings
	StepPreview
)

// Steps lists every wizard step in order.
var Steps = []Step{StepDetails, StepActivities, StepSettings, StepPreview}

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepActivities:
		return "activities"
	case StepSettings:
		return "settings"
	case StepPreview:
		return "preview"
	default:
		return "unknown"
	}
}

func (s Step) Label() string {
	switch s {
	case StepDetails:
		return "Details"
	case StepActivities:
		return "Activities"
	case StepSettings:
		return "Settings"
	case StepPreview:
		return "Preview"
	default:
		return "?"
	}
}

func (s Step) Valid() bool {
	return s >= StepDetails && s <= StepPreview
}

// Index is the position of s in Steps, or -1.
func (s Step) Index() int {
	for i, st := range Steps {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Step) Next() Step {
	i := s.Index()
	if i < 0 || i >= len(Steps)-1 {
		return s
	}
	return Steps[i+1]
}

func (s Step) Prev() Step {
	i := s.Index()
	if i <= 0 {
		return s
	}
	return Steps[i-1]
}

// ParseStep accepts the String() form of a step.
func ParseStep(v string) (Step, bool) {
	for _, st := range Steps {
		if st.String() == v {
			return st, true
		}
	}
	return StepDetails, false
}

func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Step) UnmarshalText(b []byte) error {
	st, ok := ParseStep(string(b))
	if !ok {
		st = StepDetails
	}
	*s = st
	return nil
}
