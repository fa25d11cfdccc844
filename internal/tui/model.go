package tui

import (
	"log/slog"
	"strings"

	"loops-cli/internal/builder"
	"loops-cli/internal/model"
	"loops-cli/internal/store"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type detailsField int

const (
	fieldTitle detailsField = iota
	fieldDescription
	fieldCategory
	fieldTags
)

var detailsFields = []detailsField{fieldTitle, fieldDescription, fieldCategory, fieldTags}

type settingsRow int

const (
	settingRepeatable settingsRow = iota
	settingIterations
	settingBreak
	settingAutoStart
	settingNotifications
	settingSound
	settingVibration
	settingBackground
)

var settingsRows = []settingsRow{
	settingRepeatable,
	settingIterations,
	settingBreak,
	settingAutoStart,
	settingNotifications,
	settingSound,
	settingVibration,
	settingBackground,
}

const (
	defaultWidth  = 80
	defaultHeight = 24

	headerLines = 3
	footerLines = 3
	// Activity rows start below the header plus the list heading and a spacer line.
	activityRowsTop = headerLines + 2

	breakStepSeconds = 15
)

type builderModel struct {
	store store.Store
	cfg   *store.GlobalConfig
	log   *slog.Logger
	sess  *builder.Session
	keys  keyMap

	width  int
	height int

	titleInput textinput.Model
	descInput  textarea.Model
	tagsInput  textinput.Model
	focus      detailsField

	cursor     int
	listOffset int
	// mouseDrag is set while a drag gesture started with the mouse; keyboard drags leave it unset.
	mouseDrag bool

	settingsCursor int
	previewOffset  int

	form *activityForm

	confirmDiscard bool
	minibuffer     string

	result Result
}

func newBuilderModel(opts Options) builderModel {
	sess := opts.Session
	if sess == nil {
		sess = builder.NewSession()
	}
	if !sess.Active() {
		sess.Initialize(nil)
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &store.GlobalConfig{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}

	d := sess.Draft()

	ti := textinput.New()
	ti.Placeholder = "Loop title"
	ti.CharLimit = builder.MaxTitleLength + 20
	ti.Prompt = ""
	ti.SetValue(d.Title)
	ti.Focus()

	da := textarea.New()
	da.Placeholder = "What is this loop for?"
	da.ShowLineNumbers = false
	da.SetHeight(4)
	da.SetValue(d.Description)
	da.Blur()

	tg := textinput.New()
	tg.Placeholder = "comma, separated, tags"
	tg.Prompt = ""
	tg.SetValue(strings.Join(d.Tags, ", "))
	tg.Blur()

	m := builderModel{
		store:      opts.Store,
		cfg:        cfg,
		log:        logger,
		sess:       sess,
		keys:       defaultKeyMap(),
		width:      defaultWidth,
		height:     defaultHeight,
		titleInput: ti,
		descInput:  da,
		tagsInput:  tg,
		result:     Result{Outcome: OutcomeCancelled},
	}
	m.resizeInputs()
	return m
}

func (m builderModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *builderModel) resizeInputs() {
	w := m.width - 16
	if w < 10 {
		w = 10
	}
	m.titleInput.Width = w
	m.tagsInput.Width = w
	m.descInput.SetWidth(w)
}

func (m *builderModel) draft() model.Loop {
	if d := m.sess.Draft(); d != nil {
		return *d
	}
	return builder.NewBlankLoop()
}

func (m builderModel) bodyHeight() int {
	h := m.height - headerLines - footerLines
	if h < 3 {
		h = 3
	}
	return h
}

func (m builderModel) visibleActivityRows() int {
	n := m.bodyHeight() - (activityRowsTop - headerLines)
	if n < 1 {
		n = 1
	}
	return n
}

func (m *builderModel) clampCursor() {
	n := len(m.sess.Activities())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	rows := m.visibleActivityRows()
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+rows {
		m.listOffset = m.cursor - rows + 1
	}
	if m.listOffset < 0 {
		m.listOffset = 0
	}
}

// activityRowAt maps a screen row to an activity index.
func (m builderModel) activityRowAt(y int) (int, bool) {
	row := y - activityRowsTop
	if row < 0 || row >= m.visibleActivityRows() {
		return 0, false
	}
	i := row + m.listOffset
	if i >= len(m.sess.Activities()) {
		return 0, false
	}
	return i, true
}

func (m *builderModel) flash(msg string) {
	m.minibuffer = msg
}

// splitTags parses the comma-separated tags field. Order and duplicates are kept.
func splitTags(v string) []string {
	out := []string{}
	for _, t := range strings.Split(v, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// firstError returns the most relevant stored validation message.
func firstError(errs builder.ValidationErrors) string {
	for _, f := range []string{builder.FieldTitle, builder.FieldActivities, builder.FieldGeneral} {
		if msg, ok := errs[f]; ok {
			return msg
		}
	}
	return ""
}
