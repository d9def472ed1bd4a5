// Package mode implements the dashboard's keyboard state machine.
//
// There are five modes. Each has an inner tooltip that selects the hint,
// prompt, or warning on screen. Keys are routed through a table keyed by
// (mode, tooltip); a key with no route goes to the mode's fallback, which
// switches on the tooltip. Handlers return an Outcome rather than acting on
// the program directly, so quitting or fetching is decided by the caller.
package mode

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/rileyhilliard/thermonitor/internal/detail"
	"github.com/rileyhilliard/thermonitor/internal/grid"
	"github.com/rileyhilliard/thermonitor/internal/input"
	"github.com/rileyhilliard/thermonitor/internal/sensor"
	"github.com/rileyhilliard/thermonitor/internal/series"
)

// Name identifies a mode.
type Name int

const (
	Normal Name = iota
	Edit
	Move
	Detail
	Help
)

func (n Name) String() string {
	switch n {
	case Normal:
		return "normal"
	case Edit:
		return "edit"
	case Move:
		return "move"
	case Detail:
		return "detail"
	case Help:
		return "help"
	}
	return "unknown"
}

// Tooltip is a mode's inner sub-state.
type Tooltip string

const (
	TipInitial      Tooltip = "initial"
	TipSave         Tooltip = "save"
	TipSaveFailed   Tooltip = "save_failed"
	TipLabelPrompt  Tooltip = "label_prompt"
	TipIDPrompt     Tooltip = "id_prompt"
	TipBlankID      Tooltip = "blank_id"
	TipDuplicateID  Tooltip = "duplicate_id"
	TipRenamePrompt Tooltip = "rename_prompt"
	TipDelete       Tooltip = "delete"
)

// Outcome tells the caller what to do after a key.
type Outcome int

const (
	OutcomeNone Outcome = iota
	// OutcomeQuit ends the program.
	OutcomeQuit
	// OutcomeFetchDetail asks for detail data for DetailState().SensorID,
	// tagged with DetailState().Seq.
	OutcomeFetchDetail
	// OutcomeRefresh asks the poller for an immediate cycle.
	OutcomeRefresh
)

// Highlight colors of the selected card per mode.
const (
	ColorNormal = "#BF40FF"
	ColorEdit   = "#FF0055"
	ColorMove   = "#FFAA00"
)

// Context is the session state the modes act on. Callers hold the session
// lock while a Machine method runs.
type Context interface {
	Grid() *grid.Grid
	Unit() sensor.Unit
	ToggleUnit()
	Save() error
}

// DetailState is what the detail view shows.
type DetailState struct {
	SensorID string
	Label    string
	Interval series.Interval
	Loading  bool
	Seq      uint64
	Data     *detail.Data
}

type handler func(m *Machine, ctx Context, k Key) Outcome

type route struct {
	binding key.Binding
	handle  handler
}

type modeDef struct {
	routes   map[Tooltip][]route
	fallback handler
	mount    func(m *Machine, ctx Context) Outcome
}

// Machine is the mode state machine. It is not safe for concurrent use.
type Machine struct {
	keys     KeyMap
	defs     map[Name]*modeDef
	current  Name
	previous Name
	tooltips map[Name]Tooltip

	label  *input.Buffer
	id     *input.Buffer
	rename *input.Buffer

	detail  DetailState
	saveErr error
}

// New returns a machine in Normal mode. Call Start once the grid exists.
func New(keys KeyMap) *Machine {
	m := &Machine{
		keys:     keys,
		current:  Normal,
		previous: Normal,
		tooltips: make(map[Name]Tooltip),
		label:    input.NewLabelBuffer(),
		id:       input.NewIDBuffer(),
		rename:   input.NewLabelBuffer(),
		detail:   DetailState{Interval: series.Hour},
	}
	m.defs = map[Name]*modeDef{
		Normal: normalMode(keys),
		Edit:   editMode(keys),
		Move:   moveMode(keys),
		Detail: detailMode(keys),
		Help:   helpMode(),
	}
	return m
}

// Start mounts the initial mode.
func (m *Machine) Start(ctx Context) Outcome {
	m.tooltips[m.current] = TipInitial
	return m.mount(ctx)
}

// Current returns the active mode.
func (m *Machine) Current() Name { return m.current }

// Previous returns the mode active before the last change.
func (m *Machine) Previous() Name { return m.previous }

// Tooltip returns the active mode's tooltip.
func (m *Machine) Tooltip() Tooltip { return m.tooltipOf(m.current) }

func (m *Machine) tooltipOf(n Name) Tooltip {
	if t, ok := m.tooltips[n]; ok {
		return t
	}
	return TipInitial
}

func (m *Machine) setTooltip(t Tooltip) { m.tooltips[m.current] = t }

// LabelInput returns the label typed so far in the add prompt.
func (m *Machine) LabelInput() string { return m.label.String() }

// IDInput returns the id typed so far in the add prompt.
func (m *Machine) IDInput() string { return m.id.String() }

// RenameInput returns the label typed so far in the rename prompt.
func (m *Machine) RenameInput() string { return m.rename.String() }

// PromptView renders the buffer of the active prompt with its cursor, or ""
// when no prompt is open.
func (m *Machine) PromptView() string {
	if m.current != Edit {
		return ""
	}
	switch m.Tooltip() {
	case TipLabelPrompt:
		return m.label.View()
	case TipIDPrompt:
		return m.id.View()
	case TipRenamePrompt:
		return m.rename.View()
	}
	return ""
}

// SaveErr returns the error of the last failed save.
func (m *Machine) SaveErr() error { return m.saveErr }

// DetailState returns a copy of the detail view state.
func (m *Machine) DetailState() DetailState { return m.detail }

// Interval returns the detail interval.
func (m *Machine) Interval() series.Interval { return m.detail.Interval }

// SetInterval sets the detail interval, e.g. from a loaded snapshot.
func (m *Machine) SetInterval(iv series.Interval) { m.detail.Interval = iv }

// SetDetailData stores a finished fetch. Results whose seq no longer matches
// (the operator left the view or asked again) are dropped.
func (m *Machine) SetDetailData(seq uint64, data *detail.Data) bool {
	if seq != m.detail.Seq || !m.detail.Loading {
		return false
	}
	m.detail.Data = data
	m.detail.Loading = false
	return true
}

// HandleKey routes one keystroke.
func (m *Machine) HandleKey(ctx Context, k Key) Outcome {
	def := m.defs[m.current]
	for _, r := range def.routes[m.Tooltip()] {
		if key.Matches(k, r.binding) {
			return r.handle(m, ctx, k)
		}
	}
	if def.fallback == nil {
		return OutcomeNone
	}
	return def.fallback(m, ctx, k)
}

// ChangeMode records the current mode as previous, activates n with its
// tooltip reset to initial, and runs n's mount hook.
func (m *Machine) ChangeMode(ctx Context, n Name) Outcome {
	m.previous = m.current
	m.current = n
	m.setTooltip(TipInitial)
	return m.mount(ctx)
}

func (m *Machine) mount(ctx Context) Outcome {
	if def := m.defs[m.current]; def.mount != nil {
		return def.mount(m, ctx)
	}
	return OutcomeNone
}

// Bindings returns the bindings routed in the active mode and tooltip, for
// the footer.
func (m *Machine) Bindings() []key.Binding {
	return bindingsOf(m.defs[m.current].routes[m.Tooltip()])
}

// Section is one block of the help screen.
type Section struct {
	Title    string
	Bindings []key.Binding
}

// HelpSections lists the initial bindings of every mode but Help.
func (m *Machine) HelpSections() []Section {
	out := make([]Section, 0, 4)
	for _, n := range []Name{Normal, Edit, Move, Detail} {
		out = append(out, Section{Title: n.String(), Bindings: bindingsOf(m.defs[n].routes[TipInitial])})
	}
	return out
}

func bindingsOf(routes []route) []key.Binding {
	out := make([]key.Binding, 0, len(routes))
	seen := make(map[string]bool)
	for _, r := range routes {
		h := r.binding.Help()
		if h.Key == "" || seen[h.Key+h.Desc] {
			continue
		}
		seen[h.Key+h.Desc] = true
		out = append(out, r.binding)
	}
	return out
}

func moveCursor(dx, dy int) handler {
	return func(m *Machine, ctx Context, k Key) Outcome {
		ctx.Grid().MoveCursor(dx, dy)
		return OutcomeNone
	}
}

func changeTo(n Name) handler {
	return func(m *Machine, ctx Context, k Key) Outcome {
		return m.ChangeMode(ctx, n)
	}
}

func setTooltip(t Tooltip) handler {
	return func(m *Machine, ctx Context, k Key) Outcome {
		m.setTooltip(t)
		return OutcomeNone
	}
}

func toggleUnit(m *Machine, ctx Context, k Key) Outcome {
	ctx.ToggleUnit()
	return OutcomeNone
}

func ignore(m *Machine, ctx Context, k Key) Outcome { return OutcomeNone }
