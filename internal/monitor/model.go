package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/thermonitor/internal/detail"
	"github.com/rileyhilliard/thermonitor/internal/logger"
	"github.com/rileyhilliard/thermonitor/internal/session"
)

// DefaultTick is the redraw interval used when Options.Tick is zero.
const DefaultTick = 50 * time.Millisecond

// Refresher starts a poll cycle out of schedule.
type Refresher interface {
	Trigger()
}

// Loader fetches everything the timeline view shows for one sensor.
type Loader interface {
	Load(ctx context.Context, id, label string) (*detail.Data, error)
}

// Options configures a Model.
type Options struct {
	// Tick is how often keys are drained and the frame redrawn.
	Tick time.Duration
	// SnapshotPath is shown on the help screen next to the -f flag.
	SnapshotPath string
	Log          logger.Logger
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	ctx       context.Context
	session   *session.Session
	refresher Refresher
	loader    Loader
	log       logger.Logger

	tick         time.Duration
	snapshotPath string

	queue   []string
	pending []detailLoadedMsg

	width    int
	height   int
	frame    string
	quitting bool
	skipped  int

	spinner spinner.Model
	help    help.Model
	tempBar progress.Model
	humBar  progress.Model
}

// tickMsg signals a periodic drain and redraw.
type tickMsg time.Time

// detailLoadedMsg carries a finished timeline fetch.
type detailLoadedMsg struct {
	seq  uint64
	data *detail.Data
	err  error
}

// NewModel creates the dashboard model. ctx bounds detail fetches; cancel it
// to abandon one in flight.
func NewModel(ctx context.Context, s *session.Session, r Refresher, l Loader, opts Options) Model {
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	if opts.Log == nil {
		opts.Log = logger.Noop()
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorAccent)),
	)

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(ColorTextSecondary).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(ColorTextMuted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(ColorBorder)

	return Model{
		ctx:          ctx,
		session:      s,
		refresher:    r,
		loader:       l,
		log:          opts.Log,
		tick:         opts.Tick,
		snapshotPath: opts.SnapshotPath,
		spinner:      sp,
		help:         h,
		tempBar:      newGaugeBar(ColorTemperature),
		humBar:       newGaugeBar(ColorHumidity),
	}
}

func newGaugeBar(color lipgloss.Color) progress.Model {
	return progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithoutPercentage(),
		progress.WithWidth(cardMinBarWidth),
	)
}

// Init starts the tick and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.spinner.Tick)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		cmds := m.step()
		if m.quitting {
			return m, tea.Batch(cmds...)
		}
		cmds = append(cmds, m.tickCmd())
		return m, tea.Batch(cmds...)

	case detailLoadedMsg:
		// Applied on the next tick that holds the session lock.
		m.pending = append(m.pending, msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.frame
}

// step runs one tick: drain keys, animate, render. It does nothing when the
// poller holds the lock.
func (m *Model) step() []tea.Cmd {
	if !m.session.TryLock() {
		m.skipped++
		return nil
	}
	defer m.session.Unlock()

	m.applyPending()
	cmds := m.drainKeys()
	if m.quitting {
		return cmds
	}

	m.session.Step()
	m.frame = m.renderDashboard()
	return cmds
}

func (m *Model) applyPending() {
	machine := m.session.Machine()
	for _, msg := range m.pending {
		if msg.err != nil {
			m.log.Debug("detail fetch %d: %v", msg.seq, msg.err)
			msg.data = nil
		}
		if !machine.SetDetailData(msg.seq, msg.data) {
			m.log.Debug("dropped stale detail fetch %d", msg.seq)
		}
	}
	m.pending = m.pending[:0]
}

// tickCmd returns a command that sends a tick after the redraw interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchDetailCmd loads timeline data off the UI goroutine.
func (m *Model) fetchDetailCmd(seq uint64, id, label string) tea.Cmd {
	if m.loader == nil || id == "" {
		return nil
	}
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		data, err := loader.Load(ctx, id, label)
		return detailLoadedMsg{seq: seq, data: data, err: err}
	}
}
