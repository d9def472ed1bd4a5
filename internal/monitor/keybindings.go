package monitor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/thermonitor/internal/mode"
)

// KeyQuitNow exits without going through the mode machine.
const KeyQuitNow = "ctrl+c"

// maxQueuedKeys bounds the key queue while the session lock is busy. Older
// keys are dropped first.
const maxQueuedKeys = 64

// HandleKeyMsg queues a keystroke for the next tick. Returns true and a quit
// command for ctrl+c.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	k := msg.String()
	if k == KeyQuitNow {
		m.quitting = true
		return true, tea.Quit
	}

	if len(m.queue) >= maxQueuedKeys {
		m.queue = m.queue[1:]
	}
	m.queue = append(m.queue, k)
	return false, nil
}

// drainKeys feeds queued keys to the session, stopping at the first quit.
// The caller holds the session lock.
func (m *Model) drainKeys() []tea.Cmd {
	var cmds []tea.Cmd
	for i, k := range m.queue {
		out := m.session.HandleKey(k)
		if out == mode.OutcomeQuit {
			m.queue = m.queue[:0]
			m.quitting = true
			m.log.Debug("quit after %d queued keys", i+1)
			return append(cmds, tea.Quit)
		}
		if cmd := m.handleOutcome(out); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.queue = m.queue[:0]
	return cmds
}

// handleOutcome turns a mode Outcome into a side effect or a command.
func (m *Model) handleOutcome(out mode.Outcome) tea.Cmd {
	switch out {
	case mode.OutcomeRefresh:
		if m.refresher != nil {
			m.refresher.Trigger()
		}
	case mode.OutcomeFetchDetail:
		st := m.session.Machine().DetailState()
		return m.fetchDetailCmd(st.Seq, st.SensorID, st.Label)
	}
	return nil
}
