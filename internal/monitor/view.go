package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/thermonitor/internal/errors"
	"github.com/rileyhilliard/thermonitor/internal/mode"
	"github.com/rileyhilliard/thermonitor/internal/util"
)

// renderDashboard renders the complete frame. The caller holds the session
// lock.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTooltip())
	b.WriteString("\n\n")

	b.WriteString(m.renderBody())

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title, the mode badge and a short summary.
func (m Model) renderHeader() string {
	machine := m.session.Machine()
	current := machine.Current()

	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("thermonitor")

	badge := lipgloss.NewStyle().
		Foreground(ModeColor(current)).
		Bold(true).
		Render(ModeTitle(current))

	n := m.session.Grid().Len()
	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(fmt.Sprintf(" | %d %s | °%s", n, util.Pluralize(n, "sensor", "sensors"), m.session.Unit()))

	return HeaderStyle.Render(title + " " + badge + stats)
}

// renderTooltip renders the prompt or warning of the active tooltip. The
// initial tooltip has no line; the footer lists its keys.
func (m Model) renderTooltip() string {
	return " " + tooltipText(m.session.Machine())
}

func tooltipText(machine *mode.Machine) string {
	if machine.Current() == mode.Help {
		return LabelStyle.Render("Press any key to return")
	}

	switch machine.Tooltip() {
	case mode.TipSave:
		return PromptStyle.Render("Save current layout? (y/n)")
	case mode.TipSaveFailed:
		msg := "Save failed"
		if err := machine.SaveErr(); err != nil {
			msg += ": " + errors.Summary(err)
		}
		return WarningStyle.Render(msg + " (press any key)")
	case mode.TipLabelPrompt:
		return PromptStyle.Render("Label for sensor: ") + machine.PromptView()
	case mode.TipIDPrompt:
		return PromptStyle.Render("Sensor ID: ") + machine.PromptView()
	case mode.TipRenamePrompt:
		return PromptStyle.Render("New label: ") + machine.PromptView()
	case mode.TipBlankID:
		return WarningStyle.Render("Sensor ID cannot be blank!")
	case mode.TipDuplicateID:
		return WarningStyle.Render("Sensor ID already in use!")
	case mode.TipDelete:
		return PromptStyle.Render("Are you sure? (y/n)")
	}
	return ""
}

// renderBody picks the grid, the timeline, the help screen, or the loading
// spinner.
func (m Model) renderBody() string {
	machine := m.session.Machine()
	switch machine.Current() {
	case mode.Help:
		return m.renderHelp()
	case mode.Detail:
		st := machine.DetailState()
		if st.Loading {
			return m.spinner.View() + LabelStyle.Render(" Loading "+st.Label+"...")
		}
		return m.renderDetailView(st)
	}
	return m.renderSensorCards()
}

// renderFooter renders the active mode's key hints.
func (m Model) renderFooter() string {
	return FooterStyle.Render(m.help.ShortHelpView(m.session.Machine().Bindings()))
}
