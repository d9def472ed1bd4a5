package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/thermonitor/internal/mode"
)

// HelpBinding represents a single entry on the help screen.
type HelpBinding struct {
	Key  string
	Desc string
}

// Help screen styles
var (
	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2).
			MarginRight(1)

	helpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorTitle).
			Bold(true).
			MarginBottom(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Width(12)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)
)

// helpColumnWidth is the text width of one help box.
const helpColumnWidth = 44

// helpSections converts the machine's per-mode bindings into help entries.
func helpSections(machine *mode.Machine) ([]string, [][]HelpBinding) {
	sections := machine.HelpSections()
	titles := make([]string, 0, len(sections))
	entries := make([][]HelpBinding, 0, len(sections))
	for _, s := range sections {
		title := strings.ToUpper(s.Title)
		if title == "DETAIL" {
			title = "TIMELINE"
		}
		titles = append(titles, title+" COMMANDS")

		rows := make([]HelpBinding, 0, len(s.Bindings))
		for _, b := range s.Bindings {
			h := b.Help()
			rows = append(rows, HelpBinding{Key: h.Key, Desc: h.Desc})
		}
		entries = append(entries, rows)
	}
	return titles, entries
}

// flagBindings are the command line flags listed on the help screen.
func (m Model) flagBindings() []HelpBinding {
	file := m.snapshotPath
	if file == "" {
		file = "~/.thermonitor.conf"
	}
	return []HelpBinding{
		{Key: "-f, --file", Desc: "snapshot file (" + file + ")"},
		{Key: "--config", Desc: "settings file"},
		{Key: "--log-level", Desc: "debug, info, warn, error"},
	}
}

func renderHelpBox(title string, rows []HelpBinding) string {
	lines := []string{helpTitleStyle.Render(title)}
	for _, r := range rows {
		lines = append(lines, helpKeyStyle.Render(r.Key)+helpDescStyle.Render(r.Desc))
	}
	return helpBoxStyle.Width(helpColumnWidth).Render(strings.Join(lines, "\n"))
}

// renderHelp lays the mode sections out two per row, then the flags.
func (m Model) renderHelp() string {
	titles, entries := helpSections(m.session.Machine())

	boxes := make([]string, 0, len(titles)+1)
	for i := range titles {
		boxes = append(boxes, renderHelpBox(titles[i], entries[i]))
	}
	boxes = append(boxes, renderHelpBox("COMMAND LINE FLAGS", m.flagBindings()))

	perRow := 2
	if m.width >= 3*(helpColumnWidth+3) {
		perRow = 3
	}

	var rows []string
	for i := 0; i < len(boxes); i += perRow {
		end := min(i+perRow, len(boxes))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
