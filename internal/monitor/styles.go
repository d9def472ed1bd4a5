package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/thermonitor/internal/mode"
)

// Dashboard color palette
const (
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	ColorHealthy  = lipgloss.Color("#39FF14") // Neon green
	ColorWarning  = lipgloss.Color("#FFAA00") // Electric amber
	ColorCritical = lipgloss.Color("#FF0055") // Hot red-pink

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent = lipgloss.Color("#FF2E97") // Neon pink
	ColorTitle  = lipgloss.Color("#D4A017") // Goldenrod, table titles

	ColorTemperature = lipgloss.Color("#FF5F5F")
	ColorHumidity    = lipgloss.Color("#00AFFF")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	SensorIDStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	SensorLabelStyle = lipgloss.NewStyle().
				Foreground(ColorHealthy)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorHealthy).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorCritical).
			Bold(true)

	// Card trend arrows
	TrendUpStyle   = lipgloss.NewStyle().Foreground(ColorTemperature)
	TrendDownStyle = lipgloss.NewStyle().Foreground(ColorHumidity)
)

// ModeColor returns the accent color of a mode's header badge.
func ModeColor(n mode.Name) lipgloss.Color {
	switch n {
	case mode.Edit:
		return lipgloss.Color(mode.ColorEdit)
	case mode.Move:
		return lipgloss.Color(mode.ColorMove)
	case mode.Detail:
		return ColorTitle
	case mode.Help:
		return ColorTextSecondary
	default:
		return lipgloss.Color(mode.ColorNormal)
	}
}

// ModeTitle is the header badge text of a mode.
func ModeTitle(n mode.Name) string {
	if n == mode.Detail {
		return "TIMELINE MODE"
	}
	return strings.ToUpper(n.String()) + " MODE"
}

// SectionHeader renders a section header with the title on the left and value on the right.
// Format: ╭─ Title ────────────────────────────────────── Value ╮
func SectionHeader(title, value string, width int) string {
	if width < 10 {
		width = 10
	}

	leftWidth := 3 + lipgloss.Width(title) + 1
	rightWidth := 1 + lipgloss.Width(value) + 2

	fillWidth := width - leftWidth - rightWidth
	if fillWidth < 1 {
		fillWidth = 1
	}
	middle := strings.Repeat("─", fillWidth)

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	titleStyle := lipgloss.NewStyle().Foreground(ColorTitle).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(ColorTextSecondary)

	return borderStyle.Render("╭─ ") +
		titleStyle.Render(title) +
		borderStyle.Render(" "+middle+" ") +
		valueStyle.Render(value) +
		borderStyle.Render(" ╮")
}

// SectionFooter renders the bottom border of a section.
// Format: ╰────────────────────────────────────────────────────╯
func SectionFooter(width int) string {
	if width < 2 {
		width = 2
	}
	middle := strings.Repeat("─", width-2)
	return lipgloss.NewStyle().Foreground(ColorBorder).Render("╰" + middle + "╯")
}

// SectionContentLine renders a content line with left and right borders, properly padded to width.
// Format: │ content                                              │
func SectionContentLine(content string, width int) string {
	if width < 4 {
		width = 4
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	innerWidth := width - 4

	padding := innerWidth - lipgloss.Width(content)
	if padding < 0 {
		padding = 0
	}

	return borderStyle.Render("│") + " " + content + strings.Repeat(" ", padding) + " " + borderStyle.Render("│")
}

// Section renders lines inside a titled box.
func Section(title, value string, lines []string, width int) string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, SectionHeader(title, value, width))
	for _, l := range lines {
		out = append(out, SectionContentLine(l, width))
	}
	out = append(out, SectionFooter(width))
	return strings.Join(out, "\n")
}
