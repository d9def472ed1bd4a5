package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/thermonitor/internal/grid"
	"github.com/rileyhilliard/thermonitor/internal/sensor"
	"github.com/rileyhilliard/thermonitor/internal/util"
)

// Card layout constants
const (
	cardDefaultWidth = 36
	cardMinWidth     = 24
	cardMinBarWidth  = 6
	cardLabelWidth   = 5 // "Temp " / "Hum  "
	cardValueWidth   = 9 // "-123.4°F" plus a space
	cardTrendWidth   = 2 // " ▲"
	cardHeight       = 6 // content lines, without border
)

// renderSensorCards renders the grid, one row of cards per grid row. Empty
// cells keep their place so columns line up.
func (m Model) renderSensorCards() string {
	g := m.session.Grid()
	if g.Len() == 0 {
		return LabelStyle.Render("No sensors yet. Press e, then a, to add one.")
	}

	width := m.calculateCardWidth()
	cursor := g.Cursor()
	highlight := lipgloss.Color(g.HighlightColor())

	rows := make([]string, 0, g.Rows())
	for r := 0; r < g.Rows(); r++ {
		cards := make([]string, 0, grid.Width)
		for c := 0; c < grid.Width; c++ {
			s := g.At(c, r)
			if s == nil {
				cards = append(cards, m.renderEmptyCell(width))
				continue
			}
			selected := cursor == grid.Position{Col: c, Row: r}
			cards = append(cards, m.renderCard(s, width, selected, highlight))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// calculateCardWidth fits three cards per row.
func (m Model) calculateCardWidth() int {
	if m.width == 0 {
		return cardDefaultWidth
	}
	// Each card adds a border on both sides and a right margin.
	w := m.width/grid.Width - 3
	if w < cardMinWidth {
		return cardMinWidth
	}
	return w
}

// innerWidth is the text width inside a card's border and padding.
func innerWidth(cardWidth int) int {
	return cardWidth - 2
}

func (m Model) renderEmptyCell(width int) string {
	return lipgloss.NewStyle().
		Width(width + 2).
		Height(cardHeight + 2).
		MarginRight(1).
		Render("")
}

// renderCard renders one sensor: id, temperature and humidity gauges, label.
func (m Model) renderCard(s *sensor.Sensor, width int, selected bool, highlight lipgloss.Color) string {
	inner := innerWidth(width)
	unit := m.session.Unit()

	lines := []string{
		SensorIDStyle.Render(util.Truncate(s.ID, inner)),
		"",
		m.renderGaugeLine("Temp", s.Temp, sensor.TempScale, inner, m.tempBar, func(v float64) string {
			return unit.Format(v)
		}),
		m.renderGaugeLine("Hum", s.Humidity, sensor.HumidityScale, inner, m.humBar, func(v float64) string {
			return fmt.Sprintf("%.1f %%", v)
		}),
		"",
		SensorLabelStyle.Render(util.Center(s.Label, inner)),
	}

	style := CardStyle.Width(width)
	if selected {
		style = style.BorderForeground(highlight)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// renderGaugeLine renders "Temp ▇▇▇▇▇░░░░ 21.5°C ▲". The value shown is the
// animated one, so the number and the bar move together. The arrow tells
// whether the last reading came in above or below what was on screen.
func (m Model) renderGaugeLine(name string, g *sensor.Gauge, scale float64, width int, bar progress.Model, format func(float64) string) string {
	label := LabelStyle.Render(padRight(name, cardLabelWidth))

	value := "--"
	if g.Known() {
		value = format(g.Shown())
	}
	valueText := ValueStyle.Render(fmt.Sprintf("%*s", cardValueWidth, value))

	barWidth := width - cardLabelWidth - cardValueWidth - cardTrendWidth
	if barWidth < cardMinBarWidth {
		barWidth = cardMinBarWidth
	}
	bar.Width = barWidth
	return label + bar.ViewAs(g.Fraction(scale)) + valueText + renderTrend(g)
}

func renderTrend(g *sensor.Gauge) string {
	switch g.Trend() {
	case 1:
		return " " + TrendUpStyle.Render("▲")
	case -1:
		return " " + TrendDownStyle.Render("▼")
	}
	return strings.Repeat(" ", cardTrendWidth)
}

func padRight(s string, width int) string {
	s = util.Truncate(s, width)
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}
