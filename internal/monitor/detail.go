package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/thermonitor/internal/detail"
	"github.com/rileyhilliard/thermonitor/internal/errors"
	"github.com/rileyhilliard/thermonitor/internal/mode"
	"github.com/rileyhilliard/thermonitor/internal/sensor"
	"github.com/rileyhilliard/thermonitor/internal/series"
	"github.com/rileyhilliard/thermonitor/internal/util"
	"github.com/rileyhilliard/thermonitor/internal/weather"
)

// Detail view layout
const (
	detailGraphHeight = 4
	detailKeyWidth    = 16
	detailMinWidth    = 40
	detailSideBySide  = 100 // terminal width at which the info tables share a row
)

var (
	detailContainerStyle = lipgloss.NewStyle().
				Padding(0, 1)

	detailKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F08080")).
			Width(detailKeyWidth).
			Align(lipgloss.Right)

	intervalActiveStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary).
				Background(ColorBorder).
				Bold(true).
				Padding(0, 1)

	intervalStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)
)

// renderDetailView renders the timeline view for the sensor in st.
func (m Model) renderDetailView(st mode.DetailState) string {
	if st.Data == nil {
		return LabelStyle.Render(fmt.Sprintf("No data for %s. Press r to retry.", st.SensorID))
	}
	unit := m.session.Unit()

	contentWidth := m.width - 4
	if contentWidth < detailMinWidth {
		contentWidth = detailMinWidth
	}

	var info string
	if m.width >= detailSideBySide {
		half := contentWidth/2 - 1
		info = lipgloss.JoinHorizontal(lipgloss.Top,
			renderSensorInfo(st.Data, unit, half),
			"  ",
			renderWeatherInfo(st.Data.Weather, unit, half),
		)
	} else {
		info = lipgloss.JoinVertical(lipgloss.Left,
			renderSensorInfo(st.Data, unit, contentWidth),
			renderWeatherInfo(st.Data.Weather, unit, contentWidth),
		)
	}

	s := st.Data.Series[st.Interval]
	temps := s.Temperature
	convert := func(b []series.Bucket) []float64 {
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = unit.Convert(v.Y)
		}
		return out
	}

	parts := []string{
		info,
		renderIntervalTabs(st.Interval),
		renderSeriesSection("Temperature", "°"+string(unit), "temperature", st.Interval,
			temps, convert(temps), s.Err, ColorTemperature, contentWidth),
		renderSeriesSection("Humidity", "% RH", "humidity", st.Interval,
			s.Humidity, series.Values(s.Humidity), s.Err, ColorHumidity, contentWidth),
	}
	return detailContainerStyle.Render(strings.Join(parts, "\n"))
}

func infoRow(key, value string) string {
	return detailKeyStyle.Render(key+": ") + ValueStyle.Render(value)
}

// renderSensorInfo renders the latest reading of the sensor.
func renderSensorInfo(d *detail.Data, unit sensor.Unit, width int) string {
	lines := []string{infoRow("Sensor ID", d.SensorID)}
	if r := d.Reading; r != nil {
		lines = append(lines, infoRow("Last updated", r.Time().Format(time.ANSIC)))
		if r.Temperature != nil {
			lines = append(lines, infoRow("Temperature", unit.Format(*r.Temperature)))
		}
		if r.Humidity != nil {
			lines = append(lines, infoRow("Humidity", fmt.Sprintf("%.1f %%", *r.Humidity)))
		}
	} else {
		lines = append(lines, infoRow("Last updated", "never"))
	}
	return Section(d.Label, "", lines, width)
}

// renderWeatherInfo renders the weather at the sensor's location, or a
// placeholder when the sensor reports no location.
func renderWeatherInfo(w *weather.Info, unit sensor.Unit, width int) string {
	if w == nil {
		return Section("Weather", "", []string{LabelStyle.Render("No location data")}, width)
	}

	wind := fmt.Sprintf("%.1f m/s", w.WindSpeed)
	if unit.Imperial() {
		wind = fmt.Sprintf("%.1f mph", sensor.MpsToMph(w.WindSpeed))
	}
	lines := []string{
		infoRow("Temperature", unit.Format(w.Temperature)),
		infoRow("Humidity", fmt.Sprintf("%.0f %%", w.Humidity)),
		infoRow("Pressure", fmt.Sprintf("%.0f hPa", w.Pressure)),
		infoRow("Wind Direction", fmt.Sprintf("%.0f°", w.WindDirection)),
		infoRow("Wind Speed", wind),
	}
	return Section(w.Title(), w.LocationID, lines, width)
}

// renderIntervalTabs highlights the selected interval.
func renderIntervalTabs(active series.Interval) string {
	tabs := make([]string, 0, len(series.Intervals))
	for _, iv := range series.Intervals {
		if iv == active {
			tabs = append(tabs, intervalActiveStyle.Render(iv.Adverb()))
		} else {
			tabs = append(tabs, intervalStyle.Render(iv.Adverb()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderSeriesSection renders one plot with its range in the header, or a
// placeholder such as "No hourly humidity data". A failed history fetch gets
// its own placeholder so an outage does not look like a quiet sensor.
func renderSeriesSection(title, legend, noun string, iv series.Interval, buckets []series.Bucket, values []float64, fetchErr error, color lipgloss.Color, width int) string {
	if fetchErr != nil {
		msg := fmt.Sprintf("Couldn't load %s data: %s (press r to retry)", iv.Adverb(), errors.Summary(fetchErr))
		return Section(title, legend, []string{WarningStyle.Render(util.Truncate(msg, width-4))}, width)
	}
	if len(values) == 0 {
		msg := fmt.Sprintf("No %s %s data", iv.Adverb(), noun)
		return Section(title, legend, []string{LabelStyle.Render(msg)}, width)
	}

	graphWidth := width - 4
	lo, hi := findMinMax(values)
	graph := RenderBrailleSparkline(values, graphWidth, detailGraphHeight, lo, hi, color)

	lines := strings.Split(graph, "\n")
	lines = append(lines, RenderAxisLabels(buckets, graphWidth))

	last := values[len(values)-1]
	rng := fmt.Sprintf("%.1f..%.1f %s, now %.1f", lo, hi, legend, last)
	return Section(title, rng, lines, width)
}
