package monitor

import (
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/thermonitor/internal/detail"
	"github.com/rileyhilliard/thermonitor/internal/logger"
	"github.com/rileyhilliard/thermonitor/internal/mode"
	"github.com/rileyhilliard/thermonitor/internal/sensor"
	"github.com/rileyhilliard/thermonitor/internal/series"
	"github.com/rileyhilliard/thermonitor/internal/session"
	"github.com/rileyhilliard/thermonitor/internal/weather"
)

func settle(s *sensor.Sensor) {
	for i := 0; i < 1000 && s.Step(); i++ {
	}
}

func TestRenderCard_UnknownReading(t *testing.T) {
	s := newTestSession(t, "abc")
	m := newTestModel(t, s, nil, nil)

	card := m.renderCard(s.Grid().Selected(), 36, false, ColorAccent)

	assert.Contains(t, card, "abc")
	assert.Contains(t, card, "Room abc")
	assert.Contains(t, card, "--")
}

func TestRenderCard_Values(t *testing.T) {
	s := newTestSession(t, "abc")
	m := newTestModel(t, s, nil, nil)
	sn := s.Grid().Selected()
	sn.Apply(sensor.Reading{Temperature: ptr(21.5), Humidity: ptr(45)})
	settle(sn)

	card := m.renderCard(sn, 36, false, ColorAccent)
	assert.Contains(t, card, "21.5°C")
	assert.Contains(t, card, "45.0 %")

	s.ToggleUnit()
	card = m.renderCard(sn, 36, false, ColorAccent)
	assert.Contains(t, card, "70.7°F")
}

func TestRenderCard_Trend(t *testing.T) {
	s := newTestSession(t, "abc")
	m := newTestModel(t, s, nil, nil)
	sn := s.Grid().Selected()

	sn.Apply(sensor.Reading{Temperature: ptr(20), Humidity: ptr(50)})
	settle(sn)
	card := m.renderCard(sn, 36, false, ColorAccent)
	assert.NotContains(t, card, "▲", "first reading has no trend")
	assert.NotContains(t, card, "▼")

	sn.Apply(sensor.Reading{Temperature: ptr(23), Humidity: ptr(45)})
	card = m.renderCard(sn, 36, false, ColorAccent)
	assert.Contains(t, card, "▲", "temperature rose")
	assert.Contains(t, card, "▼", "humidity fell")
}

func TestRenderCard_Width(t *testing.T) {
	s := newTestSession(t, "averyveryverylongsensoridentifier")
	m := newTestModel(t, s, nil, nil)

	card := m.renderCard(s.Grid().Selected(), 30, false, ColorAccent)

	for _, line := range strings.Split(card, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 30+2+1, "border and margin only")
	}
	assert.Contains(t, card, "…")
}

func TestRenderCard_SelectedUsesHighlight(t *testing.T) {
	s := newTestSession(t, "abc")
	m := newTestModel(t, s, nil, nil)
	sn := s.Grid().Selected()

	plain := m.renderCard(sn, 36, false, lipgloss.Color(mode.ColorEdit))
	selected := m.renderCard(sn, 36, true, lipgloss.Color(mode.ColorEdit))

	// #FF0055 in truecolor
	assert.NotContains(t, plain, "255;0;85")
	assert.Contains(t, selected, "255;0;85")
}

func TestRenderSensorCards(t *testing.T) {
	t.Run("empty grid", func(t *testing.T) {
		m := newTestModel(t, newTestSession(t), nil, nil)
		assert.Contains(t, m.renderSensorCards(), "No sensors yet")
	})

	t.Run("rows of three", func(t *testing.T) {
		s := newTestSession(t, "a1", "b2", "c3", "d4")
		m := newTestModel(t, s, nil, nil)
		out := m.renderSensorCards()
		for _, id := range []string{"a1", "b2", "c3", "d4"} {
			assert.Contains(t, out, id)
		}
		first := strings.Index(out, "a1")
		fourth := strings.Index(out, "d4")
		assert.Greater(t, strings.Count(out[first:fourth], "\n"), 3, "fourth sensor starts a new row")
	})
}

func TestCalculateCardWidth(t *testing.T) {
	m := Model{}
	assert.Equal(t, cardDefaultWidth, m.calculateCardWidth())

	m.width = 60
	assert.Equal(t, cardMinWidth, m.calculateCardWidth())

	m.width = 150
	assert.Equal(t, 47, m.calculateCardWidth())
}

func TestTooltipText(t *testing.T) {
	s := newTestSession(t, "abc")
	machine := s.Machine()
	ctx := s

	assert.Empty(t, tooltipText(machine))

	machine.HandleKey(ctx, "s")
	assert.Contains(t, tooltipText(machine), "Save current layout? (y/n)")
	machine.HandleKey(ctx, "n")

	machine.HandleKey(ctx, "e")
	machine.HandleKey(ctx, "a")
	machine.HandleKey(ctx, "K")
	assert.Contains(t, stripANSI(tooltipText(machine)), "Label for sensor: K")
	machine.HandleKey(ctx, "enter")
	assert.Contains(t, stripANSI(tooltipText(machine)), "Sensor ID: ")
	machine.HandleKey(ctx, "enter")
	assert.Contains(t, tooltipText(machine), "Sensor ID cannot be blank!")
	machine.HandleKey(ctx, "x")
	machine.HandleKey(ctx, "a")
	machine.HandleKey(ctx, "b")
	machine.HandleKey(ctx, "c")
	machine.HandleKey(ctx, "enter")
	assert.Contains(t, tooltipText(machine), "Sensor ID already in use!")
	machine.HandleKey(ctx, "esc")
	machine.HandleKey(ctx, "esc")

	machine.HandleKey(ctx, "d")
	assert.Contains(t, tooltipText(machine), "Are you sure? (y/n)")
	machine.HandleKey(ctx, "n")

	machine.HandleKey(ctx, "?")
	assert.Contains(t, tooltipText(machine), "Press any key to return")
}

func TestTooltipText_SaveFailed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "snap.conf")
	s := session.New(path, mode.DefaultKeyMap(), logger.Noop())
	machine := s.Machine()

	machine.HandleKey(s, "s")
	machine.HandleKey(s, "y")

	require.Equal(t, mode.TipSaveFailed, machine.Tooltip())
	text := tooltipText(machine)
	assert.Contains(t, text, "Save failed: Failed to write snapshot")
	assert.Contains(t, text, "press any key")
}

func TestRenderFooter_ListsModeBindings(t *testing.T) {
	s := newTestSession(t, "abc")
	m := newTestModel(t, s, nil, nil)

	footer := m.renderFooter()
	assert.Contains(t, footer, "edit")
	assert.Contains(t, footer, "timeline")
}

func TestRenderHelp(t *testing.T) {
	s := newTestSession(t)
	m := newTestModel(t, s, nil, nil)
	m.snapshotPath = "/tmp/x.conf"

	out := m.renderHelp()

	for _, want := range []string{"NORMAL COMMANDS", "EDIT COMMANDS", "MOVE COMMANDS", "TIMELINE COMMANDS", "COMMAND LINE FLAGS", "-f, --file", "/tmp/x.conf"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderDetailView(t *testing.T) {
	s := newTestSession(t, "abc")
	m := newTestModel(t, s, nil, nil)
	st := mode.DetailState{
		SensorID: "abc",
		Label:    "Kitchen",
		Interval: series.Minute,
		Data: &detail.Data{
			SensorID: "abc",
			Label:    "Kitchen",
			Series: map[series.Interval]detail.Series{
				series.Hour: {Temperature: []series.Bucket{{Label: "9:00", Y: 20}}},
			},
		},
	}

	out := m.renderDetailView(st)
	assert.Contains(t, out, "Kitchen")
	assert.Contains(t, out, "No location data")
	assert.Contains(t, out, "No minutely temperature data")
	assert.Contains(t, out, "No minutely humidity data")
	assert.Contains(t, out, "never")

	st.Interval = series.Hour
	out = m.renderDetailView(st)
	assert.NotContains(t, out, "No hourly temperature data")
	assert.Contains(t, out, "No hourly humidity data")
}

func TestRenderDetailView_FetchErrorDiffersFromNoData(t *testing.T) {
	s := newTestSession(t, "abc")
	m := newTestModel(t, s, nil, nil)
	st := mode.DetailState{SensorID: "abc", Label: "Kitchen", Interval: series.Hour}

	st.Data = &detail.Data{SensorID: "abc", Label: "Kitchen", Series: map[series.Interval]detail.Series{
		series.Hour: {Temperature: []series.Bucket{}, Humidity: []series.Bucket{}},
	}}
	empty := m.renderDetailView(st)

	st.Data = &detail.Data{SensorID: "abc", Label: "Kitchen", Series: map[series.Interval]detail.Series{
		series.Hour: {Err: stderrors.New("telemetry unreachable")},
	}}
	failed := m.renderDetailView(st)

	assert.NotEqual(t, empty, failed)
	assert.Contains(t, empty, "No hourly temperature data")
	assert.NotContains(t, empty, "Couldn't load")

	assert.Contains(t, failed, "Couldn't load hourly data")
	assert.Contains(t, failed, "telemetry unreachable")
	assert.Contains(t, failed, "press r to retry")
	assert.NotContains(t, failed, "No hourly temperature data")
}

func TestRenderWeatherInfo_Units(t *testing.T) {
	w := &weather.Info{LocationID: "97201", Temperature: 10, WindSpeed: 10}

	metric := renderWeatherInfo(w, sensor.Celsius, 60)
	assert.Contains(t, metric, "10.0 m/s")
	assert.Contains(t, metric, "10.0°C")
	assert.Contains(t, metric, "97201", "title falls back to the location id")

	imperial := renderWeatherInfo(w, sensor.Fahrenheit, 60)
	assert.Contains(t, imperial, "22.4 mph")
	assert.Contains(t, imperial, "50.0°F")
}

func TestSectionLinesHaveEqualWidth(t *testing.T) {
	out := Section("Title", "value", []string{"a", "longer line"}, 30)
	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, 30, runewidth.StringWidth(stripANSI(line)))
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && r == 'm':
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
