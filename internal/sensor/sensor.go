// Package sensor holds a sensor's identity, its latest reading, and the
// animated gauges the dashboard draws for it.
package sensor

import "time"

// DefaultLabel is used when a sensor is created without a label.
const DefaultLabel = "Sensor"

// Gauge scales. A temperature of TempScale °C or a humidity of HumidityScale %
// fills a gauge completely.
const (
	TempScale     = 120.0
	HumidityScale = 100.0
)

// Reading is one record from the telemetry store. Nil metrics are unknown,
// which is different from zero.
type Reading struct {
	EpochTime   int64
	Temperature *float64 // °C
	Humidity    *float64 // %
	LocationID  string
}

// Time returns the reading's timestamp.
func (r Reading) Time() time.Time {
	return time.Unix(r.EpochTime, 0)
}

// Sensor is a named telemetry device placed on the grid.
type Sensor struct {
	ID    string
	Label string

	// Latest is nil until the first successful fetch.
	Latest *Reading

	Temp     *Gauge
	Humidity *Gauge
}

// New creates a sensor with no reading. A blank label becomes DefaultLabel.
func New(id, label string) *Sensor {
	if label == "" {
		label = DefaultLabel
	}
	return &Sensor{
		ID:       id,
		Label:    label,
		Temp:     NewGauge(),
		Humidity: NewGauge(),
	}
}

// Apply records a fresh reading. Metrics missing from r leave the matching
// gauge where it was.
func (s *Sensor) Apply(r Reading) {
	s.Latest = &r
	if r.Temperature != nil {
		s.Temp.Set(*r.Temperature)
	}
	if r.Humidity != nil {
		s.Humidity.Set(*r.Humidity)
	}
}

// Step advances both gauge animations by one frame and reports whether
// either is still moving.
func (s *Sensor) Step() bool {
	t := s.Temp.Step()
	h := s.Humidity.Step()
	return t || h
}

// Temperature returns the latest temperature in °C, if known.
func (s *Sensor) Temperature() (float64, bool) {
	if s.Latest == nil || s.Latest.Temperature == nil {
		return 0, false
	}
	return *s.Latest.Temperature, true
}

// RelativeHumidity returns the latest humidity in %, if known.
func (s *Sensor) RelativeHumidity() (float64, bool) {
	if s.Latest == nil || s.Latest.Humidity == nil {
		return 0, false
	}
	return *s.Latest.Humidity, true
}

// LocationID returns the location of the latest reading, or "".
func (s *Sensor) LocationID() string {
	if s.Latest == nil {
		return ""
	}
	return s.Latest.LocationID
}
