// Package session holds the process-wide dashboard state: the sensor grid,
// the temperature unit, the mode machine, and the snapshot file they are
// saved to. One mutex guards all of it; the poller and the UI tick both take
// it before touching the grid.
package session

import (
	"sync"

	"github.com/rileyhilliard/thermonitor/internal/grid"
	"github.com/rileyhilliard/thermonitor/internal/logger"
	"github.com/rileyhilliard/thermonitor/internal/mode"
	"github.com/rileyhilliard/thermonitor/internal/sensor"
)

// Session is the dashboard state. Methods other than Lock, Unlock and
// TryLock expect the caller to hold the lock.
type Session struct {
	mu sync.Mutex

	grid    *grid.Grid
	unit    sensor.Unit
	machine *mode.Machine
	path    string
	log     logger.Logger
}

// New creates an empty session that saves to path. The caller expands ~;
// config.Load does it for the settings file and the -f flag.
func New(path string, keys mode.KeyMap, log logger.Logger) *Session {
	if log == nil {
		log = logger.Noop()
	}
	s := &Session{
		grid:    grid.New(mode.ColorNormal),
		unit:    sensor.Celsius,
		machine: mode.New(keys),
		path:    path,
		log:     log,
	}
	s.machine.Start(s)
	return s
}

// Lock acquires the session lock.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// TryLock acquires the lock if it is free.
func (s *Session) TryLock() bool { return s.mu.TryLock() }

// Grid returns the sensor grid.
func (s *Session) Grid() *grid.Grid { return s.grid }

// Unit returns the temperature unit.
func (s *Session) Unit() sensor.Unit { return s.unit }

// ToggleUnit switches between Celsius and Fahrenheit.
func (s *Session) ToggleUnit() { s.unit = s.unit.Toggle() }

// Machine returns the mode machine.
func (s *Session) Machine() *mode.Machine { return s.machine }

// Path returns the snapshot path.
func (s *Session) Path() string { return s.path }

// Sensors returns the gridded sensors in row-major order.
func (s *Session) Sensors() []*sensor.Sensor { return s.grid.Sensors() }

// HandleKey routes one key through the active mode.
func (s *Session) HandleKey(k string) mode.Outcome {
	out := s.machine.HandleKey(s, mode.Key(k))
	s.log.Debug("key %q -> mode=%s tooltip=%s outcome=%d", k, s.machine.Current(), s.machine.Tooltip(), out)
	return out
}

// Step advances every sensor's gauge animation by one frame.
func (s *Session) Step() {
	for _, sn := range s.grid.Sensors() {
		sn.Step()
	}
}
