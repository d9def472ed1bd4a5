package session

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/rileyhilliard/thermonitor/internal/errors"
	"github.com/rileyhilliard/thermonitor/internal/grid"
	"github.com/rileyhilliard/thermonitor/internal/input"
	"github.com/rileyhilliard/thermonitor/internal/sensor"
	"github.com/rileyhilliard/thermonitor/internal/series"
)

// Snapshot is the persisted form of a session.
type Snapshot struct {
	Unit     string       `json:"unit"`
	Interval string       `json:"interval"`
	Sensors  []grid.Entry `json:"sensors"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Unit:     string(s.unit),
		Interval: s.machine.Interval().String(),
		Sensors:  s.grid.List(),
	}
}

// Load replaces the session's state with the snapshot file. A missing or
// malformed file leaves the defaults in place and is not an error; invalid
// fields are skipped one by one.
func (s *Session) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			s.log.Warn("read snapshot %s: %v", s.path, err)
		}
		return
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn("snapshot %s is malformed, using defaults: %v", s.path, err)
		return
	}
	s.Apply(snap)
}

// Apply loads a snapshot into the session.
func (s *Session) Apply(snap Snapshot) {
	if u, ok := sensor.ParseUnit(snap.Unit); ok {
		s.unit = u
	} else if snap.Unit != "" {
		s.log.Warn("snapshot: ignoring unit %q", snap.Unit)
	}

	if iv, err := series.ParseInterval(snap.Interval); err == nil {
		s.machine.SetInterval(iv)
	} else if snap.Interval != "" {
		s.log.Warn("snapshot: ignoring interval %q", snap.Interval)
	}

	for _, e := range snap.Sensors {
		id := input.SanitizeID(e.ID)
		if err := s.grid.Add(id, input.SanitizeLabel(e.Label)); err != nil {
			s.log.Warn("snapshot: skipping sensor %q: %v", e.ID, err)
		}
	}
}

// Save writes the snapshot atomically: to a temporary file in the same
// directory, then renamed over the old one.
func (s *Session) Save() error {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrSnapshot, "Failed to encode snapshot", "")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".thermonitor-*.tmp")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrSnapshot,
			"Failed to write snapshot",
			"Check that "+dir+" exists and is writable, or pass -f")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return errors.WrapWithCode(err, errors.ErrSnapshot, "Failed to write snapshot", "")
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapWithCode(err, errors.ErrSnapshot, "Failed to write snapshot", "")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.WrapWithCode(err, errors.ErrSnapshot, "Failed to replace snapshot", "")
	}

	s.log.Info("saved %d sensors to %s", len(s.grid.List()), s.path)
	return nil
}
