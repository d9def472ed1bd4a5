// Package poller refreshes every sensor's latest reading in the background.
//
// Each cycle takes the session lock, fetches all sensors concurrently, applies
// the results, and releases the lock before sleeping. The UI takes the same
// lock to handle keys and render, so it never sees a half-applied cycle.
package poller

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rileyhilliard/thermonitor/internal/logger"
	"github.com/rileyhilliard/thermonitor/internal/sensor"
)

// DefaultInterval is the pause between cycles.
const DefaultInterval = 5 * time.Second

// Source is the lock-guarded set of sensors to refresh.
type Source interface {
	Lock()
	Unlock()
	Sensors() []*sensor.Sensor
}

// Fetcher returns a sensor's latest reading.
type Fetcher interface {
	Latest(ctx context.Context, id string) (*sensor.Reading, error)
}

// CycleStats summarizes one refresh cycle.
type CycleStats struct {
	Sensors  int
	Updated  int
	Failed   int
	Duration time.Duration
}

// Poller runs the refresh loop.
type Poller struct {
	src      Source
	fetch    Fetcher
	interval time.Duration
	log      logger.Logger
	trigger  chan struct{}
	cycles   atomic.Int64

	// OnCycle, when set, is called after each cycle with the lock released.
	OnCycle func(CycleStats)
}

// New creates a poller. A non-positive interval uses DefaultInterval.
func New(src Source, fetch Fetcher, interval time.Duration, log logger.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Poller{
		src:      src,
		fetch:    fetch,
		interval: interval,
		log:      log,
		trigger:  make(chan struct{}, 1),
	}
}

// Trigger asks for a cycle now instead of at the end of the current sleep.
// It never blocks; repeated triggers before the next cycle collapse into one.
func (p *Poller) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Cycles returns how many cycles have completed.
func (p *Poller) Cycles() int64 {
	return p.cycles.Load()
}

// Run loops until ctx is cancelled. Cancellation is checked between cycles;
// fetches already in flight finish first.
func (p *Poller) Run(ctx context.Context) error {
	timer := time.NewTimer(p.interval)
	timer.Stop()
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}

		stats := p.Cycle(ctx)
		p.log.Debug("poll cycle: %d sensors, %d updated, %d failed in %s",
			stats.Sensors, stats.Updated, stats.Failed, stats.Duration.Round(time.Millisecond))
		if p.OnCycle != nil {
			p.OnCycle(stats)
		}

		timer.Reset(p.interval)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		case <-p.trigger:
			timer.Stop()
		}
	}
}

// Cycle runs one refresh under the source lock. A failed fetch leaves that
// sensor's last good reading in place.
func (p *Poller) Cycle(ctx context.Context) CycleStats {
	start := time.Now()
	fetchCtx := context.WithoutCancel(ctx)

	p.src.Lock()
	defer p.src.Unlock()

	sensors := p.src.Sensors()
	var updated, failed atomic.Int64

	var g errgroup.Group
	for _, s := range sensors {
		g.Go(func() error {
			r, err := p.fetch.Latest(fetchCtx, s.ID)
			if err != nil || r == nil {
				failed.Add(1)
				p.log.Debug("poll %s: %v", s.ID, err)
				return nil
			}
			s.Apply(*r)
			updated.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	p.cycles.Add(1)
	return CycleStats{
		Sensors:  len(sensors),
		Updated:  int(updated.Load()),
		Failed:   int(failed.Load()),
		Duration: time.Since(start),
	}
}
