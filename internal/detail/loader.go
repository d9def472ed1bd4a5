// Package detail gathers everything the detail view shows for one sensor:
// its latest reading, the weather at its location, and temperature and
// humidity series at every interval.
package detail

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rileyhilliard/thermonitor/internal/logger"
	"github.com/rileyhilliard/thermonitor/internal/sensor"
	"github.com/rileyhilliard/thermonitor/internal/series"
	"github.com/rileyhilliard/thermonitor/internal/weather"
)

// Telemetry is the part of the telemetry client the loader needs.
type Telemetry interface {
	Latest(ctx context.Context, id string) (*sensor.Reading, error)
	History(ctx context.Context, id string, start, end time.Time) ([]sensor.Reading, error)
}

// Weather is the part of the weather client the loader needs.
type Weather interface {
	Lookup(ctx context.Context, locationID string) (*weather.Info, error)
}

// Series holds the bucketed temperature and humidity for one interval.
type Series struct {
	Temperature []series.Bucket
	Humidity    []series.Bucket
	Err         error
}

// Data is one snapshot of the detail view. Any part may be missing; the
// view shows a placeholder for it.
type Data struct {
	SensorID  string
	Label     string
	Reading   *sensor.Reading
	Weather   *weather.Info
	Series    map[series.Interval]Series
	FetchedAt time.Time
}

// Loader fetches detail data. Failures are logged and leave the matching
// part of Data empty.
type Loader struct {
	telemetry Telemetry
	weather   Weather
	log       logger.Logger

	Now      func() time.Time
	Location *time.Location
}

// NewLoader creates a loader that buckets in local time.
func NewLoader(t Telemetry, w Weather, log logger.Logger) *Loader {
	if log == nil {
		log = logger.Noop()
	}
	return &Loader{
		telemetry: t,
		weather:   w,
		log:       log,
		Now:       time.Now,
		Location:  time.Local,
	}
}

// Load fetches the latest reading (then weather for its location) and the
// three interval histories concurrently. It only fails when ctx is done.
func (l *Loader) Load(ctx context.Context, id, label string) (*Data, error) {
	now := l.Now()
	data := &Data{
		SensorID:  id,
		Label:     label,
		Series:    make(map[series.Interval]Series, len(series.Intervals)),
		FetchedAt: now,
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		reading, err := l.telemetry.Latest(gctx, id)
		if err != nil || reading == nil {
			l.log.Debug("detail %s: latest reading: %v", id, err)
			return nil
		}

		var info *weather.Info
		if reading.LocationID != "" && l.weather != nil {
			info, err = l.weather.Lookup(gctx, reading.LocationID)
			if err != nil {
				l.log.Debug("detail %s: weather for %s: %v", id, reading.LocationID, err)
				info = nil
			}
		}

		mu.Lock()
		data.Reading = reading
		data.Weather = info
		mu.Unlock()
		return nil
	})

	for _, iv := range series.Intervals {
		g.Go(func() error {
			start, end := iv.Window(now)
			readings, err := l.telemetry.History(gctx, id, start, end)
			s := Series{Err: err}
			if err != nil {
				l.log.Debug("detail %s: %s history: %v", id, iv, err)
			} else {
				s.Temperature, s.Humidity = l.bucket(readings, iv)
			}

			mu.Lock()
			data.Series[iv] = s
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return data, nil
}

func (l *Loader) bucket(readings []sensor.Reading, iv series.Interval) (temp, hum []series.Bucket) {
	var ts, hs []series.Sample
	for _, r := range readings {
		if r.Temperature != nil {
			ts = append(ts, series.Sample{Epoch: r.EpochTime, Value: *r.Temperature})
		}
		if r.Humidity != nil {
			hs = append(hs, series.Sample{Epoch: r.EpochTime, Value: *r.Humidity})
		}
	}
	return series.AggregateIn(ts, iv, l.Location), series.AggregateIn(hs, iv, l.Location)
}
