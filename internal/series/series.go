// Package series buckets irregular telemetry samples into minute, hour, or
// day series for the detail plots.
package series

import (
	"fmt"
	"strconv"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Interval is the width of one bucket.
type Interval int

const (
	Minute Interval = iota
	Hour
	Day
)

// Intervals lists every interval, narrowest first.
var Intervals = []Interval{Minute, Hour, Day}

func (iv Interval) String() string {
	switch iv {
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case Day:
		return "day"
	}
	return "interval(" + strconv.Itoa(int(iv)) + ")"
}

// Adverb returns the word used in "No hourly temperature data".
func (iv Interval) Adverb() string {
	switch iv {
	case Minute:
		return "minutely"
	case Hour:
		return "hourly"
	case Day:
		return "daily"
	}
	return iv.String()
}

// ParseInterval accepts "minute", "hour" or "day".
func ParseInterval(s string) (Interval, error) {
	for _, iv := range Intervals {
		if iv.String() == s {
			return iv, nil
		}
	}
	return 0, fmt.Errorf("unknown interval %q", s)
}

// Window returns the history range the detail view requests for iv, ending at now.
func (iv Interval) Window(now time.Time) (start, end time.Time) {
	switch iv {
	case Minute:
		return now.Add(-time.Hour), now
	case Day:
		return now.AddDate(0, 0, -30), now
	default:
		return now.Add(-24 * time.Hour), now
	}
}

// Floor rounds t down to the start of its bucket in t's location.
func (iv Interval) Floor(t time.Time) time.Time {
	y, mo, d := t.Date()
	switch iv {
	case Minute:
		return time.Date(y, mo, d, t.Hour(), t.Minute(), 0, 0, t.Location())
	case Day:
		return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(y, mo, d, t.Hour(), 0, 0, 0, t.Location())
	}
}

// Label formats a bucket start: "15:04" for minutes, "3:00" for hours and
// "1/2" for days.
func (iv Interval) Label(t time.Time) string {
	switch iv {
	case Minute:
		return t.Format("15:04")
	case Day:
		return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
	default:
		return fmt.Sprintf("%d:00", t.Hour())
	}
}

// Sample is one raw observation.
type Sample struct {
	Epoch int64
	Value float64
}

// Bucket is the mean of every sample sharing a floored timestamp.
type Bucket struct {
	X     int64 // floored unix seconds
	Label string
	Y     float64
	Count int
}

// Aggregate buckets samples in local time.
func Aggregate(samples []Sample, iv Interval) []Bucket {
	return AggregateIn(samples, iv, time.Local)
}

// AggregateIn buckets samples in loc. Buckets keep the order in which their
// first sample appears; they are not sorted. The result is never nil.
func AggregateIn(samples []Sample, iv Interval, loc *time.Location) []Bucket {
	type group struct {
		start  time.Time
		values []float64
	}

	index := make(map[int64]int)
	groups := make([]*group, 0)

	for _, s := range samples {
		start := iv.Floor(time.Unix(s.Epoch, 0).In(loc))
		key := start.Unix()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, &group{start: start})
		}
		groups[i].values = append(groups[i].values, s.Value)
	}

	buckets := make([]Bucket, 0, len(groups))
	for _, g := range groups {
		buckets = append(buckets, Bucket{
			X:     g.start.Unix(),
			Label: iv.Label(g.start),
			Y:     stat.Mean(g.values, nil),
			Count: len(g.values),
		})
	}
	return buckets
}

// Values returns the Y values of buckets in order.
func Values(buckets []Bucket) []float64 {
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		out[i] = b.Y
	}
	return out
}
