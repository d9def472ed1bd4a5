package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var utc = time.UTC

func epoch(s string) int64 {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", s, utc)
	if err != nil {
		panic(err)
	}
	return t.Unix()
}

func TestAggregate_HourScenario(t *testing.T) {
	t0 := epoch("2024-03-05 14:10:00")
	samples := []Sample{
		{Epoch: t0, Value: 20.0},
		{Epoch: t0 + 30, Value: 22.0},
		{Epoch: t0 + 3600, Value: 24.0},
	}

	got := AggregateIn(samples, Hour, utc)

	require.Len(t, got, 2)
	assert.Equal(t, 21.0, got[0].Y)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, epoch("2024-03-05 14:00:00"), got[0].X)
	assert.Equal(t, "14:00", got[0].Label)
	assert.Equal(t, 24.0, got[1].Y)
	assert.Equal(t, "15:00", got[1].Label)
}

func TestAggregate_FirstSeenOrder(t *testing.T) {
	samples := []Sample{
		{Epoch: epoch("2024-03-05 09:00:00"), Value: 1},
		{Epoch: epoch("2024-03-05 07:00:00"), Value: 2},
		{Epoch: epoch("2024-03-05 09:30:00"), Value: 3},
	}

	got := AggregateIn(samples, Hour, utc)

	require.Len(t, got, 2)
	assert.Equal(t, "9:00", got[0].Label, "hour labels are not zero padded")
	assert.Equal(t, 2.0, got[0].Y)
	assert.Equal(t, "7:00", got[1].Label)
}

func TestAggregate_Labels(t *testing.T) {
	ts := epoch("2024-01-02 05:07:45")
	tests := []struct {
		iv    Interval
		label string
		x     int64
	}{
		{Minute, "05:07", epoch("2024-01-02 05:07:00")},
		{Hour, "5:00", epoch("2024-01-02 05:00:00")},
		{Day, "1/2", epoch("2024-01-02 00:00:00")},
	}

	for _, tt := range tests {
		t.Run(tt.iv.String(), func(t *testing.T) {
			got := AggregateIn([]Sample{{Epoch: ts, Value: 3}}, tt.iv, utc)
			require.Len(t, got, 1)
			assert.Equal(t, tt.label, got[0].Label)
			assert.Equal(t, tt.x, got[0].X)
		})
	}
}

func TestAggregate_LocalTimeZone(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	got := AggregateIn([]Sample{{Epoch: epoch("2024-01-02 03:00:00"), Value: 1}}, Day, loc)

	require.Len(t, got, 1)
	assert.Equal(t, "1/1", got[0].Label, "03:00 UTC is still Jan 1 five hours west")
}

func TestAggregate_Empty(t *testing.T) {
	got := AggregateIn(nil, Minute, utc)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAggregate_Idempotent(t *testing.T) {
	raw := []Sample{
		{Epoch: epoch("2024-03-05 10:01:00"), Value: 3},
		{Epoch: epoch("2024-03-05 10:01:40"), Value: 5},
		{Epoch: epoch("2024-03-05 10:03:10"), Value: 7},
		{Epoch: epoch("2024-03-05 10:02:00"), Value: 9},
	}

	for _, iv := range Intervals {
		t.Run(iv.String(), func(t *testing.T) {
			once := AggregateIn(raw, iv, utc)

			again := make([]Sample, len(once))
			for i, b := range once {
				again[i] = Sample{Epoch: b.X, Value: b.Y}
			}
			twice := AggregateIn(again, iv, utc)

			require.Len(t, twice, len(once))
			for i := range once {
				assert.Equal(t, once[i].X, twice[i].X)
				assert.Equal(t, once[i].Label, twice[i].Label)
				assert.Equal(t, once[i].Y, twice[i].Y)
			}
		})
	}
}

func TestParseInterval(t *testing.T) {
	for _, iv := range Intervals {
		got, err := ParseInterval(iv.String())
		require.NoError(t, err)
		assert.Equal(t, iv, got)
	}

	_, err := ParseInterval("week")
	assert.Error(t, err)
}

func TestWindow(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, utc)

	start, end := Minute.Window(now)
	assert.Equal(t, now, end)
	assert.Equal(t, time.Hour, end.Sub(start))

	start, _ = Hour.Window(now)
	assert.Equal(t, 24*time.Hour, now.Sub(start))

	start, _ = Day.Window(now)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, utc), start)
}

func TestAdverbAndValues(t *testing.T) {
	assert.Equal(t, "minutely", Minute.Adverb())
	assert.Equal(t, "hourly", Hour.Adverb())
	assert.Equal(t, "daily", Day.Adverb())

	assert.Equal(t, []float64{1, 2}, Values([]Bucket{{Y: 1}, {Y: 2}}))
}
