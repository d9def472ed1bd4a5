package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/thermonitor/internal/errors"
	"github.com/rileyhilliard/thermonitor/internal/logger"
)

const sampleBody = `[
  {"DeviceId":{"Value":"abc1"},"EpochTime":{"Value":"1700000000"},"Temperature":{"Value":"21.5"},"Humidity":{"Value":"40.2"},"LocationId":{"Value":"10001"}},
  {"DeviceId":{"Value":"abc1"},"EpochTime":{"Value":1700000060},"Temperature":{"Value":22},"LocationId":{"Value":"10001"}}
]`

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{URL: srv.URL + "/", Token: "secret", Timeout: time.Second}, logger.NewBufferLogger())
}

func TestLatest(t *testing.T) {
	var gotPath, gotQuery, gotToken string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotToken = r.Header.Get("authorization-token")
		_, _ = w.Write([]byte(sampleBody))
	})

	r, err := c.Latest(context.Background(), "abc1")

	require.NoError(t, err)
	assert.Equal(t, "/sensors/devices/abc1", gotPath)
	assert.Equal(t, "count=1", gotQuery)
	assert.Equal(t, "secret", gotToken)

	assert.Equal(t, int64(1700000060), r.EpochTime, "latest is the last element")
	require.NotNil(t, r.Temperature)
	assert.Equal(t, 22.0, *r.Temperature)
	assert.Nil(t, r.Humidity, "absent humidity stays unknown")
	assert.Equal(t, "10001", r.LocationID)
}

func TestLatest_Empty(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.Latest(context.Background(), "abc1")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoReadings)
	assert.True(t, errors.IsCode(err, errors.ErrTelemetry))
}

func TestHistory(t *testing.T) {
	var start, end string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		start = r.URL.Query().Get("start")
		end = r.URL.Query().Get("end")
		_, _ = w.Write([]byte(sampleBody))
	})

	from := time.Unix(1699990000, 0)
	to := time.Unix(1700000100, 0)
	readings, err := c.History(context.Background(), "abc1", from, to)

	require.NoError(t, err)
	assert.Equal(t, "1699990000", start)
	assert.Equal(t, "1700000100", end)
	require.Len(t, readings, 2)
	assert.Equal(t, 21.5, *readings[0].Temperature)
	assert.Equal(t, 40.2, *readings[0].Humidity)
}

func TestQuery_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "non 200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
			want: "403",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"message":`))
			},
			want: "Malformed telemetry response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newServer(t, tt.handler)
			_, err := c.History(context.Background(), "abc1", time.Now(), time.Now())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.True(t, errors.IsCode(err, errors.ErrTelemetry))
		})
	}
}

func TestQuery_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(Config{URL: srv.URL}, nil)

	_, err := c.Latest(context.Background(), "abc1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot reach the telemetry store")
}

func TestDecodeRecords_Attr(t *testing.T) {
	records, err := DecodeRecords([]byte(`[{"Temperature":{"Value":"n/a"},"Humidity":null,"EpochTime":{"Value":null}}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.True(t, r.Temperature.IsSet())
	assert.Nil(t, r.Temperature.FloatPtr(), "unparsable number is unknown")
	assert.False(t, r.Humidity.IsSet())
	assert.False(t, r.EpochTime.IsSet())
	assert.False(t, r.LocationID.IsSet())
	assert.Equal(t, int64(0), r.Reading().EpochTime)

	records, err = DecodeRecords([]byte(`null`))
	require.NoError(t, err)
	assert.Empty(t, records)
}
