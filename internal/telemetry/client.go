// Package telemetry reads sensor records from the telemetry store's HTTP API.
//
// The store returns DynamoDB items as JSON arrays in which every attribute
// is wrapped as {"Value": ...}. The value is usually a string, even for
// numbers, so decoding goes through Attr.
package telemetry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/rileyhilliard/thermonitor/internal/errors"
	"github.com/rileyhilliard/thermonitor/internal/logger"
	"github.com/rileyhilliard/thermonitor/internal/sensor"
)

// Default endpoint and token of the public telemetry API.
const (
	DefaultURL   = "https://bko7deq544.execute-api.us-east-2.amazonaws.com/dev"
	DefaultToken = "allow"

	tokenHeader = "authorization-token"
)

// ErrNoReadings is returned by Latest when the device has never reported.
var ErrNoReadings = fmt.Errorf("no readings")

// Config holds the client settings.
type Config struct {
	URL     string
	Token   string
	Timeout time.Duration
}

// Client talks to the telemetry store.
type Client struct {
	base  string
	token string
	http  *http.Client
	log   logger.Logger
}

// NewClient creates a client. A zero Timeout means no timeout.
func NewClient(cfg Config, log logger.Logger) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Client{
		base:  strings.TrimRight(cfg.URL, "/"),
		token: cfg.Token,
		http:  &http.Client{Timeout: cfg.Timeout},
		log:   log,
	}
}

// Latest returns the most recent reading for a device.
func (c *Client) Latest(ctx context.Context, id string) (*sensor.Reading, error) {
	q := url.Values{}
	q.Set("count", "1")

	records, err := c.query(ctx, id, q)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.WrapWithCode(ErrNoReadings, errors.ErrTelemetry,
			fmt.Sprintf("Sensor %s has no readings", id),
			"Check that the device is powered and posting data")
	}

	r := records[len(records)-1].Reading()
	return &r, nil
}

// History returns every reading for a device between start and end.
func (c *Client) History(ctx context.Context, id string, start, end time.Time) ([]sensor.Reading, error) {
	q := url.Values{}
	q.Set("start", strconv.FormatInt(start.Unix(), 10))
	q.Set("end", strconv.FormatInt(end.Unix(), 10))

	records, err := c.query(ctx, id, q)
	if err != nil {
		return nil, err
	}

	out := make([]sensor.Reading, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Reading())
	}
	return out, nil
}

func (c *Client) query(ctx context.Context, id string, q url.Values) ([]Record, error) {
	endpoint := fmt.Sprintf("%s/sensors/devices/%s?%s", c.base, url.PathEscape(id), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to build telemetry request")
	}
	req.Header.Set(tokenHeader, c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTelemetry,
			"Cannot reach the telemetry store",
			"Check your network connection and telemetry.url")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read telemetry response")
	}
	c.log.Debug("telemetry GET %s -> %d (%d bytes, %s)", endpoint, resp.StatusCode, len(body), time.Since(start).Round(time.Millisecond))

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrTelemetry,
			fmt.Sprintf("Telemetry store returned %s", resp.Status),
			"Check telemetry.token and the sensor id")
	}

	records, err := DecodeRecords(body)
	if err != nil {
		return nil, errors.Wrap(err, "Malformed telemetry response")
	}
	return records, nil
}

// Record is one telemetry item.
type Record struct {
	DeviceID    Attr `json:"DeviceId"`
	EpochTime   Attr `json:"EpochTime"`
	Temperature Attr `json:"Temperature"`
	Humidity    Attr `json:"Humidity"`
	LocationID  Attr `json:"LocationId"`
}

// Reading converts the record, leaving absent or unparsable metrics nil.
func (r Record) Reading() sensor.Reading {
	var epoch int64
	if v, ok := r.EpochTime.Float(); ok {
		epoch = int64(v)
	}
	return sensor.Reading{
		EpochTime:   epoch,
		Temperature: r.Temperature.FloatPtr(),
		Humidity:    r.Humidity.FloatPtr(),
		LocationID:  r.LocationID.String(),
	}
}

// DecodeRecords parses a response body. A JSON null decodes to no records.
func DecodeRecords(body []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Attr is a {"Value": ...} wrapper holding a string or a number.
type Attr struct {
	raw string
	set bool
}

type attrWire struct {
	Value json.RawMessage `json:"Value"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Attr) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = Attr{}
		return nil
	}

	var w attrWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	v := bytes.TrimSpace(w.Value)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		*a = Attr{}
		return nil
	}

	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return err
		}
		*a = Attr{raw: s, set: true}
		return nil
	}
	*a = Attr{raw: string(v), set: true}
	return nil
}

// IsSet reports whether the attribute was present.
func (a Attr) IsSet() bool { return a.set }

// String returns the raw value, or "" when absent.
func (a Attr) String() string { return a.raw }

// Float parses the value as a number.
func (a Attr) Float() (float64, bool) {
	if !a.set {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(a.raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FloatPtr is Float as a nullable value.
func (a Attr) FloatPtr() *float64 {
	f, ok := a.Float()
	if !ok {
		return nil
	}
	return &f
}
