// Package weather looks up current conditions for a sensor's location.
package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/rileyhilliard/thermonitor/internal/errors"
	"github.com/rileyhilliard/thermonitor/internal/logger"
)

// DefaultURL is the local weather proxy.
const DefaultURL = "http://localhost:57239"

// Info is the current weather at a location. Temperature is in °C and wind
// speed in m/s.
type Info struct {
	LocationID    string
	City          string
	Temperature   float64
	Humidity      float64
	Pressure      float64
	WindSpeed     float64
	WindDirection float64
}

// Title names the location, falling back to its id.
func (i Info) Title() string {
	if i.City != "" {
		return i.City
	}
	return i.LocationID
}

type response struct {
	Name string `json:"name"`
	Main *struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Wind *struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
}

// Config holds the client settings.
type Config struct {
	URL     string
	Timeout time.Duration
}

// Client queries the weather proxy.
type Client struct {
	base string
	http *http.Client
	log  logger.Logger
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
		base: strings.TrimRight(cfg.URL, "/"),
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}
}

// Lookup fetches conditions for a location id (a zip code). Callers treat
// any error as "no data".
func (c *Client) Lookup(ctx context.Context, locationID string) (*Info, error) {
	if locationID == "" {
		return nil, errors.New(errors.ErrWeather, "Sensor has no location", "")
	}

	endpoint := c.base + "/?zip=" + url.QueryEscape(locationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrWeather, "Failed to build weather request", "")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrWeather,
			"Cannot reach the weather service",
			"Check that the weather proxy is running and weather.url is correct")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrWeather, "Failed to read weather response", "")
	}
	c.log.Debug("weather GET %s -> %d", endpoint, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrWeather, fmt.Sprintf("Weather service returned %s", resp.Status), "")
	}

	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrWeather, "Malformed weather response", "")
	}
	if r.Main == nil || r.Wind == nil {
		return nil, errors.New(errors.ErrWeather, "Weather response is missing main or wind", "")
	}

	return &Info{
		LocationID:    locationID,
		City:          r.Name,
		Temperature:   r.Main.Temp,
		Humidity:      r.Main.Humidity,
		Pressure:      r.Main.Pressure,
		WindSpeed:     r.Wind.Speed,
		WindDirection: r.Wind.Deg,
	}, nil
}
