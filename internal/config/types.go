package config

import (
	"time"

	"github.com/rileyhilliard/thermonitor/internal/telemetry"
	"github.com/rileyhilliard/thermonitor/internal/weather"
)

// Config is the thermonitor settings file plus environment overrides.
type Config struct {
	// Snapshot is the dashboard snapshot path. The -f flag overrides it.
	Snapshot  string          `yaml:"snapshot" mapstructure:"snapshot"`
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
	Weather   WeatherConfig   `yaml:"weather" mapstructure:"weather"`
	Poll      PollConfig      `yaml:"poll" mapstructure:"poll"`
	UI        UIConfig        `yaml:"ui" mapstructure:"ui"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// TelemetryConfig points at the telemetry store.
type TelemetryConfig struct {
	URL   string `yaml:"url" mapstructure:"url"`
	Token string `yaml:"token" mapstructure:"token"`

	// Timeout bounds each request. Zero waits forever.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// WeatherConfig points at the weather proxy.
type WeatherConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// PollConfig controls the background refresh.
type PollConfig struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// UIConfig controls the dashboard loop.
type UIConfig struct {
	// Tick is how often queued keys are drained and the screen redrawn.
	Tick time.Duration `yaml:"tick" mapstructure:"tick"`
}

// LogConfig controls the file logger. An empty level disables logging.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

// Defaults.
const (
	DefaultSnapshot       = "~/.thermonitor.conf"
	DefaultLogFile        = "~/.thermonitor.log"
	DefaultPollInterval   = 5 * time.Second
	DefaultTick           = 50 * time.Millisecond
	DefaultRequestTimeout = 10 * time.Second
)

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Snapshot: DefaultSnapshot,
		Telemetry: TelemetryConfig{
			URL:     telemetry.DefaultURL,
			Token:   telemetry.DefaultToken,
			Timeout: DefaultRequestTimeout,
		},
		Weather: WeatherConfig{
			URL:     weather.DefaultURL,
			Timeout: DefaultRequestTimeout,
		},
		Poll: PollConfig{Interval: DefaultPollInterval},
		UI:   UIConfig{Tick: DefaultTick},
		Log:  LogConfig{File: DefaultLogFile},
	}
}
