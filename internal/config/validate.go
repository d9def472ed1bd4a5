package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rileyhilliard/thermonitor/internal/errors"
)

// Limits enforced by Validate.
const (
	MinPollInterval = 500 * time.Millisecond
	MinTick         = 10 * time.Millisecond
	MaxTick         = 100 * time.Millisecond
)

var validLogLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the settings and returns a structured error for the first
// problem found.
func Validate(cfg *Config) error {
	if err := validateURL("telemetry.url", cfg.Telemetry.URL); err != nil {
		return err
	}
	if err := validateURL("weather.url", cfg.Weather.URL); err != nil {
		return err
	}

	if cfg.Telemetry.Timeout < 0 || cfg.Weather.Timeout < 0 {
		return errors.New(errors.ErrConfig,
			"Request timeouts can't be negative",
			"Use 0 to wait forever, or a duration like 10s")
	}

	if cfg.Poll.Interval < MinPollInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("poll.interval %s is too short", cfg.Poll.Interval),
			fmt.Sprintf("Use at least %s so the store isn't hammered", MinPollInterval))
	}

	if cfg.UI.Tick < MinTick || cfg.UI.Tick > MaxTick {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("ui.tick %s is out of range", cfg.UI.Tick),
			fmt.Sprintf("Pick something between %s and %s (50ms is 20 frames a second)", MinTick, MaxTick))
	}

	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown log level '%s'", cfg.Log.Level),
			"Use one of: debug, info, warn, error (or leave empty to disable logging)")
	}
	if cfg.Log.Level != "" && cfg.Log.File == "" {
		return errors.New(errors.ErrConfig,
			"log.level is set but log.file is empty",
			"Set log.file to a path; the dashboard owns the terminal")
	}

	if strings.TrimSpace(cfg.Snapshot) == "" {
		return errors.New(errors.ErrConfig,
			"snapshot path is empty",
			"Set snapshot in config.yaml or pass -f")
	}

	return nil
}

func validateURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("%s is not a valid URL", key),
			"Use a full URL like https://example.com/dev")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s '%s' must start with http:// or https://", key, raw),
			"Use a full URL like https://example.com/dev")
	}
	if u.Host == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s '%s' has no host", key, raw),
			"Use a full URL like https://example.com/dev")
	}
	return nil
}
