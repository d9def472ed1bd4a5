package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/thermonitor/internal/errors"
)

const (
	// GlobalConfigDir is the directory for the settings file, under $HOME.
	GlobalConfigDir = ".config/thermonitor"
	// GlobalConfigFile is the settings file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. THERMONITOR_POLL_INTERVAL.
	EnvPrefix = "THERMONITOR"
)

// Find locates the settings file:
// 1. Explicit path (from --config flag), which must exist
// 2. ~/.config/thermonitor/config.yaml
//
// Returns "" when there is no file; defaults and environment still apply.
func Find(explicit string) (string, error) {
	if explicit != "" {
		explicit = ExpandTilde(explicit)
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}
	global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
	if _, err := os.Stat(global); err == nil {
		return global, nil
	}
	return "", nil
}

// Load reads settings from the file Find picks, layered over defaults and
// under THERMONITOR_* environment variables.
func Load(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check "+path+" exists and is valid YAML")
		}
	}

	cfg, err := parseConfig(v, path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		where := "the environment"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+where)
	}

	cfg.Snapshot = Expand(cfg.Snapshot)
	cfg.Log.File = Expand(cfg.Log.File)
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("snapshot", d.Snapshot)
	v.SetDefault("telemetry.url", d.Telemetry.URL)
	v.SetDefault("telemetry.token", d.Telemetry.Token)
	v.SetDefault("telemetry.timeout", d.Telemetry.Timeout.String())
	v.SetDefault("weather.url", d.Weather.URL)
	v.SetDefault("weather.timeout", d.Weather.Timeout.String())
	v.SetDefault("poll.interval", d.Poll.Interval.String())
	v.SetDefault("ui.tick", d.UI.Tick.String())
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}
