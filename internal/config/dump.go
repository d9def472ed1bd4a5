package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Dump renders the effective settings as YAML with the token masked. It is
// written to the debug log at startup.
func Dump(cfg *Config) (string, error) {
	masked := *cfg
	if masked.Telemetry.Token != "" {
		masked.Telemetry.Token = "****"
	}

	out, err := yaml.Marshal(masked)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(out), nil
}
