package cli

import (
	"fmt"
	"runtime"
	"strings"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	rootCmd.Version = formatVersion(version)
	rootCmd.SetVersionTemplate(`{{with .Annotations}}{{index . "buildinfo"}}{{end}}`)
	refreshBuildInfo()
}

// buildInfo is what --version prints.
func buildInfo() string {
	var b strings.Builder
	fmt.Fprintf(&b, "thermonitor %s\n", formatVersion(version))
	fmt.Fprintf(&b, "commit: %s\n", commit)
	fmt.Fprintf(&b, "built: %s\n", date)
	fmt.Fprintf(&b, "go: %s\n", runtime.Version())
	fmt.Fprintf(&b, "os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return b.String()
}

// refreshBuildInfo stores the --version text where the template can reach it.
func refreshBuildInfo() {
	if rootCmd.Annotations == nil {
		rootCmd.Annotations = map[string]string{}
	}
	rootCmd.Annotations["buildinfo"] = buildInfo()
}

// formatVersion ensures version has a 'v' prefix for display
func formatVersion(v string) string {
	if v == "" || v == "dev" {
		return v
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = formatVersion(v)
	refreshBuildInfo()
}
