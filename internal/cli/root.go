package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/thermonitor/internal/errors"
)

// rootFlags are the flags accepted by the dashboard itself.
type rootFlags struct {
	File     string
	Config   string
	LogLevel string
}

var flags rootFlags

var rootCmd = &cobra.Command{
	Use:   "thermonitor",
	Short: "Terminal dashboard for temperature and humidity sensors",
	Long: `thermonitor shows a grid of sensor cards with live temperature and
humidity gauges. Readings come from the telemetry store and refresh in the
background; press t on a sensor for its timeline and local weather.

The dashboard layout is kept in a snapshot file (~/.thermonitor.conf unless
-f says otherwise). Settings such as the store URL and poll interval live in
~/.config/thermonitor/config.yaml and can be overridden with THERMONITOR_*
environment variables.`,
	Example: `  thermonitor                          # Open the dashboard
  thermonitor -f ~/greenhouse.conf     # Use a different snapshot
  thermonitor --log-level debug        # Log to ~/.thermonitor.log`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd.Context(), flags)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flags.File, "file", "f", "", "snapshot file (default ~/.thermonitor.conf)")
	rootCmd.PersistentFlags().StringVar(&flags.Config, "config", "", "settings file (default ~/.config/thermonitor/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if isUnknownCommandError(err) {
			msg := "Unrecognized arguments"
			if name := extractUnknownCommand(err); name != "" {
				msg = fmt.Sprintf("'%s' isn't a thermonitor command", name)
			}
			err = errors.WrapWithCode(err, errors.ErrConfig, msg,
				"thermonitor takes no arguments. Run 'thermonitor --help' for the flags.")
		}
		fmt.Fprint(os.Stderr, err.Error())
		if !strings.HasSuffix(err.Error(), "\n") {
			fmt.Fprintln(os.Stderr)
		}
		os.Exit(1)
	}
}

// isUnknownCommandError reports whether cobra rejected the arguments rather
// than the command failing.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the quoted name out of cobra's
// `unknown command "foo" for "thermonitor"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
