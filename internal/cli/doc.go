// Package cli implements the thermonitor command line.
//
// The root command opens the dashboard. There are no subcommands; --version
// prints the build info set from main.
//
// # Startup
//
// runDashboard does the wiring in this order:
//
//  1. Load settings (config.Load), apply -f and --log-level, validate
//  2. Open the file logger; the dashboard owns the terminal so nothing is
//     written to stdout or stderr while it runs
//  3. Create the session and load the snapshot file
//  4. Create the telemetry and weather clients, the detail loader and the
//     poller
//  5. Run the poller in the background and the Bubble Tea program in the
//     foreground until the user quits or SIGINT/SIGTERM arrives
//
// On exit the poller is cancelled and waited for, so no refresh is left
// holding the session lock.
package cli
