package cli

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/rileyhilliard/thermonitor/internal/config"
	"github.com/rileyhilliard/thermonitor/internal/detail"
	"github.com/rileyhilliard/thermonitor/internal/errors"
	"github.com/rileyhilliard/thermonitor/internal/logger"
	"github.com/rileyhilliard/thermonitor/internal/mode"
	"github.com/rileyhilliard/thermonitor/internal/monitor"
	"github.com/rileyhilliard/thermonitor/internal/poller"
	"github.com/rileyhilliard/thermonitor/internal/session"
	"github.com/rileyhilliard/thermonitor/internal/telemetry"
	"github.com/rileyhilliard/thermonitor/internal/weather"
)

// isTerminal is swapped out in tests.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

// loadSettings reads the settings file and applies the command line flags
// on top.
func loadSettings(f rootFlags) (*config.Config, error) {
	cfg, _, err := config.Load(f.Config)
	if err != nil {
		return nil, err
	}
	if f.File != "" {
		cfg.Snapshot = config.Expand(f.File)
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runDashboard wires the session, the clients and the poller together and
// runs the TUI until the user quits or a signal arrives.
func runDashboard(parent context.Context, f rootFlags) error {
	cfg, err := loadSettings(f)
	if err != nil {
		return err
	}

	log, closeLog, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't open the log file",
			"Check log.file points somewhere writable")
	}
	defer closeLog()
	logger.SetDefault(log)

	if dump, err := config.Dump(cfg); err == nil {
		log.Debug("settings:\n%s", dump)
	}

	if !isTerminal() {
		return errors.New(errors.ErrTerminal,
			"thermonitor needs an interactive terminal",
			"Run it directly in a terminal rather than through a pipe")
	}

	s := session.New(cfg.Snapshot, mode.DefaultKeyMap(), log)
	s.Load()
	log.Info("loaded %d sensors from %s", len(s.Sensors()), s.Path())

	tc := telemetry.NewClient(telemetry.Config{
		URL:     cfg.Telemetry.URL,
		Token:   cfg.Telemetry.Token,
		Timeout: cfg.Telemetry.Timeout,
	}, log)
	wc := weather.NewClient(weather.Config{
		URL:     cfg.Weather.URL,
		Timeout: cfg.Weather.Timeout,
	}, log)
	p := poller.New(s, tc, cfg.Poll.Interval, log)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.Run(gctx) })

	model := monitor.NewModel(ctx, s, p, detail.NewLoader(tc, wc, log), monitor.Options{
		Tick:         cfg.UI.Tick,
		SnapshotPath: cfg.Snapshot,
		Log:          log,
	})
	_, runErr := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()

	// The poller finishes any fetches in flight before it returns.
	cancel()
	if err := g.Wait(); err != nil {
		log.Warn("poller stopped: %v", err)
	}

	if runErr != nil && !stderrors.Is(runErr, tea.ErrProgramKilled) {
		return errors.WrapWithCode(runErr, errors.ErrTerminal,
			"The dashboard stopped unexpectedly",
			"Try again with --log-level debug and check the log file")
	}
	log.Info("exited after %d poll cycles", p.Cycles())
	return nil
}
