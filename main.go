// procpulse is a terminal resource monitor.
//
// It samples CPU, memory, network, disk, temperature, battery, and process
// activity on a fixed cadence and renders the results as an interactive
// Bubbletea grid of graphs and tables.
//
// Usage:
//
//	procpulse [flags]
//
// Flags:
//
//	-config string    Path to configuration file (default: XDG search path)
//	-rate duration    Snapshot refresh rate, minimum 250ms (default 1s)
//	-fahrenheit       Show temperatures in Fahrenheit
//	-kelvin           Show temperatures in Kelvin
//	-group            Group same-name processes into one row
//	-case-sensitive   Make process search case sensitive
//	-regex            Treat process search text as a regular expression
//	-tree             Show processes as a parent/child tree
//	-avg-cpu          Show the average CPU line next to the per-core ones
//	-current-usage    Scale process CPU by observed busy time
//	-no-click         Disable mouse support
//	-preset string    Layout preset (default|minimal|proc|battery)
//	-log string       Log file path (default: XDG cache dir)
//	-debug            Enable debug logging
//	-write-config     Write a documented default config file and exit
//	-version          Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"gitlab.com/tinyland/lab/procpulse/pkg/app"
	"gitlab.com/tinyland/lab/procpulse/pkg/config"
	"gitlab.com/tinyland/lab/procpulse/pkg/harvest"
	"gitlab.com/tinyland/lab/procpulse/pkg/history"
	"gitlab.com/tinyland/lab/procpulse/pkg/layout"
	"gitlab.com/tinyland/lab/procpulse/pkg/terminal"
	"gitlab.com/tinyland/lab/procpulse/pkg/widgets"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

// run is main minus os.Exit, so deferred cleanup actually runs.
func run() int {
	var (
		configPath    = flag.String("config", "", "Path to configuration file")
		rate          = flag.Duration("rate", 0, "Snapshot refresh rate, minimum 250ms")
		fahrenheit    = flag.Bool("fahrenheit", false, "Show temperatures in Fahrenheit")
		kelvin        = flag.Bool("kelvin", false, "Show temperatures in Kelvin")
		group         = flag.Bool("group", false, "Group same-name processes into one row")
		caseSensitive = flag.Bool("case-sensitive", false, "Make process search case sensitive")
		regex         = flag.Bool("regex", false, "Treat process search text as a regular expression")
		tree          = flag.Bool("tree", false, "Show processes as a parent/child tree")
		avgCPU        = flag.Bool("avg-cpu", false, "Show the average CPU line next to the per-core ones")
		currentUsage  = flag.Bool("current-usage", false, "Scale process CPU by observed busy time")
		noClick       = flag.Bool("no-click", false, "Disable mouse support")
		preset        = flag.String("preset", "", "Layout preset (default|minimal|proc|battery)")
		logPath       = flag.String("log", "", "Log file path")
		debug         = flag.Bool("debug", false, "Enable debug logging")
		writeConfig   = flag.Bool("write-config", false, "Write a documented default config file and exit")
		showVersion   = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("procpulse %s (%s) built %s\n", version, commit, date)
		return 0
	}

	if *writeConfig {
		target := *configPath
		if target == "" {
			target = config.ConfigSearchPaths()[0]
		}
		if err := config.WriteTemplate(target); err != nil {
			fmt.Fprintf(os.Stderr, "write config: %v\n", err)
			return 1
		}
		fmt.Printf("wrote %s\n", target)
		return 0
	}

	// Pick up a v1 YAML config before loading. Only the standard path
	// migrates; an explicit -config points wherever the user says.
	if *configPath == "" {
		if result, err := config.MigrateIfNeeded(); err != nil {
			fmt.Fprintf(os.Stderr, "config migration failed: %v\n", err)
			return 1
		} else if result != nil {
			fmt.Fprintf(os.Stderr, "migrated legacy config to %s (backup: %s)\n",
				result.TargetPath, result.BackupPath)
			for _, w := range result.Warnings {
				fmt.Fprintf(os.Stderr, "  warning: %s\n", w)
			}
		}
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	// Flags override file config, but only the flags actually given.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["rate"] {
		cfg.General.RefreshRate = config.Duration{Duration: *rate}
	}
	if set["fahrenheit"] && *fahrenheit {
		cfg.General.TemperatureUnit = "fahrenheit"
	}
	if set["kelvin"] && *kelvin {
		cfg.General.TemperatureUnit = "kelvin"
	}
	if set["group"] {
		cfg.Process.Grouped = *group
	}
	if set["case-sensitive"] {
		cfg.Process.IgnoreCase = !*caseSensitive
	}
	if set["regex"] {
		cfg.Process.Regex = *regex
	}
	if set["tree"] {
		cfg.Process.Tree = *tree
	}
	if set["avg-cpu"] {
		cfg.General.ShowAverageCPU = *avgCPU
	}
	if set["current-usage"] {
		cfg.General.UseCurrentCPUTotal = *currentUsage
	}
	if set["no-click"] {
		cfg.General.DisableClick = *noClick
	}
	if set["preset"] {
		cfg.Layout.Preset = *preset
		cfg.Layout.Rows = nil
	}
	if set["log"] {
		cfg.General.LogFile = *logPath
	}
	if *debug {
		cfg.General.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		return 1
	}

	// Logging goes to the file only. The TTY belongs to the TUI; a second
	// writer would shred the alt screen.
	logger, closeLog := openLogger(cfg)
	defer closeLog()

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "procpulse requires an interactive terminal")
		return 1
	}

	// Capture terminal state before anything touches the screen. The guard
	// covers panic and error exits the framework's own restore misses.
	guard, err := terminal.NewGuard(os.Stdout.Fd())
	if err != nil {
		logger.Warn("cannot capture terminal state", "error", err)
	}
	defer guard.Restore()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	hist := history.New(cfg.HistoryConfig())
	events := make(chan harvest.Event, harvest.DefaultEventBuffer)
	resets := make(chan struct{}, 1)

	harvester := harvest.NewSysHarvester(cfg.HarvestOptions())
	scheduler := harvest.NewScheduler(harvester, cfg.General.RefreshRate.Duration, events, resets, logger)
	if err := scheduler.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start collector: %v\n", err)
		return 1
	}
	defer scheduler.Stop()

	cleaner := harvest.NewCleanTicker(harvest.CleanInterval(hist.Retention()), events)
	if err := cleaner.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start clean ticker: %v\n", err)
		return 1
	}
	defer cleaner.Stop()

	spec := cfg.LayoutSpec()
	ws, procs := widgets.Build(cfg, layout.WidgetIDs(spec), hist)

	model := app.NewModel(app.Options{
		Spec:         spec,
		History:      hist,
		Events:       events,
		Resets:       resets,
		ProcStates:   procs,
		DisableClick: cfg.General.DisableClick,
		Log:          logger,
	}, ws...)

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if !cfg.General.DisableClick {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, progOpts...)

	if w := watchConfig(*configPath, logger, p); w != nil {
		defer w.Close()
	}

	logger.Info("starting procpulse",
		"version", version,
		"refresh_rate", cfg.General.RefreshRate.Duration,
		"retention", hist.Retention(),
	)

	err = guard.Protect(func() error {
		_, runErr := p.Run()
		return runErr
	})
	cancel()
	if err != nil {
		guard.Restore()
		fmt.Fprintf(os.Stderr, "procpulse: %v\n", err)
		return 1
	}
	return 0
}

// openLogger opens the configured log file and builds the slog logger on
// it. A file that cannot be opened degrades to a discard logger with a
// one-line warning, which beats refusing to start over logging.
func openLogger(cfg *config.Config) (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	path := cfg.General.LogFile
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot create log directory: %v\n", err)
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot open log file: %v\n", err)
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}
	}
	return slog.New(slog.NewTextHandler(f, opts)), func() { f.Close() }
}

// watchConfig starts the live-reload watcher for the effective config file
// and forwards validated reloads into the program. Returns nil when
// watching is unavailable; the program just runs without live reload.
func watchConfig(explicit string, logger *slog.Logger, p *tea.Program) *config.Watcher {
	path := explicit
	if path == "" {
		for _, candidate := range config.ConfigSearchPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		// No file on disk yet. Watch the primary path so creating it
		// later still triggers a reload.
		path = config.ConfigSearchPaths()[0]
	}

	w, err := config.Watch(path, logger, func() {
		ncfg, err := config.LoadFromFile(path)
		if err != nil {
			logger.Warn("config reload failed", "path", path, "error", err)
			return
		}
		if err := ncfg.Validate(); err != nil {
			logger.Warn("config reload rejected", "path", path, "error", err)
			return
		}
		logger.Info("config reloaded", "path", path)
		p.Send(app.ReloadEvent{Config: ncfg})
	})
	if err != nil {
		logger.Warn("config watch unavailable", "path", path, "error", err)
		return nil
	}
	return w
}
