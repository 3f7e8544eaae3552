// Package main provides the CLI entry point for searchprobe.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/searchprobe/pkg/adapters/chromebrowser"
	"github.com/user/searchprobe/pkg/adapters/filesink"
	"github.com/user/searchprobe/pkg/adapters/logger"
	"github.com/user/searchprobe/pkg/adapters/nullsink"
	"github.com/user/searchprobe/pkg/adapters/osfilesystem"
	"github.com/user/searchprobe/pkg/adapters/pwbrowser"
	"github.com/user/searchprobe/pkg/config"
	"github.com/user/searchprobe/pkg/ports"
	"github.com/user/searchprobe/pkg/scenario"
	"github.com/user/searchprobe/pkg/summarizer"
)

var version = "dev"

// Flag categories
const (
	categoryBrowser = "Browser"
	categoryWaits   = "Waits"
	categoryOutput  = "Output"
	categoryDebug   = "Debug"
	categoryLogging = "Logging"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "searchprobe",
		Usage:   l10n.T("Search a web page through a real browser"),
		Version: version,
		Commands: []*cli.Command{
			commandRun(),
			commandVersion(),
		},
	}
}

func commandRun() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  l10n.T("Open the search page, submit a query and wait for results"),
		Flags:  runFlags(),
		Action: actionRun,
	}
}

func commandVersion() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, l10n.F("searchprobe version %s", version))
			return nil
		},
	}
}

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   l10n.T("YAML config file; flags override its values"),
		},

		// Browser
		&cli.StringFlag{
			Name:     "headless",
			Value:    "true",
			EnvVars:  []string{"HEADLESS"},
			Usage:    l10n.T("Run the browser headless; only \"false\" disables it"),
			Category: l10n.T(categoryBrowser),
		},
		&cli.StringFlag{
			Name:     "driver",
			Value:    config.DriverChromedp,
			EnvVars:  []string{"SEARCHPROBE_DRIVER"},
			Usage:    l10n.T("Browser driver (chromedp, playwright)"),
			Category: l10n.T(categoryBrowser),
		},
		&cli.StringFlag{
			Name:     "chrome-path",
			EnvVars:  []string{"CHROME_PATH"},
			Usage:    l10n.T("Path to the Chrome executable (chromedp driver)"),
			Category: l10n.T(categoryBrowser),
		},
		&cli.BoolFlag{
			Name:     "playwright-install",
			Usage:    l10n.T("Download Playwright Chromium before launching"),
			Category: l10n.T(categoryBrowser),
		},

		// Waits
		&cli.DurationFlag{
			Name:     "page-load-timeout",
			Value:    scenario.DefaultPageLoadTimeout,
			Usage:    l10n.T("Maximum wait for the search page to load"),
			Category: l10n.T(categoryWaits),
		},
		&cli.DurationFlag{
			Name:     "results-timeout",
			Value:    scenario.DefaultResultsTimeout,
			Usage:    l10n.T("Maximum wait for the results page after submitting"),
			Category: l10n.T(categoryWaits),
		},
		&cli.DurationFlag{
			Name:     "poll-interval",
			Value:    scenario.DefaultPollInterval,
			Usage:    l10n.T("Interval between page state probes"),
			Category: l10n.T(categoryWaits),
		},

		// Output
		&cli.StringFlag{
			Name:     "summary",
			Aliases:  []string{"s"},
			Usage:    l10n.T("Write a run summary (.json for JSON, Markdown otherwise)"),
			Category: l10n.T(categoryOutput),
		},

		// Debug
		&cli.BoolFlag{
			Name:     "debug",
			Aliases:  []string{"d"},
			Usage:    l10n.T("Save a screenshot and step trace when the run fails"),
			Category: l10n.T(categoryDebug),
		},
		&cli.StringFlag{
			Name:     "debug-dir",
			Value:    "./debug",
			Usage:    l10n.T("Directory for debug output"),
			Category: l10n.T(categoryDebug),
		},

		// Logging
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Value:    "info",
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Category: l10n.T(categoryLogging),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: l10n.T(categoryLogging),
		},
	}
}

// loadConfig layers defaults, the optional config file and the flags that were set.
func loadConfig(c *cli.Context, fs ports.FileSystem) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(fs, path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("headless") {
		cfg.Headless = config.Headless(config.ParseHeadless(c.String("headless")))
	}
	if c.IsSet("driver") {
		cfg.Driver = c.String("driver")
	}
	if c.IsSet("chrome-path") {
		cfg.ChromePath = c.String("chrome-path")
	}
	if c.IsSet("playwright-install") {
		cfg.PlaywrightInstall = c.Bool("playwright-install")
	}
	if c.IsSet("page-load-timeout") {
		cfg.PageLoadTimeout = c.Duration("page-load-timeout")
	}
	if c.IsSet("results-timeout") {
		cfg.ResultsTimeout = c.Duration("results-timeout")
	}
	if c.IsSet("poll-interval") {
		cfg.PollInterval = c.Duration("poll-interval")
	}
	if c.IsSet("summary") {
		cfg.Summary = c.String("summary")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func actionRun(c *cli.Context) error {
	fs := osfilesystem.New()

	cfg, err := loadConfig(c, fs)
	if err != nil {
		return err
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs)
	} else {
		sink = nullsink.New()
	}

	scenarioCfg := cfg.ToScenarioConfig()

	log.Info("Starting search scenario with %s", cfg.Driver)
	result, runErr := scenario.New(newBrowser(cfg, log), sink, log).Run(ctx, scenarioCfg)

	if cfg.Summary != "" {
		summary := buildSummary(cfg, scenarioCfg, result, runErr)
		writer := summarizer.NewWriter(summarizer.ForPath(cfg.Summary,
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		), fs)
		if err := writer.Write(cfg.Summary, summary); err != nil {
			log.Warn("Failed to write summary: %s", err)
		} else {
			log.Info("Summary written to %s", cfg.Summary)
		}
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return cli.Exit(l10n.T("Interrupted"), 130)
		}
		return cli.Exit(runErr.Error(), 1)
	}
	return nil
}

func newBrowser(cfg config.Config, log ports.Logger) ports.Browser {
	if cfg.Driver == config.DriverPlaywright {
		return pwbrowser.New(pwbrowser.Options{Install: cfg.PlaywrightInstall}, log)
	}
	return chromebrowser.New(log)
}

func buildSummary(cfg config.Config, sc scenario.Config, result scenario.Result, runErr error) *summarizer.Summary {
	b := summarizer.NewBuilder().
		WithOutcome(result.State.String(), runErr).
		WithDuration(result.Duration).
		WithTarget(sc.TargetURL, sc.LocatorName, sc.Query).
		WithSettings(summarizer.Settings{
			Driver:            cfg.Driver,
			Headless:          sc.Headless,
			Arguments:         scenario.BuildArguments(sc.Headless),
			PageLoadTimeoutMs: sc.PageLoadTimeout.Milliseconds(),
			ResultsTimeoutMs:  sc.ResultsTimeout.Milliseconds(),
		})
	for _, step := range result.Steps {
		b.AddStep(string(step.Step), step.DurationMs, step.Error)
	}
	return b.Build()
}
