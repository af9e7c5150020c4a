// Command cli runs the login page test suites and writes the HTML and
// CSV reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/playwright-community/playwright-go"

	"github.com/ChandanKT-git/QA-Janitri/pkg/config"
	"github.com/ChandanKT-git/QA-Janitri/pkg/report"
	"github.com/ChandanKT-git/QA-Janitri/pkg/session"
	"github.com/ChandanKT-git/QA-Janitri/pkg/suite"
	"github.com/ChandanKT-git/QA-Janitri/pkg/ui"
)

func main() {
	var (
		configPath = flag.String("config", os.Getenv("QA_CONFIG_FILE"), "properties file layered over the built-in defaults")
		browser    = flag.String("browser", "", "override the configured browser (chrome, firefox, edge, safari)")
		headless   = flag.String("headless", "", "override headless mode (true or false)")
		suites     = flag.String("suites", "functional,security,accessibility,performance,responsive", "comma-separated suites to run")
		parallel   = flag.Int("parallel", 1, "cases to run concurrently")
		install    = flag.Bool("install", false, "install browser binaries and exit")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if err := run(log, *configPath, *browser, *headless, *suites, *parallel, *install); err != nil {
		log.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, configPath, browser, headless, suiteList string, parallel int, install bool) error {
	if install {
		return playwright.Install()
	}

	// Flag overrides ride the environment tier so they beat every
	// file-based setting.
	if browser != "" {
		os.Setenv("QA_BROWSER", browser)
	}
	if headless != "" {
		os.Setenv("QA_HEADLESS", headless)
	}

	cfg := config.Load(configPath)
	if _, err := session.ParseEngine(cfg.Browser()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory, err := session.NewFactory(cfg, log)
	if err != nil {
		return err
	}
	defer factory.Close()

	agg := report.NewAggregator(cfg, log)
	agg.InitRun()
	cases, err := suitesFor(strings.Split(suiteList, ","), agg)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		return fmt.Errorf("no cases selected")
	}

	log.Info("run starting",
		"run", agg.RunID(),
		"browser", cfg.Browser(),
		"cases", len(cases),
		"parallel", parallel)

	runner := suite.NewRunner(factory, cfg, agg, log)
	runner.Parallel = parallel
	if err := runner.Run(ctx, cases); err != nil {
		return err
	}

	htmlPath, csvPath := agg.WriteReports()

	total, passed, failed, skipped := agg.Summary()
	ui.Render(os.Stdout, ui.Summary{
		RunID:    agg.RunID(),
		Total:    total,
		Passed:   passed,
		Failed:   failed,
		Skipped:  skipped,
		Findings: agg.Findings(),
		HTMLPath: htmlPath,
		CSVPath:  csvPath,
	})

	if failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, total)
	}
	return nil
}
