// Package main is the entry point for the hydration tracker. It loads the
// configuration, starts the services and either runs a one-shot subcommand
// or the Bubble Tea program.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/hydration-tui/internal/app"
	"github.com/j-veylop/hydration-tui/internal/clock"
	"github.com/j-veylop/hydration-tui/internal/config"
	"github.com/j-veylop/hydration-tui/internal/logger"
	"github.com/j-veylop/hydration-tui/internal/services"
	"github.com/j-veylop/hydration-tui/internal/ui/tabs/history"
	drinklog "github.com/j-veylop/hydration-tui/internal/ui/tabs/log"
	"github.com/j-veylop/hydration-tui/internal/ui/tabs/settings"
	"github.com/j-veylop/hydration-tui/internal/ui/tabs/today"
	"github.com/j-veylop/hydration-tui/internal/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run(args []string) error {
	// 1. Load configuration from .env files and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Send logs to a file; the TUI owns the terminal
	logFile, err := logger.Init(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logFile.Close()

	// 3. One-shot subcommands skip the TUI and the database watcher
	if len(args) > 0 {
		mgr, err := services.NewManager(cfg, services.WithoutWatch())
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}
		defer mgr.Close()
		return runCommand(context.Background(), mgr, args, os.Stdout)
	}

	return runTUI(cfg)
}

func runTUI(cfg *config.Config) error {
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	// Clears pending reminders and runs the first policy check
	svcManager.Start()

	model := app.NewModel(svcManager)

	// Tab order matches app.TabToday..app.TabSettings
	state := model.GetState()
	clk := clock.System{Location: cfg.Location}
	tabs := []app.Tab{
		today.New(state, clk, cfg.QuickAmounts),
		history.New(state, svcManager),
		drinklog.New(state, clk),
		settings.New(state, cfg),
	}
	model.SetTabs(tabs)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	logger.Info("starting hydration tracker", "version", version.GetVersion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Hydration TUI - daily water intake tracker

Usage:
  hydrate [flags]
  hydrate add <ml>
  hydrate export
  hydrate stats [day|week|month]
  hydrate reset-profile
  hydrate db [vacuum]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-4             Switch between tabs (Today, History, Log, Settings)
  Tab/Shift+Tab   Navigate between tabs
  ←/→             Choose a quick amount
  Enter           Add drink / confirm
  a               Add a custom amount
  g               Add toward the goal
  t               Toggle window (History) or theme (Settings)
  d               Delete the selected drink (Log)
  e               Edit profile (Settings)
  r               Refresh data
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  DATABASE_PATH            SQLite database path
  LOG_PATH                 Log file path
  LOG_LEVEL                debug, info, warn or error (default: info)
  MAX_DAILY_ML             Daily ceiling in milliliters (default: 7000)
  QUICK_AMOUNTS            Comma-separated quick add sizes in ml
  TIMEZONE                 IANA zone used for calendar days
  REMINDERS_ENABLED        Send reminder notifications (default: true)
  REMINDER_THRESHOLD       Time since the last drink before reminding (default: 1h)
  REMINDER_CHECK_INTERVAL  How often the reminder policy runs (default: 1m)
  REMINDER_DELAY           Delay before a reminder is shown (default: 3s)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/hydration-tui/.env
  - ~/.hydration/.env`)
}
