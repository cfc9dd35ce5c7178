package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/avendel/fastrack/internal/cli"
	"github.com/avendel/fastrack/internal/coach"
	"github.com/avendel/fastrack/internal/db"
	"github.com/avendel/fastrack/internal/llm"
	"github.com/avendel/fastrack/internal/repository"
	"github.com/avendel/fastrack/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional config file: ~/.fastrack/config.env holds FASTRACK_* vars.
	// Real environment variables win over file values.
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".fastrack", "config.env"))
	}

	// Determine DB path: env var or default ~/.fastrack/fastrack.db
	dbPath := os.Getenv("FASTRACK_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".fastrack", "fastrack.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sessionRepo := repository.NewSQLiteSessionRepo(database)
	streakRepo := repository.NewSQLiteStreakRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Structured use-case logging when FASTRACK_LOG is set.
	var observers []service.UseCaseObserver
	if os.Getenv("FASTRACK_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Sessions: service.NewSessionService(sessionRepo, uow, nil, observers...),
		Streaks:  service.NewStreakService(streakRepo, uow, nil, observers...),
		Stats:    service.NewStatsService(sessionRepo, nil),
		Settings: service.NewSettingsService(settingsRepo),
	}

	// Interactive-only surfaces (forms, live timer) need a real terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Wire the coach only when the LLM is enabled.
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		llmClient := llm.NewOllamaClient(llmCfg, observer)
		app.Coach = coach.NewCoachService(llmClient)
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
