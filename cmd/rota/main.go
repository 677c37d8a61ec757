package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/rota/internal/cache"
	"github.com/alexanderramin/rota/internal/cli"
	"github.com/alexanderramin/rota/internal/config"
	"github.com/alexanderramin/rota/internal/db"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/alexanderramin/rota/internal/rotation"
	"github.com/alexanderramin/rota/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// --config is consumed before cobra so it can shape the wiring.
	var configPath string
	flags := pflag.NewFlagSet("rota", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.StringVar(&configPath, "config", "", "Path to config file")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Database.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	analystRepo := repository.NewSQLiteAnalystRepo(database)
	scheduleRepo := repository.NewSQLiteScheduleRepo(database)
	vacationRepo := repository.NewSQLiteVacationRepo(database)
	constraintRepo := repository.NewSQLiteConstraintRepo(database)
	stateRepo := repository.NewSQLiteRotationStateRepo(database)
	compOffRepo := repository.NewSQLiteCompOffRepo(database)

	// Cache: redis when configured, in-memory otherwise.
	var cacheClient cache.Cache
	if cfg.Redis.Enabled {
		cacheClient, err = cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
	} else {
		cacheClient = cache.NewMemoryCache()
	}
	defer cacheClient.Close()

	observer := service.NewLogUseCaseObserver(os.Stderr, logLevel(cfg.Log.Level))
	calendar := domain.USHolidayCalendar{}

	// Wire services
	compOffSvc := service.NewCompOffService(compOffRepo, analystRepo, observer)
	workloadSvc := service.NewWorkloadService(scheduleRepo, compOffRepo, compOffSvc, cacheClient, calendar, observer)
	registry := rotation.NewRegistry(rotation.NewWeekendRotationAlgorithm())

	app := &cli.App{
		Generation: service.NewGenerationService(
			analystRepo, scheduleRepo, vacationRepo, constraintRepo, stateRepo,
			db.NewSQLiteUnitOfWork(database), registry, workloadSvc, cacheClient, calendar, observer,
		),
		Analysts:    service.NewAnalystService(analystRepo, cacheClient),
		Schedules:   service.NewScheduleService(scheduleRepo, cacheClient),
		Vacations:   service.NewVacationService(vacationRepo, analystRepo),
		Constraints: service.NewConstraintService(constraintRepo, analystRepo),
		Workloads:   workloadSvc,
		CompOffs:    compOffSvc,
		Fairness:    service.NewFairnessService(scheduleRepo, analystRepo, cacheClient),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	return rootCmd.Execute()
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
