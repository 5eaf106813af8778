package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/tably/internal/cli"
	"github.com/alexanderramin/tably/internal/config"
	"github.com/alexanderramin/tably/internal/db"
	"github.com/alexanderramin/tably/internal/repository"
	"github.com/alexanderramin/tably/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	courseRepo := repository.NewSQLiteCourseRepo(database)
	commitmentRepo := repository.NewSQLiteCommitmentRepo(database)
	blockRepo := repository.NewSQLiteBlockedIntervalRepo(database)
	profileRepo := repository.NewSQLiteUserProfileRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogEvents {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}
	catalog := service.NewCatalogProvider(courseRepo, cfg.CatalogCacheTTL, observer)

	app := &cli.App{
		Courses:     service.NewCourseService(courseRepo, uow, catalog, observer),
		Commitments: service.NewCommitmentService(commitmentRepo, courseRepo, uow),
		Blocks:      service.NewBlockService(blockRepo),
		Profile:     service.NewProfileService(profileRepo),
		Recommend: service.NewRecommendService(service.RecommendDeps{
			Profiles:    profileRepo,
			Commitments: commitmentRepo,
			Blocks:      blockRepo,
			Courses:     courseRepo,
			Catalog:     catalog,
			Options:     cfg.EngineOptions(),
			DefaultTerm: cfg.Term,
		}, observer),
		DefaultTerm: cfg.Term,
	}

	app.IsInteractive = func() bool {
		in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return in && out
	}

	// Ctrl-C cancels a running search; partial results are still ranked.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
