package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ecotracker/internal/cli"
	"ecotracker/internal/config"
	"ecotracker/internal/logging"
	"ecotracker/internal/repository"
	"ecotracker/internal/service"
	"ecotracker/internal/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(os.Stderr, logging.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	db, err := repository.NewDB(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	emissionSvc := service.NewEmissionService()
	if cfg.FactorsFile != "" {
		emissionSvc, err = service.NewEmissionServiceFromFile(cfg.FactorsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("load emission factors")
		}
	}

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	goalRepo := repository.NewGoalRepository(db)

	app := cli.New(os.Stdin, os.Stdout, cli.Deps{
		UserRepo:    userRepo,
		AuthSvc:     service.NewAuthService(userRepo),
		ActivitySvc: service.NewActivityService(activityRepo, userRepo, emissionSvc),
		GoalSvc:     service.NewGoalService(goalRepo, userRepo),
		ReportSvc:   service.NewReportService(activityRepo, cfg.MaxBarWidth),
		ExportSvc:   service.NewExportService(userRepo, activityRepo),
		EmissionSvc: emissionSvc,
		Sessions:    session.NewFileStore(cfg.SessionFile),
		Log:         log,
	})

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("menu loop stopped")
	}
}
