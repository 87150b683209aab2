package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	adapthttp "weighttrack/internal/adapter/http"
	"weighttrack/internal/adapter/memory"
	"weighttrack/internal/adapter/postgres"
	"weighttrack/internal/adapter/sessionfile"
	"weighttrack/internal/app"
	"weighttrack/internal/config"
	"weighttrack/internal/domain"
)

const shutdownTimeout = 10 * time.Second

type store interface {
	domain.ProfileRepository
	domain.WeightRepository
}

func main() {
	log.SetTimeFormat(time.Stamp)
	log.SetReportCaller(true)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config", "err", err)
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal("log level", "err", err)
	}
	log.SetLevel(level)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("time zone", "err", err)
	}
	time.Local = loc

	if err := run(cfg); err != nil {
		log.Fatal("server stopped", "err", err)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db store
	switch cfg.Store {
	case config.StoreMemory:
		log.Warn("using in-memory store; data is lost on exit")
		db = memory.New()
	default:
		pg, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer func() { _ = pg.Close() }()
		db = pg
	}

	session, err := app.NewSession(ctx, sessionfile.New(cfg.SessionFile))
	if err != nil {
		return err
	}
	if id, ok := session.ID(); ok {
		log.Info("restored session", "profile", id)
	}

	weightSvc := app.NewWeightService(db)
	profileSvc := app.NewProfileService(db, weightSvc, session)
	dashboardSvc := app.NewDashboardService(db, db, app.NewMotivationService(nil))
	chartsSvc := app.NewChartsService(db, db)

	h := adapthttp.New(profileSvc, weightSvc, dashboardSvc, chartsSvc, cfg.WebDir, log.Default()).Handler()
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Addr, "store", cfg.Store, "tz", time.Local.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
