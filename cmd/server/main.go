package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	httpadapter "findability/internal/adapters/http"
	"findability/internal/adapters/memory"
	pg "findability/internal/adapters/postgres"
	"findability/internal/config"
	"findability/internal/logging"
	ports "findability/internal/ports"
	compsvc "findability/internal/services/companies"
	evalsvc "findability/internal/services/evaluations"
	"findability/internal/version"
)

type store interface {
	ports.CompanyRepository
	ports.EvaluationRepository
	ports.Pinger
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, cfgErr := config.Load()
	if cfgErr != nil && !errors.Is(cfgErr, config.ErrNoDatabase) {
		return fmt.Errorf("config: %w", cfgErr)
	}
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.Production())
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repo store
	if errors.Is(cfgErr, config.ErrNoDatabase) {
		log.Warn("DATABASE_URL not set, using in-memory store; data is lost on exit")
		repo = memory.New()
	} else {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		db, err := pg.Connect(connectCtx, cfg.DatabaseURL, int32(cfg.DBMaxConns))
		cancel()
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer db.Close()
		if cfg.MigrateOnStart {
			v, err := db.Migrate(ctx)
			if err != nil {
				return err
			}
			log.Info("migrations applied", "version", v)
		}
		repo = db
	}

	companies := compsvc.New(repo)
	evaluations := evalsvc.New(repo, repo)

	srv := httpadapter.New(companies, evaluations, repo, httpadapter.Options{
		Logger:         log,
		Registry:       httpadapter.NewRegistry(),
		Version:        version.Version,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})
	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	log.Info("listening", "addr", cfg.ListenAddr, "env", cfg.Env, "version", version.Version)

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
