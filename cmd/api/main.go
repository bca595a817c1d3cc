package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"todo-webapp/internal/config"
	"todo-webapp/internal/handlers"
	"todo-webapp/internal/logging"
	"todo-webapp/internal/repository"
	"todo-webapp/internal/router"
)

// openRepo is swapped in tests.
var openRepo = openRepository

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", "err", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal("configure logging", "err", err)
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		stop()
		os.Exit(1)
	}
	logger.Info("stopped")
}

// run serves until ctx ends or the listener fails. The repository is closed
// on every return path.
func run(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	repo, closeRepo, err := openRepo(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open repository: %w", err)
	}
	defer closeRepo()

	h := handlers.New(repo, logger, cfg.StaticDir)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router.New(h, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}()

	logger.Info("listening", "addr", cfg.Addr, "store", cfg.Store, "static_dir", cfg.StaticDir)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func openRepository(ctx context.Context, cfg *config.Config, logger *log.Logger) (repository.Repository, func(), error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("using in-memory store, todos are lost on exit")
		return repository.NewMemory(), func() {}, nil
	}

	db, err := repository.Open(cfg.DatabaseURL, cfg.MaxConns)
	if err != nil {
		return nil, nil, err
	}
	if cfg.AutoMigrate {
		if err := repository.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Debug("schema applied")
	}
	return repository.NewPostgres(db), func() { _ = db.Close() }, nil
}
