package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mealbox/internal/app"
	"mealbox/internal/config"
	"mealbox/internal/logger"
	"mealbox/internal/router"

	"github.com/gin-gonic/gin"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	cfg := config.Load()

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ───────────────────────── STORE ─────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	repos, closeStore, err := app.OpenRepositories(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatalw("failed to open store", "driver", cfg.StoreDriver, "error", err)
	}
	defer closeStore()

	// ───────────────────────── SERVICES ─────────────────────────
	services := app.NewServices(repos, log)
	if err := app.EnableReceiptArchive(context.Background(), cfg, services.Bills, log); err != nil {
		log.Fatalw("failed to enable receipt archive", "error", err)
	}

	// ───────────────────────── HTTP ─────────────────────────
	r := router.New(router.Deps{
		Services:    services,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		log.Infow("signal caught", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		shutdown <- srv.Shutdown(ctx)
	}()

	log.Infow("server started", "addr", cfg.Addr, "env", cfg.Env, "store", cfg.StoreDriver)

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatalw("server failed", "error", err)
	}
	if err := <-shutdown; err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
		return
	}

	log.Infow("server stopped", "addr", cfg.Addr)
}
