package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/storefront/internal/api"
	"github.com/baharkarakas/storefront/internal/auth"
	"github.com/baharkarakas/storefront/internal/config"
	"github.com/baharkarakas/storefront/internal/logger"
	"github.com/baharkarakas/storefront/internal/metrics"
	"github.com/baharkarakas/storefront/internal/services"
	"github.com/baharkarakas/storefront/internal/store"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Error("store open", "path", cfg.DBPath, "err", err)
		os.Exit(1)
	}

	tm := auth.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret, 15*time.Minute, 7*24*time.Hour)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:        cfg,
		TM:         tm,
		ProductSvc: services.NewProductService(st),
		OrderSvc:   services.NewOrderService(st),
		UserSvc:    services.NewUserService(st),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
