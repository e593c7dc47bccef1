package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/mtsierradev/servicio-social/internal/config"
	"github.com/mtsierradev/servicio-social/internal/repository/postgres"
	"github.com/mtsierradev/servicio-social/internal/repository/rediscache"
	"github.com/mtsierradev/servicio-social/internal/service"
	myhttp "github.com/mtsierradev/servicio-social/internal/transport/http"
	"github.com/mtsierradev/servicio-social/pkg/logger/sl"
	"github.com/mtsierradev/servicio-social/pkg/logger/slogpretty"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting servicio-social", slog.String("env", cfg.Env))

	errChan := make(chan error, 1)

	db, err := postgres.NewDB(cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("db close failed", sl.Err(err))
		}
	}()

	redisClient, err := rediscache.NewClient(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to init redis: %v", err)
	}

	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("redis close failed", sl.Err(err))
			}
		}()
	}

	cache := rediscache.New(redisClient, log)

	activityRepo := postgres.NewActivityRepository(db, log)
	userRepo := postgres.NewUserRepository(db, log)

	srv := myhttp.NewServer(
		log,
		service.NewAuthService(log, userRepo, cfg.Auth),
		service.NewActivityService(db, log, activityRepo, activityRepo, userRepo, cache),
		service.NewReviewService(db, log, activityRepo, activityRepo, cache),
		service.NewStatsService(log, activityRepo, cache, cfg.Redis.StatsTTL),
		service.NewUserService(log, userRepo),
	)

	httpServer := &http.Server{
		Addr:        net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:     srv.Routes(),
		ReadTimeout: cfg.Server.Timeout,
	}

	go startServer(log, httpServer, errChan)

	select {
	case err := <-errChan:
		return fmt.Errorf("http server error: %v", err)

	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %v", err)
	}

	return nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- fmt.Errorf("error listening and serving: %v", err)
	}
}
