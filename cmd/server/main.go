package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/diegonavarro95/parkify/internal/app"
	"github.com/diegonavarro95/parkify/internal/clock"
	"github.com/diegonavarro95/parkify/internal/config"
	"github.com/diegonavarro95/parkify/internal/fanout"
	"github.com/diegonavarro95/parkify/internal/jobs"
	"github.com/diegonavarro95/parkify/internal/storage/postgres"
	transporthttp "github.com/diegonavarro95/parkify/internal/transport/http"
	"github.com/diegonavarro95/parkify/migrations"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db connection failed: %v", err)
	}
	if err := pool.Ping(startupCtx); err != nil {
		cancel()
		log.Fatalf("db ping failed: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		cancel()
		log.Fatalf("apply migrations: %v", err)
	}
	cancel()
	defer pool.Close()

	var publisher fanout.Publisher
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatalf("redis ping failed: %v", err)
		}
		cancel()
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Printf("redis close error: %v", err)
			}
		}()
		publisher = fanout.NewRedisPublisher(redisClient, cfg.FanoutChannel)
	} else {
		log.Printf("REDIS_ADDR not set, access fan-out disabled")
	}

	store := postgres.NewStore(pool)
	clk := clock.NewSystem()

	passSvc := app.NewPassService(store, clk)
	accessSvc := app.NewAccessService(store, passSvc, publisher, clk)
	slotSvc := app.NewSlotService(store)
	notificationSvc := app.NewNotificationService(store)
	alertSvc := app.NewAlertService(store)
	sweeper := app.NewSweeper(store, passSvc, clk)

	server := transporthttp.NewServer(cfg, accessSvc, slotSvc, passSvc, notificationSvc, alertSvc)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	jobs.StartExpirySweeper(ctx, cfg, sweeper)

	go func() {
		log.Printf("parkify http listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
