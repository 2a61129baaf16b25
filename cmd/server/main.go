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
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/platewise/api/internal/catalog"
	"github.com/platewise/api/internal/config"
	"github.com/platewise/api/internal/database"
	"github.com/platewise/api/internal/idempotency"
	"github.com/platewise/api/internal/logger"
	"github.com/platewise/api/internal/notify"
	"github.com/platewise/api/internal/router"
	"github.com/platewise/api/internal/service"
	"github.com/platewise/api/internal/ws"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 20 * time.Second

func main() {
	cfg := config.Load()

	log := logger.New("platewise-api", cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	log.Info("connected to database")

	queries := database.New(pool)

	hub := ws.NewHub(log.With("component", "ws"))
	go hub.Run(ctx)

	events := notify.Fanout{notify.NewHubPublisher(hub)}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub := notify.NewKafkaPublisher(notify.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaOrderTopic))
		defer func() {
			if err := kafkaPub.Close(); err != nil {
				log.Warn("close kafka writer", "error", err)
			}
		}()
		events = append(events, kafkaPub)
		log.Info("publishing events to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaOrderTopic)
	}

	var sender notify.Sender
	if cfg.WhatsAppEnabled() {
		sender = notify.NewWhatsAppSender(cfg.WhatsAppAPIURL, cfg.WhatsAppAccessToken, cfg.WhatsAppPhoneNumberID)
		log.Info("whatsapp customer notifications enabled")
	}

	var guard *idempotency.Guard
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			// The guard fails open, so an unreachable Redis only disables
			// deduplication.
			log.Warn("redis unreachable at startup", "error", err)
		}
		guard = idempotency.NewGuard(rdb, cfg.IdempotencyTTL)
	}

	orders := service.NewOrderService(
		pool,
		queries,
		catalog.NewReader(queries),
		func(db database.DBTX) service.OrderStore { return database.New(db) },
		events,
		log.With("component", "orders"),
	)
	lifecycle := service.NewLifecycleService(queries, events, sender, log.With("component", "lifecycle"))
	bookings := service.NewBookingService(
		pool,
		func(db database.DBTX) service.BookingStore { return database.New(db) },
		events,
		log.With("component", "bookings"),
	)

	r := router.New(cfg, queries, router.Services{
		Orders:    orders,
		Lifecycle: lifecycle,
		Bookings:  bookings,
		Guard:     guard,
	}, hub)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "port", cfg.Port, "env", cfg.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "error", err)
	}

	// Drain event publishing and customer messages before the pool and the
	// Kafka writer close.
	orders.Wait()
	lifecycle.Wait()
	bookings.Wait()
	return nil
}
