package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kundekort_backend/internal/cards/cache"
	"kundekort_backend/internal/cards/repository"
	"kundekort_backend/internal/cards/service"
	"kundekort_backend/internal/events"
	"kundekort_backend/internal/exports"
	"kundekort_backend/internal/notification"
	"kundekort_backend/internal/scheduler"
	"kundekort_backend/platform/config"
	"kundekort_backend/platform/db"
	"kundekort_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)

	repo := repository.New(pool)

	reportCache, err := cache.NewFromURL(cfg.GetRedisURL(), cfg.GetReportCacheTTL())
	if err != nil {
		log.Error("failed to initialize report cache", "error", err)
		panic("failed to initialize report cache: " + err.Error())
	}

	cardsSvc := service.New(repo, reportCache, eventBus, log, cfg.GetHourlyRate())

	// Digest and snapshot export fire off each completed rebuild.
	notification.NewModule(eventBus, repo, cfg, log)
	if _, err := exports.NewModule(eventBus, repo, cfg, log); err != nil {
		log.Error("failed to initialize exports module", "error", err)
		panic("failed to initialize exports module: " + err.Error())
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer func() { _ = client.Close() }()

	go enqueuePeriodicRebuilds(ctx, client, cfg.GetRebuildInterval(), log)

	worker, err := scheduler.NewWorker(cfg, cardsSvc, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

// enqueuePeriodicRebuilds queues a full rebuild once at startup and then on
// every interval tick until the context is cancelled.
func enqueuePeriodicRebuilds(ctx context.Context, client *scheduler.Client, interval time.Duration, log *logger.Logger) {
	enqueue := func(reason string) {
		err := client.EnqueueCardsRebuild(ctx, scheduler.CardsRebuildPayload{
			Reason:      reason,
			RequestedAt: time.Now(),
		})
		if err != nil {
			log.Error("failed to enqueue cards rebuild", "error", err, "reason", reason)
		}
	}

	enqueue("startup")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			enqueue("interval")
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
