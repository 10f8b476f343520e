package scheduler

import (
	"context"
	"fmt"

	"kundekort_backend/internal/cards/service"
	"kundekort_backend/platform/config"
	"kundekort_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	cards  *service.Service
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, cards *service.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		cards:  cards,
		log:    log,
	}

	mux.HandleFunc(TaskCardsRebuild, w.handleCardsRebuild)

	return w, nil
}

func (w *Worker) handleCardsRebuild(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseCardsRebuildPayload(task)
	if err != nil {
		return err
	}

	w.log.Info("cards rebuild task started", "reason", payload.Reason, "requestedAt", payload.RequestedAt)

	result, err := w.cards.Rebuild(ctx)
	if err != nil {
		w.log.Error("cards rebuild task failed", "error", err, "reason", payload.Reason)
		return err
	}

	w.log.Info("cards rebuild task finished",
		"profiles", result.Profiles,
		"cards", result.Cards,
		"durationMs", result.DurationMs,
	)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
