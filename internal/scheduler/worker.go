package scheduler

import (
	"context"
	"fmt"

	"advisory_portal_backend/internal/events"
	"advisory_portal_backend/platform/config"
	"advisory_portal_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// LeadNotifier delivers the emails for a captured lead.
type LeadNotifier interface {
	DeliverLeadCaptured(ctx context.Context, e events.LeadCaptured) error
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	notifier LeadNotifier
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, notifier LeadNotifier, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 5
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	return newWorker(server, notifier, log), nil
}

func newWorker(server *asynq.Server, notifier LeadNotifier, log *logger.Logger) *Worker {
	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		notifier: notifier,
		log:      log,
	}
	mux.HandleFunc(TaskLeadNotification, w.handleLeadNotification)
	return w
}

// Run processes tasks until ctx is done, then waits for in-flight tasks.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil || w.server == nil {
		return nil
	}

	if err := w.server.Start(w.mux); err != nil {
		w.log.Error("scheduler worker failed to start", "error", err)
		return err
	}
	<-ctx.Done()
	w.server.Shutdown()
	w.log.Info("scheduler worker stopped")
	return nil
}

func (w *Worker) handleLeadNotification(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadNotificationPayload(task)
	if err != nil {
		return fmt.Errorf("parse lead notification: %v: %w", err, asynq.SkipRetry)
	}
	return w.notifier.DeliverLeadCaptured(ctx, payload.Lead)
}
