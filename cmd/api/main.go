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

	"advisory_portal_backend/internal/adapters"
	"advisory_portal_backend/internal/assessments"
	"advisory_portal_backend/internal/email"
	"advisory_portal_backend/internal/events"
	apphttp "advisory_portal_backend/internal/http"
	"advisory_portal_backend/internal/http/router"
	"advisory_portal_backend/internal/leads"
	leadrepo "advisory_portal_backend/internal/leads/repository"
	"advisory_portal_backend/internal/notification"
	"advisory_portal_backend/internal/scheduler"
	"advisory_portal_backend/migrations"
	"advisory_portal_backend/platform/config"
	"advisory_portal_backend/platform/db"
	"advisory_portal_backend/platform/logger"
	"advisory_portal_backend/platform/metrics"
	"advisory_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const (
	limiterSweepInterval = time.Minute
	readHeaderTimeout    = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

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
	log.Info("database connection established")

	var applied []int64
	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		versions, err := db.RunMigrations(ctx, pool, migrations.FS)
		applied = versions
		return err
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete", "applied", applied)

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()
	appMetrics := metrics.New()

	// ========================================================================
	// Domain Modules
	// ========================================================================

	assessmentsModule := assessments.NewModule(val, log)
	assessmentsModule.Service().SetRecorder(appMetrics)

	// leads → assessments: submitted quizzes are recomputed server-side
	evaluator := adapters.NewAssessmentEvaluatorAdapter(assessmentsModule.Service())
	leadsModule := leads.NewModule(leadrepo.New(pool), evaluator, eventBus, val, cfg, log)
	leadsModule.Service().SetRecorder(appMetrics)

	notificationModule := notification.New(sender, cfg, log)
	notificationModule.SetFailureRecorder(appMetrics)
	notificationModule.RegisterHandlers(eventBus)

	worker, closeQueue := initNotificationQueue(cfg, notificationModule, log)
	if closeQueue != nil {
		defer closeQueue()
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Metrics:  appMetrics,
		Modules: []apphttp.Module{
			assessmentsModule,
			leadsModule,
		},
	}

	limiters := router.NewLimiters(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app, limiters),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error { return limiters.Public.RunSweeper(gctx, limiterSweepInterval) })
	g.Go(func() error { return limiters.Submission.RunSweeper(gctx, limiterSweepInterval) })
	if worker != nil {
		g.Go(func() error { return worker.Run(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		if err := eventBus.Wait(shutdownCtx); err != nil {
			log.Warn("event handlers still running at shutdown", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// initNotificationQueue moves lead emails onto the asynq queue when Redis is
// configured. Without it, emails are sent from the in-process event handler.
func initNotificationQueue(cfg config.SchedulerConfig, m *notification.Module, log *logger.Logger) (*scheduler.Worker, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; lead emails are sent inline")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize notification queue client", "error", err)
		return nil, nil
	}
	worker, err := scheduler.NewWorker(cfg, m, log)
	if err != nil {
		log.Error("failed to initialize notification worker", "error", err)
		_ = client.Close()
		return nil, nil
	}

	m.SetQueue(client)
	return worker, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
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
