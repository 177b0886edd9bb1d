package main

import (
	"context"
	"errors"
	"feedcore/config"
	"feedcore/di"
	"feedcore/driver/history_db"
	"feedcore/driver/redis_counter_driver"
	"feedcore/job"
	"feedcore/rest"
	"feedcore/utils/logger"
	"feedcore/utils/otel"
	"feedcore/utils/rate_limiter"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Docker healthcheck for the distroless image
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	otelShutdown, err := otel.InitProvider(ctx, otel.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: cfg.Telemetry.ServiceVersion,
		Environment:    cfg.Telemetry.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Enabled:        cfg.Telemetry.Enabled,
		SampleRatio:    cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		cfg.Telemetry.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	log := logger.Init(logger.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OTelEnabled: cfg.Telemetry.Enabled,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	log.Info("Starting server", "port", cfg.Server.Port, "rate_limit_backend", cfg.RateLimit.Backend)

	pool, err := history_db.InitDBPool(ctx, cfg.Database)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := history_db.NewHistoryDBRepository(pool).EnsureSchema(ctx); err != nil {
		log.Error("Failed to ensure schema", "error", err)
		os.Exit(1)
	}

	scheduler := job.NewJobScheduler()

	var counters rate_limiter.CounterStore
	switch cfg.RateLimit.Backend {
	case "redis":
		redisCounters, err := redis_counter_driver.NewRedisCounterDriverWithURL(cfg.RateLimit.RedisURL)
		if err != nil {
			log.Error("Failed to configure redis counter store", "error", err)
			os.Exit(1)
		}
		defer redisCounters.Close()
		if err := redisCounters.Ping(ctx); err != nil {
			log.Warn("redis counter store unreachable, writes fail open until it recovers", "error", err)
		}
		// Counters are shared across instances; the ceiling becomes cluster wide.
		log.Warn("write rate limit is shared through redis", "ceiling", cfg.RateLimit.Ceiling, "window", cfg.RateLimit.Window)
		counters = redisCounters
	default:
		memoryCounters := rate_limiter.NewMemoryCounterStore()
		scheduler.Add(job.Job{
			Name:           "limiter-sweep",
			Interval:       cfg.RateLimit.SweepInterval,
			SkipInitialRun: true,
			Fn:             job.LimiterSweepJob(memoryCounters),
		})
		counters = memoryCounters
	}

	container := di.NewApplicationComponents(cfg, pool, counters)

	if cfg.Archive.Enabled {
		scheduler.Add(job.Job{
			Name:     "history-archive",
			Interval: cfg.Archive.Interval,
			Timeout:  cfg.Archive.Timeout,
			Fn:       container.HistoryArchiveJob.Run,
		})
	}
	scheduler.Start(ctx)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout
	rest.RegisterRoutes(e, container, cfg)

	address := fmt.Sprintf(":%d", cfg.Server.Port)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("listening", "address", address)
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		err := e.Shutdown(shutdownCtx)
		// Jobs run on the root context; cancel it in case the server failed first.
		stop()
		scheduler.Shutdown()
		return err
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server exited properly")
}

// runHealthcheck performs a health check against the local server.
func runHealthcheck() error {
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "9000"
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/v1/health", port))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
