// Command apiserver serves the analysis HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/Jyotish-Intelligence/internal/application/analysis"
	"github.com/turtacn/Jyotish-Intelligence/internal/config"
	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/Jyotish-Intelligence/internal/interfaces/http"
	"github.com/turtacn/Jyotish-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/Jyotish-Intelligence/internal/interfaces/http/middleware"
)

const defaultConfigPath = "configs/config.yaml"

// Build-time variables injected via ldflags.
var version = "dev"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	flag.Parse()

	if err := run(*configPath, *port); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, port int) error {
	if _, err := os.Stat(configPath); err != nil {
		configPath = ""
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logging.SetDefault(logger)
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		collector prometheus.MetricsCollector
		metrics   *prometheus.AppMetrics
	)
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(cfg.Metrics.CollectorConfig, logger)
		if err != nil {
			return err
		}
		metrics = prometheus.NewAppMetrics(collector)
	}

	opts := []analysis.Option{analysis.WithMetrics(metrics)}
	var checkers []handlers.HealthChecker
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			return err
		}
		defer client.Close()

		cache := redis.NewRedisCache(client, logger,
			redis.WithPrefix(cfg.Cache.Prefix),
			redis.WithDefaultTTL(cfg.Cache.TTL),
			redis.WithJitter(cfg.Cache.Jitter),
		)
		opts = append(opts, analysis.WithCache(cache, cfg.Cache.TTL))
		checkers = append(checkers, &redisHealthAdapter{client: client})
	}
	svc := analysis.NewService(cfg.Scoring, logger, opts...)

	if configPath != "" {
		err := config.Watch(configPath,
			func(next *config.Config) {
				svc.UpdateScoring(next.Scoring)
				logging.SetLevel(logger, next.Log.Level)
				metrics.RecordConfigReload(nil)
			},
			func(err error) {
				logger.Warn("config reload rejected", logging.Err(err))
				metrics.RecordConfigReload(err)
			})
		if err != nil {
			return err
		}
	}

	cors := middleware.DefaultCORSConfig()
	router := httpserver.NewRouter(httpserver.RouterConfig{
		AnalysisHandler:  handlers.NewAnalysisHandler(svc, logger),
		HealthHandler:    handlers.NewHealthHandler(version, checkers...),
		Logger:           logger,
		Metrics:          metrics,
		MetricsCollector: collector,
		MetricsPath:      cfg.Metrics.Path,
		CORS:             &cors,
		Logging:          middleware.DefaultLoggingConfig(),
		MaxBodySize:      cfg.Server.MaxBodySize,
	})
	srv := httpserver.NewServer(cfg.Server, router, logger)

	logger.Info("starting Jyotish-Intelligence API server",
		logging.String("version", version),
		logging.String("addr", srv.Addr()),
		logging.Bool("cache", cfg.Redis.Enabled),
		logging.Bool("metrics", cfg.Metrics.Enabled),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		return srv.Stop(context.Background())
	})
	return g.Wait()
}

//Personal.AI order the ending
