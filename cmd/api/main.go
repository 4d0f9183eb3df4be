package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peluqueria/internal/api"
	"peluqueria/internal/catalog"
	"peluqueria/internal/config"
	"peluqueria/internal/database"
	"peluqueria/internal/domain"
	"peluqueria/internal/events"
	"peluqueria/internal/logging"
	"peluqueria/internal/metrics"
	"peluqueria/internal/models"
	"peluqueria/internal/repository"
	"peluqueria/internal/service"
	"peluqueria/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const eventHandlerTimeout = 2 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	// fecha_hora is stored and compared as salon wall-clock time
	time.Local = cfg.Location()

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := events.NewEventBus(logging.Component(&logger, "events"))

	clientes := service.NewClienteService(db, logging.Component(&logger, "clientes"))
	servicios := service.NewServicioService(db, logging.Component(&logger, "servicios"))
	turnos := service.NewTurnoService(db, eventBus, logging.Component(&logger, "turnos"))

	if err := seedCatalog(ctx, cfg, servicios, &logger); err != nil {
		return err
	}

	redisClient := initRedis(ctx, cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}
	feed := initActivityFeed(cfg, redisClient, &logger)
	feedWorker := worker.NewEventWorker("activity",
		repository.ActivityHandler(feed, eventHandlerTimeout),
		worker.RetryPolicy{}, 256, logging.Component(&logger, "worker"))
	eventBus.SubscribeAll(events.TurnoEvents, feedWorker.Enqueue)
	go feedWorker.Start(ctx)

	startMetrics(ctx, cfg, eventBus, &logger)

	backup := database.NewBackupService(db, cfg.Backup, logging.Component(&logger, "backup"))
	go backup.Start(ctx)

	if !cfg.API.Enabled {
		logger.Warn().Msg("API is disabled in config, but starting API application. Check your config.")
	}

	httpServer := api.NewHTTPServer(cfg.API, api.Services{
		Clientes:  clientes,
		Servicios: servicios,
		Turnos:    turnos,
		Actividad: feed,
	}, logging.Component(&logger, "http"))

	return startServer(ctx, httpServer, cfg, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

func seedCatalog(ctx context.Context, cfg *config.Config, servicios *service.ServicioService, logger *zerolog.Logger) error {
	path := cfg.Salon.CatalogPath
	if path == "" {
		path = "configs/servicios.yaml"
	}

	entries, err := catalog.Load(path)
	if err != nil {
		logger.Error().Err(err).Str("catalog_path", path).Msg("load servicio catalog")
		return err
	}

	created, err := servicios.SeedCatalog(ctx, entries)
	if err != nil {
		logger.Error().Err(err).Msg("seed servicio catalog")
		return err
	}
	logger.Info().Int("created", created).Int("total", len(entries)).Msg("servicio catalog loaded")
	return nil
}

func initRedis(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(ctx, redisClient); err != nil {
		// the failover store keeps probing it
		logger.Warn().Err(err).Msg("redis connection failed, activity feed starts in memory")
	} else {
		logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	}
	return redisClient
}

func initActivityFeed(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) domain.ActivityStore {
	size := cfg.Salon.ActivityFeedSize
	memory := repository.NewMemoryActivityStore(size)
	if redisClient == nil {
		return memory
	}

	primary := repository.NewRedisActivityStore(redisClient, size, models.DefaultActivityTTL*time.Second)
	return repository.NewFailoverActivityStore(primary, memory, logging.Component(logger, "activity"))
}

func startMetrics(ctx context.Context, cfg *config.Config, eventBus *events.EventBus, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	eventBus.SubscribeAll(events.TurnoEvents, metrics.EventHandler)
	go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, logger)
}

func startServer(ctx context.Context, httpServer *api.HTTPServer, cfg *config.Config, logger *zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	logger.Info().Int("http_port", cfg.API.HTTP.Port).Msg("API server started")

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("http server stopped")
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.API.HTTP.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}

	logger.Info().Msg("API server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
