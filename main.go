package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"descuentosgo/dealworker/config"
	"descuentosgo/dealworker/internal/fetch"
	"descuentosgo/dealworker/internal/process"
	"descuentosgo/dealworker/logger"
	"descuentosgo/dealworker/services/cache"
	"descuentosgo/dealworker/services/publisher"
	"descuentosgo/dealworker/services/worker"
	"descuentosgo/dealworker/storage"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Dur("scan_interval", cfg.ScanInterval).
		Float64("min_discount", cfg.MinDiscountPercentage).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize services
	services, err := initializeServices(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Cleanup()

	stores := config.Stores(cfg)
	if len(stores) == 0 {
		log.Fatal().Msg("No stores configured")
	}

	log.Info().
		Int("store_count", len(stores)).
		Msg("Loaded store configurations")

	// Create and start worker
	w := worker.NewWorker(
		ctx,
		fetch.NewFetcher(cfg, services.Cache),
		stores,
		process.NewProcessor(cfg.MinDiscountPercentage),
		services.Publisher,
		services.Writers,
		services.Cache,
		cfg.AlertDiscountThreshold,
		cfg.ReportPath,
		cfg.ScanInterval,
	)

	// Start worker in a goroutine
	workerDone := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting discount scanner")
		workerDone <- w.Start()
	}()

	// Wait for shutdown signal or worker error
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	case err := <-workerDone:
		if err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("Worker exited with error")
		} else {
			log.Info().Msg("Worker exited normally")
		}
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")
}

// Services holds all the initialized services
type Services struct {
	Cache     cache.CacheService
	Publisher publisher.Publisher
	Writers   []storage.ProductWriter
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
	for _, w := range s.Writers {
		w.Close()
	}
}

// initializeServices initializes all required services
func initializeServices(ctx context.Context, cfg config.Config) (*Services, error) {
	services := &Services{}

	// Cache for fetch block windows and alert suppression
	services.Cache = cache.NewMemcacheService(cfg.MemcacheAddr)
	logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)

	// Publisher for validated products and alerts
	services.Publisher = publisher.NewRedisPublisher(
		ctx,
		cfg.RedisAddr,
		cfg.RedisDB,
		cfg.RedisStream,
		cfg.RedisAlertStream,
		cfg.RedisStreamMaxLength,
	)
	logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
		cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)

	// Persistence sinks: JSON and CSV always, Postgres when configured
	jsonWriter, err := storage.NewJSONWriter(cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	services.Writers = append(services.Writers, jsonWriter)

	csvWriter, err := storage.NewCSVWriter(cfg.OutputDir + "/ofertas.csv")
	if err != nil {
		return nil, err
	}
	services.Writers = append(services.Writers, csvWriter)

	if cfg.PostgresDSN != "" {
		pgWriter, err := storage.NewPostgresWriter(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		services.Writers = append(services.Writers, pgWriter)
		logger.Info("Connected to PostgreSQL")
	}

	return services, nil
}
