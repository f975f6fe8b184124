package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"cinema-ticketing/cmd"
	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/data/seed"
	"cinema-ticketing/internal/event"
	"cinema-ticketing/internal/pricing"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/internal/wire"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(config.Booking.Timezone)
	if err != nil {
		logger.Fatal("Unknown timezone", zap.String("timezone", config.Booking.Timezone), zap.Error(err))
	}
	clock := func() time.Time { return time.Now().In(loc) }

	// Pricing rules and, for the file source, the catalog itself
	seedFile, err := seed.Load(config.Catalog.File, clock())
	if err != nil {
		logger.Fatal("Failed to load seed file", zap.Error(err))
	}

	catalog, err := loadCatalog(ctx, config, seedFile, logger)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	repos, err := repository.NewRepository(catalog, logger)
	if err != nil {
		logger.Fatal("Invalid catalog", zap.Error(err))
	}

	engine, err := pricing.NewEngine(seedFile.Pricing)
	if err != nil {
		logger.Fatal("Invalid pricing rules", zap.Error(err))
	}

	publisher := newPublisher(config.Broker, logger)
	defer publisher.Close()

	service, err := usecase.NewService(usecase.Dependencies{
		Repo:      repos,
		Pricing:   engine,
		Publisher: publisher,
		Config:    config.Booking,
		Clock:     clock,
		Log:       logger,
	})
	if err != nil {
		logger.Fatal("Failed to build services", zap.Error(err))
	}

	// Unpaid bookings past the payment window give their seats back
	go service.Booking.RunExpiry(ctx, config.Booking.ExpirySweep)

	// Wire all dependencies
	app := wire.Wiring(service, config.Admin.UserIDs, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func loadCatalog(ctx context.Context, config *utils.Config, seedFile *seed.File, logger *zap.Logger) (entity.Catalog, error) {
	if config.Catalog.Source != "postgres" {
		logger.Info("Catalog loaded from seed file",
			zap.Int("movies", len(seedFile.Catalog.Movies)),
			zap.Int("showtimes", len(seedFile.Catalog.Showtimes)))
		return seedFile.Catalog, nil
	}

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		return entity.Catalog{}, err
	}
	defer db.Close()

	logger.Info("Database connected successfully")
	return repository.LoadCatalog(ctx, db, logger)
}

// newPublisher publishes to RabbitMQ when AMQP_URL is set and falls back to the log.
func newPublisher(config utils.BrokerConfig, logger *zap.Logger) event.Publisher {
	if config.URL == "" {
		return event.NewLogPublisher(logger)
	}

	publisher, err := event.NewAMQPPublisher(config.URL, config.Queue, logger)
	if err != nil {
		logger.Warn("Broker unavailable, booking events go to the log", zap.Error(err))
		return event.NewLogPublisher(logger)
	}
	// Booking operations only enqueue; broker I/O happens on one goroutine
	return event.NewAsyncPublisher(publisher, config.Buffer, config.PublishTimeout, logger)
}
