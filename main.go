// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"car-rental/cmd"
	"car-rental/internal/data/repository"
	"car-rental/internal/wire"
	"car-rental/pkg/database"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
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

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Activation sweep: the scheduling collaborator. Moves confirmed bookings
	// into active once their start date is reached; idempotent, so a missed
	// or doubled tick is harmless.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go runActivationSweep(ctx, app, config.Sweeper.Interval, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

func runActivationSweep(ctx context.Context, app *wire.App, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Activation sweeper started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			logger.Info("Activation sweeper stopped")
			return
		case now := <-ticker.C:
			if _, err := app.Service.Reservation.ActivateDue(ctx, now); err != nil {
				logger.Error("Activation sweep failed", zap.Error(err))
			}
		}
	}
}
