package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quantara/tradesim/internal/config"
	"github.com/quantara/tradesim/internal/database"
	"github.com/quantara/tradesim/internal/events"
	"github.com/quantara/tradesim/internal/locking"
	"github.com/quantara/tradesim/internal/modules/catalog"
	"github.com/quantara/tradesim/internal/modules/portfolio"
	"github.com/quantara/tradesim/internal/scheduler"
	"github.com/quantara/tradesim/internal/server"
	"github.com/quantara/tradesim/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{Level: "info", Service: "tradesim"})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Pretty:  cfg.DevMode,
		Service: "tradesim",
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting tradesim")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Seed the instrument catalog (no-op if already seeded)
	catalogRepo := catalog.NewRepository(db.Conn(), log)
	if err := catalogRepo.Seed(catalog.DefaultInstruments()); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed instrument catalog")
	}

	// Shared infrastructure
	lockManager := locking.NewManager()
	eventManager := events.NewManager(log)

	// Portfolio service (shared by HTTP views and the snapshot job)
	positionRepo := portfolio.NewPositionRepository(db.Conn(), log)
	snapshotRepo := portfolio.NewSnapshotRepository(db.Conn(), log)
	portfolioService := portfolio.NewService(positionRepo, catalogRepo, snapshotRepo, log)

	// Initialize scheduler
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	snapshotJob := scheduler.NewSnapshotJob(log, lockManager, portfolioService, eventManager)
	if err := sched.AddJob(cfg.SnapshotSchedule, snapshotJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register snapshot job")
	}

	// Baseline snapshot on startup; the schedule takes over from here
	if err := sched.RunNow(snapshotJob); err != nil {
		log.Error().Err(err).Msg("Initial portfolio snapshot failed")
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:      cfg.Port,
		Log:       log,
		DB:        db,
		Config:    cfg,
		Locks:     lockManager,
		Events:    eventManager,
		Portfolio: portfolioService,
		DevMode:   cfg.DevMode,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
