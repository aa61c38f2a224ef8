package main

import (
	"github.com/huangang/taskflow/internal/config"
	"github.com/huangang/taskflow/internal/handlers"
	"github.com/huangang/taskflow/internal/models"
	"github.com/huangang/taskflow/internal/services"
	"github.com/huangang/taskflow/pkg/logger"
	"github.com/robfig/cron/v3"
)

// appServices holds the shared services and schedulers wired at startup.
type appServices struct {
	latency            services.Latency
	dragService        *services.DragService
	reportService      *services.ReportService
	retentionScheduler *cron.Cron
}

// bootstrap initializes all application dependencies: database, seed data,
// services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed demo data into empty collections
	if err := models.SeedData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed data")
	}

	db := models.GetDB()

	// Initialize activity logger
	services.InitActivityLogger(db)

	// Start activity retention scheduler
	retentionScheduler := services.StartRetentionScheduler(db, cfg.Activity.RetentionDays)

	// Entity count gauges for the metrics endpoint
	handlers.RegisterEntityGauges(db)

	lat := services.LatencyFromConfig(&cfg.Store)
	return &appServices{
		latency:            lat,
		dragService:        services.NewDragService(db, services.NewTaskService(db, lat)),
		reportService:      services.NewReportService(db, cfg.Report.Country),
		retentionScheduler: retentionScheduler,
	}
}

// shutdown gracefully stops all background services.
func (s *appServices) shutdown() {
	if s.retentionScheduler != nil {
		s.retentionScheduler.Stop()
	}
	logger.Info().Msg("All schedulers stopped")
}
