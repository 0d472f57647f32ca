package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"frontdesk-backend/internal/config"
	"frontdesk-backend/internal/jobs"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/metrics"
	"frontdesk-backend/internal/scheduler"
	"frontdesk-backend/internal/service"
	"frontdesk-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'night-audit', 'daily-report', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Front Desk Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Repositories
	backend, err := storage.Open(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to open store", "type", cfg.Store.Type, "error", err)
		log.Fatalf("Failed to open store: %v", err)
	}
	defer backend.Close()

	rates, err := cfg.Billing.RateTable()
	if err != nil {
		log.Fatalf("Invalid rate table: %v", err)
	}

	jobServices := &jobs.Services{
		Directory: service.NewGuestDirectory(backend.Guests),
		Billing:   service.NewBillingCalculator(rates),
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(backend.Checkouts, jobServices, cfg, metrics.Checkout())

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "night-audit":
		jobRunner.NightAudit()
	case "daily-report":
		jobRunner.DailyCheckoutReport()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - night-audit\n")
		fmt.Printf("  - daily-report\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
