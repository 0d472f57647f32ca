package jobs

import (
	"time"

	"frontdesk-backend/internal/config"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/metrics"
	"frontdesk-backend/internal/repository"
	"frontdesk-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	history  repository.CheckoutRepository
	services *Services
	config   *config.Config
	metrics  *metrics.CheckoutMetrics
	now      func() time.Time
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Directory service.GuestDirectory
	Billing   service.BillingCalculator
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(history repository.CheckoutRepository, services *Services, cfg *config.Config, m *metrics.CheckoutMetrics) *JobRunner {
	return &JobRunner{
		history:  history,
		services: services,
		config:   cfg,
		metrics:  m,
		now:      time.Now,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	log := logger.WithService("jobs").With("job", jobName)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Job panicked", "panic", r)
		}
	}()

	log.Info("Starting job")
	jobFunc()
	log.Info("Job completed")
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.NightAudit()
	jr.DailyCheckoutReport()
}
