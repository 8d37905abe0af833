// Package scheduler provides cron-based expiry of stale pending offers.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/credmatch/backend/internal/repository"
)

// Config holds the scheduler configuration
type Config struct {
	// Schedule is a cron expression for when to run the expiry job (e.g., "0 * * * *" for hourly)
	Schedule string
	// OfferTTL is how long a pending offer stays valid before it expires
	OfferTTL time.Duration
	// Timeout is the maximum duration for one expiry run
	Timeout time.Duration
	// Enabled determines if the scheduler should run
	Enabled bool
}

// DefaultConfig returns the default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Schedule: "0 * * * *", // Every hour at minute 0
		OfferTTL: 48 * time.Hour,
		Timeout:  time.Minute,
		Enabled:  true,
	}
}

// Scheduler runs the periodic offer expiry job.
type Scheduler struct {
	cron    *cron.Cron
	offers  repository.CreditOfferRepositoryInterface
	config  Config
	logger  *slog.Logger
	entryID cron.EntryID
}

// New creates a new Scheduler instance
func New(cfg Config, offers repository.CreditOfferRepositoryInterface, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		offers: offers,
		config: cfg,
		logger: logger,
	}
}

// Start begins the scheduler
func (s *Scheduler) Start() error {
	if !s.config.Enabled {
		s.logger.Info("Scheduler is disabled, skipping start")
		return nil
	}

	// Convert standard cron (5 fields) to cron with seconds (6 fields)
	// Add "0" at the beginning for seconds
	schedule := "0 " + s.config.Schedule

	entryID, err := s.cron.AddFunc(schedule, func() {
		s.runExpiryJob()
	})
	if err != nil {
		return err
	}

	s.entryID = entryID
	s.cron.Start()

	s.logger.Info("Scheduler started",
		slog.String("schedule", s.config.Schedule),
		slog.Duration("offer_ttl", s.config.OfferTTL),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("Stopping scheduler...")
	return s.cron.Stop()
}

// RunNow triggers an immediate expiry run (useful for manual triggers)
func (s *Scheduler) RunNow() {
	go s.runExpiryJob()
}

// runExpiryJob marks pending offers older than the TTL as expired.
func (s *Scheduler) runExpiryJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	startTime := time.Now()
	cutoff := startTime.Add(-s.config.OfferTTL)

	expired, err := s.offers.ExpireStale(ctx, cutoff)
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error("Offer expiry job failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", duration),
		)
		return
	}

	s.logger.Info("Offer expiry job completed",
		slog.Int64("offers_expired", expired),
		slog.Time("cutoff", cutoff),
		slog.Duration("duration", duration),
	)
}

// GetNextRunTime returns the next scheduled run time
func (s *Scheduler) GetNextRunTime() time.Time {
	if s.entryID == 0 {
		return time.Time{}
	}
	entry := s.cron.Entry(s.entryID)
	return entry.Next
}

// GetLastRunTime returns the last run time
func (s *Scheduler) GetLastRunTime() time.Time {
	if s.entryID == 0 {
		return time.Time{}
	}
	entry := s.cron.Entry(s.entryID)
	return entry.Prev
}

// IsRunning returns true if the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
