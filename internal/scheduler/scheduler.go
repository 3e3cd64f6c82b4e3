package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/meteireann-weather/internal/observability"
	"github.com/i474232898/meteireann-weather/internal/warnings"
	"github.com/i474232898/meteireann-weather/internal/weather"
)

const fetchTimeout = 30 * time.Second

// Scheduler periodically refreshes forecast and warning documents.
type Scheduler struct {
	scheduler *gocron.Scheduler
	forecasts *weather.Service
	warnings  *warnings.Service
	metrics   *observability.Metrics
	interval  time.Duration
}

// New creates a new Scheduler. Either service may be nil; metrics may be nil.
func New(interval time.Duration, forecasts *weather.Service, warningSvc *warnings.Service, metrics *observability.Metrics) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		forecasts: forecasts,
		warnings:  warningSvc,
		metrics:   metrics,
		interval:  interval,
	}
}

// Start schedules the refresh job, which also runs once immediately.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	_, err := s.scheduler.Every(interval).SingletonMode().Do(func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce fetches every location and region in turn. A failed fetch keeps the
// previously stored document.
func (s *Scheduler) RunOnce(ctx context.Context) {
	log.Println("INFO: scheduler: running refresh job")

	if s.forecasts != nil {
		for _, loc := range s.forecasts.Locations() {
			fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
			if err := s.forecasts.FetchAndStore(fetchCtx, loc); err != nil {
				log.Printf("ERROR: scheduler: forecast fetch failed for %s: %v", loc.Name, err)
			}
			cancel()
		}
	}

	if s.warnings != nil {
		for _, region := range s.warnings.Regions() {
			fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
			if err := s.warnings.FetchAndStore(fetchCtx, region); err != nil {
				log.Printf("ERROR: scheduler: warning fetch failed for %s: %v", region, err)
			}
			cancel()
			s.metrics.SetActiveWarnings(region, s.warnings.Warnings(region).Count)
		}
	}

	log.Println("INFO: scheduler: completed refresh job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
