package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"CoinCast/internal/collector"

	"github.com/robfig/cron/v3"
)

// Refresher reloads a cached ticker list.
type Refresher interface {
	Refresh(ctx context.Context) ([]string, error)
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Cache     Refresher // nil when no cache is configured
	Ctx       context.Context

	ingestMu sync.Mutex // held while an ingest writes
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, cache Refresher) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(log.Default()))),
		),
		Collector: col,
		Cache:     cache,
		Ctx:       ctx,
	}
}

// RegisterAll registers the daily ingest and, when a cache is present, the cache refresh.
func (s *Scheduler) RegisterAll(dailyCron, cacheCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyIngest); err != nil {
		return fmt.Errorf("register daily ingest: %w", err)
	}
	if s.Cache != nil {
		if _, err := s.Cron.AddFunc(cacheCron, s.refreshCache); err != nil {
			return fmt.Errorf("register cache refresh: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunIngestNow executes the daily ingest immediately (for RUN_ON_START).
func (s *Scheduler) RunIngestNow() {
	s.dailyIngest()
}

func (s *Scheduler) dailyIngest() {
	// RunIngestNow bypasses the cron chain.
	if !s.ingestMu.TryLock() {
		log.Println("[WARN] ingest already running, skipping")
		return
	}
	defer s.ingestMu.Unlock()

	log.Println("[INFO] running daily ingest")
	if err := s.Collector.Collect(s.Ctx); err != nil {
		log.Printf("[ERROR] daily ingest: %v", err)
	}
	// Ingest writes invalidate the cache; warm it again.
	s.refreshCache()
}

func (s *Scheduler) refreshCache() {
	if s.Cache == nil {
		return
	}
	tickers, err := s.Cache.Refresh(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] refresh ticker cache: %v", err)
		return
	}
	log.Printf("[INFO] ticker cache refreshed (%d tickers)", len(tickers))
}
