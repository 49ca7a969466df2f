// Package scheduler drives the lease expiration sweep: once at process
// start and then on a fixed interval. Failures are logged and the next
// tick proceeds; the sweep's idempotence makes retry-next-tick safe.
package scheduler

import (
	"context"
	"log"
	"time"

	"rental-backoffice/internal/lease"
)

// Scheduler periodically invokes the expiration sweep.
type Scheduler struct {
	engine   *lease.Engine
	interval time.Duration
}

func New(engine *lease.Engine, interval time.Duration) *Scheduler {
	return &Scheduler{engine: engine, interval: interval}
}

// Run blocks until ctx is cancelled. It sweeps immediately, then on every
// tick. Callers run it in its own goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("lease expiration scheduler stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	count, err := s.engine.SweepExpiredLeases(ctx, time.Now())
	if err != nil {
		log.Printf("lease expiration sweep failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("lease expiration sweep updated %d leases", count)
	}
}
