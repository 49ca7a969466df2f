// Package lease implements the lease lifecycle: the one-active-lease-per-
// property conflict guard, the date-driven expiration sweep and the
// expiring-soon lookahead. Handlers and the scheduler both drive it; it
// holds no state beyond its store handle.
package lease

import (
	"context"
	"log"
	"time"

	"rental-backoffice/internal/models"
	"rental-backoffice/internal/store"
)

const defaultExpiringSoonDays = 30

// Engine enforces lease lifecycle rules over the lease store.
type Engine struct {
	leases *store.LeaseStore
}

func NewEngine(leases *store.LeaseStore) *Engine {
	return &Engine{leases: leases}
}

// ValidateNewActiveLease reports whether activating a lease on the given
// property would conflict with an existing active lease. excludeLeaseID,
// when non-empty, names a lease being updated so it does not count against
// itself. Pure predicate: callers decide how to reject.
func (e *Engine) ValidateNewActiveLease(ctx context.Context, propertyID, excludeLeaseID string) (bool, error) {
	existing, err := e.leases.FindActiveByProperty(ctx, propertyID, excludeLeaseID)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

// SweepExpiredLeases transitions every active lease whose end date has
// passed to expired and returns how many changed. A lease ending today is
// still rentable today; it expires the day after. Running the sweep twice
// in a row is a no-op the second time.
func (e *Engine) SweepExpiredLeases(ctx context.Context, now time.Time) (int, error) {
	active, err := e.leases.FindActive(ctx)
	if err != nil {
		return 0, err
	}

	today := startOfDay(now)
	var dueIDs []string
	for _, l := range active {
		if startOfDay(l.EndDate).Before(today) {
			dueIDs = append(dueIDs, l.ID)
		}
	}

	if len(dueIDs) == 0 {
		return 0, nil
	}

	if err := e.leases.UpdateStatusByIDs(ctx, dueIDs, models.LeaseExpired); err != nil {
		return 0, err
	}

	log.Printf("expired %d leases past their end date", len(dueIDs))
	return len(dueIDs), nil
}

// FindExpiringSoon returns active leases whose end date falls within
// [now, now+days] inclusive, soonest first. days <= 0 means the default
// 30-day horizon.
func (e *Engine) FindExpiringSoon(ctx context.Context, days int, now time.Time) ([]models.Lease, error) {
	if days <= 0 {
		days = defaultExpiringSoonDays
	}
	from := startOfDay(now)
	to := endOfDay(now.AddDate(0, 0, days))
	return e.leases.ActiveEndingBetween(ctx, from, to)
}

// startOfDay truncates to day granularity; lease dates ignore time of day.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
