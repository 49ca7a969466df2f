package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rental-backoffice/internal/lease"
	"rental-backoffice/internal/models"
	"rental-backoffice/internal/store"
)

func TestRunSweepsAtStartup(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))

	owner := &models.User{Name: "Owner", Phone: "0788500001", Password: "x", Role: models.RoleOwner}
	require.NoError(t, db.Create(owner).Error)
	property := &models.Property{Name: "Unit", Address: "1 Test Street", Type: models.PropertyHouse, OwnerID: owner.ID}
	require.NoError(t, db.Create(property).Error)
	tenant := &models.Tenant{Name: "Tenant", Phone: "0788500002", PropertyID: property.ID}
	require.NoError(t, db.Create(tenant).Error)

	overdue := &models.Lease{
		PropertyID:  property.ID,
		TenantID:    tenant.ID,
		StartDate:   time.Now().AddDate(-1, 0, 0),
		EndDate:     time.Now().AddDate(0, 0, -2),
		MonthlyRent: decimal.NewFromInt(1000),
		Status:      models.LeaseActive,
	}
	require.NoError(t, db.Create(overdue).Error)

	engine := lease.NewEngine(store.NewLeaseStore(db))
	s := New(engine, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	// The startup sweep runs before the first tick; poll briefly for it.
	deadline := time.After(2 * time.Second)
	for {
		var reloaded models.Lease
		require.NoError(t, db.First(&reloaded, "id = ?", overdue.ID).Error)
		if reloaded.Status == models.LeaseExpired {
			break
		}
		select {
		case <-deadline:
			t.Fatal("startup sweep did not expire the overdue lease")
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on context cancellation")
	}

	var reloaded models.Lease
	require.NoError(t, db.First(&reloaded, "id = ?", overdue.ID).Error)
	assert.Equal(t, models.LeaseExpired, reloaded.Status)
}
