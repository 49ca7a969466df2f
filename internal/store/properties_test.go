package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backoffice/internal/common"
	"rental-backoffice/internal/models"
)

func TestPropertyStore_OwnershipScoping(t *testing.T) {
	db := setupTestDB(t)
	properties := NewPropertyStore(db)
	ctx := context.Background()

	owner := seedOwner(t, db, "0788100001")
	other := seedOwner(t, db, "0788100002")
	mine := seedProperty(t, db, owner.ID, "Hill House")

	got, err := properties.GetForOwner(ctx, mine.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hill House", got.Name)

	// Another owner sees not-found, never forbidden.
	_, err = properties.GetForOwner(ctx, mine.ID, other.ID)
	require.Error(t, err)
	assert.True(t, common.IsErrorCode(err, common.ErrNotFound))

	name := "Renamed"
	_, err = properties.Update(ctx, mine.ID, other.ID, PropertyPatch{Name: &name})
	require.Error(t, err)
	assert.True(t, common.IsErrorCode(err, common.ErrNotFound))

	err = properties.Delete(ctx, mine.ID, other.ID)
	require.Error(t, err)
	assert.True(t, common.IsErrorCode(err, common.ErrNotFound))
}

func TestPropertyStore_UpdatePatchesOnlyProvidedFields(t *testing.T) {
	db := setupTestDB(t)
	properties := NewPropertyStore(db)
	ctx := context.Background()

	owner := seedOwner(t, db, "0788100003")
	property := seedProperty(t, db, owner.ID, "Lake Flat")

	rent := decimal.RequireFromString("1250.50")
	updated, err := properties.Update(ctx, property.ID, owner.ID, PropertyPatch{MonthlyRent: &rent})
	require.NoError(t, err)
	require.NotNil(t, updated.MonthlyRent)
	assert.True(t, rent.Equal(*updated.MonthlyRent))
	assert.Equal(t, "Lake Flat", updated.Name)
	assert.Equal(t, "1 Test Street", updated.Address)

	// An empty patch reads back the current row unchanged.
	updated, err = properties.Update(ctx, property.ID, owner.ID, PropertyPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Lake Flat", updated.Name)
}

func TestPropertyStore_Availability(t *testing.T) {
	db := setupTestDB(t)
	properties := NewPropertyStore(db)
	leases := NewLeaseStore(db)
	ctx := context.Background()

	owner := seedOwner(t, db, "0788100004")
	leased := seedProperty(t, db, owner.ID, "Leased Unit")
	vacant := seedProperty(t, db, owner.ID, "Vacant Unit")
	tenant := seedTenant(t, db, leased.ID)

	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, leases.Create(ctx, seedLease(leased.ID, tenant.ID, end, models.LeaseActive, "1000")))
	// A past expired lease on the vacant unit must not mark it unavailable.
	require.NoError(t, leases.Create(ctx, seedLease(vacant.ID, tenant.ID, end.AddDate(-3, 0, 0), models.LeaseExpired, "900")))

	available, err := properties.IsAvailable(ctx, leased.ID)
	require.NoError(t, err)
	assert.False(t, available)

	available, err = properties.IsAvailable(ctx, vacant.ID)
	require.NoError(t, err)
	assert.True(t, available)

	list, err := properties.FindAvailable(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, vacant.ID, list[0].ID)
}

func TestPropertyStore_ListSearchAndSort(t *testing.T) {
	db := setupTestDB(t)
	properties := NewPropertyStore(db)
	ctx := context.Background()

	owner := seedOwner(t, db, "0788100005")
	seedProperty(t, db, owner.ID, "Alpha House")
	seedProperty(t, db, owner.ID, "Beta House")
	other := seedOwner(t, db, "0788100006")
	seedProperty(t, db, other.ID, "Gamma House")

	listed, page, err := properties.List(ctx, PropertyQuery{ListQuery: ListQuery{SortBy: "name", SortOrder: "asc"}}, owner.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Alpha House", listed[0].Name)
	assert.EqualValues(t, 2, page.Total)

	listed, _, err = properties.List(ctx, PropertyQuery{ListQuery: ListQuery{Search: "BETA"}}, owner.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Beta House", listed[0].Name)

	// Unknown sort columns fall back to the default ordering instead of
	// reaching the SQL text.
	_, _, err = properties.List(ctx, PropertyQuery{ListQuery: ListQuery{SortBy: "owner_id; DROP TABLE"}}, owner.ID)
	require.NoError(t, err)
}

func TestPropertyStore_IDsByOwner(t *testing.T) {
	db := setupTestDB(t)
	properties := NewPropertyStore(db)
	ctx := context.Background()

	owner := seedOwner(t, db, "0788100007")
	a := seedProperty(t, db, owner.ID, "One")
	b := seedProperty(t, db, owner.ID, "Two")

	ids, err := properties.IDsByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)

	ids, err = properties.IDsByOwner(ctx, "no-such-owner")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
