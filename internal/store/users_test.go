package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backoffice/internal/common"
	"rental-backoffice/internal/models"
)

func TestUserStore_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	user := &models.User{Name: "Jane", Phone: "0788200001", Password: "hashed", Role: models.RoleOwner}
	require.NoError(t, users.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	found, err := users.FindByPhone(ctx, "0788200001")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	// Absent phone is nil, nil so callers can branch without unwrapping.
	found, err = users.FindByPhone(ctx, "0788999999")
	require.NoError(t, err)
	assert.Nil(t, found)

	byID, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", byID.Name)
}

func TestUserStore_DuplicatePhoneConflicts(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{Name: "A", Phone: "0788200002", Password: "x", Role: models.RoleOwner}))

	err := users.Create(ctx, &models.User{Name: "B", Phone: "0788200002", Password: "x", Role: models.RoleOwner})
	require.Error(t, err)
	assert.True(t, common.IsErrorCode(err, common.ErrConflict))
}

func TestUserStore_HasAdmin(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	has, err := users.HasAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, users.Create(ctx, &models.User{Name: "Root", Phone: "0788200003", Password: "x", Role: models.RoleAdmin}))

	has, err = users.HasAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, has)
}
