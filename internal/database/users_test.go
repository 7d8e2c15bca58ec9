package database_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vangoframework/invhealth/internal/auth"
	"github.com/vangoframework/invhealth/internal/database"
	"github.com/vangoframework/invhealth/internal/domain"
)

// testDB connects to TEST_DATABASE_URL, skipping when it is not set.
func testDB(t *testing.T) *database.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Migrate(ctx))
	_, err = db.Pool.Exec(ctx, `DELETE FROM users`)
	require.NoError(t, err)

	return db
}

func TestUserStore_UpsertAndFind(t *testing.T) {
	db := testDB(t)
	store := database.NewUserStore(db)
	ctx := context.Background()

	user := &auth.User{
		Username:     "admin",
		FullName:     "Executive User",
		Role:         domain.RoleExecutive,
		PasswordHash: "hash-1",
	}
	require.NoError(t, store.Upsert(ctx, user))
	firstID := user.ID

	got, err := store.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, firstID, got.ID)
	assert.Equal(t, domain.RoleExecutive, got.Role)
	assert.Equal(t, "hash-1", got.PasswordHash)

	// Upsert on an existing username keeps the row identity
	again := &auth.User{Username: "admin", Role: domain.RoleAnalyst, PasswordHash: "hash-2"}
	require.NoError(t, store.Upsert(ctx, again))
	assert.Equal(t, firstID, again.ID)

	got, err = store.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAnalyst, got.Role)
	assert.Equal(t, "hash-2", got.PasswordHash)
}

func TestUserStore_NotFound(t *testing.T) {
	db := testDB(t)
	store := database.NewUserStore(db)

	_, err := store.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestDB_Health(t *testing.T) {
	db := testDB(t)
	assert.NoError(t, db.Health(context.Background()))
}
