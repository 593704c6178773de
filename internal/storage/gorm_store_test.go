package storage_test

import (
	"fmt"
	"testing"

	"ngcommerce/internal/storage"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupGORMStore opens an isolated in-memory SQLite database. The DSN is
// namespaced by test name so parallel packages never share state.
func setupGORMStore(t *testing.T) *storage.GORMStore {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&storage.Record{}))

	return storage.NewGORMStore(db)
}

func TestGORMStore_SetGetRoundTrip(t *testing.T) {
	store := setupGORMStore(t)

	assert.NoError(t, store.Set("cart", `[{"id":"3","quantity":2}]`))

	value, err := store.Get("cart")
	assert.NoError(t, err)
	assert.Equal(t, `[{"id":"3","quantity":2}]`, value)
}

func TestGORMStore_SetOverwrites(t *testing.T) {
	store := setupGORMStore(t)

	assert.NoError(t, store.Set("token", "old"))
	assert.NoError(t, store.Set("token", "new"))

	value, err := store.Get("token")
	assert.NoError(t, err)
	assert.Equal(t, "new", value)
}

func TestGORMStore_GetMissingKey(t *testing.T) {
	store := setupGORMStore(t)

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGORMStore_Remove(t *testing.T) {
	store := setupGORMStore(t)

	assert.NoError(t, store.Set("user", `{"id":"user-1"}`))
	assert.NoError(t, store.Remove("user"))

	_, err := store.Get("user")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Removing an absent key is not an error.
	assert.NoError(t, store.Remove("user"))
}
