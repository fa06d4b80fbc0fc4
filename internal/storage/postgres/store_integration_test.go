//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/DevLabStudio/goldquest-ledger/internal/storage"
)

const createRecordsTable = `CREATE TABLE IF NOT EXISTS records (
	entity_type TEXT NOT NULL,
	id TEXT NOT NULL,
	value JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (entity_type, id)
)`

// setupStore starts a disposable PostgreSQL container, applies the records
// schema and returns a connected Store. Cleanup runs via t.Cleanup.
func setupStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := NewStore(connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.db.ExecContext(ctx, createRecordsTable)
	require.NoError(t, err)

	return store
}

func TestIntegration_Store_PutGetRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	err := store.Put(ctx, &storage.Record{
		EntityType: storage.EntityAccount,
		ID:         "acc-1",
		Value:      []byte(`{"name":"Checking"}`),
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, storage.EntityAccount, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", got.ID)
	assert.JSONEq(t, `{"name":"Checking"}`, string(got.Value))
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestIntegration_Store_UpsertReplacesValue(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &storage.Record{EntityType: storage.EntityBalance, ID: "b", Value: []byte(`{"USD":"10"}`)}))
	require.NoError(t, store.Put(ctx, &storage.Record{EntityType: storage.EntityBalance, ID: "b", Value: []byte(`{"USD":"35.50"}`)}))

	got, err := store.Get(ctx, storage.EntityBalance, "b")
	require.NoError(t, err)
	assert.JSONEq(t, `{"USD":"35.50"}`, string(got.Value))
}

func TestIntegration_Store_GetMissing(t *testing.T) {
	store := setupStore(t)

	_, err := store.Get(context.Background(), storage.EntityAccount, "ghost")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_Store_DeleteAndMissingDelete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &storage.Record{EntityType: storage.EntityTransaction, ID: "t1", Value: []byte(`{}`)}))
	require.NoError(t, store.Delete(ctx, storage.EntityTransaction, "t1"))

	_, err := store.Get(ctx, storage.EntityTransaction, "t1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = store.Delete(ctx, storage.EntityTransaction, "t1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_Store_ListOrdersByID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &storage.Record{EntityType: storage.EntityTransaction, ID: "b", Value: []byte(`{}`)}))
	require.NoError(t, store.Put(ctx, &storage.Record{EntityType: storage.EntityTransaction, ID: "a", Value: []byte(`{}`)}))
	require.NoError(t, store.Put(ctx, &storage.Record{EntityType: storage.EntityAccount, ID: "zz", Value: []byte(`{}`)}))

	records, err := store.List(ctx, storage.EntityTransaction)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
}
