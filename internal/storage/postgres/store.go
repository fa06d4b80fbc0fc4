package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/DevLabStudio/goldquest-ledger/internal/storage"
)

// Store is a PostgreSQL-backed record store. Each record is one row in the
// records table, keyed by (entity_type, id).
type Store struct {
	db *sql.DB
}

var _ storage.IRecordStore = (*Store)(nil)

func NewStore(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an existing connection, for tests that manage their
// own database lifecycle.
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, entityType, id string) (*storage.Record, error) {
	const query = `SELECT value, updated_at FROM records WHERE entity_type = $1 AND id = $2`

	record := storage.Record{EntityType: entityType, ID: id}
	err := s.db.QueryRowContext(ctx, query, entityType, id).Scan(&record.Value, &record.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Store) Put(ctx context.Context, record *storage.Record) error {
	const query = `INSERT INTO records (entity_type, id, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (entity_type, id) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	_, err := s.db.ExecContext(ctx, query, record.EntityType, record.ID, record.Value)
	return err
}

func (s *Store) Delete(ctx context.Context, entityType, id string) error {
	const query = `DELETE FROM records WHERE entity_type = $1 AND id = $2`

	result, err := s.db.ExecContext(ctx, query, entityType, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) List(ctx context.Context, entityType string) ([]*storage.Record, error) {
	const query = `SELECT id, value, updated_at FROM records WHERE entity_type = $1 ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, entityType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*storage.Record
	for rows.Next() {
		record := storage.Record{EntityType: entityType}
		if err := rows.Scan(&record.ID, &record.Value, &record.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
