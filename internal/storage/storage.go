package storage

import (
	"context"
	"errors"
	"time"
)

// Entity types recognized by the record store.
const (
	EntityAccount     = "account"
	EntityTransaction = "transaction"
	EntityBalance     = "balance"
)

// ErrNotFound is returned when no record exists under the requested key.
var ErrNotFound = errors.New("record not found")

// Record is one durable entity, addressed by (EntityType, ID). Value holds
// the JSON encoding of the entity; the store never inspects it.
type Record struct {
	EntityType string
	ID         string
	Value      []byte
	UpdatedAt  time.Time
}

// IRecordStore is the durable storage contract shared by every driver.
// Implementations give no transactional guarantees across records;
// multi-record consistency is the caller's responsibility. Put stamps
// UpdatedAt, Delete of a missing record returns ErrNotFound, and List
// returns records ordered by ID.
//
//go:generate mockery --name IRecordStore --inpackage
type IRecordStore interface {
	Get(ctx context.Context, entityType, id string) (*Record, error)
	Put(ctx context.Context, record *Record) error
	Delete(ctx context.Context, entityType, id string) error
	List(ctx context.Context, entityType string) ([]*Record, error)
	Close() error
}

// Storage aggregates the stores used by the service layer. The record store
// driver is chosen at startup from configuration.
type Storage struct {
	Records IRecordStore
}
