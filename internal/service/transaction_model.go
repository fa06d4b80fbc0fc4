package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/DevLabStudio/goldquest-ledger/internal/storage"
)

// Transaction represents one signed movement of money in a single account and
// currency. Amount is negative for outflows and positive for inflows.
type Transaction struct {
	ID               uuid.UUID       `json:"id"`
	AccountID        uuid.UUID       `json:"accountId"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Date             time.Time       `json:"date"`
	Description      string          `json:"description"`
	Category         string          `json:"category"`
	Tags             []string        `json:"tags,omitempty"`
	LinkedTransferID *uuid.UUID      `json:"linkedTransferId,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// IsTransferLeg reports whether the transaction is half of a transfer.
func (t *Transaction) IsTransferLeg() bool {
	return t.LinkedTransferID != nil
}

func encodeTransaction(tx *Transaction) (*storage.Record, error) {
	value, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("encode transaction %s: %w", tx.ID, err)
	}
	return &storage.Record{
		EntityType: storage.EntityTransaction,
		ID:         tx.ID.String(),
		Value:      value,
	}, nil
}

func decodeTransaction(record *storage.Record) (*Transaction, error) {
	var tx Transaction
	if err := json.Unmarshal(record.Value, &tx); err != nil {
		return nil, fmt.Errorf("decode transaction %s: %w", record.ID, err)
	}
	return &tx, nil
}

// getTransaction loads one transaction, mapping a storage miss to a
// NotFoundError.
func getTransaction(ctx context.Context, store *storage.Storage, id uuid.UUID) (*Transaction, error) {
	record, err := store.Records.Get(ctx, storage.EntityTransaction, id.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &NotFoundError{Entity: "transaction", ID: id.String()}
		}
		return nil, err
	}
	return decodeTransaction(record)
}

// listTransactions loads transactions ordered by date, creation time, then
// id. uuid.Nil as accountID returns the full history.
func listTransactions(ctx context.Context, store *storage.Storage, accountID uuid.UUID) ([]Transaction, error) {
	records, err := store.Records.List(ctx, storage.EntityTransaction)
	if err != nil {
		return nil, err
	}

	transactions := make([]Transaction, 0, len(records))
	for _, record := range records {
		tx, err := decodeTransaction(record)
		if err != nil {
			return nil, err
		}
		if accountID != uuid.Nil && tx.AccountID != accountID {
			continue
		}
		transactions = append(transactions, *tx)
	}
	sort.Slice(transactions, func(i, j int) bool {
		a, b := transactions[i], transactions[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
	return transactions, nil
}
