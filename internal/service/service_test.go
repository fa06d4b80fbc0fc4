package service

import (
	"context"
	"io"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/DevLabStudio/goldquest-ledger/internal/currency"
	"github.com/DevLabStudio/goldquest-ledger/internal/storage"
	"github.com/DevLabStudio/goldquest-ledger/internal/storage/memory"
)

// newTestService wires the full service stack onto an in-memory store, the
// same shape main assembles, so tests exercise real persistence and locking.
func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return newTestServiceWithStore(t, store, nil), store
}

func newTestServiceWithStore(t *testing.T, records storage.IRecordStore, rates currency.RateSource) *Service {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewService(&storage.Storage{Records: records}, logger, nil, rates)
}

func createTestAccount(t *testing.T, svc *Service, name string) *Account {
	t.Helper()
	account, err := svc.Accounts.CreateAccount(context.Background(), Account{
		Name:              name,
		Type:              AccountTypeChecking,
		Category:          AccountCategoryAsset,
		PrimaryCurrency:   "EUR",
		IncludeInNetWorth: true,
	})
	if err != nil {
		t.Fatalf("create account %q: %v", name, err)
	}
	return account
}

func addTestTransaction(t *testing.T, svc *Service, accountID uuid.UUID, amount, cur string) *Transaction {
	t.Helper()
	tx, err := svc.Transactions.AddTransaction(context.Background(), Transaction{
		AccountID: accountID,
		Amount:    decimal.RequireFromString(amount),
		Currency:  cur,
		Category:  "Groceries",
	})
	if err != nil {
		t.Fatalf("add transaction of %s %s: %v", amount, cur, err)
	}
	return tx
}
