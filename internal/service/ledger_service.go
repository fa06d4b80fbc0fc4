package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/DevLabStudio/goldquest-ledger/internal/notify"
	"github.com/DevLabStudio/goldquest-ledger/internal/storage"
)

// LedgerService owns the per-account, per-currency balance projection. Every
// stored balance equals the sum of the account's surviving transaction
// amounts in that currency; reads treat a missing entry as zero.
type LedgerService struct {
	storage *storage.Storage
	locks   *accountLocks
	events  notify.Publisher
	log     *logrus.Logger
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(store *storage.Storage, locks *accountLocks, events notify.Publisher, log *logrus.Logger) *LedgerService {
	return &LedgerService{storage: store, locks: locks, events: events, log: log}
}

// GetBalance returns the account's balance in one currency. Accounts and
// currencies with no ledger entry report zero.
func (s *LedgerService) GetBalance(ctx context.Context, accountID uuid.UUID, currency string) (decimal.Decimal, error) {
	balances, err := s.readBalances(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return balances[currency], nil
}

// AccountBalances returns every balance entry held for the account.
func (s *LedgerService) AccountBalances(ctx context.Context, accountID uuid.UUID) (map[string]decimal.Decimal, error) {
	return s.readBalances(ctx, accountID)
}

// ApplyDelta adds a signed amount to one balance entry, creating the entry
// when the currency is new to the account. Entries that reach zero are kept.
func (s *LedgerService) ApplyDelta(ctx context.Context, accountID uuid.UUID, currency string, delta decimal.Decimal) error {
	unlock := s.locks.lock(accountID)
	err := s.applyDeltaLocked(ctx, accountID, currency, delta)
	unlock()
	if err != nil {
		return err
	}

	s.publish(ctx, balanceChange(accountID))
	return nil
}

// ReplaceAccountBalances swaps the account's whole balance set in one write.
// An empty map is stored as-is, leaving the account with no entries.
func (s *LedgerService) ReplaceAccountBalances(ctx context.Context, accountID uuid.UUID, balances map[string]decimal.Decimal) error {
	unlock := s.locks.lock(accountID)
	err := s.replaceBalancesLocked(ctx, accountID, balances)
	unlock()
	if err != nil {
		return err
	}

	s.publish(ctx, balanceChange(accountID))
	return nil
}

// applyDeltaLocked assumes the caller holds the account lock and does not
// publish.
func (s *LedgerService) applyDeltaLocked(ctx context.Context, accountID uuid.UUID, currency string, delta decimal.Decimal) error {
	balances, err := s.readBalances(ctx, accountID)
	if err != nil {
		return err
	}
	balances[currency] = balances[currency].Add(delta)
	return s.writeBalances(ctx, accountID, balances)
}

// replaceBalancesLocked assumes the caller holds the account lock and does
// not publish.
func (s *LedgerService) replaceBalancesLocked(ctx context.Context, accountID uuid.UUID, balances map[string]decimal.Decimal) error {
	if balances == nil {
		balances = map[string]decimal.Decimal{}
	}
	return s.writeBalances(ctx, accountID, balances)
}

// deleteBalancesLocked removes the account's balance record entirely, for
// account deletion. Assumes the caller holds the account lock.
func (s *LedgerService) deleteBalancesLocked(ctx context.Context, accountID uuid.UUID) error {
	err := s.storage.Records.Delete(ctx, storage.EntityBalance, accountID.String())
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("delete balances for account %s: %w", accountID, err)
	}
	return nil
}

func (s *LedgerService) readBalances(ctx context.Context, accountID uuid.UUID) (map[string]decimal.Decimal, error) {
	record, err := s.storage.Records.Get(ctx, storage.EntityBalance, accountID.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return map[string]decimal.Decimal{}, nil
		}
		return nil, err
	}

	balances := map[string]decimal.Decimal{}
	if err := json.Unmarshal(record.Value, &balances); err != nil {
		return nil, fmt.Errorf("decode balances for account %s: %w", accountID, err)
	}
	return balances, nil
}

func (s *LedgerService) writeBalances(ctx context.Context, accountID uuid.UUID, balances map[string]decimal.Decimal) error {
	value, err := json.Marshal(balances)
	if err != nil {
		return fmt.Errorf("encode balances for account %s: %w", accountID, err)
	}
	return s.storage.Records.Put(ctx, &storage.Record{
		EntityType: storage.EntityBalance,
		ID:         accountID.String(),
		Value:      value,
	})
}

func (s *LedgerService) publish(ctx context.Context, changes ...notify.Change) {
	publishChanges(ctx, s.log, s.events, changes...)
}

func balanceChange(accountID uuid.UUID) notify.Change {
	return notify.Change{
		EntityType: storage.EntityBalance,
		ID:         accountID.String(),
		Op:         notify.OpUpdated,
		OccurredAt: time.Now().UTC(),
	}
}
