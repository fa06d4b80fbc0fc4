package service

import (
	"context"
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/DevLabStudio/goldquest-ledger/internal/storage"
)

// RecalcService rebuilds ledger balances from transaction history. A rebuild
// never reads the prior projection, so running it twice in a row yields the
// same stored state.
type RecalcService struct {
	storage *storage.Storage
	ledger  *LedgerService
	locks   *accountLocks
	log     *logrus.Logger
}

// NewRecalcService creates a new RecalcService.
func NewRecalcService(store *storage.Storage, ledger *LedgerService, locks *accountLocks, log *logrus.Logger) *RecalcService {
	return &RecalcService{storage: store, ledger: ledger, locks: locks, log: log}
}

// Report summarizes one recalculation run.
type Report struct {
	StartedAt         time.Time
	FinishedAt        time.Time
	AccountsProcessed int
	AccountsRemaining int
	Orphaned          []OrphanedTransaction
	Errors            []error
}

// OrphanedTransaction identifies a transaction whose account no longer
// exists.
type OrphanedTransaction struct {
	TransactionID uuid.UUID
	AccountID     uuid.UUID
}

// RecalculateAccount rebuilds one account's balance set from its surviving
// transactions.
func (s *RecalcService) RecalculateAccount(ctx context.Context, accountID uuid.UUID) error {
	if err := accountExists(ctx, s.storage, accountID); err != nil {
		return err
	}

	unlock := s.locks.lock(accountID)
	err := s.recalculateLocked(ctx, accountID)
	unlock()
	if err != nil {
		return err
	}

	s.ledger.publish(ctx, balanceChange(accountID))
	return nil
}

// RecalculateAll rebuilds every account and sweeps the history for
// transactions pointing at accounts that no longer exist. Per-account
// failures and consistency findings are collected in the report; only
// context cancellation and a failed account listing abort the run.
func (s *RecalcService) RecalculateAll(ctx context.Context) (*Report, error) {
	report := &Report{StartedAt: time.Now().UTC()}

	accounts, err := listAccounts(ctx, s.storage)
	if err != nil {
		report.FinishedAt = time.Now().UTC()
		return report, fmt.Errorf("list accounts: %w", err)
	}

	known := make(map[uuid.UUID]bool, len(accounts))
	for i, account := range accounts {
		if err := ctx.Err(); err != nil {
			report.AccountsRemaining = len(accounts) - i
			report.FinishedAt = time.Now().UTC()
			return report, err
		}
		known[account.ID] = true

		unlock := s.locks.lock(account.ID)
		err := s.recalculateLocked(ctx, account.ID)
		unlock()
		if err != nil {
			report.Errors = append(report.Errors, fmt.Errorf("recalculate account %s: %w", account.ID, err))
			continue
		}
		report.AccountsProcessed++
		s.ledger.publish(ctx, balanceChange(account.ID))
	}

	transactions, err := listTransactions(ctx, s.storage, uuid.Nil)
	if err != nil {
		report.FinishedAt = time.Now().UTC()
		return report, fmt.Errorf("list transactions: %w", err)
	}
	for _, tx := range transactions {
		if known[tx.AccountID] {
			continue
		}
		report.Orphaned = append(report.Orphaned, OrphanedTransaction{TransactionID: tx.ID, AccountID: tx.AccountID})
		report.Errors = append(report.Errors, &ConsistencyError{
			AccountID:     tx.AccountID,
			TransactionID: tx.ID,
			Reason:        "account no longer exists",
		})
	}

	report.FinishedAt = time.Now().UTC()
	s.log.WithFields(logrus.Fields{
		"accountsProcessed": report.AccountsProcessed,
		"orphaned":          len(report.Orphaned),
		"errors":            len(report.Errors),
	}).Info("RecalcService.RecalculateAll.Complete")
	s.log.Debug(spew.Sdump(report))
	return report, nil
}

// DetectDrift reports whether a rebuild of the account would change any
// balance value. Entries absent on either side count as zero.
func (s *RecalcService) DetectDrift(ctx context.Context, accountID uuid.UUID) (bool, error) {
	if err := accountExists(ctx, s.storage, accountID); err != nil {
		return false, err
	}

	unlock := s.locks.lock(accountID)
	defer unlock()

	stored, err := s.ledger.readBalances(ctx, accountID)
	if err != nil {
		return false, err
	}
	rebuilt, err := s.foldHistory(ctx, accountID)
	if err != nil {
		return false, err
	}

	for cur, amount := range stored {
		if !amount.Equal(rebuilt[cur]) {
			return true, nil
		}
	}
	for cur, amount := range rebuilt {
		if !amount.Equal(stored[cur]) {
			return true, nil
		}
	}
	return false, nil
}

// recalculateLocked folds the account's full history into a fresh balance
// set and overwrites the stored projection. The caller holds the account
// lock.
func (s *RecalcService) recalculateLocked(ctx context.Context, accountID uuid.UUID) error {
	balances, err := s.foldHistory(ctx, accountID)
	if err != nil {
		return err
	}
	return s.ledger.replaceBalancesLocked(ctx, accountID, balances)
}

func (s *RecalcService) foldHistory(ctx context.Context, accountID uuid.UUID) (map[string]decimal.Decimal, error) {
	history, err := listTransactions(ctx, s.storage, accountID)
	if err != nil {
		return nil, err
	}

	balances := make(map[string]decimal.Decimal)
	for _, tx := range history {
		balances[tx.Currency] = balances[tx.Currency].Add(tx.Amount)
	}
	return balances, nil
}
