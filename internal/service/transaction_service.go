package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/DevLabStudio/goldquest-ledger/internal/currency"
	"github.com/DevLabStudio/goldquest-ledger/internal/notify"
	"github.com/DevLabStudio/goldquest-ledger/internal/storage"
)

// TransactionService handles transaction business logic. Every mutation keeps
// the ledger projection in step by applying the matching balance delta under
// the account lock.
type TransactionService struct {
	storage *storage.Storage
	ledger  *LedgerService
	locks   *accountLocks
	events  notify.Publisher
	log     *logrus.Logger
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, ledger *LedgerService, locks *accountLocks, events notify.Publisher, log *logrus.Logger) *TransactionService {
	return &TransactionService{storage: store, ledger: ledger, locks: locks, events: events, log: log}
}

// AddTransaction validates and persists a new transaction and applies its
// amount to the account's balance. A zero Date defaults to now.
func (s *TransactionService) AddTransaction(ctx context.Context, tx Transaction) (*Transaction, error) {
	if err := validateTransaction(&tx); err != nil {
		return nil, err
	}
	if err := accountExists(ctx, s.storage, tx.AccountID); err != nil {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("assign transaction id: %w", err)
	}
	tx.ID = id
	tx.LinkedTransferID = nil
	now := time.Now().UTC()
	if tx.Date.IsZero() {
		tx.Date = now
	}
	tx.CreatedAt = now

	unlock := s.locks.lock(tx.AccountID)
	err = s.addLocked(ctx, &tx)
	unlock()
	if err != nil {
		return nil, err
	}

	s.publish(ctx, transactionChange(tx.ID, notify.OpCreated), balanceChange(tx.AccountID))
	return &tx, nil
}

// GetTransaction retrieves a transaction by id.
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return getTransaction(ctx, s.storage, id)
}

// ListTransactions returns the account's history ordered by date. uuid.Nil
// lists every transaction.
func (s *TransactionService) ListTransactions(ctx context.Context, accountID uuid.UUID) ([]Transaction, error) {
	return listTransactions(ctx, s.storage, accountID)
}

// UpdateTransaction replaces a transaction's mutable fields. The prior
// amount is reversed on the prior account and the new amount applied where
// it now belongs, so reassigning account or currency stays consistent.
// Transfer legs cannot be updated directly.
func (s *TransactionService) UpdateTransaction(ctx context.Context, tx Transaction) (*Transaction, error) {
	if tx.ID == uuid.Nil {
		return nil, newValidationError("id", "required")
	}
	if err := validateTransaction(&tx); err != nil {
		return nil, err
	}

	prior, err := getTransaction(ctx, s.storage, tx.ID)
	if err != nil {
		return nil, err
	}
	if prior.IsTransferLeg() {
		return nil, newValidationError("linkedTransferId", "transfer legs cannot be updated directly; delete the transfer and create a new one")
	}
	if tx.AccountID != prior.AccountID {
		if err := accountExists(ctx, s.storage, tx.AccountID); err != nil {
			return nil, err
		}
	}

	tx.LinkedTransferID = nil
	tx.CreatedAt = prior.CreatedAt
	if tx.Date.IsZero() {
		tx.Date = prior.Date
	}

	unlock := s.locks.lockPair(prior.AccountID, tx.AccountID)
	err = s.updateLocked(ctx, prior, &tx)
	unlock()
	if err != nil {
		return nil, err
	}

	changes := []notify.Change{transactionChange(tx.ID, notify.OpUpdated), balanceChange(prior.AccountID)}
	if tx.AccountID != prior.AccountID {
		changes = append(changes, balanceChange(tx.AccountID))
	}
	s.publish(ctx, changes...)
	return &tx, nil
}

// DeleteTransaction removes a transaction from an account and reverses its
// balance effect. Transfer legs must go through DeleteTransfer so both legs
// disappear together.
func (s *TransactionService) DeleteTransaction(ctx context.Context, accountID, transactionID uuid.UUID) error {
	prior, err := getTransaction(ctx, s.storage, transactionID)
	if err != nil {
		return err
	}
	if prior.AccountID != accountID {
		return &NotFoundError{Entity: "transaction", ID: transactionID.String()}
	}
	if prior.IsTransferLeg() {
		return newValidationError("linkedTransferId", "transfer legs cannot be deleted directly; use DeleteTransfer")
	}

	unlock := s.locks.lock(accountID)
	err = s.deleteLocked(ctx, prior)
	unlock()
	if err != nil {
		return err
	}

	s.publish(ctx, transactionChange(transactionID, notify.OpDeleted), balanceChange(accountID))
	return nil
}

// addLocked persists the record and applies its delta. When the delta cannot
// be applied the record is removed again so history and ledger stay in step.
// The caller holds the account lock.
func (s *TransactionService) addLocked(ctx context.Context, tx *Transaction) error {
	record, err := encodeTransaction(tx)
	if err != nil {
		return err
	}
	if err := s.storage.Records.Put(ctx, record); err != nil {
		return fmt.Errorf("persist transaction: %w", err)
	}

	if err := s.ledger.applyDeltaLocked(ctx, tx.AccountID, tx.Currency, tx.Amount); err != nil {
		if removeErr := s.storage.Records.Delete(ctx, storage.EntityTransaction, tx.ID.String()); removeErr != nil {
			s.log.WithError(removeErr).WithField("accountID", tx.AccountID).
				Warn("TransactionService.addLocked: rollback failed, account needs recalculation")
			return errors.Join(err, removeErr)
		}
		return err
	}
	return nil
}

// deleteLocked removes the record and reverses its delta. A record that is
// already gone is treated as done. The caller holds the account lock.
func (s *TransactionService) deleteLocked(ctx context.Context, tx *Transaction) error {
	err := s.storage.Records.Delete(ctx, storage.EntityTransaction, tx.ID.String())
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if err := s.ledger.applyDeltaLocked(ctx, tx.AccountID, tx.Currency, tx.Amount.Neg()); err != nil {
		s.log.WithError(err).WithField("accountID", tx.AccountID).
			Warn("TransactionService.deleteLocked: delta failed, account needs recalculation")
		return err
	}
	return nil
}

// updateLocked overwrites the record, reverses the prior delta and applies
// the new one. The caller holds both account locks.
func (s *TransactionService) updateLocked(ctx context.Context, prior, tx *Transaction) error {
	record, err := encodeTransaction(tx)
	if err != nil {
		return err
	}
	if err := s.storage.Records.Put(ctx, record); err != nil {
		return fmt.Errorf("persist transaction: %w", err)
	}

	if err := s.ledger.applyDeltaLocked(ctx, prior.AccountID, prior.Currency, prior.Amount.Neg()); err != nil {
		s.log.WithError(err).WithField("accountID", prior.AccountID).
			Warn("TransactionService.updateLocked: reversal failed, account needs recalculation")
		return err
	}
	if err := s.ledger.applyDeltaLocked(ctx, tx.AccountID, tx.Currency, tx.Amount); err != nil {
		s.log.WithError(err).WithField("accountID", tx.AccountID).
			Warn("TransactionService.updateLocked: delta failed, account needs recalculation")
		return err
	}
	return nil
}

func (s *TransactionService) publish(ctx context.Context, changes ...notify.Change) {
	publishChanges(ctx, s.log, s.events, changes...)
}

func validateTransaction(tx *Transaction) error {
	if tx.AccountID == uuid.Nil {
		return newValidationError("accountId", "required")
	}
	if tx.Amount.IsZero() {
		return newValidationError("amount", "must be non-zero")
	}
	if !currency.Valid(tx.Currency) {
		return newValidationError("currency", fmt.Sprintf("unknown code %q", tx.Currency))
	}
	return nil
}

func transactionChange(id uuid.UUID, op notify.Op) notify.Change {
	return notify.Change{
		EntityType: storage.EntityTransaction,
		ID:         id.String(),
		Op:         op,
		OccurredAt: time.Now().UTC(),
	}
}
