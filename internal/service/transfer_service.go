package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/DevLabStudio/goldquest-ledger/internal/currency"
	"github.com/DevLabStudio/goldquest-ledger/internal/notify"
	"github.com/DevLabStudio/goldquest-ledger/internal/storage"
)

// TransferCategory is assigned to both legs of a transfer.
const TransferCategory = "Transfer"

// TransferService coordinates two-leg transfers between accounts. Both legs
// share a linked transfer id; when the second leg cannot be written the first
// is compensating-deleted so no singleton leg survives.
type TransferService struct {
	storage      *storage.Storage
	transactions *TransactionService
	locks        *accountLocks
	events       notify.Publisher
	log          *logrus.Logger
}

// NewTransferService creates a new TransferService.
func NewTransferService(store *storage.Storage, transactions *TransactionService, locks *accountLocks, events notify.Publisher, log *logrus.Logger) *TransferService {
	return &TransferService{storage: store, transactions: transactions, locks: locks, events: events, log: log}
}

// Transfer pairs the two legs created for one move of money.
type Transfer struct {
	LinkedTransferID uuid.UUID
	From             *Transaction
	To               *Transaction
}

// TransferRequest describes a transfer to create. Amount is the positive
// quantity leaving the source account; the service derives the signed legs.
type TransferRequest struct {
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        decimal.Decimal
	Currency      string
	Date          time.Time
	Description   string
	Tags          []string
}

// CreateTransfer writes the outgoing and incoming legs of a transfer. A zero
// Date defaults to now.
func (s *TransferService) CreateTransfer(ctx context.Context, req TransferRequest) (*Transfer, error) {
	if err := validateTransferRequest(&req); err != nil {
		return nil, err
	}
	if err := accountExists(ctx, s.storage, req.FromAccountID); err != nil {
		return nil, err
	}
	if err := accountExists(ctx, s.storage, req.ToAccountID); err != nil {
		return nil, err
	}

	linkedID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("assign transfer id: %w", err)
	}
	fromLegID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("assign leg id: %w", err)
	}
	toLegID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("assign leg id: %w", err)
	}

	now := time.Now().UTC()
	date := req.Date
	if date.IsZero() {
		date = now
	}

	from := Transaction{
		ID:               fromLegID,
		AccountID:        req.FromAccountID,
		Amount:           req.Amount.Neg(),
		Currency:         req.Currency,
		Date:             date,
		Description:      req.Description,
		Category:         TransferCategory,
		Tags:             req.Tags,
		LinkedTransferID: &linkedID,
		CreatedAt:        now,
	}
	to := Transaction{
		ID:               toLegID,
		AccountID:        req.ToAccountID,
		Amount:           req.Amount,
		Currency:         req.Currency,
		Date:             date,
		Description:      req.Description,
		Category:         TransferCategory,
		Tags:             req.Tags,
		LinkedTransferID: &linkedID,
		CreatedAt:        now,
	}

	unlock := s.locks.lockPair(req.FromAccountID, req.ToAccountID)
	if err := s.transactions.addLocked(ctx, &from); err != nil {
		unlock()
		return nil, fmt.Errorf("create transfer %s: %w", linkedID, err)
	}
	if err := s.transactions.addLocked(ctx, &to); err != nil {
		rollbackErr := s.transactions.deleteLocked(ctx, &from)
		unlock()
		if rollbackErr != nil {
			s.log.WithError(rollbackErr).WithFields(logrus.Fields{
				"transferID": linkedID,
				"accountID":  req.FromAccountID,
			}).Error("TransferService.CreateTransfer: rollback failed, source account needs recalculation")
			return nil, &TransferIntegrityError{TransferID: linkedID, Cause: errors.Join(err, rollbackErr), RolledBack: false}
		}
		return nil, &TransferIntegrityError{TransferID: linkedID, Cause: err, RolledBack: true}
	}
	unlock()

	s.publish(ctx,
		transactionChange(from.ID, notify.OpCreated),
		transactionChange(to.ID, notify.OpCreated),
		balanceChange(req.FromAccountID),
		balanceChange(req.ToAccountID),
	)
	return &Transfer{LinkedTransferID: linkedID, From: &from, To: &to}, nil
}

// DeleteTransfer removes every leg carrying the linked transfer id and
// reverses their balance effects. Deleting a transfer that no longer exists
// is a no-op, so the operation can be retried.
func (s *TransferService) DeleteTransfer(ctx context.Context, linkedTransferID uuid.UUID) error {
	if linkedTransferID == uuid.Nil {
		return newValidationError("linkedTransferId", "required")
	}

	legs, err := s.findLegs(ctx, linkedTransferID)
	if err != nil {
		return err
	}
	if len(legs) == 0 {
		return nil
	}

	accountIDs := make([]uuid.UUID, 0, len(legs))
	for i := range legs {
		accountIDs = append(accountIDs, legs[i].AccountID)
	}

	unlock := s.locks.lockAll(accountIDs)
	var failed error
	for i := range legs {
		if err := s.transactions.deleteLocked(ctx, &legs[i]); err != nil {
			failed = err
			break
		}
	}
	unlock()
	if failed != nil {
		return fmt.Errorf("delete transfer %s: %w", linkedTransferID, failed)
	}

	changes := make([]notify.Change, 0, len(legs)*2)
	for i := range legs {
		changes = append(changes, transactionChange(legs[i].ID, notify.OpDeleted), balanceChange(legs[i].AccountID))
	}
	s.publish(ctx, changes...)
	return nil
}

// GetTransfer returns the legs stored under one linked transfer id.
func (s *TransferService) GetTransfer(ctx context.Context, linkedTransferID uuid.UUID) (*Transfer, error) {
	if linkedTransferID == uuid.Nil {
		return nil, newValidationError("linkedTransferId", "required")
	}

	legs, err := s.findLegs(ctx, linkedTransferID)
	if err != nil {
		return nil, err
	}
	if len(legs) == 0 {
		return nil, &NotFoundError{Entity: "transfer", ID: linkedTransferID.String()}
	}

	transfer := &Transfer{LinkedTransferID: linkedTransferID}
	for i := range legs {
		if legs[i].Amount.IsNegative() {
			transfer.From = &legs[i]
		} else {
			transfer.To = &legs[i]
		}
	}
	return transfer, nil
}

func (s *TransferService) findLegs(ctx context.Context, linkedTransferID uuid.UUID) ([]Transaction, error) {
	all, err := listTransactions(ctx, s.storage, uuid.Nil)
	if err != nil {
		return nil, err
	}

	var legs []Transaction
	for _, tx := range all {
		if tx.LinkedTransferID != nil && *tx.LinkedTransferID == linkedTransferID {
			legs = append(legs, tx)
		}
	}
	return legs, nil
}

func (s *TransferService) publish(ctx context.Context, changes ...notify.Change) {
	publishChanges(ctx, s.log, s.events, changes...)
}

func validateTransferRequest(req *TransferRequest) error {
	if req.FromAccountID == uuid.Nil {
		return newValidationError("fromAccountId", "required")
	}
	if req.ToAccountID == uuid.Nil {
		return newValidationError("toAccountId", "required")
	}
	if req.FromAccountID == req.ToAccountID {
		return newValidationError("toAccountId", "source and destination must differ")
	}
	if !req.Amount.IsPositive() {
		return newValidationError("amount", "must be positive")
	}
	if !currency.Valid(req.Currency) {
		return newValidationError("currency", fmt.Sprintf("unknown code %q", req.Currency))
	}
	return nil
}
