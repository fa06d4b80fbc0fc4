package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/DevLabStudio/goldquest-ledger/internal/currency"
	"github.com/DevLabStudio/goldquest-ledger/internal/notify"
	"github.com/DevLabStudio/goldquest-ledger/internal/storage"
)

// Service holds all business logic services. They share one storage, one
// account-lock registry and one change publisher, so a transfer and a plain
// transaction mutating the same account serialize against each other.
type Service struct {
	Accounts     *AccountService
	Transactions *TransactionService
	Ledger       *LedgerService
	Transfers    *TransferService
	Recalc       *RecalcService
}

// NewService creates a new Service. A nil logger falls back to the logrus
// standard logger, nil events disables notifications, and a nil rate source
// limits conversion to same-currency amounts.
func NewService(store *storage.Storage, log *logrus.Logger, events notify.Publisher, rates currency.RateSource) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if events == nil {
		events = notify.Nop{}
	}

	locks := newAccountLocks()
	converter := currency.NewConverter(rates)
	ledger := NewLedgerService(store, locks, events, log)
	transactions := NewTransactionService(store, ledger, locks, events, log)

	return &Service{
		Accounts:     NewAccountService(store, ledger, locks, converter, events, log),
		Transactions: transactions,
		Ledger:       ledger,
		Transfers:    NewTransferService(store, transactions, locks, events, log),
		Recalc:       NewRecalcService(store, ledger, locks, log),
	}
}

// publishChanges delivers change notifications after a mutation commits.
// Delivery failures are logged and never fail the mutation.
func publishChanges(ctx context.Context, log *logrus.Logger, events notify.Publisher, changes ...notify.Change) {
	for _, change := range changes {
		if err := events.Publish(ctx, change); err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"entityType": change.EntityType,
				"id":         change.ID,
				"op":         change.Op,
			}).Warn("change notification failed")
		}
	}
}
