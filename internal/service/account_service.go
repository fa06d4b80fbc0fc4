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

// AccountService handles account business logic.
type AccountService struct {
	storage   *storage.Storage
	ledger    *LedgerService
	locks     *accountLocks
	converter *currency.Converter
	events    notify.Publisher
	log       *logrus.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage, ledger *LedgerService, locks *accountLocks, converter *currency.Converter, events notify.Publisher, log *logrus.Logger) *AccountService {
	return &AccountService{storage: store, ledger: ledger, locks: locks, converter: converter, events: events, log: log}
}

// CreateAccount validates and persists a new account. The account starts
// with no balance entries.
func (s *AccountService) CreateAccount(ctx context.Context, account Account) (*Account, error) {
	if err := validateAccount(&account); err != nil {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("assign account id: %w", err)
	}
	account.ID = id
	account.CreatedAt = time.Now().UTC()
	account.Balances = nil

	record, err := encodeAccount(&account)
	if err != nil {
		return nil, err
	}
	if err := s.storage.Records.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("persist account: %w", err)
	}

	s.publish(ctx, accountChange(account.ID, notify.OpCreated))
	return &account, nil
}

// GetAccount retrieves an account by id with its balance entries attached.
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	record, err := s.storage.Records.Get(ctx, storage.EntityAccount, id.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &NotFoundError{Entity: "account", ID: id.String()}
		}
		return nil, err
	}

	account, err := decodeAccount(record)
	if err != nil {
		return nil, err
	}
	balances, err := s.ledger.AccountBalances(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(balances) > 0 {
		account.Balances = balances
	}
	return account, nil
}

// ListAccounts returns every account ordered by name. Balance entries are
// not attached; use GetAccount or the ledger for those.
func (s *AccountService) ListAccounts(ctx context.Context) ([]Account, error) {
	return listAccounts(ctx, s.storage)
}

// UpdateAccount replaces an account's descriptive fields. Balances and
// creation time are preserved.
func (s *AccountService) UpdateAccount(ctx context.Context, account Account) (*Account, error) {
	if account.ID == uuid.Nil {
		return nil, newValidationError("id", "required")
	}
	if err := validateAccount(&account); err != nil {
		return nil, err
	}

	record, err := s.storage.Records.Get(ctx, storage.EntityAccount, account.ID.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &NotFoundError{Entity: "account", ID: account.ID.String()}
		}
		return nil, err
	}
	prior, err := decodeAccount(record)
	if err != nil {
		return nil, err
	}

	account.CreatedAt = prior.CreatedAt
	account.Balances = nil

	updated, err := encodeAccount(&account)
	if err != nil {
		return nil, err
	}
	if err := s.storage.Records.Put(ctx, updated); err != nil {
		return nil, fmt.Errorf("persist account: %w", err)
	}

	s.publish(ctx, accountChange(account.ID, notify.OpUpdated))
	return &account, nil
}

// DeleteAccount removes the account and its balance record. Transactions
// referencing the account are left in place; recalculation reports them as
// orphaned.
func (s *AccountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := accountExists(ctx, s.storage, id); err != nil {
		return err
	}

	unlock := s.locks.lock(id)
	err := s.deleteLocked(ctx, id)
	unlock()
	if err != nil {
		return err
	}

	s.publish(ctx, accountChange(id, notify.OpDeleted))
	return nil
}

// NetWorth sums the balances of all accounts flagged for inclusion,
// converted into the target currency. Liability balances are negative by
// construction, so the sum nets them out.
func (s *AccountService) NetWorth(ctx context.Context, target string) (decimal.Decimal, error) {
	if !currency.Valid(target) {
		return decimal.Zero, newValidationError("currency", fmt.Sprintf("unknown code %q", target))
	}

	accounts, err := listAccounts(ctx, s.storage)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, account := range accounts {
		if !account.IncludeInNetWorth {
			continue
		}
		balances, err := s.ledger.AccountBalances(ctx, account.ID)
		if err != nil {
			return decimal.Zero, err
		}
		for cur, amount := range balances {
			converted, err := s.converter.Convert(amount, cur, target)
			if err != nil {
				return decimal.Zero, fmt.Errorf("net worth for account %s: %w", account.ID, err)
			}
			total = total.Add(converted)
		}
	}
	return total, nil
}

func (s *AccountService) deleteLocked(ctx context.Context, id uuid.UUID) error {
	if err := s.storage.Records.Delete(ctx, storage.EntityAccount, id.String()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &NotFoundError{Entity: "account", ID: id.String()}
		}
		return fmt.Errorf("delete account: %w", err)
	}
	return s.ledger.deleteBalancesLocked(ctx, id)
}

func (s *AccountService) publish(ctx context.Context, changes ...notify.Change) {
	publishChanges(ctx, s.log, s.events, changes...)
}

func validateAccount(account *Account) error {
	if account.Name == "" {
		return newValidationError("name", "required")
	}
	if !account.Type.Valid() {
		return newValidationError("type", fmt.Sprintf("unknown account type %q", account.Type))
	}
	if !account.Category.Valid() {
		return newValidationError("category", fmt.Sprintf("unknown account category %q", account.Category))
	}
	if !currency.Valid(account.PrimaryCurrency) {
		return newValidationError("primaryCurrency", fmt.Sprintf("unknown code %q", account.PrimaryCurrency))
	}
	return nil
}

func accountChange(id uuid.UUID, op notify.Op) notify.Change {
	return notify.Change{
		EntityType: storage.EntityAccount,
		ID:         id.String(),
		Op:         op,
		OccurredAt: time.Now().UTC(),
	}
}
