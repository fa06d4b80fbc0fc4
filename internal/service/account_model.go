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

// AccountType classifies how an account is used.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeCash       AccountType = "cash"
	AccountTypeInvestment AccountType = "investment"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCredit, AccountTypeCash, AccountTypeInvestment:
		return true
	}
	return false
}

// AccountCategory groups accounts for reporting.
type AccountCategory string

const (
	AccountCategoryAsset     AccountCategory = "asset"
	AccountCategoryLiability AccountCategory = "liability"
	AccountCategoryCrypto    AccountCategory = "crypto"
)

func (c AccountCategory) Valid() bool {
	switch c {
	case AccountCategoryAsset, AccountCategoryLiability, AccountCategoryCrypto:
		return true
	}
	return false
}

// Account represents an account in the service layer. Balances is a derived
// projection owned by the ledger; it is filled in on reads and ignored on
// writes.
type Account struct {
	ID                uuid.UUID                  `json:"id"`
	Name              string                     `json:"name"`
	Type              AccountType                `json:"type"`
	Category          AccountCategory            `json:"category"`
	PrimaryCurrency   string                     `json:"primaryCurrency"`
	IncludeInNetWorth bool                       `json:"includeInNetWorth"`
	CreatedAt         time.Time                  `json:"createdAt"`
	Balances          map[string]decimal.Decimal `json:"balances,omitempty"`
}

// accountRecord is the persisted shape. Balances live in their own record
// and are deliberately absent here.
type accountRecord struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Type              AccountType     `json:"type"`
	Category          AccountCategory `json:"category"`
	PrimaryCurrency   string          `json:"primaryCurrency"`
	IncludeInNetWorth bool            `json:"includeInNetWorth"`
	CreatedAt         time.Time       `json:"createdAt"`
}

func encodeAccount(account *Account) (*storage.Record, error) {
	value, err := json.Marshal(accountRecord{
		ID:                account.ID,
		Name:              account.Name,
		Type:              account.Type,
		Category:          account.Category,
		PrimaryCurrency:   account.PrimaryCurrency,
		IncludeInNetWorth: account.IncludeInNetWorth,
		CreatedAt:         account.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode account %s: %w", account.ID, err)
	}
	return &storage.Record{
		EntityType: storage.EntityAccount,
		ID:         account.ID.String(),
		Value:      value,
	}, nil
}

func decodeAccount(record *storage.Record) (*Account, error) {
	var row accountRecord
	if err := json.Unmarshal(record.Value, &row); err != nil {
		return nil, fmt.Errorf("decode account %s: %w", record.ID, err)
	}
	return &Account{
		ID:                row.ID,
		Name:              row.Name,
		Type:              row.Type,
		Category:          row.Category,
		PrimaryCurrency:   row.PrimaryCurrency,
		IncludeInNetWorth: row.IncludeInNetWorth,
		CreatedAt:         row.CreatedAt,
	}, nil
}

// accountExists resolves an account id to a NotFoundError when the account
// record is gone.
func accountExists(ctx context.Context, store *storage.Storage, accountID uuid.UUID) error {
	_, err := store.Records.Get(ctx, storage.EntityAccount, accountID.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &NotFoundError{Entity: "account", ID: accountID.String()}
		}
		return err
	}
	return nil
}

// listAccounts loads every account record, sorted by name then id.
func listAccounts(ctx context.Context, store *storage.Storage) ([]Account, error) {
	records, err := store.Records.List(ctx, storage.EntityAccount)
	if err != nil {
		return nil, err
	}

	accounts := make([]Account, 0, len(records))
	for _, record := range records {
		account, err := decodeAccount(record)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Name != accounts[j].Name {
			return accounts[i].Name < accounts[j].Name
		}
		return accounts[i].ID.String() < accounts[j].ID.String()
	})
	return accounts, nil
}
