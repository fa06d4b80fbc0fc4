package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/DevLabStudio/goldquest-ledger/internal/storage"
	"github.com/DevLabStudio/goldquest-ledger/internal/storage/memory"
)

// -- AddTransaction tests --

func TestAddTransaction_Success(t *testing.T) {
	svc, _ := newTestService(t)

	account := createTestAccount(t, svc, "Checking")
	amount := decimal.RequireFromString("42.50")
	txDate := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tx, err := svc.Transactions.AddTransaction(context.Background(), Transaction{
		AccountID:   account.ID,
		Amount:      amount,
		Currency:    "EUR",
		Date:        txDate,
		Description: "Groceries",
		Category:    "Food",
		Tags:        []string{"weekly"},
	})

	assert.NoError(t, err)
	assert.NotNil(t, tx)
	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.Equal(t, txDate, tx.Date)
	assert.False(t, tx.CreatedAt.IsZero())

	balance, err := svc.Ledger.GetBalance(context.Background(), account.ID, "EUR")
	assert.NoError(t, err)
	assert.True(t, balance.Equal(amount))
}

func TestAddTransaction_DefaultsDateToNow(t *testing.T) {
	svc, _ := newTestService(t)

	account := createTestAccount(t, svc, "Checking")

	tx, err := svc.Transactions.AddTransaction(context.Background(), Transaction{
		AccountID: account.ID,
		Amount:    decimal.RequireFromString("5.00"),
		Currency:  "EUR",
	})

	assert.NoError(t, err)
	assert.False(t, tx.Date.IsZero())
	assert.Equal(t, tx.CreatedAt, tx.Date)
}

func TestAddTransaction_StripsLinkedTransferID(t *testing.T) {
	svc, _ := newTestService(t)

	account := createTestAccount(t, svc, "Checking")
	linked := uuid.Must(uuid.NewV4())

	tx, err := svc.Transactions.AddTransaction(context.Background(), Transaction{
		AccountID:        account.ID,
		Amount:           decimal.RequireFromString("5.00"),
		Currency:         "EUR",
		LinkedTransferID: &linked,
	})

	assert.NoError(t, err)
	assert.Nil(t, tx.LinkedTransferID, "legs are only minted by the transfer service")
}

func TestAddTransaction_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	account := createTestAccount(t, svc, "Checking")

	cases := []struct {
		name  string
		tx    Transaction
		field string
	}{
		{
			name:  "missing account",
			tx:    Transaction{Amount: decimal.RequireFromString("1.00"), Currency: "EUR"},
			field: "accountId",
		},
		{
			name:  "zero amount",
			tx:    Transaction{AccountID: account.ID, Currency: "EUR"},
			field: "amount",
		},
		{
			name:  "unknown currency",
			tx:    Transaction{AccountID: account.ID, Amount: decimal.RequireFromString("1.00"), Currency: "ZZZ"},
			field: "currency",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Transactions.AddTransaction(context.Background(), tc.tx)

			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestAddTransaction_UnknownAccount(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Transactions.AddTransaction(context.Background(), Transaction{
		AccountID: uuid.Must(uuid.NewV4()),
		Amount:    decimal.RequireFromString("5.00"),
		Currency:  "EUR",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddTransaction_RollsBackRecordWhenDeltaFails(t *testing.T) {
	mem := memory.NewStore()
	records := storage.NewMockIRecordStore(t)
	records.EXPECT().Get(mock.Anything, mock.Anything, mock.Anything).RunAndReturn(mem.Get).Maybe()
	records.EXPECT().List(mock.Anything, mock.Anything).RunAndReturn(mem.List).Maybe()
	records.EXPECT().Delete(mock.Anything, mock.Anything, mock.Anything).RunAndReturn(mem.Delete).Maybe()
	records.EXPECT().Put(mock.Anything, mock.Anything).RunAndReturn(func(ctx context.Context, record *storage.Record) error {
		if record.EntityType == storage.EntityBalance {
			return errors.New("disk full")
		}
		return mem.Put(ctx, record)
	}).Maybe()
	svc := newTestServiceWithStore(t, records, nil)

	account := createTestAccount(t, svc, "Checking")

	_, err := svc.Transactions.AddTransaction(context.Background(), Transaction{
		AccountID: account.ID,
		Amount:    decimal.RequireFromString("5.00"),
		Currency:  "EUR",
	})
	assert.Error(t, err)

	history, listErr := svc.Transactions.ListTransactions(context.Background(), account.ID)
	assert.NoError(t, listErr)
	assert.Empty(t, history, "failed delta removes the persisted record again")
}

// -- GetTransaction tests --

func TestGetTransaction_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	tx, err := svc.Transactions.GetTransaction(context.Background(), uuid.Must(uuid.NewV4()))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, tx)
}

// -- ListTransactions tests --

func TestListTransactions_ScopedToAccountAndSorted(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	checking := createTestAccount(t, svc, "Checking")
	savings := createTestAccount(t, svc, "Savings")

	later := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	second, err := svc.Transactions.AddTransaction(ctx, Transaction{
		AccountID: checking.ID, Amount: decimal.RequireFromString("2.00"), Currency: "EUR", Date: later,
	})
	assert.NoError(t, err)
	first, err := svc.Transactions.AddTransaction(ctx, Transaction{
		AccountID: checking.ID, Amount: decimal.RequireFromString("1.00"), Currency: "EUR", Date: earlier,
	})
	assert.NoError(t, err)
	addTestTransaction(t, svc, savings.ID, "99.00", "EUR")

	history, err := svc.Transactions.ListTransactions(ctx, checking.ID)

	assert.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, first.ID, history[0].ID, "date order, not insertion order")
	assert.Equal(t, second.ID, history[1].ID)
}

func TestListTransactions_NilAccountReturnsAll(t *testing.T) {
	svc, _ := newTestService(t)

	checking := createTestAccount(t, svc, "Checking")
	savings := createTestAccount(t, svc, "Savings")
	addTestTransaction(t, svc, checking.ID, "1.00", "EUR")
	addTestTransaction(t, svc, savings.ID, "2.00", "EUR")

	history, err := svc.Transactions.ListTransactions(context.Background(), uuid.Nil)

	assert.NoError(t, err)
	assert.Len(t, history, 2)
}

// -- UpdateTransaction tests --

func TestUpdateTransaction_RewritesBalance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	account := createTestAccount(t, svc, "Checking")
	tx := addTestTransaction(t, svc, account.ID, "40.00", "EUR")

	updated, err := svc.Transactions.UpdateTransaction(ctx, Transaction{
		ID:        tx.ID,
		AccountID: account.ID,
		Amount:    decimal.RequireFromString("15.00"),
		Currency:  "EUR",
	})

	assert.NoError(t, err)
	assert.Equal(t, tx.CreatedAt, updated.CreatedAt, "creation time survives updates")
	assert.Equal(t, tx.Date, updated.Date, "zero date falls back to the prior date")

	balance, err := svc.Ledger.GetBalance(ctx, account.ID, "EUR")
	assert.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("15.00")))
}

func TestUpdateTransaction_MovesAcrossAccountsAndCurrencies(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	checking := createTestAccount(t, svc, "Checking")
	savings := createTestAccount(t, svc, "Savings")
	tx := addTestTransaction(t, svc, checking.ID, "40.00", "EUR")

	_, err := svc.Transactions.UpdateTransaction(ctx, Transaction{
		ID:        tx.ID,
		AccountID: savings.ID,
		Amount:    decimal.RequireFromString("25.00"),
		Currency:  "USD",
	})
	assert.NoError(t, err)

	priorBalance, err := svc.Ledger.GetBalance(ctx, checking.ID, "EUR")
	assert.NoError(t, err)
	assert.True(t, priorBalance.IsZero(), "prior account gives the amount back")

	newBalance, err := svc.Ledger.GetBalance(ctx, savings.ID, "USD")
	assert.NoError(t, err)
	assert.True(t, newBalance.Equal(decimal.RequireFromString("25.00")))

	history, err := svc.Transactions.ListTransactions(ctx, checking.ID)
	assert.NoError(t, err)
	assert.Empty(t, history, "record moved to the new account")
}

func TestUpdateTransaction_RejectsTransferLeg(t *testing.T) {
	svc, _ := newTestService(t)

	checking := createTestAccount(t, svc, "Checking")
	savings := createTestAccount(t, svc, "Savings")
	transfer, err := svc.Transfers.CreateTransfer(context.Background(), TransferRequest{
		FromAccountID: checking.ID,
		ToAccountID:   savings.ID,
		Amount:        decimal.RequireFromString("10.00"),
		Currency:      "EUR",
	})
	assert.NoError(t, err)

	_, err = svc.Transactions.UpdateTransaction(context.Background(), Transaction{
		ID:        transfer.From.ID,
		AccountID: checking.ID,
		Amount:    decimal.RequireFromString("5.00"),
		Currency:  "EUR",
	})

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "linkedTransferId", vErr.Field)
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Transactions.UpdateTransaction(context.Background(), Transaction{
		ID:        uuid.Must(uuid.NewV4()),
		AccountID: uuid.Must(uuid.NewV4()),
		Amount:    decimal.RequireFromString("5.00"),
		Currency:  "EUR",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

// -- DeleteTransaction tests --

func TestDeleteTransaction_ReversesBalance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	account := createTestAccount(t, svc, "Checking")
	addTestTransaction(t, svc, account.ID, "100.00", "EUR")
	tx := addTestTransaction(t, svc, account.ID, "-30.00", "EUR")

	err := svc.Transactions.DeleteTransaction(ctx, account.ID, tx.ID)
	assert.NoError(t, err)

	balance, err := svc.Ledger.GetBalance(ctx, account.ID, "EUR")
	assert.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("100.00")))

	_, err = svc.Transactions.GetTransaction(ctx, tx.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTransaction_WrongAccount(t *testing.T) {
	svc, _ := newTestService(t)

	checking := createTestAccount(t, svc, "Checking")
	savings := createTestAccount(t, svc, "Savings")
	tx := addTestTransaction(t, svc, checking.ID, "10.00", "EUR")

	err := svc.Transactions.DeleteTransaction(context.Background(), savings.ID, tx.ID)

	assert.ErrorIs(t, err, ErrNotFound)

	balance, balErr := svc.Ledger.GetBalance(context.Background(), checking.ID, "EUR")
	assert.NoError(t, balErr)
	assert.True(t, balance.Equal(decimal.RequireFromString("10.00")), "transaction stays untouched")
}

func TestDeleteTransaction_RejectsTransferLeg(t *testing.T) {
	svc, _ := newTestService(t)

	checking := createTestAccount(t, svc, "Checking")
	savings := createTestAccount(t, svc, "Savings")
	transfer, err := svc.Transfers.CreateTransfer(context.Background(), TransferRequest{
		FromAccountID: checking.ID,
		ToAccountID:   savings.ID,
		Amount:        decimal.RequireFromString("10.00"),
		Currency:      "EUR",
	})
	assert.NoError(t, err)

	err = svc.Transactions.DeleteTransaction(context.Background(), checking.ID, transfer.From.ID)

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "linkedTransferId", vErr.Field)
}

// -- History invariant --

func TestTransactionHistory_SumMatchesBalance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	account := createTestAccount(t, svc, "Checking")
	addTestTransaction(t, svc, account.ID, "100.00", "EUR")
	addTestTransaction(t, svc, account.ID, "-12.34", "EUR")
	victim := addTestTransaction(t, svc, account.ID, "7.00", "EUR")
	addTestTransaction(t, svc, account.ID, "0.34", "EUR")
	assert.NoError(t, svc.Transactions.DeleteTransaction(ctx, account.ID, victim.ID))

	history, err := svc.Transactions.ListTransactions(ctx, account.ID)
	assert.NoError(t, err)

	sum := decimal.Zero
	for _, tx := range history {
		sum = sum.Add(tx.Amount)
	}

	balance, err := svc.Ledger.GetBalance(ctx, account.ID, "EUR")
	assert.NoError(t, err)
	assert.True(t, balance.Equal(sum), "stored balance equals the sum of surviving history")
}
