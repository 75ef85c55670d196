package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/b3erp/backend/internal/domain/accounts"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBankAccount(t *testing.T, number string) *accounts.BankAccount {
	t.Helper()
	acc, err := accounts.NewBankAccount(number, accounts.BankAccountDetails{
		AccountName: "Operations",
		BankName:    "State Bank",
		AccountType: accounts.AccountTypeChecking,
		Currency:    "INR",
	}, decimal.NewFromInt(1000))
	require.NoError(t, err)
	return acc
}

func TestGormBankAccountRepository_FindAllSearch(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormBankAccountRepository(db)

	pattern := "%state%"
	mock.ExpectQuery(`SELECT \* FROM "bank_accounts" WHERE \(LOWER\(account_name\) LIKE \$1 ESCAPE '\\' OR LOWER\(account_number\) LIKE \$2 ESCAPE '\\' OR LOWER\(bank_name\) LIKE \$3 ESCAPE '\\'\) AND account_type = \$4 ORDER BY bank_name ASC, account_name ASC LIMIT \$5 OFFSET \$6`).
		WithArgs(pattern, pattern, pattern, "savings", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_number"}).AddRow(uuid.New(), "001"))

	filter := shared.Filter{Page: 2, PageSize: 10, Search: "State"}.With("account_type", "savings")
	list, err := repo.FindAll(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBankAccountRepository_ExistsByAccountNumber(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormBankAccountRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bank_accounts" WHERE account_number = \$1`).
		WithArgs("12345678").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByAccountNumber(context.Background(), " 12345678 ")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBankRepositories_SQLite(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	accountRepo := NewGormBankAccountRepository(db)
	txRepo := NewGormBankTransactionRepository(db)

	acc := newTestBankAccount(t, "12345678")
	require.NoError(t, accountRepo.Save(ctx, acc))
	assert.ErrorIs(t, accountRepo.Save(ctx, newTestBankAccount(t, "12345678")), shared.ErrAlreadyExists)

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	dep, err := accounts.NewBankTransaction(acc.ID, day, accounts.TransactionDeposit, decimal.NewFromInt(500), "Customer receipt", "RCPT-1")
	require.NoError(t, err)
	fee, err := accounts.NewBankTransaction(acc.ID, day.AddDate(0, 0, 1), accounts.TransactionFee, decimal.NewFromInt(25), "Monthly fee", "")
	require.NoError(t, err)
	require.NoError(t, txRepo.SaveBatch(ctx, []*accounts.BankTransaction{dep, fee}))

	count, err := txRepo.CountByAccount(ctx, acc.ID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	list, err := txRepo.FindByAccount(ctx, acc.ID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, fee.ID, list[0].ID, "newest first")

	found, err := txRepo.FindByID(ctx, acc.ID, dep.ID)
	require.NoError(t, err)
	require.NoError(t, found.Match("INV-2024-0001"))
	require.NoError(t, txRepo.Save(ctx, found))

	unmatched, err := txRepo.CountByAccount(ctx, acc.ID, shared.DefaultFilter().With("status", string(accounts.TransactionUnmatched)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), unmatched)

	_, err = txRepo.FindByID(ctx, uuid.New(), dep.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	reloaded, err := accountRepo.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.OpeningBalance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, reloaded.IsActive)

	require.NoError(t, accountRepo.Delete(ctx, acc.ID))
	assert.ErrorIs(t, accountRepo.Delete(ctx, acc.ID), shared.ErrNotFound)
}
