package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/b3erp/backend/internal/domain/accounts"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBankAccountRepository is a mock implementation of BankAccountRepository
type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounts.BankAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]accounts.BankAccount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounts.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBankAccountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	args := m.Called(ctx, accountNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockBankAccountRepository) Save(ctx context.Context, account *accounts.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBankTransactionRepository is a mock implementation of BankTransactionRepository
type MockBankTransactionRepository struct {
	mock.Mock
}

func (m *MockBankTransactionRepository) FindByID(ctx context.Context, accountID, id uuid.UUID) (*accounts.BankTransaction, error) {
	args := m.Called(ctx, accountID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) FindByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]accounts.BankTransaction, error) {
	args := m.Called(ctx, accountID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accounts.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) CountByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBankTransactionRepository) Save(ctx context.Context, tx *accounts.BankTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockBankTransactionRepository) SaveBatch(ctx context.Context, txs []*accounts.BankTransaction) error {
	args := m.Called(ctx, txs)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func newTestAccount(t *testing.T, opening int64) *accounts.BankAccount {
	t.Helper()
	a, err := accounts.NewBankAccount("0012 3456 789", accounts.BankAccountDetails{
		AccountName: "Operating",
		BankName:    "State Bank",
		AccountType: accounts.AccountTypeChecking,
	}, decimal.NewFromInt(opening))
	require.NoError(t, err)
	return a
}

func newTestTx(t *testing.T, accountID uuid.UUID, txType accounts.TransactionType, amount int64) accounts.BankTransaction {
	t.Helper()
	tx, err := accounts.NewBankTransaction(accountID, time.Now(), txType, decimal.NewFromInt(amount), "line", "")
	require.NoError(t, err)
	return *tx
}

func setupService() (*BankAccountService, *MockBankAccountRepository, *MockBankTransactionRepository, *MockEventPublisher) {
	accountRepo := new(MockBankAccountRepository)
	txRepo := new(MockBankTransactionRepository)
	events := new(MockEventPublisher)
	return NewBankAccountService(accountRepo, txRepo, events), accountRepo, txRepo, events
}

func TestBankAccountService_CreateBankAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, accountRepo, _, _ := setupService()
		accountRepo.On("ExistsByAccountNumber", ctx, "00123456789").Return(false, nil)
		accountRepo.On("Save", ctx, mock.AnythingOfType("*accounts.BankAccount")).Return(nil)

		resp, err := svc.CreateBankAccount(ctx, CreateBankAccountRequest{
			AccountNumber:  "0012 3456 789",
			OpeningBalance: decimal.NewFromInt(5000),
			BankAccountDetailsRequest: BankAccountDetailsRequest{
				AccountName: "Operating",
				BankName:    "State Bank",
				AccountType: "checking",
				Currency:    "inr",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "00123456789", resp.AccountNumber)
		assert.Equal(t, "INR", resp.Currency)
		assert.Equal(t, "monthly", resp.ReconciliationFrequency)
		assert.Equal(t, 90, resp.MatchingThreshold)
		assert.True(t, resp.CurrentBalance.Equal(decimal.NewFromInt(5000)))
	})

	t.Run("duplicate account number", func(t *testing.T) {
		svc, accountRepo, _, _ := setupService()
		accountRepo.On("ExistsByAccountNumber", ctx, "00123456789").Return(true, nil)

		_, err := svc.CreateBankAccount(ctx, CreateBankAccountRequest{
			AccountNumber: "00123456789",
			BankAccountDetailsRequest: BankAccountDetailsRequest{
				AccountName: "Operating",
				BankName:    "State Bank",
				AccountType: "checking",
			},
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		accountRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestBankAccountService_ListBankAccounts(t *testing.T) {
	ctx := context.Background()
	svc, accountRepo, _, _ := setupService()

	matches := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 &&
			f.Filters["currency"] == "USD" && f.Filters["account_type"] == "savings"
	})
	account := newTestAccount(t, 0)
	accountRepo.On("FindAll", ctx, matches).Return([]accounts.BankAccount{*account}, nil)
	accountRepo.On("Count", ctx, matches).Return(int64(1), nil)

	list, total, err := svc.ListBankAccounts(ctx, BankAccountListFilter{Currency: "usd", AccountType: "savings"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestBankAccountService_DeleteBankAccount(t *testing.T) {
	ctx := context.Background()
	svc, accountRepo, txRepo, _ := setupService()
	withTx := newTestAccount(t, 0)
	empty := newTestAccount(t, 0)

	accountRepo.On("FindByID", ctx, withTx.ID).Return(withTx, nil)
	accountRepo.On("FindByID", ctx, empty.ID).Return(empty, nil)
	txRepo.On("CountByAccount", ctx, withTx.ID, mock.Anything).Return(int64(3), nil)
	txRepo.On("CountByAccount", ctx, empty.ID, mock.Anything).Return(int64(0), nil)
	accountRepo.On("Delete", ctx, empty.ID).Return(nil)

	assert.ErrorIs(t, svc.DeleteBankAccount(ctx, withTx.ID), shared.ErrInvalidState)
	assert.NoError(t, svc.DeleteBankAccount(ctx, empty.ID))
	accountRepo.AssertNotCalled(t, "Delete", ctx, withTx.ID)
}

func TestBankAccountService_RecordTransactions(t *testing.T) {
	ctx := context.Background()
	svc, accountRepo, txRepo, _ := setupService()
	account := newTestAccount(t, 1000)

	accountRepo.On("FindByID", ctx, account.ID).Return(account, nil)
	txRepo.On("SaveBatch", ctx, mock.MatchedBy(func(txs []*accounts.BankTransaction) bool { return len(txs) == 2 })).Return(nil)

	out, err := svc.RecordTransactions(ctx, account.ID, RecordTransactionsRequest{Transactions: []RecordTransactionRequest{
		{TransactionDate: time.Now(), TransactionType: "deposit", Amount: decimal.NewFromInt(-250), Description: "Customer receipt"},
		{TransactionDate: time.Now(), TransactionType: "fee", Amount: decimal.NewFromInt(15), Description: "Service charge"},
	}})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].Amount.Equal(decimal.NewFromInt(250)))
	assert.True(t, out[1].Amount.Equal(decimal.NewFromInt(-15)))
	assert.Equal(t, "unmatched", out[0].Status)

	t.Run("inactive account", func(t *testing.T) {
		svc, accountRepo, _, _ := setupService()
		inactive := newTestAccount(t, 0)
		inactive.SetActive(false)
		accountRepo.On("FindByID", ctx, inactive.ID).Return(inactive, nil)

		_, err := svc.RecordTransactions(ctx, inactive.ID, RecordTransactionsRequest{Transactions: []RecordTransactionRequest{
			{TransactionDate: time.Now(), TransactionType: "deposit", Amount: decimal.NewFromInt(1), Description: "x"},
		}})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestBankAccountService_MatchTransaction(t *testing.T) {
	ctx := context.Background()
	svc, _, txRepo, _ := setupService()
	accountID := uuid.New()
	tx := newTestTx(t, accountID, accounts.TransactionDeposit, 100)

	txRepo.On("FindByID", ctx, accountID, tx.ID).Return(&tx, nil)
	txRepo.On("Save", ctx, &tx).Return(nil)

	resp, err := svc.MatchTransaction(ctx, accountID, tx.ID, MatchTransactionRequest{MatchedReference: "INV-2024-0001"})
	require.NoError(t, err)
	assert.Equal(t, "matched", resp.Status)
	assert.Equal(t, "INV-2024-0001", resp.MatchedReference)

	_, err = svc.ExcludeTransaction(ctx, accountID, tx.ID, TransactionNoteRequest{Reason: "dup"})
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	resp, err = svc.UnmatchTransaction(ctx, accountID, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "unmatched", resp.Status)

	resp, err = svc.DisputeTransaction(ctx, accountID, tx.ID, TransactionNoteRequest{Reason: "not ours"})
	require.NoError(t, err)
	assert.Equal(t, "disputed", resp.Status)
	assert.Contains(t, resp.Notes, "Disputed: not ours")
}

func TestBankAccountService_Reconcile(t *testing.T) {
	ctx := context.Background()
	statementDate := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("unmatched lines block reconciliation", func(t *testing.T) {
		svc, accountRepo, txRepo, _ := setupService()
		account := newTestAccount(t, 1000)
		account.SetBookBalance(decimal.NewFromInt(1100))
		txs := []accounts.BankTransaction{newTestTx(t, account.ID, accounts.TransactionDeposit, 100)}

		accountRepo.On("FindByID", ctx, account.ID).Return(account, nil)
		txRepo.On("FindByAccount", ctx, account.ID, mock.Anything).Return(txs, nil)

		summary, err := svc.Reconciliation(ctx, account.ID)
		require.NoError(t, err)
		assert.True(t, summary.StatementBalance.Equal(decimal.NewFromInt(1100)))
		assert.True(t, summary.Difference.IsZero())
		assert.False(t, summary.IsReconciled)

		_, err = svc.Reconcile(ctx, account.ID, ReconcileRequest{StatementDate: statementDate, StatementBalance: decimal.NewFromInt(1100)})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		accountRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("matched statement reconciles", func(t *testing.T) {
		svc, accountRepo, txRepo, events := setupService()
		account := newTestAccount(t, 1000)
		account.SetBookBalance(decimal.NewFromInt(1085))
		deposit := newTestTx(t, account.ID, accounts.TransactionDeposit, 100)
		require.NoError(t, deposit.Match("RCPT-1"))
		fee := newTestTx(t, account.ID, accounts.TransactionFee, 15)
		require.NoError(t, fee.Match("GL-FEES"))
		ignored := newTestTx(t, account.ID, accounts.TransactionTransfer, 999)
		require.NoError(t, ignored.Exclude("internal"))

		accountRepo.On("FindByID", ctx, account.ID).Return(account, nil)
		txRepo.On("FindByAccount", ctx, account.ID, mock.Anything).Return([]accounts.BankTransaction{deposit, fee, ignored}, nil)
		accountRepo.On("Save", ctx, account).Return(nil)
		events.On("Publish", ctx, mock.MatchedBy(func(evts []shared.DomainEvent) bool {
			return len(evts) == 1 && evts[0].EventType() == "bank_account.reconciled"
		})).Return(nil)

		summary, err := svc.Reconcile(ctx, account.ID, ReconcileRequest{StatementDate: statementDate, StatementBalance: decimal.NewFromInt(1085)})
		require.NoError(t, err)
		assert.True(t, summary.IsReconciled)
		assert.Equal(t, 2, summary.MatchedCount)
		assert.Equal(t, 1, summary.ExcludedCount)
		assert.InDelta(t, 100.0, summary.MatchRate, 0.001)
		require.NotNil(t, account.LastReconciledAt)
		events.AssertExpectations(t)
	})
}
