package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	accountsapp "github.com/b3erp/backend/internal/application/accounts"
	"github.com/b3erp/backend/internal/domain/accounts"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/b3erp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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
	return m.Called(ctx, account).Error(0)
}

func (m *MockBankAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

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
	return args.Get(0).([]accounts.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) CountByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBankTransactionRepository) Save(ctx context.Context, tx *accounts.BankTransaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockBankTransactionRepository) SaveBatch(ctx context.Context, txs []*accounts.BankTransaction) error {
	return m.Called(ctx, txs).Error(0)
}

func setupBankAccountRouter() (*gin.Engine, *MockBankAccountRepository, *MockBankTransactionRepository) {
	accountRepo := new(MockBankAccountRepository)
	txRepo := new(MockBankTransactionRepository)
	svc := accountsapp.NewBankAccountService(accountRepo, txRepo, newQuietPublisher())
	router := gin.New()
	NewBankAccountHandler(svc).RegisterRoutes(router.Group("/api"))
	return router, accountRepo, txRepo
}

func newOperatingAccount(t *testing.T) *accounts.BankAccount {
	t.Helper()
	a, err := accounts.NewBankAccount("OPS-0001", accounts.BankAccountDetails{
		AccountName:       "Operating",
		BankName:          "First Bank",
		AccountType:       accounts.AccountTypeChecking,
		MatchingThreshold: 90,
	}, decimal.NewFromInt(1000))
	require.NoError(t, err)
	return a
}

func newStatementLine(t *testing.T, accountID uuid.UUID, amount int64) *accounts.BankTransaction {
	t.Helper()
	tx, err := accounts.NewBankTransaction(accountID, time.Now(), accounts.TransactionDeposit,
		decimal.NewFromInt(amount), "Customer receipt", "RCPT-1")
	require.NoError(t, err)
	return tx
}

func TestBankAccountHandler_Create(t *testing.T) {
	t.Run("normalises number and defaults", func(t *testing.T) {
		router, accountRepo, _ := setupBankAccountRouter()
		accountRepo.On("ExistsByAccountNumber", mock.Anything, "GB29NWBK60161331").Return(false, nil)
		accountRepo.On("Save", mock.Anything, mock.AnythingOfType("*accounts.BankAccount")).Return(nil)

		w := performJSON(router, http.MethodPost, "/api/accounts/banks",
			`{"account_number":"gb29 nwbk 6016 1331","account_name":"Payroll","bank_name":"NatWest","account_type":"checking","opening_balance":"2500.50"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "GB29NWBK60161331", data["account_number"])
		assert.Equal(t, "USD", data["currency"])
		assert.Equal(t, "monthly", data["reconciliation_frequency"])
		assert.Equal(t, "2500.5", data["current_balance"])
		assert.Equal(t, float64(90), data["matching_threshold"])
	})

	t.Run("duplicate number", func(t *testing.T) {
		router, accountRepo, _ := setupBankAccountRouter()
		accountRepo.On("ExistsByAccountNumber", mock.Anything, "OPS-0001").Return(true, nil)

		w := performJSON(router, http.MethodPost, "/api/accounts/banks",
			`{"account_number":"OPS-0001","account_name":"Operating","bank_name":"First Bank","account_type":"savings"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("bad account type", func(t *testing.T) {
		router, _, _ := setupBankAccountRouter()
		w := performJSON(router, http.MethodPost, "/api/accounts/banks",
			`{"account_number":"OPS-0001","account_name":"Operating","bank_name":"First Bank","account_type":"crypto"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
	})
}

func TestBankAccountHandler_List(t *testing.T) {
	router, accountRepo, _ := setupBankAccountRouter()
	account := newOperatingAccount(t)
	accountRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["currency"] == "EUR" && f.Page == 2 && f.PageSize == 5
	})).Return([]accounts.BankAccount{*account}, nil)
	accountRepo.On("Count", mock.Anything, mock.Anything).Return(int64(6), nil)

	w := performJSON(router, http.MethodGet, "/api/accounts/banks?currency=eur&page=2&page_size=5", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, int64(6), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.TotalPages)
}

func TestBankAccountHandler_Transactions(t *testing.T) {
	router, accountRepo, txRepo := setupBankAccountRouter()
	account := newOperatingAccount(t)
	base := "/api/accounts/banks/" + account.ID.String()
	accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	txRepo.On("SaveBatch", mock.Anything, mock.Anything).Return(nil)

	w := performJSON(router, http.MethodPost, base+"/transactions", `{"transactions":[
		{"transaction_date":"2024-05-02T00:00:00Z","transaction_type":"deposit","amount":"750","description":"Receipt"},
		{"transaction_date":"2024-05-03T00:00:00Z","transaction_type":"fee","amount":"12.5","description":"Service fee"}
	]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	lines := decodeResponse(t, w).Data.([]any)
	require.Len(t, lines, 2)
	assert.Equal(t, "750", lines[0].(map[string]any)["amount"])
	assert.Equal(t, "-12.5", lines[1].(map[string]any)["amount"])
	assert.Equal(t, "unmatched", lines[1].(map[string]any)["status"])

	w = performJSON(router, http.MethodPost, base+"/transactions", `{"transactions":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	tx := newStatementLine(t, account.ID, 750)
	txBase := base + "/transactions/" + tx.ID.String()
	txRepo.On("FindByID", mock.Anything, account.ID, tx.ID).Return(tx, nil)
	txRepo.On("Save", mock.Anything, tx).Return(nil)

	w = performJSON(router, http.MethodPost, txBase+"/match", `{"matched_reference":"INV-2024-0001"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "matched", decodeResponse(t, w).Data.(map[string]any)["status"])

	w = performJSON(router, http.MethodPost, txBase+"/dispute", `{"reason":"amount differs"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = performJSON(router, http.MethodPost, txBase+"/unmatch", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, http.MethodPost, txBase+"/dispute", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidInput, decodeResponse(t, w).Error.Code)

	w = performJSON(router, http.MethodPost, txBase+"/exclude", `{"reason":"duplicate line"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "excluded", decodeResponse(t, w).Data.(map[string]any)["status"])

	w = performJSON(router, http.MethodPost, base+"/transactions/nope/match", `{"matched_reference":"X"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid transaction ID format", decodeResponse(t, w).Error.Message)

	t.Run("inactive account", func(t *testing.T) {
		account.SetActive(false)
		defer account.SetActive(true)
		w := performJSON(router, http.MethodPost, base+"/transactions",
			`{"transactions":[{"transaction_date":"2024-05-02T00:00:00Z","transaction_type":"deposit","amount":"5","description":"x"}]}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestBankAccountHandler_Reconcile(t *testing.T) {
	router, accountRepo, txRepo := setupBankAccountRouter()
	account := newOperatingAccount(t)
	base := "/api/accounts/banks/" + account.ID.String()
	open := newStatementLine(t, account.ID, 100)
	accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	accountRepo.On("Save", mock.Anything, account).Return(nil)
	call := txRepo.On("FindByAccount", mock.Anything, account.ID, shared.Filter{}).Return([]accounts.BankTransaction{*open}, nil)

	w := performJSON(router, http.MethodGet, base+"/reconciliation", "")
	require.Equal(t, http.StatusOK, w.Code)
	summary := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, float64(1), summary["unmatched_count"])
	assert.Equal(t, false, summary["is_reconciled"])

	w = performJSON(router, http.MethodPost, base+"/reconcile", `{"statement_date":"2024-05-31T00:00:00Z","statement_balance":"1000"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	require.NoError(t, open.Match("INV-1"))
	call.Return([]accounts.BankTransaction{*open}, nil)

	w = performJSON(router, http.MethodPost, base+"/reconcile", `{"statement_date":"2024-05-31T00:00:00Z","statement_balance":"999"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidState, decodeResponse(t, w).Error.Code)

	w = performJSON(router, http.MethodPost, base+"/reconcile", `{"statement_date":"2024-05-31T00:00:00Z","statement_balance":"1000"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeResponse(t, w).Data.(map[string]any)["is_reconciled"])
	require.NotNil(t, account.LastReconciledAt)
	accountRepo.AssertNumberOfCalls(t, "Save", 1)
}

func TestBankAccountHandler_Delete(t *testing.T) {
	router, accountRepo, txRepo := setupBankAccountRouter()
	account := newOperatingAccount(t)
	accountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	txRepo.On("CountByAccount", mock.Anything, account.ID, shared.Filter{}).Return(int64(3), nil)

	w := performJSON(router, http.MethodDelete, "/api/accounts/banks/"+account.ID.String(), "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	accountRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
