package accounts

import (
	"context"
	"strings"
	"time"

	"github.com/b3erp/backend/internal/domain/accounts"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccountService manages bank accounts and statement reconciliation
type BankAccountService struct {
	accountRepo     accounts.BankAccountRepository
	transactionRepo accounts.BankTransactionRepository
	events          shared.EventPublisher
}

// NewBankAccountService creates a new BankAccountService
func NewBankAccountService(
	accountRepo accounts.BankAccountRepository,
	transactionRepo accounts.BankTransactionRepository,
	events shared.EventPublisher,
) *BankAccountService {
	return &BankAccountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		events:          events,
	}
}

// ===================== Bank Account Operations =====================

// BankAccountResponse represents a bank account in API responses
type BankAccountResponse struct {
	ID                      uuid.UUID        `json:"id"`
	AccountNumber           string           `json:"account_number"`
	AccountName             string           `json:"account_name"`
	BankName                string           `json:"bank_name"`
	Branch                  string           `json:"branch"`
	IFSCCode                string           `json:"ifsc_code"`
	AccountType             string           `json:"account_type"`
	Currency                string           `json:"currency"`
	GLAccountCode           string           `json:"gl_account_code"`
	OpeningBalance          decimal.Decimal  `json:"opening_balance"`
	CurrentBalance          decimal.Decimal  `json:"current_balance"`
	LastStatementDate       *time.Time       `json:"last_statement_date,omitempty"`
	LastStatementBalance    *decimal.Decimal `json:"last_statement_balance,omitempty"`
	LastReconciledAt        *time.Time       `json:"last_reconciled_at,omitempty"`
	LastReconciledBalance   *decimal.Decimal `json:"last_reconciled_balance,omitempty"`
	ReconciliationFrequency string           `json:"reconciliation_frequency"`
	MatchingThreshold       int              `json:"matching_threshold"`
	IsActive                bool             `json:"is_active"`
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
	Version                 int              `json:"version"`
}

// BankAccountDetailsRequest holds the editable bank account attributes
type BankAccountDetailsRequest struct {
	AccountName             string `json:"account_name" binding:"required,max=200"`
	BankName                string `json:"bank_name" binding:"required,max=200"`
	Branch                  string `json:"branch" binding:"max=200"`
	IFSCCode                string `json:"ifsc_code" binding:"max=20"`
	AccountType             string `json:"account_type" binding:"required,oneof=checking savings credit investment"`
	Currency                string `json:"currency" binding:"omitempty,currency"`
	GLAccountCode           string `json:"gl_account_code" binding:"max=30"`
	ReconciliationFrequency string `json:"reconciliation_frequency" binding:"omitempty,oneof=daily weekly monthly quarterly"`
	MatchingThreshold       *int   `json:"matching_threshold" binding:"omitempty,min=0,max=100"`
}

func (r BankAccountDetailsRequest) toDomain() accounts.BankAccountDetails {
	threshold := 90
	if r.MatchingThreshold != nil {
		threshold = *r.MatchingThreshold
	}
	return accounts.BankAccountDetails{
		AccountName:             r.AccountName,
		BankName:                r.BankName,
		Branch:                  r.Branch,
		IFSCCode:                r.IFSCCode,
		AccountType:             accounts.AccountType(r.AccountType),
		Currency:                r.Currency,
		GLAccountCode:           r.GLAccountCode,
		ReconciliationFrequency: accounts.ReconciliationFrequency(r.ReconciliationFrequency),
		MatchingThreshold:       threshold,
	}
}

// CreateBankAccountRequest represents a request to create a bank account
type CreateBankAccountRequest struct {
	AccountNumber  string          `json:"account_number" binding:"required,min=4,max=34"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	BankAccountDetailsRequest
}

// UpdateBankAccountRequest represents a request to update a bank account
type UpdateBankAccountRequest struct {
	BankAccountDetailsRequest
	CurrentBalance *decimal.Decimal `json:"current_balance"`
	IsActive       *bool            `json:"is_active"`
}

// BankAccountListFilter defines filtering options for bank account list queries
type BankAccountListFilter struct {
	Search      string `form:"search"`
	AccountType string `form:"account_type" binding:"omitempty,oneof=checking savings credit investment"`
	Currency    string `form:"currency" binding:"omitempty,currency"`
	IsActive    *bool  `form:"is_active"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateBankAccount creates a new bank account
func (s *BankAccountService) CreateBankAccount(ctx context.Context, req CreateBankAccountRequest) (*BankAccountResponse, error) {
	account, err := accounts.NewBankAccount(req.AccountNumber, req.toDomain(), req.OpeningBalance)
	if err != nil {
		return nil, err
	}

	exists, err := s.accountRepo.ExistsByAccountNumber(ctx, account.AccountNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.AlreadyExists("bank account " + account.AccountNumber + " already exists")
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return toBankAccountResponse(account), nil
}

// GetBankAccount gets a bank account by ID
func (s *BankAccountService) GetBankAccount(ctx context.Context, id uuid.UUID) (*BankAccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBankAccountResponse(account), nil
}

// ListBankAccounts lists bank accounts with filtering and pagination
func (s *BankAccountService) ListBankAccounts(ctx context.Context, filter BankAccountListFilter) ([]BankAccountResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}.
		With("account_type", filter.AccountType).
		With("is_active", filter.IsActive)
	if filter.Currency != "" {
		domainFilter = domainFilter.With("currency", strings.ToUpper(filter.Currency))
	}
	applyPaging(&domainFilter)

	list, err := s.accountRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.accountRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]BankAccountResponse, len(list))
	for i := range list {
		out[i] = *toBankAccountResponse(&list[i])
	}
	return out, total, nil
}

// UpdateBankAccount updates a bank account
func (s *BankAccountService) UpdateBankAccount(ctx context.Context, id uuid.UUID, req UpdateBankAccountRequest) (*BankAccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := account.Update(req.toDomain()); err != nil {
		return nil, err
	}
	if req.CurrentBalance != nil {
		account.SetBookBalance(*req.CurrentBalance)
	}
	if req.IsActive != nil {
		account.SetActive(*req.IsActive)
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return toBankAccountResponse(account), nil
}

// DeleteBankAccount deletes a bank account that has no statement lines
func (s *BankAccountService) DeleteBankAccount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.accountRepo.FindByID(ctx, id); err != nil {
		return err
	}
	count, err := s.transactionRepo.CountByAccount(ctx, id, shared.Filter{})
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.InvalidState("bank account has transactions and cannot be deleted")
	}
	return s.accountRepo.Delete(ctx, id)
}

// ===================== Statement Transaction Operations =====================

// BankTransactionResponse represents a statement line in API responses
type BankTransactionResponse struct {
	ID               uuid.UUID       `json:"id"`
	BankAccountID    uuid.UUID       `json:"bank_account_id"`
	TransactionDate  time.Time       `json:"transaction_date"`
	ValueDate        *time.Time      `json:"value_date,omitempty"`
	Description      string          `json:"description"`
	Reference        string          `json:"reference"`
	TransactionType  string          `json:"transaction_type"`
	Amount           decimal.Decimal `json:"amount"`
	Status           string          `json:"status"`
	MatchedReference string          `json:"matched_reference,omitempty"`
	MatchedAt        *time.Time      `json:"matched_at,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// RecordTransactionRequest represents one statement line to record
type RecordTransactionRequest struct {
	TransactionDate time.Time       `json:"transaction_date" binding:"required"`
	ValueDate       *time.Time      `json:"value_date"`
	TransactionType string          `json:"transaction_type" binding:"required,oneof=deposit withdrawal fee interest transfer"`
	Amount          decimal.Decimal `json:"amount" binding:"gt=0"`
	Description     string          `json:"description" binding:"required,max=500"`
	Reference       string          `json:"reference" binding:"max=100"`
}

// RecordTransactionsRequest records one or more statement lines
type RecordTransactionsRequest struct {
	Transactions []RecordTransactionRequest `json:"transactions" binding:"required,min=1,max=500,dive"`
}

// MatchTransactionRequest links a statement line to a book entry
type MatchTransactionRequest struct {
	MatchedReference string `json:"matched_reference" binding:"required,max=100"`
}

// TransactionNoteRequest carries the reason for excluding or disputing a line
type TransactionNoteRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// BankTransactionListFilter defines filtering options for statement lines
type BankTransactionListFilter struct {
	Status          string     `form:"status" binding:"omitempty,oneof=unmatched matched excluded disputed"`
	TransactionType string     `form:"transaction_type" binding:"omitempty,oneof=deposit withdrawal fee interest transfer"`
	FromDate        *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate          *time.Time `form:"to_date" time_format:"2006-01-02"`
	Search          string     `form:"search"`
	Page            int        `form:"page" binding:"omitempty,min=1"`
	PageSize        int        `form:"page_size" binding:"omitempty,min=1,max=500"`
	OrderBy         string     `form:"order_by"`
	OrderDir        string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// RecordTransactions records statement lines against an account in one batch
func (s *BankAccountService) RecordTransactions(ctx context.Context, accountID uuid.UUID, req RecordTransactionsRequest) ([]BankTransactionResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, shared.InvalidState("cannot record transactions on an inactive account")
	}

	txs := make([]*accounts.BankTransaction, 0, len(req.Transactions))
	for _, line := range req.Transactions {
		tx, err := accounts.NewBankTransaction(account.ID, line.TransactionDate, accounts.TransactionType(line.TransactionType), line.Amount, line.Description, line.Reference)
		if err != nil {
			return nil, err
		}
		tx.ValueDate = line.ValueDate
		txs = append(txs, tx)
	}
	if err := s.transactionRepo.SaveBatch(ctx, txs); err != nil {
		return nil, err
	}

	out := make([]BankTransactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = toBankTransactionResponse(tx)
	}
	return out, nil
}

// ListTransactions lists the statement lines of an account
func (s *BankAccountService) ListTransactions(ctx context.Context, accountID uuid.UUID, filter BankTransactionListFilter) ([]BankTransactionResponse, int64, error) {
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, 0, err
	}
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}.
		With("status", filter.Status).
		With("transaction_type", filter.TransactionType)
	if filter.FromDate != nil {
		domainFilter = domainFilter.With("from_date", *filter.FromDate)
	}
	if filter.ToDate != nil {
		domainFilter = domainFilter.With("to_date", *filter.ToDate)
	}
	applyPaging(&domainFilter)

	list, err := s.transactionRepo.FindByAccount(ctx, accountID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.transactionRepo.CountByAccount(ctx, accountID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]BankTransactionResponse, len(list))
	for i := range list {
		out[i] = toBankTransactionResponse(&list[i])
	}
	return out, total, nil
}

// MatchTransaction links a statement line to a book entry
func (s *BankAccountService) MatchTransaction(ctx context.Context, accountID, txID uuid.UUID, req MatchTransactionRequest) (*BankTransactionResponse, error) {
	return s.changeTransaction(ctx, accountID, txID, func(tx *accounts.BankTransaction) error {
		return tx.Match(req.MatchedReference)
	})
}

// UnmatchTransaction returns a statement line to the unmatched pool
func (s *BankAccountService) UnmatchTransaction(ctx context.Context, accountID, txID uuid.UUID) (*BankTransactionResponse, error) {
	return s.changeTransaction(ctx, accountID, txID, func(tx *accounts.BankTransaction) error {
		return tx.Unmatch()
	})
}

// ExcludeTransaction removes a statement line from reconciliation
func (s *BankAccountService) ExcludeTransaction(ctx context.Context, accountID, txID uuid.UUID, req TransactionNoteRequest) (*BankTransactionResponse, error) {
	return s.changeTransaction(ctx, accountID, txID, func(tx *accounts.BankTransaction) error {
		return tx.Exclude(req.Reason)
	})
}

// DisputeTransaction flags a statement line for follow-up
func (s *BankAccountService) DisputeTransaction(ctx context.Context, accountID, txID uuid.UUID, req TransactionNoteRequest) (*BankTransactionResponse, error) {
	return s.changeTransaction(ctx, accountID, txID, func(tx *accounts.BankTransaction) error {
		return tx.Dispute(req.Reason)
	})
}

func (s *BankAccountService) changeTransaction(ctx context.Context, accountID, txID uuid.UUID, fn func(*accounts.BankTransaction) error) (*BankTransactionResponse, error) {
	tx, err := s.transactionRepo.FindByID(ctx, accountID, txID)
	if err != nil {
		return nil, err
	}
	if err := fn(tx); err != nil {
		return nil, err
	}
	if err := s.transactionRepo.Save(ctx, tx); err != nil {
		return nil, err
	}
	resp := toBankTransactionResponse(tx)
	return &resp, nil
}

// ===================== Reconciliation =====================

// ReconcileRequest closes a bank statement
type ReconcileRequest struct {
	StatementDate    time.Time       `json:"statement_date" binding:"required"`
	StatementBalance decimal.Decimal `json:"statement_balance"`
}

// Reconciliation returns the current reconciliation position of an account
func (s *BankAccountService) Reconciliation(ctx context.Context, accountID uuid.UUID) (*accounts.ReconciliationSummary, error) {
	account, txs, err := s.loadStatement(ctx, accountID)
	if err != nil {
		return nil, err
	}
	summary := accounts.Summarise(account, txs)
	return &summary, nil
}

// Reconcile closes the statement when every line is matched or excluded
// and the statement balance equals the book balance
func (s *BankAccountService) Reconcile(ctx context.Context, accountID uuid.UUID, req ReconcileRequest) (*accounts.ReconciliationSummary, error) {
	account, txs, err := s.loadStatement(ctx, accountID)
	if err != nil {
		return nil, err
	}
	summary, err := accounts.Reconcile(account, txs, req.StatementDate, req.StatementBalance)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	if err := shared.PublishPending(ctx, s.events, account); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *BankAccountService) loadStatement(ctx context.Context, accountID uuid.UUID) (*accounts.BankAccount, []accounts.BankTransaction, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	txs, err := s.transactionRepo.FindByAccount(ctx, accountID, shared.Filter{})
	if err != nil {
		return nil, nil, err
	}
	return account, txs, nil
}

// ===================== Helpers =====================

func applyPaging(f *shared.Filter) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
}

func toBankAccountResponse(a *accounts.BankAccount) *BankAccountResponse {
	return &BankAccountResponse{
		ID:                      a.ID,
		AccountNumber:           a.AccountNumber,
		AccountName:             a.AccountName,
		BankName:                a.BankName,
		Branch:                  a.Branch,
		IFSCCode:                a.IFSCCode,
		AccountType:             string(a.AccountType),
		Currency:                a.Currency,
		GLAccountCode:           a.GLAccountCode,
		OpeningBalance:          a.OpeningBalance,
		CurrentBalance:          a.CurrentBalance,
		LastStatementDate:       a.LastStatementDate,
		LastStatementBalance:    a.LastStatementBalance,
		LastReconciledAt:        a.LastReconciledAt,
		LastReconciledBalance:   a.LastReconciledBalance,
		ReconciliationFrequency: string(a.ReconciliationFrequency),
		MatchingThreshold:       a.MatchingThreshold,
		IsActive:                a.IsActive,
		CreatedAt:               a.CreatedAt,
		UpdatedAt:               a.UpdatedAt,
		Version:                 a.Version,
	}
}

func toBankTransactionResponse(t *accounts.BankTransaction) BankTransactionResponse {
	return BankTransactionResponse{
		ID:               t.ID,
		BankAccountID:    t.BankAccountID,
		TransactionDate:  t.TransactionDate,
		ValueDate:        t.ValueDate,
		Description:      t.Description,
		Reference:        t.Reference,
		TransactionType:  string(t.TransactionType),
		Amount:           t.Amount,
		Status:           string(t.Status),
		MatchedReference: t.MatchedReference,
		MatchedAt:        t.MatchedAt,
		Notes:            t.Notes,
		CreatedAt:        t.CreatedAt,
	}
}
