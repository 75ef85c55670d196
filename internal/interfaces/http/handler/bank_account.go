package handler

import (
	"context"

	accountsapp "github.com/b3erp/backend/internal/application/accounts"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BankAccountHandler handles bank accounts, statement lines and reconciliation
type BankAccountHandler struct {
	BaseHandler
	service *accountsapp.BankAccountService
}

// NewBankAccountHandler creates a new bank account handler
func NewBankAccountHandler(service *accountsapp.BankAccountService) *BankAccountHandler {
	return &BankAccountHandler{service: service}
}

// List godoc
// @ID           listBankAccounts
// @Summary      List bank accounts
// @Tags         accounts
// @Produce      json
// @Param        search query string false "Search by number, name or bank"
// @Param        account_type query string false "Account type" Enums(checking, savings, credit, investment)
// @Param        currency query string false "ISO currency code"
// @Param        is_active query bool false "Active flag"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} Envelope[[]accountsapp.BankAccountResponse]
// @Failure      400 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /accounts/banks [get]
func (h *BankAccountHandler) List(c *gin.Context) {
	var filter accountsapp.BankAccountListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	list, total, err := h.service.ListBankAccounts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, list, total, filter.Page, filter.PageSize)
}

// Create godoc
// @ID           createBankAccount
// @Summary      Create a bank account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request body accountsapp.CreateBankAccountRequest true "Bank account"
// @Success      201 {object} Envelope[accountsapp.BankAccountResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      409 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /accounts/banks [post]
func (h *BankAccountHandler) Create(c *gin.Context) {
	var req accountsapp.CreateBankAccountRequest
	if !h.bindJSON(c, &req) {
		return
	}

	account, err := h.service.CreateBankAccount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// GetByID godoc
// @ID           getBankAccount
// @Summary      Get a bank account
// @Tags         accounts
// @Produce      json
// @Param        id path string true "Bank account ID" format(uuid)
// @Success      200 {object} Envelope[accountsapp.BankAccountResponse]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /accounts/banks/{id} [get]
func (h *BankAccountHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "bank account")
	if !ok {
		return
	}

	account, err := h.service.GetBankAccount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// Update godoc
// @ID           updateBankAccount
// @Summary      Update a bank account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Bank account ID" format(uuid)
// @Param        request body accountsapp.UpdateBankAccountRequest true "Bank account"
// @Success      200 {object} Envelope[accountsapp.BankAccountResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /accounts/banks/{id} [put]
func (h *BankAccountHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "bank account")
	if !ok {
		return
	}
	var req accountsapp.UpdateBankAccountRequest
	if !h.bindJSON(c, &req) {
		return
	}

	account, err := h.service.UpdateBankAccount(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// Delete godoc
// @ID           deleteBankAccount
// @Summary      Delete a bank account without statement lines
// @Tags         accounts
// @Param        id path string true "Bank account ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /accounts/banks/{id} [delete]
func (h *BankAccountHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "bank account")
	if !ok {
		return
	}

	if err := h.service.DeleteBankAccount(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListTransactions godoc
// @ID           listBankTransactions
// @Summary      List statement lines
// @Tags         accounts
// @Produce      json
// @Param        id path string true "Bank account ID" format(uuid)
// @Param        status query string false "Status" Enums(unmatched, matched, excluded, disputed)
// @Param        transaction_type query string false "Transaction type"
// @Param        from_date query string false "On or after (YYYY-MM-DD)"
// @Param        to_date query string false "On or before (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} Envelope[[]accountsapp.BankTransactionResponse]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /accounts/banks/{id}/transactions [get]
func (h *BankAccountHandler) ListTransactions(c *gin.Context) {
	id, ok := h.parseID(c, "id", "bank account")
	if !ok {
		return
	}
	var filter accountsapp.BankTransactionListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	list, total, err := h.service.ListTransactions(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, list, total, filter.Page, filter.PageSize)
}

// RecordTransactions godoc
// @ID           recordBankTransactions
// @Summary      Record statement lines
// @Description  Records up to 500 statement lines in one batch
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Bank account ID" format(uuid)
// @Param        request body accountsapp.RecordTransactionsRequest true "Statement lines"
// @Success      201 {object} Envelope[[]accountsapp.BankTransactionResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      404 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /accounts/banks/{id}/transactions [post]
func (h *BankAccountHandler) RecordTransactions(c *gin.Context) {
	id, ok := h.parseID(c, "id", "bank account")
	if !ok {
		return
	}
	var req accountsapp.RecordTransactionsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	txs, err := h.service.RecordTransactions(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, txs)
}

// MatchTransaction godoc
// @ID           matchBankTransaction
// @Summary      Match a statement line to a book entry
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Bank account ID" format(uuid)
// @Param        txId path string true "Transaction ID" format(uuid)
// @Param        request body accountsapp.MatchTransactionRequest true "Book reference"
// @Success      200 {object} Envelope[accountsapp.BankTransactionResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /accounts/banks/{id}/transactions/{txId}/match [post]
func (h *BankAccountHandler) MatchTransaction(c *gin.Context) {
	id, txID, ok := h.transactionIDs(c)
	if !ok {
		return
	}
	var req accountsapp.MatchTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tx, err := h.service.MatchTransaction(c.Request.Context(), id, txID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tx)
}

// UnmatchTransaction godoc
// @ID           unmatchBankTransaction
// @Summary      Return a statement line to the unmatched pool
// @Tags         accounts
// @Produce      json
// @Param        id path string true "Bank account ID" format(uuid)
// @Param        txId path string true "Transaction ID" format(uuid)
// @Success      200 {object} Envelope[accountsapp.BankTransactionResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /accounts/banks/{id}/transactions/{txId}/unmatch [post]
func (h *BankAccountHandler) UnmatchTransaction(c *gin.Context) {
	id, txID, ok := h.transactionIDs(c)
	if !ok {
		return
	}

	tx, err := h.service.UnmatchTransaction(c.Request.Context(), id, txID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tx)
}

// ExcludeTransaction godoc
// @ID           excludeBankTransaction
// @Summary      Exclude a statement line from reconciliation
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Bank account ID" format(uuid)
// @Param        txId path string true "Transaction ID" format(uuid)
// @Param        request body accountsapp.TransactionNoteRequest false "Reason"
// @Success      200 {object} Envelope[accountsapp.BankTransactionResponse]
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /accounts/banks/{id}/transactions/{txId}/exclude [post]
func (h *BankAccountHandler) ExcludeTransaction(c *gin.Context) {
	h.annotate(c, h.service.ExcludeTransaction)
}

// DisputeTransaction godoc
// @ID           disputeBankTransaction
// @Summary      Dispute a statement line
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Bank account ID" format(uuid)
// @Param        txId path string true "Transaction ID" format(uuid)
// @Param        request body accountsapp.TransactionNoteRequest true "Reason"
// @Success      200 {object} Envelope[accountsapp.BankTransactionResponse]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /accounts/banks/{id}/transactions/{txId}/dispute [post]
func (h *BankAccountHandler) DisputeTransaction(c *gin.Context) {
	h.annotate(c, h.service.DisputeTransaction)
}

type transactionNoteAction func(ctx context.Context, accountID, txID uuid.UUID, req accountsapp.TransactionNoteRequest) (*accountsapp.BankTransactionResponse, error)

func (h *BankAccountHandler) annotate(c *gin.Context, action transactionNoteAction) {
	id, txID, ok := h.transactionIDs(c)
	if !ok {
		return
	}
	var req accountsapp.TransactionNoteRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	tx, err := action(c.Request.Context(), id, txID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tx)
}

func (h *BankAccountHandler) transactionIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, ok := h.parseID(c, "id", "bank account")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	txID, ok := h.parseID(c, "txId", "transaction")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return id, txID, true
}

// Reconciliation godoc
// @ID           getBankReconciliation
// @Summary      Current reconciliation position
// @Tags         accounts
// @Produce      json
// @Param        id path string true "Bank account ID" format(uuid)
// @Success      200 {object} Envelope[accounts.ReconciliationSummary]
// @Failure      404 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /accounts/banks/{id}/reconciliation [get]
func (h *BankAccountHandler) Reconciliation(c *gin.Context) {
	id, ok := h.parseID(c, "id", "bank account")
	if !ok {
		return
	}

	summary, err := h.service.Reconciliation(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Reconcile godoc
// @ID           reconcileBankAccount
// @Summary      Close a bank statement
// @Description  Succeeds only when every line is matched or excluded and the statement balance equals the book balance
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Bank account ID" format(uuid)
// @Param        request body accountsapp.ReconcileRequest true "Statement"
// @Success      200 {object} Envelope[accounts.ReconciliationSummary]
// @Failure      400 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Security     BearerAuth
// @Router       /accounts/banks/{id}/reconcile [post]
func (h *BankAccountHandler) Reconcile(c *gin.Context) {
	id, ok := h.parseID(c, "id", "bank account")
	if !ok {
		return
	}
	var req accountsapp.ReconcileRequest
	if !h.bindJSON(c, &req) {
		return
	}

	summary, err := h.service.Reconcile(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// RegisterRoutes mounts the bank account routes on rg
func (h *BankAccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	banks := rg.Group("/accounts/banks")
	banks.GET("", h.List)
	banks.POST("", h.Create)
	banks.GET("/:id", h.GetByID)
	banks.PUT("/:id", h.Update)
	banks.DELETE("/:id", h.Delete)
	banks.GET("/:id/transactions", h.ListTransactions)
	banks.POST("/:id/transactions", h.RecordTransactions)
	banks.POST("/:id/transactions/:txId/match", h.MatchTransaction)
	banks.POST("/:id/transactions/:txId/unmatch", h.UnmatchTransaction)
	banks.POST("/:id/transactions/:txId/exclude", h.ExcludeTransaction)
	banks.POST("/:id/transactions/:txId/dispute", h.DisputeTransaction)
	banks.GET("/:id/reconciliation", h.Reconciliation)
	banks.POST("/:id/reconcile", h.Reconcile)
}
