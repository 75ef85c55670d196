package accounts

import (
	"fmt"
	"strings"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a statement line
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionFee        TransactionType = "fee"
	TransactionInterest   TransactionType = "interest"
	TransactionTransfer   TransactionType = "transfer"
)

// IsValid reports whether t is a known transaction type
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionDeposit, TransactionWithdrawal, TransactionFee, TransactionInterest, TransactionTransfer:
		return true
	}
	return false
}

// TransactionStatus is the matching state of a statement line
type TransactionStatus string

const (
	TransactionUnmatched TransactionStatus = "unmatched"
	TransactionMatched   TransactionStatus = "matched"
	TransactionExcluded  TransactionStatus = "excluded"
	TransactionDisputed  TransactionStatus = "disputed"
)

// BankTransaction is one line of a bank statement
type BankTransaction struct {
	shared.BaseEntity
	BankAccountID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"bank_account_id"`
	TransactionDate  time.Time         `gorm:"not null;index" json:"transaction_date"`
	ValueDate        *time.Time        `json:"value_date,omitempty"`
	Description      string            `gorm:"type:varchar(500);not null" json:"description"`
	Reference        string            `gorm:"type:varchar(100);index" json:"reference"`
	TransactionType  TransactionType   `gorm:"type:varchar(20);not null" json:"transaction_type"`
	Amount           decimal.Decimal   `gorm:"type:decimal(18,2);not null" json:"amount"`
	Status           TransactionStatus `gorm:"type:varchar(20);not null;default:'unmatched';index" json:"status"`
	MatchedReference string            `gorm:"type:varchar(100)" json:"matched_reference"`
	MatchedAt        *time.Time        `json:"matched_at,omitempty"`
	Notes            string            `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (BankTransaction) TableName() string {
	return "bank_transactions"
}

// NewBankTransaction creates an unmatched statement line. Deposits and
// interest are stored positive, withdrawals and fees negative, transfers
// keep the sign given.
func NewBankTransaction(accountID uuid.UUID, date time.Time, txType TransactionType, amount decimal.Decimal, description, reference string) (*BankTransaction, error) {
	if accountID == uuid.Nil {
		return nil, shared.InvalidInput("bank account is required")
	}
	if !txType.IsValid() {
		return nil, shared.InvalidInput("unknown transaction type: " + string(txType))
	}
	if amount.IsZero() {
		return nil, shared.InvalidInput("amount cannot be zero")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.InvalidInput("description is required")
	}
	switch txType {
	case TransactionDeposit, TransactionInterest:
		amount = amount.Abs()
	case TransactionWithdrawal, TransactionFee:
		amount = amount.Abs().Neg()
	}
	return &BankTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		BankAccountID:   accountID,
		TransactionDate: date,
		Description:     strings.TrimSpace(description),
		Reference:       reference,
		TransactionType: txType,
		Amount:          shared.RoundMoney(amount),
		Status:          TransactionUnmatched,
	}, nil
}

// Match links the line to a book entry
func (t *BankTransaction) Match(bookReference string) error {
	if t.Status == TransactionMatched {
		return shared.InvalidState("transaction is already matched")
	}
	if strings.TrimSpace(bookReference) == "" {
		return shared.InvalidInput("matched reference is required")
	}
	now := time.Now()
	t.Status = TransactionMatched
	t.MatchedReference = bookReference
	t.MatchedAt = &now
	t.Touch()
	return nil
}

// Unmatch returns a matched, excluded or disputed line to the unmatched pool
func (t *BankTransaction) Unmatch() error {
	if t.Status == TransactionUnmatched {
		return shared.InvalidState("transaction is not matched")
	}
	t.Status = TransactionUnmatched
	t.MatchedReference = ""
	t.MatchedAt = nil
	t.Touch()
	return nil
}

// Exclude removes the line from reconciliation
func (t *BankTransaction) Exclude(reason string) error {
	if t.Status == TransactionMatched {
		return shared.InvalidState("unmatch the transaction before excluding it")
	}
	t.Status = TransactionExcluded
	t.appendNote("Excluded", reason)
	t.Touch()
	return nil
}

// Dispute flags the line for follow-up with the bank
func (t *BankTransaction) Dispute(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return shared.InvalidInput("dispute reason is required")
	}
	if t.Status == TransactionMatched {
		return shared.InvalidState("unmatch the transaction before disputing it")
	}
	t.Status = TransactionDisputed
	t.appendNote("Disputed", reason)
	t.Touch()
	return nil
}

func (t *BankTransaction) appendNote(label, reason string) {
	if reason == "" {
		return
	}
	t.Notes = strings.TrimSpace(fmt.Sprintf("%s\n%s: %s", t.Notes, label, reason))
}
