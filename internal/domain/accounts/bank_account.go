package accounts

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const aggregateTypeBankAccount = "bank_account"

// AccountType classifies a bank account
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeInvestment AccountType = "investment"
)

// IsValid reports whether t is a known account type
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCredit, AccountTypeInvestment:
		return true
	}
	return false
}

// ReconciliationFrequency is how often the account is expected to be reconciled
type ReconciliationFrequency string

const (
	FrequencyDaily     ReconciliationFrequency = "daily"
	FrequencyWeekly    ReconciliationFrequency = "weekly"
	FrequencyMonthly   ReconciliationFrequency = "monthly"
	FrequencyQuarterly ReconciliationFrequency = "quarterly"
)

// IsValid reports whether f is a known frequency
func (f ReconciliationFrequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly:
		return true
	}
	return false
}

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// BankAccount is a company bank account tracked for reconciliation
type BankAccount struct {
	shared.BaseAggregateRoot
	AccountNumber           string                  `gorm:"type:varchar(34);not null;uniqueIndex" json:"account_number"`
	AccountName             string                  `gorm:"type:varchar(200);not null" json:"account_name"`
	BankName                string                  `gorm:"type:varchar(200);not null" json:"bank_name"`
	Branch                  string                  `gorm:"type:varchar(200)" json:"branch"`
	IFSCCode                string                  `gorm:"column:ifsc_code;type:varchar(20)" json:"ifsc_code"`
	AccountType             AccountType             `gorm:"type:varchar(20);not null;index" json:"account_type"`
	Currency                string                  `gorm:"type:varchar(3);not null;default:'USD';index" json:"currency"`
	GLAccountCode           string                  `gorm:"column:gl_account_code;type:varchar(30)" json:"gl_account_code"`
	OpeningBalance          decimal.Decimal         `gorm:"type:decimal(18,2);not null;default:0" json:"opening_balance"`
	CurrentBalance          decimal.Decimal         `gorm:"type:decimal(18,2);not null;default:0" json:"current_balance"`
	LastStatementDate       *time.Time              `json:"last_statement_date,omitempty"`
	LastStatementBalance    *decimal.Decimal        `gorm:"type:decimal(18,2)" json:"last_statement_balance,omitempty"`
	LastReconciledAt        *time.Time              `json:"last_reconciled_at,omitempty"`
	LastReconciledBalance   *decimal.Decimal        `gorm:"type:decimal(18,2)" json:"last_reconciled_balance,omitempty"`
	ReconciliationFrequency ReconciliationFrequency `gorm:"type:varchar(10);not null;default:'monthly'" json:"reconciliation_frequency"`
	MatchingThreshold       int                     `gorm:"not null;default:90" json:"matching_threshold"`
	IsActive                bool                    `gorm:"not null;index" json:"is_active"`
}

// TableName returns the table name for GORM
func (BankAccount) TableName() string {
	return "bank_accounts"
}

// BankAccountDetails holds the editable attributes of a bank account
type BankAccountDetails struct {
	AccountName             string
	BankName                string
	Branch                  string
	IFSCCode                string
	AccountType             AccountType
	Currency                string
	GLAccountCode           string
	ReconciliationFrequency ReconciliationFrequency
	MatchingThreshold       int
}

func (d *BankAccountDetails) normalise() error {
	d.AccountName = strings.TrimSpace(d.AccountName)
	d.BankName = strings.TrimSpace(d.BankName)
	d.Currency = strings.ToUpper(strings.TrimSpace(d.Currency))
	if d.Currency == "" {
		d.Currency = "USD"
	}
	if d.ReconciliationFrequency == "" {
		d.ReconciliationFrequency = FrequencyMonthly
	}
	if d.AccountName == "" || d.BankName == "" {
		return shared.InvalidInput("account_name and bank_name are required")
	}
	if !d.AccountType.IsValid() {
		return shared.InvalidInput("unknown account type: " + string(d.AccountType))
	}
	if !currencyPattern.MatchString(d.Currency) {
		return shared.InvalidInput("currency must be a 3-letter ISO code")
	}
	if !d.ReconciliationFrequency.IsValid() {
		return shared.InvalidInput("unknown reconciliation frequency")
	}
	if d.MatchingThreshold < 0 || d.MatchingThreshold > 100 {
		return shared.InvalidInput("matching_threshold must be between 0 and 100")
	}
	return nil
}

// NewBankAccount creates an active account whose book balance starts at the opening balance
func NewBankAccount(accountNumber string, details BankAccountDetails, opening decimal.Decimal) (*BankAccount, error) {
	accountNumber = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(accountNumber), " ", ""))
	if len(accountNumber) < 4 || len(accountNumber) > 34 {
		return nil, shared.InvalidInput("account_number must be 4 to 34 characters")
	}
	if err := details.normalise(); err != nil {
		return nil, err
	}
	a := &BankAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AccountNumber:     accountNumber,
		OpeningBalance:    shared.RoundMoney(opening),
		CurrentBalance:    shared.RoundMoney(opening),
		IsActive:          true,
	}
	a.apply(details)
	return a, nil
}

func (a *BankAccount) apply(d BankAccountDetails) {
	a.AccountName = d.AccountName
	a.BankName = d.BankName
	a.Branch = d.Branch
	a.IFSCCode = d.IFSCCode
	a.AccountType = d.AccountType
	a.Currency = d.Currency
	a.GLAccountCode = d.GLAccountCode
	a.ReconciliationFrequency = d.ReconciliationFrequency
	a.MatchingThreshold = d.MatchingThreshold
}

// Update replaces the editable attributes
func (a *BankAccount) Update(d BankAccountDetails) error {
	if err := d.normalise(); err != nil {
		return err
	}
	a.apply(d)
	a.Touch()
	return nil
}

// SetActive toggles the account
func (a *BankAccount) SetActive(active bool) {
	a.IsActive = active
	a.Touch()
}

// SetBookBalance overrides the ledger balance the statement is compared against
func (a *BankAccount) SetBookBalance(balance decimal.Decimal) {
	a.CurrentBalance = shared.RoundMoney(balance)
	a.Touch()
}

// MarkReconciled records a successful reconciliation against a statement
func (a *BankAccount) MarkReconciled(statementDate time.Time, statementBalance decimal.Decimal) {
	now := time.Now()
	bal := shared.RoundMoney(statementBalance)
	a.LastStatementDate = &statementDate
	a.LastStatementBalance = &bal
	a.LastReconciledAt = &now
	a.LastReconciledBalance = &bal
	a.Touch()

	event := shared.NewStatusChangedEvent(aggregateTypeBankAccount, a.ID, a.AccountNumber, "open", "reconciled")
	event.Reason = fmt.Sprintf("statement %s balance %s", statementDate.Format("2006-01-02"), bal.StringFixed(2))
	a.AddDomainEvent(event)
}
