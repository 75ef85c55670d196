package accounts

import (
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReconciliationSummary compares the statement with the book balance
type ReconciliationSummary struct {
	StatementBalance decimal.Decimal `json:"statement_balance"`
	ComputedBalance  decimal.Decimal `json:"computed_balance"`
	BookBalance      decimal.Decimal `json:"book_balance"`
	Difference       decimal.Decimal `json:"difference"`
	MatchedCount     int             `json:"matched_count"`
	MatchedAmount    decimal.Decimal `json:"matched_amount"`
	UnmatchedCount   int             `json:"unmatched_count"`
	UnmatchedAmount  decimal.Decimal `json:"unmatched_amount"`
	ExcludedCount    int             `json:"excluded_count"`
	DisputedCount    int             `json:"disputed_count"`
	MatchRate        float64         `json:"match_rate"`
	IsReconciled     bool            `json:"is_reconciled"`
}

// Summarise computes the reconciliation position of an account. The
// computed balance is the opening balance plus every non-excluded line;
// the statement balance is the last closed statement when there is one.
func Summarise(account *BankAccount, txs []BankTransaction) ReconciliationSummary {
	s := ReconciliationSummary{
		ComputedBalance: account.OpeningBalance,
		BookBalance:     account.CurrentBalance,
		MatchedAmount:   decimal.Zero,
		UnmatchedAmount: decimal.Zero,
	}
	considered := 0
	for _, t := range txs {
		switch t.Status {
		case TransactionMatched:
			s.MatchedCount++
			s.MatchedAmount = s.MatchedAmount.Add(t.Amount)
		case TransactionUnmatched:
			s.UnmatchedCount++
			s.UnmatchedAmount = s.UnmatchedAmount.Add(t.Amount)
		case TransactionExcluded:
			s.ExcludedCount++
			continue
		case TransactionDisputed:
			s.DisputedCount++
		}
		considered++
		s.ComputedBalance = s.ComputedBalance.Add(t.Amount)
	}
	s.ComputedBalance = shared.RoundMoney(s.ComputedBalance)
	s.StatementBalance = s.ComputedBalance
	if account.LastStatementBalance != nil {
		s.StatementBalance = *account.LastStatementBalance
	}
	s.Difference = s.StatementBalance.Sub(s.BookBalance)
	s.MatchRate = shared.Percent(int64(s.MatchedCount), int64(considered))
	s.IsReconciled = s.Difference.IsZero() && s.UnmatchedCount == 0 && s.DisputedCount == 0
	return s
}

// Reconcile closes a statement when nothing is left to match and the
// statement balance equals the book balance.
func Reconcile(account *BankAccount, txs []BankTransaction, statementDate time.Time, statementBalance decimal.Decimal) (ReconciliationSummary, error) {
	summary := Summarise(account, txs)
	if summary.UnmatchedCount > 0 || summary.DisputedCount > 0 {
		return summary, shared.InvalidState("all transactions must be matched or excluded before reconciling")
	}
	if !shared.RoundMoney(statementBalance).Equal(account.CurrentBalance) {
		return summary, shared.InvalidState("statement balance does not equal book balance")
	}
	account.MarkReconciled(statementDate, statementBalance)
	summary.StatementBalance = *account.LastStatementBalance
	summary.Difference = summary.StatementBalance.Sub(summary.BookBalance)
	summary.IsReconciled = true
	return summary, nil
}
