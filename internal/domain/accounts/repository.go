package accounts

import (
	"context"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BankAccountRepository persists bank accounts
type BankAccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BankAccount, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]BankAccount, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
	Save(ctx context.Context, account *BankAccount) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BankTransactionRepository persists statement lines
type BankTransactionRepository interface {
	FindByID(ctx context.Context, accountID, id uuid.UUID) (*BankTransaction, error)
	FindByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]BankTransaction, error)
	CountByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, tx *BankTransaction) error
	SaveBatch(ctx context.Context, txs []*BankTransaction) error
}
