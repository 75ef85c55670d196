package persistence

import (
	"context"
	"strings"

	"github.com/b3erp/backend/internal/domain/accounts"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var bankAccountQuery = listQuery{
	searchColumns: []string{"account_name", "account_number", "bank_name"},
	conditions: map[string]string{
		"account_type": "account_type = ?",
		"currency":     "currency = ?",
		"is_active":    "is_active = ?",
	},
	sortFields:   BankAccountSortFields,
	defaultOrder: "bank_name ASC, account_name ASC",
}

var bankTransactionQuery = listQuery{
	searchColumns: []string{"description", "reference"},
	conditions: map[string]string{
		"status":           "status = ?",
		"transaction_type": "transaction_type = ?",
		"from_date":        "transaction_date >= ?",
		"to_date":          "transaction_date <= ?",
	},
	sortFields:   BankTransactionSortFields,
	defaultOrder: "transaction_date DESC, created_at DESC",
}

// GormBankAccountRepository implements BankAccountRepository using GORM
type GormBankAccountRepository struct {
	db *gorm.DB
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

// FindByID finds a bank account by its ID
func (r *GormBankAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounts.BankAccount, error) {
	var account accounts.BankAccount
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &account, nil
}

// FindAll finds bank accounts matching the filter
func (r *GormBankAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]accounts.BankAccount, error) {
	var list []accounts.BankAccount
	query := bankAccountQuery.apply(r.db.WithContext(ctx).Model(&accounts.BankAccount{}), filter)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Count counts bank accounts matching the filter
func (r *GormBankAccountRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := bankAccountQuery.applyWithoutPagination(r.db.WithContext(ctx).Model(&accounts.BankAccount{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByAccountNumber checks if an account number is already registered
func (r *GormBankAccountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&accounts.BankAccount{}).
		Where("account_number = ?", strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(accountNumber), " ", ""))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a bank account
func (r *GormBankAccountRepository) Save(ctx context.Context, account *accounts.BankAccount) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveVersioned(tx, account, account)
	})
}

// Delete deletes a bank account
func (r *GormBankAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&accounts.BankAccount{}, "id = ?", id))
}

// GormBankTransactionRepository implements BankTransactionRepository using GORM
type GormBankTransactionRepository struct {
	db *gorm.DB
}

// NewGormBankTransactionRepository creates a new GormBankTransactionRepository
func NewGormBankTransactionRepository(db *gorm.DB) *GormBankTransactionRepository {
	return &GormBankTransactionRepository{db: db}
}

// FindByID finds a statement line of the given account
func (r *GormBankTransactionRepository) FindByID(ctx context.Context, accountID, id uuid.UUID) (*accounts.BankTransaction, error) {
	var tx accounts.BankTransaction
	if err := r.db.WithContext(ctx).
		Where("bank_account_id = ? AND id = ?", accountID, id).
		First(&tx).Error; err != nil {
		return nil, translateError(err)
	}
	return &tx, nil
}

// FindByAccount lists statement lines of an account
func (r *GormBankTransactionRepository) FindByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]accounts.BankTransaction, error) {
	var list []accounts.BankTransaction
	query := bankTransactionQuery.apply(
		r.db.WithContext(ctx).Model(&accounts.BankTransaction{}).Where("bank_account_id = ?", accountID),
		filter,
	)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// CountByAccount counts statement lines of an account
func (r *GormBankTransactionRepository) CountByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := bankTransactionQuery.applyWithoutPagination(
		r.db.WithContext(ctx).Model(&accounts.BankTransaction{}).Where("bank_account_id = ?", accountID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a statement line
func (r *GormBankTransactionRepository) Save(ctx context.Context, tx *accounts.BankTransaction) error {
	return translateError(r.db.WithContext(ctx).Save(tx).Error)
}

// SaveBatch inserts or updates statement lines in one transaction
func (r *GormBankTransactionRepository) SaveBatch(ctx context.Context, txs []*accounts.BankTransaction) error {
	if len(txs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return upsertChildren(db, &txs, len(txs))
	})
}

var (
	_ accounts.BankAccountRepository     = (*GormBankAccountRepository)(nil)
	_ accounts.BankTransactionRepository = (*GormBankTransactionRepository)(nil)
)
