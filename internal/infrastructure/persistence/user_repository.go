package persistence

import (
	"context"
	"strings"

	"github.com/b3erp/backend/internal/domain/identity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository stores login accounts. Usernames are kept lower case.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) first(ctx context.Context, query string, arg any) (*identity.User, error) {
	user := new(identity.User)
	if err := r.db.WithContext(ctx).Where(query, arg).Take(user).Error; err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByUsername ignores case and surrounding blanks
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	return r.first(ctx, "username = ?", strings.ToLower(strings.TrimSpace(username)))
}

// Count is used to decide whether the bootstrap admin is needed
func (r *GormUserRepository) Count(ctx context.Context) (n int64, err error) {
	err = r.db.WithContext(ctx).Model(&identity.User{}).Count(&n).Error
	return n, err
}

func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveVersioned(tx, user, user)
	})
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
