package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/b3erp/backend/internal/domain/identity"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/b3erp/backend/internal/infrastructure/auth"
	"github.com/b3erp/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

const testPassword = "correct-horse"

var (
	fixedNow = time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)

	// hashing at bcrypt cost 12 is slow, so every test shares one user template
	templateUser *identity.User
)

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	if templateUser == nil {
		u, err := identity.NewUser("operator", testPassword, identity.RoleManager)
		require.NoError(t, err)
		templateUser = u
	}
	u := *templateUser
	u.ID = uuid.New()
	return &u
}

func newJWT() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                strings.Repeat("s", 32),
		AccessTokenExpiration: time.Hour,
		Issuer:                "b3erp",
	})
}

func setupService(logger *zap.Logger) (*AuthService, *MockUserRepository) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, newJWT(), AuthServiceConfig{MaxLoginAttempts: 3, LockDuration: 10 * time.Minute}, logger)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func codeOf(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token and records the login", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		svc, repo := setupService(zap.New(core))
		user := newTestUser(t)
		user.FailedAttempts = 2
		repo.On("FindByUsername", ctx, "operator").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		result, err := svc.Login(ctx, LoginRequest{Username: " Operator ", Password: testPassword})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, user.ID, result.User.ID)
		assert.Equal(t, "operator", result.User.DisplayName)
		assert.Zero(t, user.FailedAttempts)
		require.NotNil(t, user.LastLoginAt)
		assert.Equal(t, fixedNow, *user.LastLoginAt)

		claims, err := newJWT().ValidateToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, identity.RoleManager, claims.Role)
		assert.Equal(t, 1, logs.FilterMessage("User logged in successfully").Len())
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, repo := setupService(nil)
		repo.On("FindByUsername", ctx, "ghost").Return(nil, shared.NotFound("user"))

		_, err := svc.Login(ctx, LoginRequest{Username: "ghost", Password: testPassword})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("repository failure is passed through", func(t *testing.T) {
		svc, repo := setupService(nil)
		boom := errors.New("connection reset")
		repo.On("FindByUsername", ctx, "operator").Return(nil, boom)

		_, err := svc.Login(ctx, LoginRequest{Username: "operator", Password: testPassword})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("deactivated account", func(t *testing.T) {
		svc, repo := setupService(nil)
		user := newTestUser(t)
		user.IsActive = false
		repo.On("FindByUsername", ctx, "operator").Return(user, nil)

		_, err := svc.Login(ctx, LoginRequest{Username: "operator", Password: testPassword})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("repeated failures lock the account", func(t *testing.T) {
		svc, repo := setupService(nil)
		user := newTestUser(t)
		repo.On("FindByUsername", ctx, "operator").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		for i := 0; i < 2; i++ {
			_, err := svc.Login(ctx, LoginRequest{Username: "operator", Password: "wrong-password"})
			assert.ErrorIs(t, err, shared.ErrUnauthorized)
		}
		assert.Equal(t, 2, user.FailedAttempts)

		_, err := svc.Login(ctx, LoginRequest{Username: "operator", Password: "wrong-password"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		require.NotNil(t, user.LockedUntil)
		assert.Equal(t, fixedNow.Add(10*time.Minute), *user.LockedUntil)

		_, err = svc.Login(ctx, LoginRequest{Username: "operator", Password: testPassword})
		assert.Equal(t, codeOf(errAccountLocked), codeOf(err))

		svc.now = func() time.Time { return fixedNow.Add(11 * time.Minute) }
		_, err = svc.Login(ctx, LoginRequest{Username: "operator", Password: testPassword})
		require.NoError(t, err)
		assert.Nil(t, user.LockedUntil)
	})

	t.Run("save failure after login is only logged", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		svc, repo := setupService(zap.New(core))
		user := newTestUser(t)
		repo.On("FindByUsername", ctx, "operator").Return(user, nil)
		repo.On("Save", ctx, user).Return(errors.New("disk full"))

		_, err := svc.Login(ctx, LoginRequest{Username: "operator", Password: testPassword})
		require.NoError(t, err)
		assert.Equal(t, 1, logs.Len())
	})
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	svc, repo := setupService(nil)
	user := newTestUser(t)
	require.NoError(t, user.SetProfile("Line Operator", "Op@Example.com"))
	repo.On("FindByID", ctx, user.ID).Return(user, nil)

	info, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Line Operator", info.DisplayName)
	assert.Equal(t, "op@example.com", info.Email)

	missing := uuid.New()
	repo.On("FindByID", ctx, missing).Return(nil, shared.NotFound("user"))
	_, err = svc.Me(ctx, missing)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAuthService_BootstrapAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("skips when users exist", func(t *testing.T) {
		svc, repo := setupService(nil)
		repo.On("Count", ctx).Return(int64(4), nil)

		created, err := svc.BootstrapAdmin(ctx, "admin", "admin-password")
		require.NoError(t, err)
		assert.False(t, created)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("creates the first administrator", func(t *testing.T) {
		svc, repo := setupService(nil)
		repo.On("Count", ctx).Return(int64(0), nil)
		repo.On("Save", ctx, mock.MatchedBy(func(u *identity.User) bool {
			return u.Username == "admin" && u.Role == identity.RoleAdmin && u.IsActive
		})).Return(nil)

		created, err := svc.BootstrapAdmin(ctx, "Admin", "admin-password")
		require.NoError(t, err)
		assert.True(t, created)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		svc, repo := setupService(nil)
		repo.On("Count", ctx).Return(int64(0), nil)

		_, err := svc.BootstrapAdmin(ctx, "admin", "short")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}
