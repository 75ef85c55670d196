package identity

import (
	"errors"
	"testing"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("  Admin ", "s3cret-pass", RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
	assert.True(t, u.VerifyPassword("s3cret-pass"))
	assert.False(t, u.VerifyPassword("wrong"))

	_, err = NewUser("ab", "s3cret-pass", RoleUser)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	_, err = NewUser("bob", "short", RoleUser)
	assert.Error(t, err)
	_, err = NewUser("bob", "longenough", "root")
	assert.Error(t, err)
}

func TestRole_CanWrite(t *testing.T) {
	assert.True(t, RoleAdmin.CanWrite())
	assert.True(t, RoleManager.CanWrite())
	assert.False(t, RoleUser.CanWrite())
}

func TestLoginLockout(t *testing.T) {
	u, err := NewUser("operator", "s3cret-pass", RoleUser)
	require.NoError(t, err)
	now := time.Now()

	assert.False(t, u.RecordLoginFailure(now, 3, time.Minute))
	assert.False(t, u.RecordLoginFailure(now, 3, time.Minute))
	assert.True(t, u.RecordLoginFailure(now, 3, time.Minute))
	assert.True(t, u.IsLocked(now))
	assert.False(t, u.IsLocked(now.Add(2*time.Minute)))

	u.RecordLoginSuccess(now.Add(2 * time.Minute))
	assert.Nil(t, u.LockedUntil)
	assert.NotNil(t, u.LastLoginAt)
}

func TestSetProfile(t *testing.T) {
	u, err := NewUser("operator", "s3cret-pass", RoleUser)
	require.NoError(t, err)
	require.NoError(t, u.SetProfile(" Ops ", "Ops@Example.com"))
	assert.Equal(t, "ops@example.com", u.Email)
	assert.Error(t, u.SetProfile("x", "nope"))
}
