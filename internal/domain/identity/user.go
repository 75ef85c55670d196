package identity

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/b3erp/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role grants a coarse permission level
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleUser
}

// CanWrite reports whether the role may create, update or delete records
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleManager
}

// Password cost for bcrypt
const bcryptCost = 12

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt input limit
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{2,49}$`)

// User is an operator who can sign in to the ERP
type User struct {
	shared.BaseAggregateRoot
	Username       string     `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	DisplayName    string     `gorm:"type:varchar(200)" json:"display_name"`
	Email          string     `gorm:"type:varchar(200)" json:"email"`
	PasswordHash   string     `gorm:"type:varchar(100);not null" json:"-"`
	Role           Role       `gorm:"type:varchar(20);not null" json:"role"`
	IsActive       bool       `gorm:"not null" json:"is_active"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	FailedAttempts int        `gorm:"not null;default:0" json:"-"`
	LockedUntil    *time.Time `json:"locked_until,omitempty"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates an active user with a hashed password
func NewUser(username, password string, role Role) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(username) {
		return nil, shared.InvalidInput("username must be 3-50 characters of a-z, 0-9, '_', '.', '-'")
	}
	if !role.IsValid() {
		return nil, shared.InvalidInput("unknown role: " + string(role))
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		PasswordHash:      hash,
		Role:              role,
		IsActive:          true,
	}, nil
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return "", shared.InvalidInput("password must be between 8 and 72 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// SetProfile updates the display name and email
func (u *User) SetProfile(displayName, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.InvalidInput("email is invalid")
		}
	}
	if len(displayName) > 200 {
		return shared.InvalidInput("display name cannot exceed 200 characters")
	}
	u.DisplayName = strings.TrimSpace(displayName)
	u.Email = email
	u.Touch()
	return nil
}

// SetPassword replaces the password hash
func (u *User) SetPassword(password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.Touch()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsLocked reports whether a lockout is in force at now
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// RecordLoginSuccess records a successful login
func (u *User) RecordLoginSuccess(now time.Time) {
	u.LastLoginAt = &now
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.Touch()
}

// RecordLoginFailure records a failed login attempt and locks the account
// once maxAttempts is reached. Returns true if the account was locked.
func (u *User) RecordLoginFailure(now time.Time, maxAttempts int, lockDuration time.Duration) bool {
	u.FailedAttempts++
	u.Touch()
	if maxAttempts > 0 && u.FailedAttempts >= maxAttempts {
		until := now.Add(lockDuration)
		u.LockedUntil = &until
		u.FailedAttempts = 0
		return true
	}
	return false
}
