package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/b3erp/backend/internal/domain/identity"
	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/b3erp/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// LoginRequest carries the credentials of a sign-in
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,max=72"`
}

// ChangePasswordRequest replaces the caller's own password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required,max=72"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72,nefield=CurrentPassword"`
}

// UserInfo is the public view of a user
type UserInfo struct {
	ID          uuid.UUID     `json:"id"`
	Username    string        `json:"username"`
	DisplayName string        `json:"display_name"`
	Email       string        `json:"email"`
	Role        identity.Role `json:"role"`
	LastLoginAt *time.Time    `json:"last_login_at,omitempty"`
}

func toUserInfo(u *identity.User) UserInfo {
	name := u.DisplayName
	if name == "" {
		name = u.Username
	}
	return UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: name,
		Email:       u.Email,
		Role:        u.Role,
		LastLoginAt: u.LastLoginAt,
	}
}

// LoginResult is returned by a successful sign-in
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
	User        UserInfo  `json:"user"`
}

var (
	errInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "invalid username or password")
	errAccountLocked      = shared.NewDomainError(shared.CodeForbidden, "account is locked, try again later")
	errAccountInactive    = shared.NewDomainError(shared.CodeForbidden, "account has been deactivated")
	errWrongPassword      = shared.NewDomainError(shared.CodeUnauthorized, "current password is incorrect")
)

// AuthService handles sign-in and the bootstrap administrator
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	config     AuthServiceConfig
	logger     *zap.Logger
	now        func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		config:     config,
		logger:     logger,
		now:        time.Now,
	}
}

// Login verifies credentials and issues an access token. Repeated failures
// lock the account for the configured duration.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("username", req.Username))
	now := s.now()

	user, err := s.userRepo.FindByUsername(ctx, strings.ToLower(strings.TrimSpace(req.Username)))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("User not found during login", zap.String("username", req.Username))
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", req.Username))
		return nil, errAccountInactive
	}
	if user.IsLocked(now) {
		s.logger.Warn("Login attempt for locked account", zap.String("username", req.Username))
		return nil, errAccountLocked
	}

	if !user.VerifyPassword(req.Password) {
		locked := user.RecordLoginFailure(now, s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Save(ctx, user); err != nil {
			s.logger.Error("Failed to update user after login failure", zap.Error(err))
		}
		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("username", req.Username),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, errAccountLocked
		}
		s.logger.Warn("Invalid password attempt",
			zap.String("username", req.Username),
			zap.Int("failed_attempts", user.FailedAttempts))
		return nil, errInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, err
	}

	user.RecordLoginSuccess(now)
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	s.logger.Info("User logged in successfully",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User:        toUserInfo(user),
	}, nil
}

// Me returns the signed-in user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

// ChangePassword checks the current password before storing the new one.
// A wrong current password counts toward the lockout like a failed login.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	now := s.now()
	if user.IsLocked(now) {
		return errAccountLocked
	}
	if !user.VerifyPassword(req.CurrentPassword) {
		user.RecordLoginFailure(now, s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Save(ctx, user); err != nil {
			s.logger.Error("Failed to update user after password check", zap.Error(err))
		}
		return errWrongPassword
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.logger.Info("Password changed", zap.String("username", user.Username))
	return nil
}

// BootstrapAdmin creates the administrator when the user table is empty.
// It reports whether a user was created.
func (s *AuthService) BootstrapAdmin(ctx context.Context, username, password string) (bool, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	admin, err := identity.NewUser(username, password, identity.RoleAdmin)
	if err != nil {
		return false, err
	}
	if err := admin.SetProfile("Administrator", ""); err != nil {
		return false, err
	}
	if err := s.userRepo.Save(ctx, admin); err != nil {
		return false, err
	}
	s.logger.Info("Bootstrap administrator created", zap.String("username", admin.Username))
	return true, nil
}
