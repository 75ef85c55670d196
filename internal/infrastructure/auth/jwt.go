package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/b3erp/backend/internal/domain/identity"
	"github.com/b3erp/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	// ErrInvalidClaims covers tokens that verify but name no user or an unknown role
	ErrInvalidClaims = errors.New("invalid token claims")
)

// clockSkew tolerated on exp and nbf between instances
const clockSkew = 5 * time.Second

// Claims carries the caller identity inside an access token
type Claims struct {
	jwt.RegisteredClaims
	UserID   string        `json:"user_id"`
	Username string        `json:"username"`
	Role     identity.Role `json:"role"`
}

func (c *Claims) UserUUID() (uuid.UUID, error) { return uuid.Parse(c.UserID) }

// TTL is the time left before expiry at now, never negative
func (c *Claims) TTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil || now.After(c.ExpiresAt.Time) {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}

// Token is a signed access token as returned by login
type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
}

// JWTService issues and verifies HS256 access tokens. The issuer doubles as
// the audience.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret: []byte(cfg.Secret),
		ttl:    cfg.AccessTokenExpiration,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

func (s *JWTService) Expiration() time.Duration { return s.ttl }

func (s *JWTService) GenerateToken(user *identity.User) (*Token, error) {
	issued := s.now()
	expires := issued.Add(s.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		UserID:   user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Token{AccessToken: signed, ExpiresAt: expires, TokenType: "Bearer"}, nil
}

func (s *JWTService) parser() *jwt.Parser {
	return jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
		jwt.WithTimeFunc(s.now),
	)
}

// ValidateToken verifies signature, issuer and lifetime and returns the
// claims. Errors are one of the package sentinels.
func (s *JWTService) ValidateToken(raw string) (*Claims, error) {
	claims := new(Claims)
	_, err := s.parser().ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return s.secret, nil })
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenNotYetValid
	case err != nil:
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || !claims.Role.IsValid() {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
