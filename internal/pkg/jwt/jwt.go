package jwt

import (
	"errors"
	"time"

	"github.com/google/uuid"
	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
	ErrNoRole         = errors.New("token needs at least one role")
)

type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// Claims carry the primary role in Role and every role the account holds in
// Roles (an admin can also be a provider).
type Claims struct {
	UserID    int64    `json:"user_id"`
	Role      string   `json:"role"`
	Roles     []string `json:"roles,omitempty"`
	TokenType string   `json:"token_type"`
	jwtlib.RegisteredClaims
}

// AllRoles falls back to Role for tokens issued with a single role.
func (c *Claims) AllRoles() []string {
	if len(c.Roles) > 0 {
		return c.Roles
	}
	if c.Role == "" {
		return nil
	}
	return []string{c.Role}
}

// TokenPair is what login, registration and refresh hand back to clients.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func New(secret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateToken issues an access token. The first role is the primary one.
func (s *Service) GenerateToken(userID int64, roles ...string) (string, error) {
	return s.sign(userID, roles, TokenTypeAccess, s.accessTTL)
}

func (s *Service) GenerateRefreshToken(userID int64, roles ...string) (string, error) {
	return s.sign(userID, roles, TokenTypeRefresh, s.refreshTTL)
}

func (s *Service) GeneratePair(userID int64, roles ...string) (*TokenPair, error) {
	access, err := s.GenerateToken(userID, roles...)
	if err != nil {
		return nil, err
	}
	refresh, err := s.GenerateRefreshToken(userID, roles...)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) sign(userID int64, roles []string, tokenType string, ttl time.Duration) (string, error) {
	if len(roles) == 0 {
		return "", ErrNoRole
	}

	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Role:      roles[0],
		Roles:     roles,
		TokenType: tokenType,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken accepts only access tokens.
func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	return s.validate(tokenStr, TokenTypeAccess)
}

func (s *Service) ValidateRefreshToken(tokenStr string) (*Claims, error) {
	return s.validate(tokenStr, TokenTypeRefresh)
}

func (s *Service) validate(tokenStr, wantType string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}
