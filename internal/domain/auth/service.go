package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hostelflow/internal/database"
)

// Service contains all business logic for authentication
type Service struct {
	users UserRepositoryInterface
	jwt   tokenIssuer
}

func NewService(users UserRepositoryInterface, jwt tokenIssuer) *Service {
	return &Service{users: users, jwt: jwt}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if err := s.validateEmailUnique(ctx, req.Email); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Email:        normalizeEmail(req.Email),
		Username:     strings.TrimSpace(req.Username),
		Name:         strings.TrimSpace(req.Name),
		RoomNumber:   strings.TrimSpace(req.RoomNumber),
		PasswordHash: hashed,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return s.issue(user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := CheckPassword(req.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Refresh exchanges a valid refresh token for a new token pair. The role is
// re-read from the account so flag changes take effect on the next refresh.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	pair, err := s.jwt.GeneratePair(user.ID, user.Roles()...)
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}
	return &AuthResult{Tokens: pair}, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.RoomNumber != nil {
		user.RoomNumber = strings.TrimSpace(*req.RoomNumber)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.users.List(ctx)
}

func (s *Service) issue(user *User) (*AuthResult, error) {
	pair, err := s.jwt.GeneratePair(user.ID, user.Roles()...)
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}
	return &AuthResult{User: user, Tokens: pair}, nil
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailAlreadyExists
	}
	return nil
}
