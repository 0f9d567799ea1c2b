package auth

import (
	"context"

	"hostelflow/internal/pkg/jwt"
)

// UserRepositoryInterface lists the user store methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *User) error
	List(ctx context.Context) ([]User, error)
}

type tokenIssuer interface {
	GeneratePair(userID int64, roles ...string) (*jwt.TokenPair, error)
	ValidateRefreshToken(tokenStr string) (*jwt.Claims, error)
}
