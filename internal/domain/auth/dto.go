package auth

import "hostelflow/internal/pkg/jwt"

type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Username   string `json:"username" binding:"required,max=150"`
	Password   string `json:"password" binding:"required,min=6"`
	RoomNumber string `json:"room_number" binding:"required,max=10"`
	Name       string `json:"name" binding:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=100"`
	RoomNumber *string `json:"room_number" binding:"omitempty,max=10"`
}

// AuthResult is returned by register, login and refresh.
type AuthResult struct {
	User   *User          `json:"user,omitempty"`
	Tokens *jwt.TokenPair `json:"tokens"`
}

// ProfileResponse is the public view of the authenticated identity.
type ProfileResponse struct {
	ID                int64  `json:"id"`
	Email             string `json:"email"`
	Username          string `json:"username"`
	Name              string `json:"name"`
	RoomNumber        string `json:"room_number"`
	IsSuperuser       bool   `json:"is_superuser"`
	IsServiceProvider bool   `json:"is_serviceprovider"`
}

func toProfile(u *User) ProfileResponse {
	return ProfileResponse{
		ID:                u.ID,
		Email:             u.Email,
		Username:          u.Username,
		Name:              u.Name,
		RoomNumber:        u.RoomNumber,
		IsSuperuser:       u.IsAdmin,
		IsServiceProvider: u.IsServiceProvider,
	}
}
