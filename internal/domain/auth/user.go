package auth

import (
	"time"

	"hostelflow/internal/middleware"
)

// User is a hostel resident, a service provider or an administrator.
// Providers are regular identities with IsServiceProvider set and a linked
// provider profile.
type User struct {
	ID                int64     `gorm:"primaryKey" json:"id"`
	Email             string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Username          string    `gorm:"size:150;not null" json:"username"`
	Name              string    `gorm:"size:100" json:"name"`
	RoomNumber        string    `gorm:"size:10" json:"room_number"`
	PasswordHash      string    `gorm:"not null" json:"-"`
	IsServiceProvider bool      `gorm:"not null;default:false" json:"is_serviceprovider"`
	IsAdmin           bool      `gorm:"not null;default:false" json:"is_superuser"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Role is the token role derived from the account flags. Admin wins over provider.
func (u *User) Role() string {
	switch {
	case u.IsAdmin:
		return middleware.RoleAdmin
	case u.IsServiceProvider:
		return middleware.RoleProvider
	default:
		return middleware.RoleStudent
	}
}

// Roles lists every role the account holds, primary role first. An admin
// who is also a provider keeps access to the provider routes.
func (u *User) Roles() []string {
	roles := []string{u.Role()}
	if u.IsAdmin && u.IsServiceProvider {
		roles = append(roles, middleware.RoleProvider)
	}
	return roles
}
