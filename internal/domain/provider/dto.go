package provider

import "hostelflow/internal/domain/catalog"

type CreateRequest struct {
	Name           string  `json:"name" binding:"required,max=100"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          string  `json:"phone" binding:"omitempty,max=15"`
	Specialization string  `json:"specialization" binding:"omitempty,max=100"`
	Services       []int64 `json:"services"`
}

// UpdateRequest is a partial patch; nil fields are left alone. A present
// ServiceIDs replaces the whole link set.
type UpdateRequest struct {
	Name           *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Email          *string  `json:"email" binding:"omitempty,email"`
	Phone          *string  `json:"phone" binding:"omitempty,max=15"`
	Specialization *string  `json:"specialization" binding:"omitempty,max=100"`
	ServiceIDs     *[]int64 `json:"service_ids"`
}

type CreatedProvider struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type CreateResult struct {
	Provider        CreatedProvider         `json:"service_provider"`
	CreatedServices []catalog.HostelService `json:"newly_created_services"`
}

// OfferedService is one entry of a provider's nested service list.
type OfferedService struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	Availability bool    `json:"availability"`
}

type ProviderView struct {
	ServiceProvider
	Services []OfferedService `json:"services"`
}

type ProfileUser struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type ProfileView struct {
	ID             int64       `json:"id"`
	User           ProfileUser `json:"user"`
	Phone          string      `json:"phone"`
	Specialization string      `json:"specialization"`
}
