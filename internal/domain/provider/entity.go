package provider

import "time"

// ServiceProvider is the profile attached one-to-one to a provider identity.
type ServiceProvider struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	UserID         int64     `gorm:"uniqueIndex;not null" json:"user_id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Phone          string    `gorm:"size:15" json:"phone"`
	Specialization string    `gorm:"size:100" json:"specialization"`
	CreatedAt      time.Time `json:"created_at"`
}

func (ServiceProvider) TableName() string { return "service_providers" }

// ServiceProviderService links a provider to a catalog service it offers.
type ServiceProviderService struct {
	ID                int64 `gorm:"primaryKey" json:"id"`
	ServiceProviderID int64 `gorm:"not null;uniqueIndex:idx_provider_service" json:"service_provider_id"`
	ServiceID         int64 `gorm:"not null;uniqueIndex:idx_provider_service;index" json:"service_id"`
}

func (ServiceProviderService) TableName() string { return "service_provider_services" }
