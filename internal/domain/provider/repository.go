package provider

import (
	"context"
	"errors"

	"hostelflow/internal/domain/catalog"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

// NewRepository works on a plain handle or on an open transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, p *ServiceProvider) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*ServiceProvider, error) {
	var p ServiceProvider
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*ServiceProvider, error) {
	var p ServiceProvider
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&ServiceProvider{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

func (r *Repository) Save(ctx context.Context, p *ServiceProvider) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&ServiceProvider{}, id).Error
}

func (r *Repository) List(ctx context.Context) ([]ServiceProvider, error) {
	var out []ServiceProvider
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *Repository) Link(ctx context.Context, providerID, serviceID int64) error {
	return r.db.WithContext(ctx).Create(&ServiceProviderService{
		ServiceProviderID: providerID,
		ServiceID:         serviceID,
	}).Error
}

func (r *Repository) Unlink(ctx context.Context, providerID int64) error {
	return r.db.WithContext(ctx).
		Where("service_provider_id = ?", providerID).
		Delete(&ServiceProviderService{}).Error
}

// UpdateProviderName rewrites the display name on every service the provider offers.
func (r *Repository) UpdateProviderName(ctx context.Context, providerID int64, name string) error {
	sub := r.db.Model(&ServiceProviderService{}).
		Select("service_id").
		Where("service_provider_id = ?", providerID)
	return r.db.WithContext(ctx).Model(&catalog.HostelService{}).
		Where("id IN (?)", sub).
		Update("provider_name", name).Error
}

type offeredRow struct {
	ServiceProviderID int64
	OfferedService
}

// OfferedServices returns the linked services of the given providers, keyed by provider id.
func (r *Repository) OfferedServices(ctx context.Context, providerIDs []int64) (map[int64][]OfferedService, error) {
	out := make(map[int64][]OfferedService, len(providerIDs))
	if len(providerIDs) == 0 {
		return out, nil
	}

	var rows []offeredRow
	err := r.db.WithContext(ctx).
		Table("service_provider_services AS l").
		Select("l.service_provider_id, s.id, s.name, s.price, s.rating, s.availability").
		Joins("JOIN services s ON s.id = l.service_id").
		Where("l.service_provider_id IN ?", providerIDs).
		Order("l.service_provider_id, s.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.ServiceProviderID] = append(out[row.ServiceProviderID], row.OfferedService)
	}
	return out, nil
}

// UserIDsForService returns the identities of every provider linked to serviceID.
func (r *Repository) UserIDsForService(ctx context.Context, serviceID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Table("service_provider_services AS l").
		Joins("JOIN service_providers p ON p.id = l.service_provider_id").
		Where("l.service_id = ?", serviceID).
		Order("p.user_id").
		Distinct().
		Pluck("p.user_id", &ids).Error
	return ids, err
}

// ServiceIDsForUser returns the services offered by the provider whose identity is userID.
func (r *Repository) ServiceIDsForUser(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Table("service_provider_services AS l").
		Joins("JOIN service_providers p ON p.id = l.service_provider_id").
		Where("p.user_id = ?", userID).
		Pluck("l.service_id", &ids).Error
	return ids, err
}
