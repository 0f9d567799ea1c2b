package catalog

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

// NewRepository works on a plain handle or on an open transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListAvailable(ctx context.Context) ([]HostelService, error) {
	var out []HostelService
	err := r.db.WithContext(ctx).
		Where("availability = ?", true).
		Order("id").
		Find(&out).Error
	return out, err
}

// GetByName matches the whole name case-insensitively.
func (r *Repository) GetByName(ctx context.Context, name string) (*HostelService, error) {
	var s HostelService
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*HostelService, error) {
	var s HostelService
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CountExisting reports how many of ids refer to catalog rows.
func (r *Repository) CountExisting(ctx context.Context, ids []int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&HostelService{}).Where("id IN ?", ids).Count(&n).Error
	return n, err
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&HostelService{}).Count(&n).Error
	return n, err
}

// EnsurePredefined gets or creates the catalog row for a predefined id, keyed
// by name. An existing row only has its provider name refreshed. created
// reports whether a new row was inserted; unknown ids return ok=false.
func (r *Repository) EnsurePredefined(ctx context.Context, id int64, providerName string) (svc *HostelService, created, ok bool, err error) {
	p, known := LookupPredefined(id)
	if !known {
		return nil, false, false, nil
	}

	db := r.db.WithContext(ctx)

	var existing HostelService
	err = db.Where("name = ?", p.Name).First(&existing).Error
	switch {
	case err == nil:
		if err := db.Model(&existing).Update("provider_name", providerName).Error; err != nil {
			return nil, false, true, err
		}
		existing.ProviderName = providerName
		return &existing, false, true, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, true, err
	}

	row := &HostelService{
		Name:         p.Name,
		Description:  p.Description,
		Price:        defaultPrice,
		Duration:     defaultDuration,
		Rating:       0,
		Availability: true,
		ProviderName: providerName,
	}
	if err := db.Create(row).Error; err != nil {
		return nil, false, true, err
	}
	return row, true, true, nil
}

// Seed makes sure every predefined service exists, without touching rows
// that are already there.
func (r *Repository) Seed(ctx context.Context) (int, error) {
	db := r.db.WithContext(ctx)
	created := 0
	for _, p := range predefined {
		var n int64
		if err := db.Model(&HostelService{}).Where("name = ?", p.Name).Count(&n).Error; err != nil {
			return created, err
		}
		if n > 0 {
			continue
		}

		row := HostelService{
			Name:         p.Name,
			Description:  p.Description,
			Price:        defaultPrice,
			Duration:     defaultDuration,
			Availability: true,
		}
		if err := db.Create(&row).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
