package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

// NewRepository works on a plain handle or on an open transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *Repository) Save(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetOwned finds a booking only if userID owns it.
func (r *Repository) GetOwned(ctx context.Context, id, userID int64) (*Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetForServices finds a booking only if it belongs to one of serviceIDs.
func (r *Repository) GetForServices(ctx context.Context, id int64, serviceIDs []int64) (*Booking, error) {
	if len(serviceIDs) == 0 {
		return nil, ErrNotFound
	}
	var b Booking
	err := r.db.WithContext(ctx).
		Where("id = ? AND service_id IN ?", id, serviceIDs).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&Booking{}, id).Error
}

// TakenSlots returns the slots held by non-cancelled bookings.
func (r *Repository) TakenSlots(ctx context.Context, serviceID int64, date string) ([]string, error) {
	var slots []string
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Where("service_id = ? AND date = ? AND status <> ?", serviceID, date, StatusCancelled).
		Pluck("time_slot", &slots).Error
	return slots, err
}

// ViewFilter narrows ListViews. Zero values mean no restriction; a non-nil
// empty ServiceIDs matches nothing.
type ViewFilter struct {
	UserID     int64
	ServiceIDs []int64
}

func (r *Repository) ListViews(ctx context.Context, f ViewFilter) ([]View, error) {
	if f.ServiceIDs != nil && len(f.ServiceIDs) == 0 {
		return []View{}, nil
	}

	q := r.db.WithContext(ctx).
		Table("bookings AS b").
		Select("b.*, s.name AS service_name, u.username AS username, u.email AS user_email").
		Joins("LEFT JOIN services s ON s.id = b.service_id").
		Joins("LEFT JOIN users u ON u.id = b.user_id")
	if f.UserID != 0 {
		q = q.Where("b.user_id = ?", f.UserID)
	}
	if f.ServiceIDs != nil {
		q = q.Where("b.service_id IN ?", f.ServiceIDs)
	}

	out := []View{}
	err := q.Order("b.date, b.time_slot, b.id").Scan(&out).Error
	return out, err
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Booking{}).Count(&n).Error
	return n, err
}

func (r *Repository) CountForUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Booking{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
