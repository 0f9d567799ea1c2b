package notification

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

// NewRepository works on a plain handle or on an open transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// CreateBatch inserts one row per notification in a single statement.
func (r *Repository) CreateBatch(ctx context.Context, ns []Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ns).Error
}

func (r *Repository) List(ctx context.Context, userID int64, f Filter) ([]Notification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.UnreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if f.NewestFirst {
		q = q.Order("created_at DESC").Order("id DESC")
	} else {
		q = q.Order("id")
	}

	var out []Notification
	err := q.Find(&out).Error
	return out, err
}

// MarkRead flips the flag only on a row owned by userID.
func (r *Repository) MarkRead(ctx context.Context, id, userID int64) error {
	res := r.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// already-read rows still count as found
		var n int64
		if err := r.db.WithContext(ctx).Model(&Notification{}).
			Where("id = ? AND user_id = ?", id, userID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
	}
	return nil
}

func (r *Repository) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}
