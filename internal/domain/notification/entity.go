package notification

import "time"

// Notification is a message in a user's feed.
type Notification struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index:idx_notifications_user_read" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Read      bool      `gorm:"column:is_read;not null;default:false;index:idx_notifications_user_read" json:"read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// Filter narrows a feed listing.
type Filter struct {
	UnreadOnly  bool
	NewestFirst bool
}
