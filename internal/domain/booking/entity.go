package booking

import "time"

const (
	StatusBooked     = "Booked"
	StatusCancelled  = "Cancelled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Booking reserves one time slot of a service on one calendar day. At most
// one non-cancelled booking may hold a given (service, date, slot).
type Booking struct {
	ID                  int64     `gorm:"primaryKey" json:"id"`
	UserID              int64     `gorm:"not null;index" json:"user_id"`
	ServiceID           int64     `gorm:"not null;uniqueIndex:idx_bookings_active_slot,where:status <> 'Cancelled'" json:"service_id"`
	Date                string    `gorm:"size:10;not null;uniqueIndex:idx_bookings_active_slot,where:status <> 'Cancelled'" json:"date"`
	TimeSlot            string    `gorm:"size:20;not null;uniqueIndex:idx_bookings_active_slot,where:status <> 'Cancelled'" json:"time_slot"`
	SpecialInstructions string    `gorm:"type:text" json:"special_instructions"`
	Status              string    `gorm:"size:20;not null;default:Booked;index" json:"status"`
	Rating              *int      `gorm:"check:rating IS NULL OR (rating >= 1 AND rating <= 5)" json:"rating"`
	Comment             string    `gorm:"type:text" json:"comment"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }

// View is a booking joined with its service and owner for listings.
type View struct {
	Booking
	ServiceName string `json:"service_name"`
	Username    string `json:"username"`
	UserEmail   string `json:"user_email"`
}

type DashboardStats struct {
	TotalServices int64 `json:"total_services"`
	TotalBookings int64 `json:"total_bookings"`
	YourBookings  int64 `json:"your_bookings"`
}
