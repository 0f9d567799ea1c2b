package booking

import "errors"

var (
	ErrNotFound        = errors.New("booking not found")
	ErrSlotConflict    = errors.New("time slot already booked")
	ErrInvalidDate     = errors.New("invalid date format")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrServiceNotFound = errors.New("service not found")
	ErrCancelled       = errors.New("booking is cancelled")
)

const slotConflictMessage = "This time slot is already booked for the selected service. Please choose another slot."
