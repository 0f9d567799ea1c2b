package booking

import (
	"strings"
	"time"
)

// TimeSlot is one of the fixed daily bands, written "HH:MM-HH:MM".
type TimeSlot string

const (
	Slot0800 TimeSlot = "08:00-10:00"
	Slot1000 TimeSlot = "10:00-12:00"
	Slot1200 TimeSlot = "12:00-14:00"
	Slot1400 TimeSlot = "14:00-16:00"
	Slot1600 TimeSlot = "16:00-18:00"
)

// AllSlots lists the bands in the order they occur in a day.
var AllSlots = []TimeSlot{Slot0800, Slot1000, Slot1200, Slot1400, Slot1600}

const dateLayout = "2006-01-02"

func (s TimeSlot) Valid() bool {
	for _, v := range AllSlots {
		if v == s {
			return true
		}
	}
	return false
}

// EndOn returns the instant the band closes on the given day in loc.
func (s TimeSlot) EndOn(day time.Time, loc *time.Location) time.Time {
	_, end, _ := strings.Cut(string(s), "-")
	t, err := time.Parse("15:04", end)
	if err != nil {
		return time.Time{}
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc)
}

// ParseDay resolves "today", "tomorrow" (any case) or an ISO date against now.
func ParseDay(input string, now time.Time) (time.Time, error) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(input), now.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
