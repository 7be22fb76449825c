package domain

import "time"

// SlotDuration is the fixed length of every booking.
const SlotDuration = time.Hour

type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a one-hour reservation. Start and end dates are naive calendar
// times; they are kept in UTC and never converted to a local zone.
type Booking struct {
	ID          string     `json:"id"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	CreatedAt   time.Time  `json:"created_at"`
	CreatedBy   int64      `json:"created_by"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	User *User `json:"user,omitempty"`
}

func (b Booking) IsCancelled() bool {
	return b.CancelledAt != nil
}

func (b Booking) Status() BookingStatus {
	if b.IsCancelled() {
		return BookingCancelled
	}
	return BookingActive
}
