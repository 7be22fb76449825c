package booking

import (
	"time"

	"tabbyx/internal/domain"
)

// Slot start hours. The last slot runs 17:00-18:00.
const (
	FirstSlotHour = 9
	LastSlotHour  = 17
)

// SlotHours returns the day's candidate start hours in ascending order.
func SlotHours() []int {
	hours := make([]int, 0, LastSlotHour-FirstSlotHour+1)
	for h := FirstSlotHour; h <= LastSlotHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// AvailableHours returns the slot hours not taken by any active booking.
//
// The caller supplies the bookings of the requested day; they are not
// filtered by date here. Occupancy is decided on whole hours
// (start hour <= h < end hour), which equals start-hour matching because
// every booking is exactly one hour long. Variable-length bookings would
// need a real interval overlap test.
func AvailableHours(year int, month time.Month, day int, bookings []domain.Booking) []int {
	out := make([]int, 0, LastSlotHour-FirstSlotHour+1)
	for _, h := range SlotHours() {
		if !slotTaken(h, bookings) {
			out = append(out, h)
		}
	}
	return out
}

func slotTaken(hour int, bookings []domain.Booking) bool {
	for _, b := range bookings {
		if b.IsCancelled() {
			continue
		}
		if b.StartDate.Hour() <= hour && b.EndDate.Hour() > hour {
			return true
		}
	}
	return false
}

func containsHour(hours []int, hour int) bool {
	for _, h := range hours {
		if h == hour {
			return true
		}
	}
	return false
}

// DayBounds returns [start of day, start of next day) in UTC.
func DayBounds(year int, month time.Month, day int) (time.Time, time.Time) {
	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// SlotStart returns the naive start time of the slot at hour on the given day.
func SlotStart(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

// IsCalendarDate reports whether year/month/day names a real date.
func IsCalendarDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}
