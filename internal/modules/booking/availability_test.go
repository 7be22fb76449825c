package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tabbyx/internal/domain"
)

func testTime(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func slotBooking(id string, start time.Time) domain.Booking {
	return domain.Booking{ID: id, StartDate: start, EndDate: start.Add(domain.SlotDuration)}
}

func TestSlotHours(t *testing.T) {
	assert.Equal(t, []int{9, 10, 11, 12, 13, 14, 15, 16, 17}, SlotHours())
}

func TestAvailableHours(t *testing.T) {
	cancelledAt := testTime(2030, 6, 1, 8)
	cancelled := slotBooking("c000001", testTime(2030, 6, 15, 11))
	cancelled.CancelledAt = &cancelledAt

	cases := []struct {
		name     string
		bookings []domain.Booking
		want     []int
	}{
		{
			name: "empty day",
			want: []int{9, 10, 11, 12, 13, 14, 15, 16, 17},
		},
		{
			name: "two booked hours in any order",
			bookings: []domain.Booking{
				slotBooking("a000001", testTime(2030, 6, 15, 13)),
				slotBooking("a000002", testTime(2030, 6, 15, 10)),
			},
			want: []int{9, 11, 12, 14, 15, 16, 17},
		},
		{
			name:     "cancelled booking frees its hour",
			bookings: []domain.Booking{cancelled},
			want:     []int{9, 10, 11, 12, 13, 14, 15, 16, 17},
		},
		{
			name: "first and last slot",
			bookings: []domain.Booking{
				slotBooking("b000001", testTime(2030, 6, 15, 9)),
				slotBooking("b000002", testTime(2030, 6, 15, 17)),
			},
			want: []int{10, 11, 12, 13, 14, 15, 16},
		},
		{
			name: "bookings outside the grid change nothing",
			bookings: []domain.Booking{
				slotBooking("d000001", testTime(2030, 6, 15, 7)),
				slotBooking("d000002", testTime(2030, 6, 15, 18)),
			},
			want: []int{9, 10, 11, 12, 13, 14, 15, 16, 17},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AvailableHours(2030, time.June, 15, tc.bookings)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAvailableHours_FullyBooked(t *testing.T) {
	var bookings []domain.Booking
	for _, h := range SlotHours() {
		bookings = append(bookings, slotBooking("x", testTime(2030, 6, 15, h)))
	}

	got := AvailableHours(2030, time.June, 15, bookings)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(2030, time.December, 31)

	assert.Equal(t, testTime(2030, 12, 31, 0), start)
	assert.Equal(t, testTime(2031, 1, 1, 0), end)
}

func TestIsCalendarDate(t *testing.T) {
	assert.True(t, IsCalendarDate(2024, 2, 29))
	assert.False(t, IsCalendarDate(2023, 2, 29))
	assert.False(t, IsCalendarDate(2030, 2, 30))
	assert.False(t, IsCalendarDate(2030, 4, 31))
	assert.False(t, IsCalendarDate(2030, 13, 1))
	assert.False(t, IsCalendarDate(2030, 0, 1))
	assert.False(t, IsCalendarDate(2030, 1, 0))
	assert.True(t, IsCalendarDate(2030, 12, 31))
}
