package booking

import (
	"context"
)

// DefaultMaxAttempts is the total number of candidates tried, first attempt included.
const DefaultMaxAttempts = 5

// IDAllocator mints booking ids that no stored booking uses, cancelled ones
// included. Generation and the retry policy are kept apart so either can
// change without touching the other.
type IDAllocator struct {
	gen         IDGenerator
	bookings    BookingLookup
	maxAttempts int
}

func NewIDAllocator(gen IDGenerator, bookings BookingLookup, maxAttempts int) *IDAllocator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &IDAllocator{
		gen:         gen,
		bookings:    bookings,
		maxAttempts: maxAttempts,
	}
}

func (a *IDAllocator) MaxAttempts() int { return a.maxAttempts }

// Allocate returns the first candidate with no stored booking. Lookup errors
// are not treated as collisions and abort immediately.
func (a *IDAllocator) Allocate(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		candidate := a.gen.Generate()

		existing, err := a.bookings.GetByID(ctx, candidate)
		if err != nil {
			return "", newError(KindPersistence, "failed to check booking id", err)
		}
		if existing == nil {
			return candidate, nil
		}
	}
	return "", ErrRetryExhausted
}
