package booking

import (
	"context"
	"time"

	"tabbyx/internal/domain"
)

// BookingRepository is the persistence collaborator for bookings.
// Lookups return (nil, nil) when the record does not exist.
type BookingRepository interface {
	// GetByID includes cancelled bookings.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// ListActiveInRange returns non-cancelled bookings starting in [start, end).
	ListActiveInRange(ctx context.Context, start, end time.Time) ([]domain.Booking, error)
	// Create persists b; the store assigns CreatedAt.
	Create(ctx context.Context, b *domain.Booking) error
	// MarkCancelled returns the number of rows changed.
	MarkCancelled(ctx context.Context, id string, at time.Time) (int64, error)
	List(ctx context.Context, includeCancelled bool) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, includeCancelled bool) ([]domain.Booking, error)
}

// UserRepository resolves users by email.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

// BookingLookup is the existence check used by IDAllocator.
type BookingLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
}

type IDGenerator interface {
	Generate() string
}

// SlotGuard serializes writers for a single slot. The returned release func
// must be called once the booking attempt has finished.
type SlotGuard interface {
	Acquire(ctx context.Context, start time.Time) (release func(), err error)
}

type EventPublisher interface {
	BookingCreated(ctx context.Context, b domain.Booking) error
	BookingCancelled(ctx context.Context, bookingID string, cancelledAt time.Time) error
}

type noopSlotGuard struct{}

func (noopSlotGuard) Acquire(context.Context, time.Time) (func(), error) {
	return func() {}, nil
}

type noopEventPublisher struct{}

func (noopEventPublisher) BookingCreated(context.Context, domain.Booking) error { return nil }

func (noopEventPublisher) BookingCancelled(context.Context, string, time.Time) error { return nil }
