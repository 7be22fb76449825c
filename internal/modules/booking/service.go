package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"tabbyx/internal/domain"
	"tabbyx/internal/repository"
)

type Service struct {
	bookings BookingRepository
	users    UserRepository
	ids      *IDAllocator
	guard    SlotGuard
	events   EventPublisher
	log      *zap.Logger
	now      func() time.Time
}

func NewService(
	bookings BookingRepository,
	users UserRepository,
	ids *IDAllocator,
	guard SlotGuard,
	events EventPublisher,
	log *zap.Logger,
) *Service {
	if guard == nil {
		guard = noopSlotGuard{}
	}
	if events == nil {
		events = noopEventPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		bookings: bookings,
		users:    users,
		ids:      ids,
		guard:    guard,
		events:   events,
		log:      log,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

// AvailableHours returns the free slot hours for a day, read fresh from storage.
func (s *Service) AvailableHours(ctx context.Context, year, month, day int) ([]int, error) {
	if !IsCalendarDate(year, month, day) {
		return nil, ErrValidation
	}

	start, end := DayBounds(year, time.Month(month), day)
	existing, err := s.bookings.ListActiveInRange(ctx, start, end)
	if err != nil {
		return nil, newError(KindPersistence, "failed to list bookings for day", err)
	}
	return AvailableHours(year, time.Month(month), day, existing), nil
}

// MakeBooking validates the hour against current availability, resolves or
// creates the user, mints a unique id and persists the booking. Steps run in
// order and the first failure aborts the rest. A user created along the way
// is kept even when a later step fails.
func (s *Service) MakeBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if req.Hour == nil || !IsCalendarDate(req.Year, req.Month, req.Day) {
		return nil, ErrValidation
	}
	hour := *req.Hour
	if hour < FirstSlotHour || hour > LastSlotHour {
		return nil, ErrInvalidHour
	}

	start := SlotStart(req.Year, time.Month(req.Month), req.Day, hour)

	release, err := s.guard.Acquire(ctx, start)
	if err != nil {
		if errors.Is(err, repository.ErrSlotLocked) {
			s.log.Warn("slot locked by concurrent booking", zap.Time("start", start))
			return nil, newError(KindSlotConflict, ErrSlotConflict.Message, err)
		}
		return nil, newError(KindPersistence, "failed to acquire slot lock", err)
	}
	defer release()

	available, err := s.AvailableHours(ctx, req.Year, req.Month, req.Day)
	if err != nil {
		return nil, err
	}
	if !containsHour(available, hour) {
		return nil, ErrInvalidHour
	}

	user, err := s.resolveUser(ctx, req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	id, err := s.ids.Allocate(ctx)
	if err != nil {
		if errors.Is(err, ErrRetryExhausted) {
			s.log.Error("booking id allocation exhausted",
				zap.Int("attempts", s.ids.MaxAttempts()),
				zap.Time("start", start),
			)
		}
		return nil, err
	}

	b := &domain.Booking{
		ID:        id,
		StartDate: start,
		EndDate:   start.Add(domain.SlotDuration),
		CreatedBy: user.ID,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) || errors.Is(err, repository.ErrDuplicateID) {
			s.log.Warn("booking rejected by storage uniqueness",
				zap.String("booking_id", id),
				zap.Time("start", start),
				zap.Error(err),
			)
			return nil, newError(KindSlotConflict, ErrSlotConflict.Message, err)
		}
		return nil, newError(KindPersistence, "failed to create booking", err)
	}
	b.User = user

	if err := s.events.BookingCreated(ctx, *b); err != nil {
		s.log.Warn("failed to publish booking.created", zap.String("booking_id", b.ID), zap.Error(err))
	}

	return b, nil
}

func (s *Service) resolveUser(ctx context.Context, name, email string) (*domain.User, error) {
	email = strings.TrimSpace(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, newError(KindUserResolution, ErrUserResolution.Message, err)
	}
	if user != nil {
		return user, nil
	}

	user = &domain.User{Name: strings.TrimSpace(name), Email: email}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, newError(KindUserResolution, "failed to create user", err)
	}
	return user, nil
}

// GetBooking returns the booking with id, cancelled or not.
func (s *Service) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, newError(KindPersistence, "failed to get booking", err)
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) ListBookings(ctx context.Context, includeCancelled bool) ([]domain.Booking, error) {
	out, err := s.bookings.List(ctx, includeCancelled)
	if err != nil {
		return nil, newError(KindPersistence, "failed to list bookings", err)
	}
	return out, nil
}

func (s *Service) GetBookingsForUser(ctx context.Context, userID int64, includeCancelled bool) ([]domain.Booking, error) {
	out, err := s.bookings.ListByUser(ctx, userID, includeCancelled)
	if err != nil {
		return nil, newError(KindPersistence, "failed to list user bookings", err)
	}
	return out, nil
}

// GetBookingsForEmail returns an empty list when no user has that email.
func (s *Service) GetBookingsForEmail(ctx context.Context, email string, includeCancelled bool) ([]domain.Booking, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, newError(KindUserResolution, ErrUserResolution.Message, err)
	}
	if user == nil {
		return []domain.Booking{}, nil
	}
	return s.GetBookingsForUser(ctx, user.ID, includeCancelled)
}

// CancelBooking stamps cancelled_at and returns the affected row count.
// Zero means the id does not exist or the booking was already cancelled.
func (s *Service) CancelBooking(ctx context.Context, id string) (int64, error) {
	at := s.now()

	affected, err := s.bookings.MarkCancelled(ctx, id, at)
	if err != nil {
		return 0, newError(KindPersistence, "failed to cancel booking", err)
	}

	if affected > 0 {
		if err := s.events.BookingCancelled(ctx, id, at); err != nil {
			s.log.Warn("failed to publish booking.cancelled", zap.String("booking_id", id), zap.Error(err))
		}
	}
	return affected, nil
}
