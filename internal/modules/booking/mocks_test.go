package booking

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"tabbyx/internal/domain"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListActiveInRange(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.CreatedAt = time.Date(2030, 6, 1, 8, 0, 0, 0, time.UTC) // simulate DB default
	}
	return args.Error(0)
}

func (m *MockBookingRepository) MarkCancelled(ctx context.Context, id string, at time.Time) (int64, error) {
	args := m.Called(ctx, id, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, includeCancelled bool) ([]domain.Booking, error) {
	args := m.Called(ctx, includeCancelled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64, includeCancelled bool) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, includeCancelled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

type MockIDGenerator struct {
	mock.Mock
}

func (m *MockIDGenerator) Generate() string {
	args := m.Called()
	return args.String(0)
}

type MockSlotGuard struct {
	mock.Mock
	released int
}

func (m *MockSlotGuard) Acquire(ctx context.Context, start time.Time) (func(), error) {
	args := m.Called(ctx, start)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func() { m.released++ }, nil
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) BookingCreated(ctx context.Context, b domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockEventPublisher) BookingCancelled(ctx context.Context, bookingID string, cancelledAt time.Time) error {
	args := m.Called(ctx, bookingID, cancelledAt)
	return args.Error(0)
}

type MockJSONPublisher struct {
	mock.Mock
}

func (m *MockJSONPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	args := m.Called(ctx, key, v)
	return args.Error(0)
}
