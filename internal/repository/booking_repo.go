package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tabbyx/internal/domain"

	"gorm.io/gorm"
)

// activeSlotIndex keeps at most one non-cancelled booking per start time.
const activeSlotIndex = "idx_bookings_active_start"

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID          string     `gorm:"column:id;primaryKey;size:7"`
	StartDate   time.Time  `gorm:"column:start_date;not null"`
	EndDate     time.Time  `gorm:"column:end_date;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null;autoCreateTime"`
	CreatedBy   int64      `gorm:"column:created_by;not null;index:idx_bookings_created_by"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`

	User *userModel `gorm:"foreignKey:CreatedBy;references:ID;constraint:OnDelete:CASCADE"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var cancelledAt *time.Time
	if m.CancelledAt != nil {
		v := m.CancelledAt.UTC()
		cancelledAt = &v
	}

	b := &domain.Booking{
		ID:          m.ID,
		StartDate:   m.StartDate.UTC(),
		EndDate:     m.EndDate.UTC(),
		CreatedAt:   m.CreatedAt.UTC(),
		CreatedBy:   m.CreatedBy,
		CancelledAt: cancelledAt,
	}
	if m.User != nil {
		b.User = toDomainUser(*m.User)
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	var cancelledAt *time.Time
	if b.CancelledAt != nil {
		v := b.CancelledAt.UTC()
		cancelledAt = &v
	}

	return bookingModel{
		ID:          b.ID,
		StartDate:   b.StartDate.UTC(),
		EndDate:     b.EndDate.UTC(),
		CreatedAt:   b.CreatedAt,
		CreatedBy:   b.CreatedBy,
		CancelledAt: cancelledAt,
	}
}

func toDomainBookings(rows []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out
}

// Create inserts b and copies the stored row (with created_at) back into it.
// Unique violations surface as ErrSlotTaken or ErrDuplicateID.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		if dup, hint := uniqueViolation(tx.Error); dup {
			if hint == activeSlotIndex || strings.HasSuffix(hint, ".start_date") {
				return fmt.Errorf("%w: %s", ErrSlotTaken, b.StartDate.Format(time.DateTime))
			}
			return fmt.Errorf("%w: %s", ErrDuplicateID, b.ID)
		}
		return fmt.Errorf("insert booking: %w", tx.Error)
	}
	*b = *toDomainBooking(m)
	return nil
}

// GetByID returns (nil, nil) when the id is unused. Cancelled bookings are
// returned too, so ids are never reused.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", tx.Error)
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListActiveInRange(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("start_date >= ? AND start_date < ?", start.UTC(), end.UTC()).
		Where("cancelled_at IS NULL").
		Order("start_date ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, fmt.Errorf("list bookings in range: %w", tx.Error)
	}
	return toDomainBookings(rows), nil
}

// MarkCancelled only touches active bookings; cancelling twice changes nothing.
func (r *BookingRepository) MarkCancelled(ctx context.Context, id string, at time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND cancelled_at IS NULL", id).
		Update("cancelled_at", at.UTC())
	if tx.Error != nil {
		return 0, fmt.Errorf("cancel booking: %w", tx.Error)
	}
	return tx.RowsAffected, nil
}

func (r *BookingRepository) List(ctx context.Context, includeCancelled bool) ([]domain.Booking, error) {
	var rows []bookingModel
	q := r.db.WithContext(ctx).Preload("User")
	if !includeCancelled {
		q = q.Where("cancelled_at IS NULL")
	}
	if err := q.Order("start_date ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return toDomainBookings(rows), nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, includeCancelled bool) ([]domain.Booking, error) {
	var rows []bookingModel
	q := r.db.WithContext(ctx).Preload("User").Where("created_by = ?", userID)
	if !includeCancelled {
		q = q.Where("cancelled_at IS NULL")
	}
	if err := q.Order("start_date ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list user bookings: %w", err)
	}
	return toDomainBookings(rows), nil
}
