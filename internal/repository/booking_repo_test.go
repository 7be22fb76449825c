package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabbyx/internal/domain"
)

type bookingFixture struct {
	bookings *BookingRepository
	users    *UserRepository
	user     *domain.User
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	db := setupTestDB(t)

	f := &bookingFixture{
		bookings: NewBookingRepository(db),
		users:    NewUserRepository(db),
		user:     &domain.User{Name: "Jane", Email: "jane@example.com"},
	}
	require.NoError(t, f.users.Create(context.Background(), f.user))
	return f
}

func (f *bookingFixture) book(t *testing.T, id string, day, hour int) *domain.Booking {
	t.Helper()
	start := slotAt(day, hour)
	b := &domain.Booking{ID: id, StartDate: start, EndDate: start.Add(domain.SlotDuration), CreatedBy: f.user.ID}
	require.NoError(t, f.bookings.Create(context.Background(), b))
	return b
}

func TestBookingRepository_CreateAndGet(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	b := f.book(t, "abc1234", 15, 10)
	assert.False(t, b.CreatedAt.IsZero())

	got, err := f.bookings.GetByID(ctx, "abc1234")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.StartDate.Equal(slotAt(15, 10)))
	assert.True(t, got.EndDate.Equal(slotAt(15, 11)))
	assert.Equal(t, f.user.ID, got.CreatedBy)
	assert.Nil(t, got.CancelledAt)
	require.NotNil(t, got.User)
	assert.Equal(t, "jane@example.com", got.User.Email)
	assert.Equal(t, domain.BookingActive, got.Status())
}

func TestBookingRepository_GetByID_Missing(t *testing.T) {
	f := newBookingFixture(t)

	got, err := f.bookings.GetByID(context.Background(), "0000000")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBookingRepository_CreateRejectsSecondActiveBooking(t *testing.T) {
	f := newBookingFixture(t)
	f.book(t, "aaaaaaa", 15, 10)

	start := slotAt(15, 10)
	err := f.bookings.Create(context.Background(), &domain.Booking{
		ID: "bbbbbbb", StartDate: start, EndDate: start.Add(domain.SlotDuration), CreatedBy: f.user.ID,
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NotErrorIs(t, err, ErrDuplicateID)
}

func TestBookingRepository_CreateRejectsDuplicateID(t *testing.T) {
	f := newBookingFixture(t)
	f.book(t, "aaaaaaa", 15, 10)

	start := slotAt(15, 11)
	err := f.bookings.Create(context.Background(), &domain.Booking{
		ID: "aaaaaaa", StartDate: start, EndDate: start.Add(domain.SlotDuration), CreatedBy: f.user.ID,
	})

	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestBookingRepository_SlotReusableAfterCancel(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.book(t, "aaaaaaa", 15, 10)
	affected, err := f.bookings.MarkCancelled(ctx, "aaaaaaa", slotAt(1, 8))
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	f.book(t, "bbbbbbb", 15, 10)

	active, err := f.bookings.ListActiveInRange(ctx, slotAt(15, 0), slotAt(16, 0))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "bbbbbbb", active[0].ID)
}

func TestBookingRepository_MarkCancelledOnce(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	f.book(t, "ccccccc", 15, 12)

	first := slotAt(1, 8)
	affected, err := f.bookings.MarkCancelled(ctx, "ccccccc", first)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = f.bookings.MarkCancelled(ctx, "ccccccc", slotAt(2, 8))
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	got, err := f.bookings.GetByID(ctx, "ccccccc")
	require.NoError(t, err)
	require.NotNil(t, got.CancelledAt)
	assert.True(t, got.CancelledAt.Equal(first))
	assert.Equal(t, domain.BookingCancelled, got.Status())

	affected, err = f.bookings.MarkCancelled(ctx, "0000000", first)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestBookingRepository_ListActiveInRange(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.book(t, "d140000", 14, 16)
	f.book(t, "d150013", 15, 13)
	f.book(t, "d150009", 15, 9)
	f.book(t, "d160009", 16, 9)

	got, err := f.bookings.ListActiveInRange(ctx, slotAt(15, 0), slotAt(16, 0))

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "d150009", got[0].ID)
	assert.Equal(t, "d150013", got[1].ID)
}

func TestBookingRepository_ListAndListByUser(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	other := &domain.User{Name: "John", Email: "john@example.com"}
	require.NoError(t, f.users.Create(ctx, other))

	f.book(t, "e000001", 15, 11)
	f.book(t, "e000002", 15, 9)
	start := slotAt(15, 10)
	require.NoError(t, f.bookings.Create(ctx, &domain.Booking{
		ID: "e000003", StartDate: start, EndDate: start.Add(domain.SlotDuration), CreatedBy: other.ID,
	}))
	_, err := f.bookings.MarkCancelled(ctx, "e000001", slotAt(1, 8))
	require.NoError(t, err)

	active, err := f.bookings.List(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"e000002", "e000003"}, bookingIDs(active))

	all, err := f.bookings.List(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"e000002", "e000003", "e000001"}, bookingIDs(all))

	mine, err := f.bookings.ListByUser(ctx, f.user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"e000002"}, bookingIDs(mine))

	mineAll, err := f.bookings.ListByUser(ctx, f.user.ID, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"e000002", "e000001"}, bookingIDs(mineAll))
	require.NotNil(t, mineAll[0].User)
	assert.Equal(t, f.user.ID, mineAll[0].User.ID)

	none, err := f.bookings.ListByUser(ctx, 9999, true)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func bookingIDs(bookings []domain.Booking) []string {
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	return ids
}
