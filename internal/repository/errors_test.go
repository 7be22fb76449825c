package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestUniqueViolation(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		wantDup bool
		hint    string
	}{
		{
			name:    "postgres unique violation",
			err:     fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: activeSlotIndex}),
			wantDup: true,
			hint:    activeSlotIndex,
		},
		{
			name: "postgres other error",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "fk_bookings_user"},
			hint: "fk_bookings_user",
		},
		{
			name:    "gorm translated",
			err:     gorm.ErrDuplicatedKey,
			wantDup: true,
		},
		{
			name:    "sqlite message",
			err:     errors.New("constraint failed: UNIQUE constraint failed: bookings.start_date (2067)"),
			wantDup: true,
			hint:    "bookings.start_date",
		},
		{
			name: "unrelated",
			err:  errors.New("database is locked"),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dup, hint := uniqueViolation(tc.err)
			assert.Equal(t, tc.wantDup, dup)
			assert.Equal(t, tc.hint, hint)
		})
	}
}
