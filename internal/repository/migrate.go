package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates the users and bookings tables and the partial unique index
// that rejects a second active booking for the same start time. Both
// postgres and sqlite support partial indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&userModel{}, &bookingModel{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	stmt := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON bookings (start_date) WHERE cancelled_at IS NULL",
		activeSlotIndex,
	)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("create %s: %w", activeSlotIndex, err)
	}
	return nil
}
