package database

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

// IsPostgres reports whether dsn selects the postgres driver.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Connect opens postgres for postgres:// URLs and sqlite (pure Go driver)
// for anything else, e.g. a file path or ":memory:".
func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: newGormLogger(log, gormlogger.Warn),
		// stored datetimes are naive; keep them in UTC at second precision
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}

	if IsPostgres(dsn) {
		log.Info("connecting to postgres")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Info("using sqlite", zap.String("dsn", dsn))

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// one connection: sqlite has a single writer and ":memory:" is per connection
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
