package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"tabbyx/internal/config"
	"tabbyx/internal/database"
	"tabbyx/internal/modules/booking"
	"tabbyx/internal/pkg/logger"
	"tabbyx/internal/pkg/shortid"
	"tabbyx/internal/repository"
)

type seedUser struct {
	name  string
	email string
}

var users = []seedUser{
	{name: "Asel", email: "asel@example.com"},
	{name: "Bekzat", email: "bekzat@example.com"},
	{name: "Dina", email: "dina@example.com"},
}

func main() {
	days := flag.Int("days", 5, "number of days to seed, starting tomorrow")
	perDay := flag.Int("per-day", 3, "bookings to attempt per day")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(false, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, zlog)
	if err != nil {
		zlog.Fatal("db connect failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	bookingRepo := repository.NewBookingRepository(db)
	ids := booking.NewIDAllocator(shortid.New(), bookingRepo, cfg.IDMaxAttempts)
	svc := booking.NewService(bookingRepo, repository.NewUserRepository(db), ids, nil, nil, zlog)

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	first := time.Now().UTC().AddDate(0, 0, 1)

	created := 0
	for d := 0; d < *days; d++ {
		date := first.AddDate(0, 0, d)

		for i := 0; i < *perDay; i++ {
			free, err := svc.AvailableHours(ctx, date.Year(), int(date.Month()), date.Day())
			if err != nil {
				zlog.Fatal("availability failed", zap.Error(err))
			}
			if len(free) == 0 {
				break
			}

			u := users[rng.Intn(len(users))]
			hour := free[rng.Intn(len(free))]
			req := booking.CreateBookingRequest{
				Name:  u.name,
				Email: u.email,
				Year:  date.Year(),
				Month: int(date.Month()),
				Day:   date.Day(),
				Hour:  &hour,
			}

			b, err := svc.MakeBooking(ctx, req)
			if err != nil {
				zlog.Warn("seed booking skipped", zap.String("email", u.email), zap.Error(err))
				continue
			}
			created++
			zlog.Info("seed booking created",
				zap.String("booking_id", b.ID),
				zap.String("email", u.email),
				zap.Time("start", b.StartDate),
			)
		}
	}

	zlog.Info("seed completed", zap.Int("bookings", created))
}
