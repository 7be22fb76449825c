package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tabbyx/internal/config"
	"tabbyx/internal/database"
	"tabbyx/internal/middleware"
	"tabbyx/internal/modules/booking"
	"tabbyx/internal/pkg/logger"
	"tabbyx/internal/pkg/mq"
	"tabbyx/internal/pkg/response"
	"tabbyx/internal/pkg/shortid"
	"tabbyx/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.IsProdLike(), cfg.LogLevel)
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
	userRepo := repository.NewUserRepository(db)

	var guard booking.SlotGuard
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		guard = repository.NewRedisSlotGuard(rdb, cfg.SlotLockTTL)
		zlog.Info("slot guard enabled", zap.String("redis_addr", cfg.RedisAddr))
	}

	var events booking.EventPublisher
	if cfg.AMQPURL != "" {
		pub, err := mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			zlog.Fatal("rabbitmq connect failed", zap.Error(err))
		}
		defer pub.Close()
		events = booking.NewBrokerEvents(pub)
		zlog.Info("booking events enabled", zap.String("exchange", cfg.AMQPExchange))
	}

	ids := booking.NewIDAllocator(shortid.New(), bookingRepo, cfg.IDMaxAttempts)
	bookingService := booking.NewService(bookingRepo, userRepo, ids, guard, events, zlog)
	bookingHandler := booking.NewHandler(bookingService)

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(zlog),
		middleware.ErrorLogger(zlog),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	bookingHandler.RegisterRoutes(v1)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		zlog.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zlog.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("http server shutdown", zap.Error(err))
	}
}
