package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/roombooking/config"
	"github.com/Domenick1991/roombooking/internal/bootstrap"
	"github.com/Domenick1991/roombooking/internal/cache"
	"github.com/Domenick1991/roombooking/internal/kafka"
	"github.com/Domenick1991/roombooking/internal/repository"
	"github.com/Domenick1991/roombooking/internal/service/admin"
	"github.com/Domenick1991/roombooking/internal/service/booking"
	"github.com/Domenick1991/roombooking/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := migrations.Apply(ctx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.RoomsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	store := repository.NewPGStore(pool)
	bookingService := booking.NewBookingService(
		store, store, store,
		booking.WithCache(redisCache),
		booking.WithProducer(producer, cfg.Kafka.BookingTopic),
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	adminService := admin.NewAdminService(
		store, store, store, store,
		admin.WithCache(redisCache),
		admin.WithProducer(producer, cfg.Kafka.BookingTopic),
		admin.WithRoomLocker(bookingService),
	)

	if cfg.Telegram.AdminUserID != 0 {
		seedAdmin(ctx, store, cfg.Telegram.AdminUserID, cfg.Telegram.AdminUsername)
	}

	if err := bootstrap.Run(ctx, cfg, bookingService, adminService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func seedAdmin(ctx context.Context, admins repository.AdminRepository, userID int64, username string) {
	isAdmin, err := admins.IsAdmin(ctx, userID)
	if err != nil {
		log.Fatalf("check seed admin: %v", err)
	}
	if isAdmin {
		return
	}
	if err := admins.AddAdmin(ctx, userID, username); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	log.Printf("seeded admin user %d", userID)
}
