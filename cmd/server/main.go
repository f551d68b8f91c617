package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/config"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/database"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/handler"
	appmw "github.com/Abdulazizdev09/wedding-hall-booking/internal/middleware"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/queue"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/repository"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/router"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/service"
	"github.com/Abdulazizdev09/wedding-hall-booking/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: cfg.Env == "dev",
	})

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, cache and rate limiter disabled")
	}

	go queue.StartBookingConsumer()

	users := repository.NewUserRepo(db)
	halls := repository.NewHallRepo(db)
	images := repository.NewImageRepo(db)
	bookings := repository.NewBookingRepo(db)
	publisher := service.NewBookingPublisher()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	h := router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, users, log),
		Public:        handler.NewPublicHandler(halls, images, bookings, log),
		Client:        handler.NewClientBookingHandler(bookings, publisher, log),
		OwnerHalls:    handler.NewOwnerHallHandler(cfg, halls, images, log),
		OwnerBookings: handler.NewOwnerBookingHandler(bookings, publisher, log),
		Admin:         handler.NewAdminHandler(cfg, users, halls, images, bookings, log),
	}
	cache := appmw.NewResponseCache(config.LoadCacheConfig(), rdb)
	router.RegisterRoutes(e, h, cfg.JWTSecret, cfg.UploadDir, cache)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
