package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/roamly/tour-booking-api/internal/config"
	"github.com/roamly/tour-booking-api/internal/database"
	"github.com/roamly/tour-booking-api/internal/handler"
	"github.com/roamly/tour-booking-api/internal/middleware"
	"github.com/roamly/tour-booking-api/internal/queue"
	"github.com/roamly/tour-booking-api/internal/repository"
	"github.com/roamly/tour-booking-api/internal/router"
	"github.com/roamly/tour-booking-api/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Nil when Redis is unreachable; cache and limiter turn into no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tours := repository.NewTourRepo(db)
	bookings := repository.NewBookingRepo(db)

	publisher := service.NewPublisher(cfg.AMQPURL)

	authn := middleware.Authenticate(cfg.JWTSecret, users)
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), authn)
	router.RegisterTours(e, handler.NewTourHandler(tours), authn, cache)
	router.RegisterBookings(e, handler.NewBookingHandler(bookings, publisher), authn)

	go func() {
		if err := queue.StartBookingConsumer(cfg.AMQPURL); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
