package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NafiGit/omnify/internal/config"
	"github.com/NafiGit/omnify/internal/database"
	"github.com/NafiGit/omnify/internal/handler"
	"github.com/NafiGit/omnify/internal/middleware"
	"github.com/NafiGit/omnify/internal/queue"
	"github.com/NafiGit/omnify/internal/repository"
	"github.com/NafiGit/omnify/internal/router"
	"github.com/NafiGit/omnify/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.InitSchema(ctx, db); err != nil {
		log.Fatalf("init schema: %v", err)
	}
	if err := database.Seed(ctx, db); err != nil {
		log.Fatalf("seed classes: %v", err)
	}

	// Redis is optional; cache and rate limiting disable themselves
	// when the client comes back nil.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	// Background consumer that appends booking activity to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	svc := service.NewBookingService(
		repository.NewClassRepo(db),
		repository.NewBookingRepo(db),
		service.AMQPPublisher{},
	)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()

	router.Register(e,
		handler.NewClassHandler(svc),
		handler.NewBookingHandler(svc),
		handler.NewStatsHandler(svc),
		middleware.NewResponseCache(config.LoadCacheConfig(), rdb),
		middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
