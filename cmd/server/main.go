package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/metrics"
	"shareit/internal/middleware"
	"shareit/internal/modules/booking"
	"shareit/internal/modules/item"
	"shareit/internal/modules/request"
	"shareit/internal/modules/user"
	"shareit/internal/pkg/logging"
	"shareit/internal/repository"
)

func main() {
	cfg := config.LoadServer()
	log := logging.New("shareit-server", cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	userHandler := user.NewHandler(user.NewService(userRepo, log), log)
	itemHandler := item.NewHandler(
		item.NewService(itemRepo, userRepo, requestRepo, bookingRepo, commentRepo, log), log)
	bookingHandler := booking.NewHandler(
		booking.NewService(bookingRepo, userRepo, itemRepo, log), log)
	requestHandler := request.NewHandler(
		request.NewService(requestRepo, userRepo, itemRepo, log), log)

	metrics.Register()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.Metrics(), middleware.CORS())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	userHandler.RegisterRoutes(r.Group("/"))

	identified := r.Group("/")
	identified.Use(middleware.Actor())
	itemHandler.RegisterRoutes(identified)
	bookingHandler.RegisterRoutes(identified)
	requestHandler.RegisterRoutes(identified)

	log.Info().Str("addr", cfg.Addr).Msg("server listening")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
