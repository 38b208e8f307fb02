package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/faist23/rideweather/internal/auth"
	"github.com/faist23/rideweather/internal/config"
	"github.com/faist23/rideweather/internal/export"
	"github.com/faist23/rideweather/internal/garmin"
	"github.com/faist23/rideweather/internal/plan"
	"github.com/faist23/rideweather/internal/route"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	garminClient := garmin.NewClient(s.Cfg.GarminBaseURL)
	tokenStore := garmin.NewTokenStore(s.Redis)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	route.RegisterRoutes(s.App.Group("/routes"), route.NewService(s.DB), jwtMiddleware)
	plan.RegisterRoutes(s.App.Group("/plans"), plan.NewService(s.DB), jwtMiddleware)
	garmin.RegisterRoutes(s.App.Group("/garmin"), tokenStore, jwtMiddleware)
	export.RegisterRoutes(s.App.Group("/exports"), export.NewService(s.DB, s.Redis, garminClient, tokenStore), jwtMiddleware)
}
