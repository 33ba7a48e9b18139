package server

import (
	"github.com/eolymp/go-texmath/internal/config"
	"github.com/eolymp/go-texmath/internal/handler"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

type Server struct {
	app *fiber.App
	cfg *config.Config
	log *zap.Logger
}

func New(cfg *config.Config, convert *handler.ConvertHandler, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             1024 * 1024, // 1MB
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CorsAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	convert.RegisterRoutes(app.Group("/api"))
	convert.RegisterWebsocket(app)

	return &Server{app: app, cfg: cfg, log: log}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.log.Info("server is running", zap.String("address", "http://localhost:"+s.cfg.App.Port))
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
