// Package server exposes the chat and auth endpoints over HTTP.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/faramade/ecotrack/auth"
	"github.com/faramade/ecotrack/chat"
)

// Config is the HTTP server configuration.
type Config struct {
	// Address to listen on (e.g., ":8080")
	ListenAddr string
}

// Server wires the access gate and the chat orchestrator behind a fiber app.
type Server struct {
	config       Config
	app          *fiber.App
	auth         *auth.Service
	orchestrator *chat.Orchestrator
	logger       *zap.Logger
}

// New creates the server and registers all routes.
func New(config Config, authService *auth.Service, orchestrator *chat.Orchestrator, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
	})

	// The original frontend is served from anywhere, so allow-all CORS.
	app.Use(cors.New())

	// Tag every request so log lines from one exchange correlate.
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(localsRequestID, id)
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	})

	s := &Server{
		config:       config,
		app:          app,
		auth:         authService,
		orchestrator: orchestrator,
		logger:       logger,
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	app.Post("/auth", s.handleRegister)
	app.Post("/auth/token", s.handleLogin)
	app.Post("/auth/logout", s.requireAuth, s.handleLogout)
	app.Post("/chat", s.requireAuth, s.handleChat)

	return s
}

// Run starts the server on the configured listening address.
func (s *Server) Run() error {
	s.logger.Info("starting server", zap.String("listen", s.config.ListenAddr))
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
