// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"time"

	"quill/internal/assets"
	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/middleware"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides the HTTP handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	postService    *service.PostService
	userService    *service.UserService
}

// NewServer creates a server instance, establishing the database and cache
// connections itself.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests and by bootstrap code that manages connections itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	middleware.InitMiddleware(cfg)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	store := assets.NewDiskStore(cfg.UploadDir)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("quill-api"),
		userRepo:       userRepo,
		postRepo:       postRepo,
	}
	s.postService = service.NewPostService(
		postRepo,
		userRepo,
		store,
		cfg.AcceptedImageTypes(),
		cfg.FeedPageSize,
		middleware.Logger,
	)
	s.userService = service.NewUserService(userRepo)

	return s
}

// SetupMiddleware configures the middleware stack for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Stored image assets are served statically under the same paths used
	// as asset references.
	app.Static("/images", s.config.UploadDir)

	auth := app.Group("/auth")
	auth.Put("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)

	feed := app.Group("/feed", middleware.AuthRequired)
	feed.Get("/posts", s.GetPosts)
	feed.Post("/post", s.CreatePost)
	feed.Get("/post/:postId", s.GetPost)
	feed.Put("/post/:postId", s.UpdatePost)
	feed.Delete("/post/:postId", s.DeletePost)
	feed.Get("/status", s.GetStatus)
	feed.Put("/status", s.UpdateStatus)

	s.app = app
}

// HealthCheck reports database connectivity.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			return err
		}
	}
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}
