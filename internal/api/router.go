package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/statuspulse/monitoring-system/docs"
	"github.com/statuspulse/monitoring-system/internal/api/handler"
	"github.com/statuspulse/monitoring-system/internal/api/middleware"
	"github.com/statuspulse/monitoring-system/internal/api/ws"
	"github.com/statuspulse/monitoring-system/internal/core/domain"
	"github.com/statuspulse/monitoring-system/internal/core/service"
	mongodb "github.com/statuspulse/monitoring-system/internal/infrastructure/db/mongo"
	redisdb "github.com/statuspulse/monitoring-system/internal/infrastructure/db/redis"
	"github.com/statuspulse/monitoring-system/internal/infrastructure/hash"
	"github.com/statuspulse/monitoring-system/internal/infrastructure/http/handlers"
)

// Options tunes the router beyond its datastore handles.
type Options struct {
	JWTSecret        string
	TokenTTL         time.Duration
	LoginMaxAttempts int
	LoginLockWindow  time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, log zerolog.Logger, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("monitoring"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	hasher := hash.NewBcrypt(0)
	limiter := redisdb.NewLoginLimiter(rdb, opts.LoginMaxAttempts, opts.LoginLockWindow)

	userService := service.NewUserService(userRepo, hasher, log)
	authService := service.NewAuthService(userRepo, hasher, limiter, log, opts.JWTSecret, opts.TokenTTL)

	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)
	authMiddleware := middleware.Auth(opts.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- Account management (request/response surface) ---
	users := e.Group("/v1/users", authMiddleware)
	users.POST("", userHandler.Create, middleware.RBAC(string(domain.RoleAdmin)))
	users.GET("", userHandler.List, middleware.RBAC(string(domain.RoleAdmin)))
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update, middleware.RBAC(string(domain.RoleAdmin)))
	users.DELETE("/:id", userHandler.Delete, middleware.RBAC(string(domain.RoleAdmin)))
	users.PUT("/:id/role", userHandler.ChangeRole, middleware.RBAC(string(domain.RoleAdmin)))

	// --- Event channel ---
	hub := ws.NewHub(log)
	wsHandler := ws.NewHandler(userService, hub, opts.JWTSecret, log)
	e.GET("/ws", wsHandler.Serve)

	// --- Health probes (no auth required) ---
	readiness := handlers.NewReadinessHandler(db, rdb)
	e.GET("/health", handlers.Liveness)
	e.GET("/health/ready", readiness.Readiness)

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
