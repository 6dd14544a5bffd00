package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/webstore/storefront-api/docs"
	"github.com/webstore/storefront-api/internal/api/handler"
	"github.com/webstore/storefront-api/internal/api/middleware"
	"github.com/webstore/storefront-api/internal/core/domain"
	"github.com/webstore/storefront-api/internal/core/service"
	"github.com/webstore/storefront-api/internal/core/token"
	"github.com/webstore/storefront-api/internal/infrastructure/config"
	mongostore "github.com/webstore/storefront-api/internal/infrastructure/db/mongo"
	redisstore "github.com/webstore/storefront-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The activity dispatcher is constructed by the caller so its workers can be
// started and drained alongside the process lifecycle.
func NewRouter(cfg *config.Config, log zerolog.Logger, db *mongo.Database, rdb *redis.Client, activity handler.ActivityDispatcher) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Dependencies ---
	users := mongostore.NewUserRepository(db)
	carts := mongostore.NewCartRepository(db)
	activities := mongostore.NewActivityRepository(db)
	cartCache := redisstore.NewCartIDCache(rdb, cfg.Redis.CartCacheTTL)

	codec := token.NewCodec(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(users, carts, cartCache, codec, log)

	authHandler := handler.NewAuthHandler(authService, activity)
	activityHandler := handler.NewActivityHandler(activities)
	authMiddleware := middleware.Auth(codec, users)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Admin routes ---
	admin := e.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/activity", activityHandler.List)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
