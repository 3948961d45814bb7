package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/jwtpizza/pizza-service/docs"
	"github.com/jwtpizza/pizza-service/internal/api/handler"
	"github.com/jwtpizza/pizza-service/internal/api/metrics"
	"github.com/jwtpizza/pizza-service/internal/api/middleware"
	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
	"github.com/jwtpizza/pizza-service/internal/core/service"
	"github.com/jwtpizza/pizza-service/internal/core/token"
	mongodb "github.com/jwtpizza/pizza-service/internal/infrastructure/db/mongo"
	redisdb "github.com/jwtpizza/pizza-service/internal/infrastructure/db/redis"
	"github.com/jwtpizza/pizza-service/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, factory ports.FactoryClient, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("pizza"))

	// --- Dependencies ---
	recorder := metrics.NewRecorder()
	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := mongodb.NewUserRepository(db)
	menuRepo := mongodb.NewMenuRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	franchiseRepo := mongodb.NewFranchiseRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)

	sessionService := service.NewSessionService(codec, sessionStore, log)
	authService := service.NewAuthService(userRepo, sessionService, recorder, log)
	userService := service.NewUserService(userRepo, sessionService, log)
	orderService := service.NewOrderService(menuRepo, orderRepo, factory, recorder, log)
	franchiseService := service.NewFranchiseService(franchiseRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	orderHandler := handler.NewOrderHandler(orderService)
	franchiseHandler := handler.NewFranchiseHandler(franchiseService)
	docsHandler := handler.NewDocsHandler(config.Version, cfg.Factory.URL, cfg.Mongo.URI)

	setUser := middleware.SetUser(sessionService)
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)
	e.Use(setUser)

	// --- Auth routes ---
	e.POST("/api/auth", authHandler.Register)
	e.PUT("/api/auth", authHandler.Login)
	e.DELETE("/api/auth", authHandler.Logout, middleware.RequireAuth)

	// --- User routes ---
	e.GET("/api/user/me", userHandler.Me, middleware.RequireAuth)
	e.GET("/api/user", userHandler.List, requireAdmin)
	e.PUT("/api/user/:userId", userHandler.Update, middleware.RequireAuth)
	e.DELETE("/api/user/:userId", userHandler.Delete, requireAdmin)

	// --- Order routes ---
	e.GET("/api/order/menu", orderHandler.Menu)
	e.PUT("/api/order/menu", orderHandler.AddMenuItem, requireAdmin)
	e.GET("/api/order", orderHandler.Orders, middleware.RequireAuth)
	e.POST("/api/order", orderHandler.Create, middleware.RequireAuth)

	// --- Franchise routes ---
	e.GET("/api/franchise", franchiseHandler.List)
	e.GET("/api/franchise/:userId", franchiseHandler.ForUser, middleware.RequireAuth)
	e.POST("/api/franchise", franchiseHandler.Create, requireAdmin)
	e.DELETE("/api/franchise/:franchiseId", franchiseHandler.Delete, requireAdmin)
	e.POST("/api/franchise/:franchiseId/store", franchiseHandler.CreateStore, middleware.RequireAuth)
	e.DELETE("/api/franchise/:franchiseId/store/:storeId", franchiseHandler.DeleteStore, middleware.RequireAuth)

	// --- Service meta ---
	e.GET("/", handler.Welcome(config.Version))
	e.GET("/api/docs", docsHandler.Docs)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
