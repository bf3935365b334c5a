package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cropbank/banking-system/internal/api/handler"
	"github.com/cropbank/banking-system/internal/api/middleware"
	"github.com/cropbank/banking-system/internal/core/domain"
	"github.com/cropbank/banking-system/internal/core/ports"
	"github.com/cropbank/banking-system/internal/core/service"
	"github.com/cropbank/banking-system/internal/core/token"
	mongodb "github.com/cropbank/banking-system/internal/infrastructure/db/mongo"
	"github.com/cropbank/banking-system/internal/infrastructure/http/handlers"
)

// Dependencies carries everything the router needs to wire the API.
type Dependencies struct {
	DB        *mongo.Database
	Redis     *redis.Client
	Codec     *token.Codec
	Publisher ports.EventPublisher
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("banking"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	clientRepo := mongodb.NewClientRepository(deps.DB)
	creditRepo := mongodb.NewCreditRepository(deps.DB)

	authService := service.NewAuthService(userRepo, deps.Codec, deps.Logger)
	userService := service.NewUserService(userRepo, deps.Publisher, deps.Logger)
	clientService := service.NewClientService(clientRepo, deps.Publisher, deps.Logger)
	creditService := service.NewCreditService(creditRepo, clientRepo, userRepo, deps.Publisher, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService)
	creditHandler := handler.NewCreditHandler(creditService)

	authn := middleware.Auth(deps.Codec)

	// --- Auth routes ---
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/register", authHandler.Register,
		authn, middleware.RequireRoles(domain.RoleAdmin))

	// --- Admin routes ---
	admin := e.Group("/api/admin", authn, middleware.RequireRoles(domain.RoleAdmin))
	admin.GET("/users", userHandler.ListUsers)
	admin.PUT("/users/:id/status", userHandler.UpdateStatus)

	// --- Self routes (any authenticated role) ---
	e.GET("/api/users/me", userHandler.Me, authn)

	// --- RM client routes ---
	clients := e.Group("/api/rm/clients", authn, middleware.RequireRoles(domain.RoleRelationshipManager))
	clients.GET("", clientHandler.List)
	clients.POST("", clientHandler.Create)
	clients.GET("/search", clientHandler.Search)
	clients.GET("/industries", clientHandler.Industries)
	clients.GET("/:id", clientHandler.Get)
	clients.PUT("/:id", clientHandler.Update)

	// --- Credit routes ---
	credits := e.Group("/api/credit-requests", authn)
	credits.POST("", creditHandler.Create,
		middleware.RequireRoles(domain.RoleRelationshipManager))
	credits.GET("", creditHandler.List,
		middleware.RequireRoles(domain.RoleRelationshipManager, domain.RoleAnalyst))
	credits.GET("/:id", creditHandler.Get,
		middleware.RequireRoles(domain.RoleRelationshipManager, domain.RoleAnalyst))
	credits.PUT("/:id", creditHandler.Decide,
		middleware.RequireRoles(domain.RoleAnalyst))

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
