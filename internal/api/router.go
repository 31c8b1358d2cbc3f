package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rexxailabs/client-projects-api/internal/api/handler"
	"github.com/rexxailabs/client-projects-api/internal/api/middleware"
	"github.com/rexxailabs/client-projects-api/internal/core/ports"
	"github.com/rexxailabs/client-projects-api/internal/core/service"
)

// Deps carries everything the router needs. Repositories are port
// interfaces so tests can wire in-memory implementations; Mongo and Redis
// are only needed for the readiness probe and may be nil in tests.
type Deps struct {
	Users    ports.UserRepository
	Clients  ports.ClientRepository
	Projects ports.ProjectRepository
	Throttle ports.LoginThrottle

	Tokens *service.TokenService

	Mongo *mongo.Database
	Redis *redis.Client

	Logger      zerolog.Logger
	Development bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger, d.Development)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("clientprojects"))

	// --- Services ---
	authService := service.NewAuthService(d.Users, d.Tokens, d.Throttle, d.Logger)
	clientService := service.NewClientService(d.Clients, d.Projects, d.Logger)
	projectService := service.NewProjectService(d.Projects, d.Clients, d.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	projectHandler := handler.NewProjectHandler(projectService)
	requireAuth := middleware.Auth(d.Tokens)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, requireAuth)

	// --- Client routes (owner-scoped) ---
	clients := e.Group("/clients", requireAuth)
	clients.POST("", clientHandler.Create)
	clients.GET("", clientHandler.List)
	clients.GET("/:id", clientHandler.Get)
	clients.PUT("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	// --- Project routes (owner-scoped through the parent client) ---
	projects := e.Group("/projects", requireAuth)
	projects.POST("", projectHandler.Create)
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	if d.Mongo != nil && d.Redis != nil {
		e.GET("/health/ready", handler.NewReadinessHandler(d.Mongo, d.Redis).Readiness)
	}

	return e
}
