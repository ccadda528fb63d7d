package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fleetdesk/logistics-api/internal/api/handler"
	"github.com/fleetdesk/logistics-api/internal/api/middleware"
	"github.com/fleetdesk/logistics-api/internal/core/domain"
	"github.com/fleetdesk/logistics-api/internal/core/ports"
)

// Services bundles the use-case layer the router exposes over HTTP.
type Services struct {
	Auth          ports.AuthService
	Trucks        ports.TruckService
	Facilities    ports.FacilityService
	Organizations ports.OrganizationService
	Tickets       ports.TicketService
}

// Deps carries everything NewRouter needs. Limiter may be nil to disable
// rate limiting; Mongo and Redis are only needed for the readiness probe.
type Deps struct {
	Services Services
	Limiter  middleware.Limiter
	Mongo    *mongo.Database
	Redis    *redis.Client
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("logistics"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Services.Auth)
	userHandler := handler.NewUserHandler(deps.Services.Auth)
	truckHandler := handler.NewTruckHandler(deps.Services.Trucks)
	facilityHandler := handler.NewFacilityHandler(deps.Services.Facilities)
	organizationHandler := handler.NewOrganizationHandler(deps.Services.Organizations)
	ticketHandler := handler.NewTicketHandler(deps.Services.Tickets)

	// --- Public auth routes (rate limited) ---
	auth := e.Group("/auth")
	if deps.Limiter != nil {
		auth.Use(middleware.RateLimit(deps.Limiter, deps.Logger))
	}
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/signin", authHandler.Signin)

	// --- Protected routes ---
	guarded := e.Group("",
		middleware.Auth(deps.Services.Auth),
		middleware.RequireRole(domain.RoleAdmin, domain.RoleDriver),
	)

	guarded.GET("/users/profile", userHandler.Profile)

	trucks := guarded.Group("/trucks")
	trucks.POST("", truckHandler.Create)
	trucks.GET("", truckHandler.List)
	trucks.GET("/:id", truckHandler.Get)
	trucks.PATCH("/:id", truckHandler.Update)
	trucks.DELETE("/:id", truckHandler.Delete)

	facilities := guarded.Group("/facilities")
	facilities.POST("", facilityHandler.Create)
	facilities.GET("", facilityHandler.List)
	facilities.GET("/:id", facilityHandler.Get)
	facilities.PATCH("/:id", facilityHandler.Update)
	facilities.DELETE("/:id", facilityHandler.Delete)

	organizations := guarded.Group("/organizations")
	organizations.POST("", organizationHandler.Create)
	organizations.GET("", organizationHandler.List)
	organizations.GET("/:id", organizationHandler.Get)
	organizations.PATCH("/:id", organizationHandler.Update)
	organizations.DELETE("/:id", organizationHandler.Delete)

	tickets := guarded.Group("/tickets")
	tickets.POST("", ticketHandler.Create)
	tickets.GET("", ticketHandler.List)
	tickets.GET("/:id", ticketHandler.Get)
	tickets.PATCH("/:id", ticketHandler.Update)
	tickets.DELETE("/:id", ticketHandler.Delete)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	healthHandler := handler.NewHealthHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	if deps.Mongo != nil && deps.Redis != nil {
		e.GET("/health/ready", healthHandler.Readiness)
	}

	return e
}
