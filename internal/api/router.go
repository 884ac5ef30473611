package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/odontocare/clinic-network/docs"
	"github.com/odontocare/clinic-network/internal/api/handler"
	"github.com/odontocare/clinic-network/internal/api/middleware"
	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/core/ports"
	"github.com/odontocare/clinic-network/internal/pkg/token"
)

// IdentityDeps are the collaborators of the identity service's routes.
type IdentityDeps struct {
	Auth      ports.AuthService
	Directory ports.DirectoryService
	Codec     *token.Codec
	Checks    map[string]handler.DependencyCheck
	Log       zerolog.Logger

	// LoginRate and LoginBurst throttle /auth/login per client IP.
	// A zero rate disables throttling.
	LoginRate  float64
	LoginBurst int
}

// AppointmentsDeps are the collaborators of the appointments service's routes.
type AppointmentsDeps struct {
	Appointments ports.AppointmentService
	Codec        *token.Codec
	Checks       map[string]handler.DependencyCheck
	Log          zerolog.Logger
}

// NewIdentityRouter builds the identity service: login, password change
// and the administrative directory.
func NewIdentityRouter(d IdentityDeps) *echo.Echo {
	e := newEcho("identity", d.Checks, d.Log)

	authHandler := handler.NewAuthHandler(d.Auth)
	dirHandler := handler.NewDirectoryHandler(d.Directory)

	// --- Auth routes ---
	auth := e.Group("/api/v1/auth")
	auth.POST("/login", authHandler.Login, loginLimiter(d.LoginRate, d.LoginBurst))
	auth.PUT("/change_password", authHandler.ChangePassword)

	// --- Admin routes ---
	admin := e.Group("/api/v1/admin", middleware.Auth(d.Codec))
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	adminOrService := middleware.RBAC(domain.RoleAdmin, domain.RoleService)

	admin.GET("/usuarios", dirHandler.ListUsers, adminOnly)
	admin.GET("/usuario/:id", dirHandler.GetUser, adminOnly)
	admin.POST("/usuario", dirHandler.CreateUser, adminOnly)
	admin.POST("/usuarios", dirHandler.CreateUsers, adminOnly)
	admin.DELETE("/usuario/:id", dirHandler.DeleteUser, adminOnly)

	admin.GET("/doctores", dirHandler.ListDoctors, adminOnly)
	admin.GET("/doctor/:id", dirHandler.GetDoctor, adminOrService)
	admin.POST("/doctor", dirHandler.CreateDoctor, adminOnly)
	admin.POST("/doctores", dirHandler.CreateDoctors, adminOnly)
	admin.PUT("/doctor/:id", dirHandler.UpdateDoctor, adminOnly)
	admin.DELETE("/doctor/:id", dirHandler.DeleteDoctor, adminOnly)

	admin.GET("/pacientes", dirHandler.ListPatients, adminOnly)
	admin.GET("/paciente/:id", dirHandler.GetPatient, adminOrService)
	admin.POST("/paciente", dirHandler.CreatePatient, adminOnly)
	admin.POST("/pacientes", dirHandler.CreatePatients, adminOnly)
	admin.PUT("/paciente/:id", dirHandler.UpdatePatient, adminOnly)
	admin.DELETE("/paciente/:id", dirHandler.DeletePatient, adminOnly)

	admin.GET("/centros", dirHandler.ListClinics, adminOnly)
	admin.GET("/centro/:id", dirHandler.GetClinic, adminOrService)
	admin.POST("/centro", dirHandler.CreateClinic, adminOnly)
	admin.POST("/centros", dirHandler.CreateClinics, adminOnly)
	admin.PUT("/centro/:id", dirHandler.UpdateClinic, adminOnly)
	admin.DELETE("/centro/:id", dirHandler.DeleteClinic, adminOnly)

	return e
}

// NewAppointmentsRouter builds the appointments service.
func NewAppointmentsRouter(d AppointmentsDeps) *echo.Echo {
	e := newEcho("appointments", d.Checks, d.Log)

	citas := handler.NewAppointmentHandler(d.Appointments)

	g := e.Group("/api/v1/citas", middleware.Auth(d.Codec))
	g.POST("", citas.Create, middleware.RBAC(domain.RoleAdmin, domain.RolePatient))
	g.GET("", citas.Search, middleware.RBAC(domain.RoleAdmin, domain.RoleDoctor, domain.RoleFrontDesk))
	g.PUT("/:id", citas.Cancel, middleware.RBAC(domain.RoleAdmin, domain.RoleFrontDesk))

	return e
}

// newEcho returns an Echo instance with the middleware, probes, metrics
// and docs both services share.
func newEcho(subsystem string, checks map[string]handler.DependencyCheck, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// HTTP metrics live in a per-instance registry so several routers can
	// coexist in one process; /metrics also exposes the default registry.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "odontocare",
		Subsystem:  subsystem,
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
		},
	}))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// loginLimiter throttles login attempts per client IP.
func loginLimiter(perSecond float64, burst int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, errorResponse{Error: "forbidden"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "demasiados intentos de inicio de sesion"})
		},
	})
}
