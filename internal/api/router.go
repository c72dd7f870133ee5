package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/securepass/securepass/docs"
	"github.com/securepass/securepass/internal/api/handler"
	"github.com/securepass/securepass/internal/api/middleware"
	"github.com/securepass/securepass/internal/core/domain"
	"github.com/securepass/securepass/internal/core/ports"
)

// RouterDeps carries everything the HTTP layer needs. Services are built by
// the caller so the router stays free of storage concerns.
type RouterDeps struct {
	AuthService       ports.AuthService
	VaultService      ports.VaultService
	StrengthEvaluator ports.StrengthEvaluator
	SecretGenerator   ports.SecretGenerator
	Revoker           ports.TokenRevoker
	JWTSecret         string
	Logger            zerolog.Logger

	// Pingers are checked by the readiness probe, keyed by dependency name.
	Pingers map[string]handler.Pinger

	// Registry receives the HTTP request metrics. Nil means the default
	// Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
// @title                      SecurePass API
// @version                    1.0
// @description                Credential vault with strength checking and password generation.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	promMiddleware := echoprometheus.MiddlewareConfig{Subsystem: "securepass"}
	promHandler := echoprometheus.HandlerConfig{}
	if deps.Registry != nil {
		promMiddleware.Registerer = deps.Registry
		promHandler.Gatherer = deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(promMiddleware))

	// --- Dependencies ---
	revoker := deps.Revoker
	authHandler := handler.NewAuthHandler(deps.AuthService, revoker, deps.Logger)
	vaultHandler := handler.NewVaultHandler(deps.VaultService)
	utilsHandler := handler.NewUtilsHandler(deps.StrengthEvaluator, deps.SecretGenerator)
	authMiddleware := middleware.Auth(deps.JWTSecret, revoker)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/signin", authHandler.Signin)
	e.DELETE("/auth/delete", authHandler.Delete, authMiddleware)

	// --- Vault routes (JWT + USER role) ---
	passwords := e.Group("/passwords", authMiddleware, middleware.RBAC(domain.RoleUser))
	passwords.POST("", vaultHandler.Create)
	passwords.GET("", vaultHandler.List)
	passwords.GET("/:id", vaultHandler.Get)
	passwords.PUT("/:id", vaultHandler.Update)
	passwords.DELETE("/:id", vaultHandler.Delete)

	// --- Utility routes (public) ---
	e.POST("/utils/checker", utilsHandler.Check)
	e.POST("/check", utilsHandler.Check)
	e.GET("/utils/generator", utilsHandler.Generate)
	e.GET("/generate", utilsHandler.Generate)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Pingers, deps.Logger)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(promHandler))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
