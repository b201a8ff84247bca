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

	"github.com/acme/account-service/internal/api/handler"
	"github.com/acme/account-service/internal/api/middleware"
	"github.com/acme/account-service/internal/core/authz"
	"github.com/acme/account-service/internal/core/ports"
	"github.com/acme/account-service/internal/core/service"
)

// RouterConfig carries the pre-wired services and the handful of settings
// the HTTP layer needs.
type RouterConfig struct {
	Accounts      ports.AccountService
	Payments      ports.PaymentService
	Audit         ports.AuditLog
	Users         ports.UserRepository
	Authenticator *service.Authenticator

	DB    *mongo.Database
	Redis *redis.Client

	JWTSecret     string
	TokenTTL      time.Duration
	AuthRateLimit int

	Log zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("account"))

	// --- Handlers ---
	accountHandler := handler.NewAccountHandler(cfg.Accounts)
	paymentHandler := handler.NewPaymentHandler(cfg.Payments)
	eventHandler := handler.NewEventHandler(cfg.Audit)
	tokenHandler := handler.NewTokenHandler(cfg.JWTSecret, cfg.TokenTTL)

	auth := middleware.Auth(cfg.Authenticator, cfg.Users, cfg.JWTSecret)
	rateLimit := middleware.RateLimit(cfg.Redis, cfg.AuthRateLimit, time.Minute, cfg.Log)
	require := func(capability authz.Capability) echo.MiddlewareFunc {
		return middleware.RequireCapability(capability, cfg.Audit)
	}

	// --- Public routes ---
	e.POST("/api/auth/signup", accountHandler.Signup, rateLimit)

	// --- Authenticated routes ---
	e.POST("/api/auth/token", tokenHandler.Issue, rateLimit, auth)
	e.POST("/api/auth/changepass", accountHandler.ChangePass,
		rateLimit, auth, require(authz.CapChangeOwnPassword))

	e.GET("/api/empl/payment", paymentHandler.OwnPayrolls,
		auth, require(authz.CapViewOwnPayrolls))

	e.POST("/api/acct/payments", paymentHandler.Upload,
		auth, require(authz.CapManagePayrolls))
	e.PUT("/api/acct/payments", paymentHandler.Update,
		auth, require(authz.CapManagePayrolls))

	e.PUT("/api/admin/user/role", accountHandler.ChangeRole,
		auth, require(authz.CapManageUsers))
	e.PUT("/api/admin/user/access", accountHandler.ChangeAccess,
		auth, require(authz.CapManageUsers))
	e.DELETE("/api/admin/user/:email", accountHandler.Delete,
		auth, require(authz.CapManageUsers))
	e.GET("/api/admin/user/", accountHandler.List,
		auth, require(authz.CapManageUsers))

	e.GET("/api/security/events/", eventHandler.List,
		auth, require(authz.CapViewSecurityEvents))

	// --- Operational surface ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.DB, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
