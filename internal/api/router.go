package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stampwallet/stamp-ledger/internal/api/handler"
	"github.com/stampwallet/stamp-ledger/internal/api/middleware"
	"github.com/stampwallet/stamp-ledger/internal/core/domain"
	"github.com/stampwallet/stamp-ledger/internal/core/ports"
)

const bodyLimit = "256K"

// RouterDeps carries everything the HTTP shell needs. Mongo and Redis are
// optional and only feed the readiness probe.
type RouterDeps struct {
	Auth    ports.AuthService
	Loyalty ports.LoyaltyService
	Mongo   *mongo.Database
	Redis   *redis.Client
	Log     zerolog.Logger

	// Registerer receives the HTTP request metrics. Nil means the default
	// registry, which is what /metrics serves.
	Registerer prometheus.Registerer

	LoginRatePerSec float64
	LoginBurst      int
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "stampledger",
		Registerer: deps.Registerer,
	}))

	authHandler := handler.NewAuthHandler(deps.Auth)
	storeHandler := handler.NewStoreHandler(deps.Loyalty)
	ledgerHandler := handler.NewLedgerHandler(deps.Loyalty)
	authMiddleware := middleware.Auth(deps.Auth)
	managerOnly := middleware.RBAC(domain.RoleManager)

	// --- Public routes ---
	e.GET("/stores", storeHandler.List)
	e.GET("/ledger/:walletId", ledgerHandler.Get)
	e.POST("/auth/login", authHandler.Login, middleware.LoginLimiter(deps.LoginRatePerSec, deps.LoginBurst))

	// --- Session routes ---
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)
	e.GET("/me", authHandler.Me, authMiddleware)
	e.POST("/earn", ledgerHandler.Earn, authMiddleware)

	// --- Manager routes ---
	e.GET("/audit", ledgerHandler.Audit, authMiddleware, managerOnly)
	e.POST("/wallet/reset", ledgerHandler.Reset, authMiddleware, managerOnly)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
