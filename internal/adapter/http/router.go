package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gowallet/internal/adapter/http/handler"
	"github.com/iho/gowallet/internal/adapter/http/middleware"
	"github.com/iho/gowallet/internal/infrastructure/auth"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
	"github.com/iho/gowallet/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	AccountHandler   *handler.AccountHandler
	WalletHandler    *handler.WalletHandler
	ReportHandler    *handler.ReportHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router. Wallet and profile routes
// require a Bearer token; registration and login are public but rate
// limited.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			if cfg.IdempotencyStore != nil {
				r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore).Wrap)
			}

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", cfg.AccountHandler.GetProfile)
				r.Patch("/", cfg.AccountHandler.UpdateProfile)
			})

			r.Route("/wallet", func(r chi.Router) {
				r.Post("/topup", cfg.WalletHandler.TopUp)
				r.Post("/pay", cfg.WalletHandler.Pay)
				r.Post("/transfer", cfg.WalletHandler.Transfer)
				r.Get("/balance", cfg.WalletHandler.Balance)
				r.Get("/transactions", cfg.ReportHandler.Transactions)
				r.Get("/audit", cfg.ReportHandler.Audit)
			})
		})
	})

	return r
}
