package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"scamtrap-lab/internal/api/handlers"
	"scamtrap-lab/internal/api/middleware"
	"scamtrap-lab/internal/config"
	"scamtrap-lab/internal/infrastructure/cache"
	"scamtrap-lab/pkg/logger"
)

// NewRouter builds the HTTP routing tree
func NewRouter(cfg *config.Config, h *handlers.Handlers, redisCache *cache.RedisCache, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(120 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	if cfg.RateLimit.Enabled && redisCache != nil {
		r.Use(middleware.RateLimiter(redisCache, cfg.RateLimit))
	}

	r.Get("/", h.Health.Root)
	r.Get("/health", h.Health.Check)
	r.Post("/api/log-device", h.Device.LogDevice)
	r.Get("/payment-proof/{id}", h.Device.PaymentProof)

	r.Route("/api/chat", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(cfg.Auth, log))
		r.Post("/", h.Chat.Chat)
	})

	r.Route("/api/intel", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(cfg.Auth, log))
		r.Get("/", h.Intel.List)
	})

	return r
}
