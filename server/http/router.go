package serverhttp

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"price-recon/internal/config"
	"price-recon/internal/middleware"
	recHnd "price-recon/internal/reconcile/handler"
	"price-recon/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	// health-check
	r.Get("/health", handlers.Health)

	r.Get("/profiles", recHnd.Profiles)

	// основной эндпоинт
	r.Post("/reconcile", recHnd.Reconcile(cfg, logger))

	if cfg.Pprof {
		r.Mount("/debug", chimw.Profiler())
	}

	return r
}
