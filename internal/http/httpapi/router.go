package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"kvtogether/internal/http/handlers"
	"kvtogether/internal/infra"
	"kvtogether/internal/middleware"
)

// NewRouter wires the API routes and middleware chain.
func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Locale)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/campaigns/{slug}", app.CampaignsGet)
	r.Get("/v1/stats/summary", app.StatsSummary)

	r.Route("/v1/donations", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.With(middleware.RateLimit(cfg.DonationsPerMin, time.Minute)).Post("/", app.DonationsCreate)
		// Manual settlement moves campaign money; only finance accounts may call it.
		r.With(middleware.RequireRole(middleware.RoleFinance)).Post("/{id}/verify", app.DonationsVerify)
	})

	// Gateway callbacks authenticate by signature, not bearer token.
	r.Get("/v1/payments/vnpay/ipn", app.VNPayIPN)
	r.Post("/v1/payments/momo/ipn", app.MomoIPN)

	return r
}
