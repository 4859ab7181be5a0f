package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/dineflow/table-service/internal/config"
	"github.com/dineflow/table-service/internal/metrics"
	"github.com/dineflow/table-service/internal/transport/http/handlers"
	authmw "github.com/dineflow/table-service/internal/transport/http/middleware"
)

func New(
	h *handlers.BookingHandler,
	auth *authmw.AuthMiddleware,
	z *handlers.HealthHandler,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(authmw.RequestID)
	r.Use(authmw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(authmw.AccessLog)

	if cfg.RLEnabled {
		r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
	}

	r.Get("/healthz", z.Healthz)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/booking/v1", func(r chi.Router) {
		// Read-only lookups are public.
		r.Get("/availability", h.Availability)
		r.Get("/suggestions", h.Suggestions)

		// Anything that books, offers or releases needs a staff token.
		r.Group(func(r chi.Router) {
			r.Use(auth.Require)
			r.Post("/assignments", h.Assign)
			r.Post("/combinations", h.Combinations)
			r.Post("/waitlist", h.EnqueueWaitlist)
			r.Post("/waitlist/{entry_id}/offer", h.OfferWaitlistEntry)
			r.Post("/waitlist/{entry_id}/decline", h.DeclineOffer)
			r.Post("/tables/{table_id}/offer", h.OfferNextForTable)
			r.Post("/waitlist/expire", h.ExpireWaitlist)
			r.Post("/reservations/{reservation_id}/release", h.ReleaseReservation)
		})
	})

	return r
}
