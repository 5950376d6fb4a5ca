package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zapponejosh/dontstarve-calendar/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	GET    /api/v1/calendar?day=&rog=&dst=&pace=&starting_season=
//	GET    /api/v1/calendar/range?start=&end=&rog=&dst=&pace=&starting_season=
//	GET    /api/v1/phases
//	GET    /api/v1/seasons?rog=&pace=&starting_season=
//	GET    /api/v1/paces
//	GET    /api/v1/worlds
//	POST   /api/v1/worlds                 (auth)
//	GET    /api/v1/worlds/{name}
//	PATCH  /api/v1/worlds/{name}          (auth)
//	POST   /api/v1/worlds/{name}/advance  (auth)
//	DELETE /api/v1/worlds/{name}          (auth)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		// ======================================================================
		// Calculation routes (public, stateless)
		// ======================================================================
		r.Get("/calendar", handlers.GetCalendar)
		r.Get("/calendar/range", handlers.GetCalendarRange)
		r.Get("/phases", handlers.GetPhases)
		r.Get("/seasons", handlers.GetSeasons)
		r.Get("/paces", handlers.GetPaces)

		// ======================================================================
		// Saved worlds
		// ======================================================================
		r.Route("/worlds", func(r chi.Router) {
			r.Get("/", handlers.ListWorlds)
			r.Get("/{name}", handlers.GetWorld)

			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(cfg, logger))
				r.Post("/", handlers.CreateWorld)
				r.Patch("/{name}", handlers.UpdateWorld)
				r.Post("/{name}/advance", handlers.AdvanceWorld)
				r.Delete("/{name}", handlers.DeleteWorld)
			})
		})
	})

	return r
}
