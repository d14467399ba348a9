package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/northhaul/fleetops-backend/api/controllers"
	"github.com/northhaul/fleetops-backend/api/middleware"
	authsvc "github.com/northhaul/fleetops-backend/internal/auth"
	"github.com/northhaul/fleetops-backend/internal/fleet"
	"github.com/northhaul/fleetops-backend/pkg/config"
	"github.com/northhaul/fleetops-backend/pkg/db"
	"github.com/northhaul/fleetops-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store db.Pinger,
	authService authsvc.Service,
	fleetService fleet.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	requireAuth := middleware.Auth(cfg.JWT, logg)

	// Reads and writes carry separate guards so the enforcement mode can
	// protect one without the other.
	guardReads := func(r chi.Router) chi.Router {
		if cfg.Auth.EnforcesReads() {
			return r.With(requireAuth)
		}
		return r
	}
	guardWrites := func(r chi.Router) chi.Router {
		if cfg.Auth.EnforcesWrites() {
			return r.With(requireAuth)
		}
		return r
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, store, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.Login(authService, logg))

		r.Route("/vehicles", func(r chi.Router) {
			guardReads(r).Get("/", controllers.ListVehicles(fleetService, logg))
			guardWrites(r).Post("/", controllers.CreateVehicle(fleetService, logg))
		})

		r.Route("/delivery-jobs", func(r chi.Router) {
			guardReads(r).Get("/", controllers.ListJobs(fleetService, logg))
			guardReads(r).Get("/count", controllers.CountJobs(fleetService, logg))
			guardWrites(r).Post("/", controllers.CreateJob(fleetService, logg))
			guardWrites(r).Post("/{id}/assign", controllers.AssignVehicle(fleetService, logg))
			guardWrites(r).Post("/complete", controllers.CompleteJobs(fleetService, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			guardReads(r).Get("/monthly-totals", controllers.MonthlyTotals(fleetService, logg))
		})
	})

	return r
}
