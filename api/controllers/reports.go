package controllers

import (
	"net/http"

	"github.com/northhaul/fleetops-backend/api/responses"
	"github.com/northhaul/fleetops-backend/api/validators"
	"github.com/northhaul/fleetops-backend/internal/fleet"
	pkgerrors "github.com/northhaul/fleetops-backend/pkg/errors"
	"github.com/northhaul/fleetops-backend/pkg/logger"
)

// MonthlyTotals reports the income and cost sums for one calendar month.
// Without a month parameter the current month is used.
func MonthlyTotals(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fleet service unavailable"))
			return
		}

		month, err := validators.ParseOptionalInt(r, "month")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		totals, err := svc.MonthlyTotals(r.Context(), month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, totals)
	}
}
