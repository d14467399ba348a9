package controllers

import (
	"net/http"

	"github.com/northhaul/fleetops-backend/api/responses"
	"github.com/northhaul/fleetops-backend/api/validators"
	"github.com/northhaul/fleetops-backend/internal/fleet"
	pkgerrors "github.com/northhaul/fleetops-backend/pkg/errors"
	"github.com/northhaul/fleetops-backend/pkg/logger"
	"github.com/northhaul/fleetops-backend/pkg/pagination"
)

// ListVehicles returns vehicles matching the equality filters in the query
// string, optionally paginated.
func ListVehicles(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fleet service unavailable"))
			return
		}

		params, err := parseListVehiclesParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicles, err := svc.ListVehicles(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vehicles)
	}
}

// CreateVehicle registers a new vehicle. New vehicles always start active.
func CreateVehicle(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fleet service unavailable"))
			return
		}

		var payload createVehicleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicle, err := svc.CreateVehicle(r.Context(), fleet.CreateVehicleInput{
			Make:  payload.Make,
			Model: payload.Model,
			Year:  payload.Year,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, vehicle)
	}
}

type createVehicleRequest struct {
	Make  string `json:"make" validate:"required,max=24"`
	Model string `json:"model" validate:"required,max=24"`
	Year  int    `json:"year" validate:"required,gte=1900"`
}

func parseListVehiclesParams(r *http.Request) (fleet.ListVehiclesParams, error) {
	year, err := validators.ParseOptionalInt(r, "year")
	if err != nil {
		return fleet.ListVehiclesParams{}, err
	}
	isActive, err := validators.ParseOptionalBool(r, "is_active")
	if err != nil {
		return fleet.ListVehiclesParams{}, err
	}
	page, err := parsePageParams(r)
	if err != nil {
		return fleet.ListVehiclesParams{}, err
	}

	return fleet.ListVehiclesParams{
		Filters: fleet.VehicleFilters{
			Make:     validators.ParseOptionalString(r, "make"),
			Model:    validators.ParseOptionalString(r, "model"),
			Year:     year,
			IsActive: isActive,
		},
		Page: page,
	}, nil
}

func parsePageParams(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseOptionalInt(r, "page")
	if err != nil {
		return pagination.Params{}, err
	}
	pageSize, err := validators.ParseOptionalInt(r, "page_size")
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, PageSize: pageSize}, nil
}
