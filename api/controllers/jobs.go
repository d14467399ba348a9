package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/northhaul/fleetops-backend/api/responses"
	"github.com/northhaul/fleetops-backend/api/validators"
	"github.com/northhaul/fleetops-backend/internal/fleet"
	pkgerrors "github.com/northhaul/fleetops-backend/pkg/errors"
	"github.com/northhaul/fleetops-backend/pkg/logger"
)

// ListJobs returns delivery jobs matching the equality filters in the query
// string, optionally ranked by vehicle profitability and paginated.
func ListJobs(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fleet service unavailable"))
			return
		}

		params, err := parseListJobsParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobs, err := svc.ListJobs(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, jobs)
	}
}

// CountJobs returns the number of delivery jobs matching the filters,
// ignoring pagination.
func CountJobs(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fleet service unavailable"))
			return
		}

		filters, err := parseJobFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		count, err := svc.CountJobs(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int64{"count": count})
	}
}

// CreateJob records a new delivery job, optionally assigned to a vehicle.
func CreateJob(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fleet service unavailable"))
			return
		}

		var payload createJobRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		job, err := svc.CreateJob(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, job)
	}
}

// AssignVehicle moves the delivery job in the URL onto the vehicle in the
// body.
func AssignVehicle(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fleet service unavailable"))
			return
		}

		jobID, err := parsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload assignVehicleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		job, err := svc.AssignVehicle(r.Context(), jobID, payload.VehicleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, job)
	}
}

// CompleteJobs marks every listed delivery job completed in one transaction.
func CompleteJobs(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fleet service unavailable"))
			return
		}

		var payload completeJobsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.MarkCompleted(r.Context(), payload.JobIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type createJobRequest struct {
	DestinationLocation string          `json:"destination_location" validate:"required,max=100"`
	DeliverySlot        *time.Time      `json:"delivery_slot,omitempty"`
	Income              decimal.Decimal `json:"income"`
	Costs               decimal.Decimal `json:"costs"`
	VehicleID           *uint           `json:"vehicle_id,omitempty"`
}

type assignVehicleRequest struct {
	VehicleID uint `json:"vehicle_id" validate:"required"`
}

// job_ids may be empty: an empty set flows through to the service, which
// reports success=false rather than rejecting the request.
type completeJobsRequest struct {
	JobIDs []uint `json:"job_ids" validate:"required"`
}

func (r createJobRequest) toCreateInput() (fleet.CreateJobInput, error) {
	if r.Income.IsNegative() || r.Costs.IsNegative() {
		return fleet.CreateJobInput{}, pkgerrors.New(pkgerrors.CodeValidation, "income and costs must not be negative")
	}
	return fleet.CreateJobInput{
		DestinationLocation: r.DestinationLocation,
		DeliverySlot:        r.DeliverySlot,
		Income:              r.Income,
		Costs:               r.Costs,
		VehicleID:           r.VehicleID,
	}, nil
}

func parseJobFilters(r *http.Request) (fleet.JobFilters, error) {
	slot, err := validators.ParseOptionalTime(r, "delivery_slot")
	if err != nil {
		return fleet.JobFilters{}, err
	}
	income, err := validators.ParseOptionalDecimal(r, "income")
	if err != nil {
		return fleet.JobFilters{}, err
	}
	costs, err := validators.ParseOptionalDecimal(r, "costs")
	if err != nil {
		return fleet.JobFilters{}, err
	}
	vehicleID, err := validators.ParseOptionalUint(r, "vehicle_id")
	if err != nil {
		return fleet.JobFilters{}, err
	}

	return fleet.JobFilters{
		DestinationLocation: validators.ParseOptionalString(r, "destination_location"),
		DeliverySlot:        slot,
		Income:              income,
		Costs:               costs,
		VehicleID:           vehicleID,
	}, nil
}

func parseListJobsParams(r *http.Request) (fleet.ListJobsParams, error) {
	filters, err := parseJobFilters(r)
	if err != nil {
		return fleet.ListJobsParams{}, err
	}
	ranked, err := validators.ParseOptionalBool(r, "order_by_most_profitable_vehicle")
	if err != nil {
		return fleet.ListJobsParams{}, err
	}
	page, err := parsePageParams(r)
	if err != nil {
		return fleet.ListJobsParams{}, err
	}

	params := fleet.ListJobsParams{Filters: filters, Page: page}
	if ranked != nil {
		params.OrderByMostProfitableVehicle = *ranked
	}
	return params, nil
}

func parsePathID(r *http.Request, key string) (uint, error) {
	raw := chi.URLParam(r, key)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a positive integer").WithDetails(map[string]any{"field": key})
	}
	return uint(value), nil
}
