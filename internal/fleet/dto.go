package fleet

import (
	"time"

	"github.com/northhaul/fleetops-backend/pkg/pagination"
	"github.com/shopspring/decimal"
)

// JobFilters describe the optional equality predicates supported by the
// delivery job listing and count. A nil field contributes no predicate;
// present fields are combined with AND semantics. There are no range or
// partial-match filters.
type JobFilters struct {
	DestinationLocation *string
	DeliverySlot        *time.Time
	Income              *decimal.Decimal
	Costs               *decimal.Decimal
	VehicleID           *uint
}

// VehicleFilters describe the optional equality predicates for the vehicle
// listing.
type VehicleFilters struct {
	Make     *string
	Model    *string
	Year     *int
	IsActive *bool
}

// ListJobsParams bundles the inputs of the delivery job listing.
type ListJobsParams struct {
	Filters                      JobFilters
	OrderByMostProfitableVehicle bool
	Page                         pagination.Params
}

// ListVehiclesParams bundles the inputs of the vehicle listing.
type ListVehiclesParams struct {
	Filters VehicleFilters
	Page    pagination.Params
}

// CreateVehicleInput carries the fields for a new vehicle. IsActive always
// starts true.
type CreateVehicleInput struct {
	Make  string
	Model string
	Year  int
}

// CreateJobInput carries the fields for a new delivery job. VehicleID is
// optional; when present it must resolve to an existing vehicle.
type CreateJobInput struct {
	DestinationLocation string
	DeliverySlot        *time.Time
	Income              decimal.Decimal
	Costs               decimal.Decimal
	VehicleID           *uint
}

// MonthlyTotals holds the income and cost sums for one calendar month.
type MonthlyTotals struct {
	TotalIncome decimal.Decimal `json:"total_income"`
	TotalCosts  decimal.Decimal `json:"total_costs"`
}

// CompletionResult reports the outcome of a bulk completion. Success is
// false when none of the requested ids matched; the message then names the
// ids that were asked for.
type CompletionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
