package fleet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/northhaul/fleetops-backend/pkg/db/models"
	pkgerrors "github.com/northhaul/fleetops-backend/pkg/errors"
	"github.com/northhaul/fleetops-backend/pkg/pagination"
	"gorm.io/gorm"
)

// TxRunner executes fn inside one transaction. *db.Client satisfies this.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the fleet operations consumed by the transport layer.
type Service interface {
	ListVehicles(ctx context.Context, params ListVehiclesParams) ([]models.Vehicle, error)
	CreateVehicle(ctx context.Context, input CreateVehicleInput) (*models.Vehicle, error)
	ListJobs(ctx context.Context, params ListJobsParams) ([]models.DeliveryJob, error)
	CountJobs(ctx context.Context, filters JobFilters) (int64, error)
	CreateJob(ctx context.Context, input CreateJobInput) (*models.DeliveryJob, error)
	AssignVehicle(ctx context.Context, jobID, vehicleID uint) (*models.DeliveryJob, error)
	MarkCompleted(ctx context.Context, jobIDs []uint) (CompletionResult, error)
	MonthlyTotals(ctx context.Context, month *int) (MonthlyTotals, error)
}

type service struct {
	repo Repository
	tx   TxRunner
}

// NewService builds the fleet service with the provided repository and
// transaction runner.
func NewService(repo Repository, tx TxRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("fleet repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) ListVehicles(ctx context.Context, params ListVehiclesParams) ([]models.Vehicle, error) {
	vehicles, err := s.repo.ListVehicles(ctx, params.Filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vehicles")
	}

	page, err := pagination.Paginate(vehicles, params.Page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid page size")
	}
	return page, nil
}

func (s *service) CreateVehicle(ctx context.Context, input CreateVehicleInput) (*models.Vehicle, error) {
	if strings.TrimSpace(input.Make) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "make is required")
	}
	if strings.TrimSpace(input.Model) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "model is required")
	}

	vehicle := &models.Vehicle{
		Make:     input.Make,
		Model:    input.Model,
		Year:     input.Year,
		IsActive: true,
	}
	created, err := s.repo.CreateVehicle(ctx, vehicle)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vehicle")
	}
	return created, nil
}

func (s *service) ListJobs(ctx context.Context, params ListJobsParams) ([]models.DeliveryJob, error) {
	jobs, err := s.repo.ListJobs(ctx, params.Filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list delivery jobs")
	}

	if params.OrderByMostProfitableVehicle {
		jobs = rankJobsByVehicleProfit(jobs)
	}

	page, err := pagination.Paginate(jobs, params.Page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid page size")
	}
	return page, nil
}

func (s *service) CountJobs(ctx context.Context, filters JobFilters) (int64, error) {
	count, err := s.repo.CountJobs(ctx, filters)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count delivery jobs")
	}
	return count, nil
}

func (s *service) CreateJob(ctx context.Context, input CreateJobInput) (*models.DeliveryJob, error) {
	if strings.TrimSpace(input.DestinationLocation) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destination_location is required")
	}

	if input.VehicleID != nil {
		if _, err := s.repo.FindVehicleByID(ctx, *input.VehicleID); err != nil {
			return nil, vehicleLookupError(err, *input.VehicleID)
		}
	}

	job := &models.DeliveryJob{
		DestinationLocation: input.DestinationLocation,
		DeliverySlot:        input.DeliverySlot,
		Income:              input.Income,
		Costs:               input.Costs,
		VehicleID:           input.VehicleID,
	}
	created, err := s.repo.CreateJob(ctx, job)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create delivery job")
	}
	return created, nil
}

func (s *service) AssignVehicle(ctx context.Context, jobID, vehicleID uint) (*models.DeliveryJob, error) {
	var assigned *models.DeliveryJob
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		job, err := txRepo.FindJobByID(ctx, jobID)
		if err != nil {
			return jobLookupError(err, jobID)
		}
		vehicle, err := txRepo.FindVehicleByID(ctx, vehicleID)
		if err != nil {
			return vehicleLookupError(err, vehicleID)
		}

		job.VehicleID = &vehicle.ID
		job.Vehicle = vehicle
		if err := txRepo.SaveJob(ctx, job); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save delivery job")
		}
		assigned = job
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign vehicle")
	}
	return assigned, nil
}

func (s *service) MarkCompleted(ctx context.Context, jobIDs []uint) (CompletionResult, error) {
	var affected int64
	now := time.Now().UTC()
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		count, err := s.repo.WithTx(tx).MarkJobsCompleted(ctx, jobIDs, now)
		if err != nil {
			return err
		}
		affected = count
		return nil
	})
	if err != nil {
		// Store failures are surfaced with their cause, never reduced
		// to a bare success=false.
		return CompletionResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark delivery jobs completed")
	}

	if affected == 0 {
		return CompletionResult{
			Success: false,
			Message: fmt.Sprintf("no delivery jobs matched ids %v", jobIDs),
		}, nil
	}
	return CompletionResult{
		Success: true,
		Message: fmt.Sprintf("marked %d delivery jobs as completed", affected),
	}, nil
}

func (s *service) MonthlyTotals(ctx context.Context, month *int) (MonthlyTotals, error) {
	m := int(time.Now().Month())
	if month != nil {
		m = *month
	}
	if m < 1 || m > 12 {
		return MonthlyTotals{}, pkgerrors.New(pkgerrors.CodeValidation, "month must be between 1 and 12")
	}

	totals, err := s.repo.MonthlySums(ctx, m)
	if err != nil {
		return MonthlyTotals{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "monthly totals")
	}
	return totals, nil
}

func jobLookupError(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("delivery job %d not found", id))
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find delivery job")
}

func vehicleLookupError(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("vehicle %d not found", id))
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find vehicle")
}
