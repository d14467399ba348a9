package fleet

import (
	"context"
	"time"

	"github.com/northhaul/fleetops-backend/internal/repo"
	"github.com/northhaul/fleetops-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository defines persistence operations for vehicles and delivery jobs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateVehicle(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	FindVehicleByID(ctx context.Context, id uint) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, filters VehicleFilters) ([]models.Vehicle, error)
	CreateJob(ctx context.Context, job *models.DeliveryJob) (*models.DeliveryJob, error)
	FindJobByID(ctx context.Context, id uint) (*models.DeliveryJob, error)
	SaveJob(ctx context.Context, job *models.DeliveryJob) error
	ListJobs(ctx context.Context, filters JobFilters) ([]models.DeliveryJob, error)
	CountJobs(ctx context.Context, filters JobFilters) (int64, error)
	MarkJobsCompleted(ctx context.Context, ids []uint, completedAt time.Time) (int64, error)
	MonthlySums(ctx context.Context, month int) (MonthlyTotals, error)
}

type repository struct {
	base repo.Base
}

// NewRepository builds a fleet repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: repo.NewBase(tx)}
}

func (r *repository) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	if err := r.base.DB(ctx).Create(vehicle).Error; err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (r *repository) FindVehicleByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.base.DB(ctx).First(&vehicle, id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *repository) ListVehicles(ctx context.Context, filters VehicleFilters) ([]models.Vehicle, error) {
	q := r.base.DB(ctx).Model(&models.Vehicle{})
	if filters.Make != nil && *filters.Make != "" {
		q = q.Where("make = ?", *filters.Make)
	}
	if filters.Model != nil && *filters.Model != "" {
		q = q.Where("model = ?", *filters.Model)
	}
	if filters.Year != nil {
		q = q.Where("year = ?", *filters.Year)
	}
	if filters.IsActive != nil {
		q = q.Where("is_active = ?", *filters.IsActive)
	}

	var vehicles []models.Vehicle
	if err := q.Order("id ASC").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *repository) CreateJob(ctx context.Context, job *models.DeliveryJob) (*models.DeliveryJob, error) {
	if err := r.base.DB(ctx).Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

func (r *repository) FindJobByID(ctx context.Context, id uint) (*models.DeliveryJob, error) {
	var job models.DeliveryJob
	err := r.base.DB(ctx).
		Preload("Vehicle").
		First(&job, id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *repository) SaveJob(ctx context.Context, job *models.DeliveryJob) error {
	return r.base.DB(ctx).Save(job).Error
}

func (r *repository) ListJobs(ctx context.Context, filters JobFilters) ([]models.DeliveryJob, error) {
	var jobs []models.DeliveryJob
	err := applyJobFilters(r.base.DB(ctx).Model(&models.DeliveryJob{}), filters).
		Preload("Vehicle").
		Order("id ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *repository) CountJobs(ctx context.Context, filters JobFilters) (int64, error) {
	var count int64
	err := applyJobFilters(r.base.DB(ctx).Model(&models.DeliveryJob{}), filters).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) MarkJobsCompleted(ctx context.Context, ids []uint, completedAt time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.base.DB(ctx).
		Model(&models.DeliveryJob{}).
		Where("id IN ?", ids).
		Update("completed_at", completedAt)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// MonthlySums matches delivery_slot by month-of-year only, any year. Rows
// with a NULL slot never match.
func (r *repository) MonthlySums(ctx context.Context, month int) (MonthlyTotals, error) {
	if r.base.DB(ctx).Dialector.Name() == "sqlite" {
		return r.monthlySumsSQLite(ctx, month)
	}

	// Text-cast so the exact numeric total scans into decimal without a
	// float detour.
	var row struct {
		TotalIncome decimal.Decimal
		TotalCosts  decimal.Decimal
	}
	err := r.base.DB(ctx).
		Model(&models.DeliveryJob{}).
		Select("COALESCE(SUM(income), 0)::text AS total_income, COALESCE(SUM(costs), 0)::text AS total_costs").
		Where("EXTRACT(MONTH FROM delivery_slot) = ?", month).
		Scan(&row).Error
	if err != nil {
		return MonthlyTotals{}, err
	}
	return MonthlyTotals{TotalIncome: row.TotalIncome, TotalCosts: row.TotalCosts}, nil
}

// monthlySumsSQLite sums rows in decimal: sqlite coerces NUMERIC text to
// float under SUM, which breaks currency precision.
func (r *repository) monthlySumsSQLite(ctx context.Context, month int) (MonthlyTotals, error) {
	var rows []struct {
		Income decimal.Decimal
		Costs  decimal.Decimal
	}
	err := r.base.DB(ctx).
		Model(&models.DeliveryJob{}).
		Select("income, costs").
		Where("CAST(strftime('%m', delivery_slot) AS INTEGER) = ?", month).
		Scan(&rows).Error
	if err != nil {
		return MonthlyTotals{}, err
	}

	totals := MonthlyTotals{
		TotalIncome: decimal.Zero,
		TotalCosts:  decimal.Zero,
	}
	for _, row := range rows {
		totals.TotalIncome = totals.TotalIncome.Add(row.Income)
		totals.TotalCosts = totals.TotalCosts.Add(row.Costs)
	}
	return totals, nil
}

func applyJobFilters(q *gorm.DB, filters JobFilters) *gorm.DB {
	if filters.DestinationLocation != nil && *filters.DestinationLocation != "" {
		q = q.Where("destination_location = ?", *filters.DestinationLocation)
	}
	if filters.DeliverySlot != nil {
		q = q.Where("delivery_slot = ?", *filters.DeliverySlot)
	}
	if filters.Income != nil {
		q = q.Where("income = ?", *filters.Income)
	}
	if filters.Costs != nil {
		q = q.Where("costs = ?", *filters.Costs)
	}
	if filters.VehicleID != nil {
		q = q.Where("vehicle_id = ?", *filters.VehicleID)
	}
	return q
}
