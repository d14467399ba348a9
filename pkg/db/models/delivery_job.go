package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryJob is a single delivery with its income and costs. VehicleID is
// nullable: unassigned is a valid state. CompletedAt transitions nil -> set
// exactly once through the bulk-complete operation.
type DeliveryJob struct {
	ID                  uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CreatedAt           time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	CompletedAt         *time.Time      `gorm:"column:completed_at" json:"completed_at,omitempty"`
	DestinationLocation string          `gorm:"column:destination_location;size:100;not null" json:"destination_location"`
	DeliverySlot        *time.Time      `gorm:"column:delivery_slot" json:"delivery_slot,omitempty"`
	Income              decimal.Decimal `gorm:"column:income;type:numeric(10,2);not null" json:"income"`
	Costs               decimal.Decimal `gorm:"column:costs;type:numeric(10,2);not null" json:"costs"`
	VehicleID           *uint           `gorm:"column:vehicle_id" json:"vehicle_id,omitempty"`
	Vehicle             *Vehicle        `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE" json:"vehicle,omitempty"`
}

// Profit is the derived signed margin for one job. Never persisted.
func (j DeliveryJob) Profit() decimal.Decimal {
	return j.Income.Sub(j.Costs)
}
