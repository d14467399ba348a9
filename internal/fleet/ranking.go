package fleet

import (
	"sort"

	"github.com/northhaul/fleetops-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// vehicleGroup identifies one ranking group. Unassigned jobs form their own
// group rather than being dropped.
type vehicleGroup struct {
	assigned bool
	id       uint
}

func groupFor(vehicleID *uint) vehicleGroup {
	if vehicleID == nil {
		return vehicleGroup{}
	}
	return vehicleGroup{assigned: true, id: *vehicleID}
}

// rankJobsByVehicleProfit reorders jobs so that every job of the most
// profitable vehicle comes first, then the next vehicle, and so on. Profit
// is summed per vehicle in exact decimal arithmetic. Within a group jobs
// stay ordered by id ascending. The result is a permutation of the input;
// nothing is dropped or duplicated.
//
// Groups with equal profit sums order by vehicle id ascending, the
// unassigned group last among them.
func rankJobsByVehicleProfit(jobs []models.DeliveryJob) []models.DeliveryJob {
	if len(jobs) == 0 {
		return jobs
	}

	sums := make(map[vehicleGroup]decimal.Decimal)
	for _, job := range jobs {
		key := groupFor(job.VehicleID)
		sums[key] = sums[key].Add(job.Profit())
	}

	groups := make([]vehicleGroup, 0, len(sums))
	for key := range sums {
		groups = append(groups, key)
	}
	sort.Slice(groups, func(i, j int) bool {
		cmp := sums[groups[i]].Cmp(sums[groups[j]])
		if cmp != 0 {
			return cmp > 0
		}
		if groups[i].assigned != groups[j].assigned {
			return groups[i].assigned
		}
		return groups[i].id < groups[j].id
	})

	rank := make(map[vehicleGroup]int, len(groups))
	for i, key := range groups {
		rank[key] = i
	}

	ordered := make([]models.DeliveryJob, len(jobs))
	copy(ordered, jobs)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri := rank[groupFor(ordered[i].VehicleID)]
		rj := rank[groupFor(ordered[j].VehicleID)]
		if ri != rj {
			return ri < rj
		}
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}
