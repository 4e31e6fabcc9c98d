package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
	"github.com/fleetdesk/fleetplan/pkg/domain/repositories"
)

// FleetRepository provides in-memory sector capacity and roster storage
type FleetRepository struct {
	mu         sync.RWMutex
	capacities map[entities.Sector]entities.Quantity
	units      []entities.FleetUnit
}

// NewFleetRepository creates a new in-memory fleet repository
func NewFleetRepository(expectedUnits int) *FleetRepository {
	return &FleetRepository{
		capacities: make(map[entities.Sector]entities.Quantity, len(entities.Sectors)),
		units:      make([]entities.FleetUnit, 0, expectedUnits),
	}
}

// Verify interface compliance
var _ repositories.FleetRepository = (*FleetRepository)(nil)

// SetCapacity records the daily trip capacity of a sector
func (r *FleetRepository) SetCapacity(sector entities.Sector, capacity entities.Quantity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capacities[sector] = capacity
}

// AddUnit adds a roster line to the repository
func (r *FleetRepository) AddUnit(unit entities.FleetUnit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.units = append(r.units, unit)
}

// LoadUnits loads roster lines into the repository
func (r *FleetRepository) LoadUnits(units []*entities.FleetUnit) error {
	for _, unit := range units {
		if unit == nil {
			return fmt.Errorf("nil fleet unit")
		}
		r.AddUnit(*unit)
	}
	return nil
}

// GetSectorSnapshot returns the capacity and a copy of the roster of a sector
func (r *FleetRepository) GetSectorSnapshot(ctx context.Context, sector entities.Sector) (*entities.SectorSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	capacity, known := r.capacities[sector]
	snapshot := &entities.SectorSnapshot{
		Sector:   sector,
		Capacity: capacity,
		Units:    make([]entities.FleetUnit, 0),
	}
	for _, unit := range r.units {
		if unit.Sector == sector {
			snapshot.Units = append(snapshot.Units, unit)
			known = true
		}
	}
	if !known {
		return nil, fmt.Errorf("sector %s: %w", sector, repositories.ErrNotFound)
	}
	return snapshot, nil
}

// ListSectors returns every sector with a capacity or roster entry, known sectors first
func (r *FleetRepository) ListSectors(ctx context.Context) ([]entities.Sector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[entities.Sector]bool)
	for sector := range r.capacities {
		seen[sector] = true
	}
	for _, unit := range r.units {
		seen[unit.Sector] = true
	}

	return orderSectors(seen), nil
}

// orderSectors lists known sectors in display order, followed by any others alphabetically
func orderSectors(seen map[entities.Sector]bool) []entities.Sector {
	sectors := make([]entities.Sector, 0, len(seen))
	for _, sector := range entities.Sectors {
		if seen[sector] {
			sectors = append(sectors, sector)
			delete(seen, sector)
		}
	}
	var others []entities.Sector
	for sector := range seen {
		others = append(others, sector)
	}
	sort.Slice(others, func(i, j int) bool { return others[i] < others[j] })
	return append(sectors, others...)
}
