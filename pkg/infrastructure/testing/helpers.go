// Package testing builds the shared fleet and parts fixtures used across package tests.
package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
	"github.com/fleetdesk/fleetplan/pkg/infrastructure/repositories/memory"
)

// FixtureAsOf is the reference date the fixture movements are laid out against
var FixtureAsOf = time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)

// FixedClock returns a clock that always reports at
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// mustCreateUnit is a helper for tests - panics on validation error
func mustCreateUnit(id int64, sector entities.Sector, unitType entities.UnitType, brand, model string, count, onRoad, maintenance entities.Quantity) *entities.FleetUnit {
	unit, err := entities.NewFleetUnit(id, sector, unitType, model, brand, model, count, onRoad, maintenance)
	if err != nil {
		panic(err)
	}
	return unit
}

// mustCreatePart is a helper for tests - panics on validation error
func mustCreatePart(id entities.PartID, name, category string, stock, minStock entities.Quantity, unitPrice string, supplier *int64) *entities.SparePart {
	part, err := entities.NewSparePart(id, name, category, stock, minStock, decimal.RequireFromString(unitPrice), supplier)
	if err != nil {
		panic(err)
	}
	return part
}

// BuildFleetTestData builds the three-sector fleet: standard runs 100 trips/day
// on Ford tractors and Tirsan trailers, food 120 on Mercedes and Schmitz units,
// heavy 40 on Volvo tractors and lowbeds
func BuildFleetTestData() *memory.FleetRepository {
	repo := memory.NewFleetRepository(6)

	repo.SetCapacity(entities.SectorFood, 120)
	repo.SetCapacity(entities.SectorStandard, 100)
	repo.SetCapacity(entities.SectorHeavy, 40)

	units := []*entities.FleetUnit{
		mustCreateUnit(1, entities.SectorStandard, entities.Tractor, "Ford Trucks", "F-MAX", 20, 15, 2),
		mustCreateUnit(2, entities.SectorStandard, entities.Trailer, "Tirsan", "Curtainsider", 22, 15, 1),
		mustCreateUnit(3, entities.SectorFood, entities.Tractor, "Mercedes-Benz", "Actros 1845", 12, 9, 1),
		mustCreateUnit(4, entities.SectorFood, entities.Trailer, "Schmitz Cargobull", "S.KO Cool", 12, 8, 2),
		mustCreateUnit(5, entities.SectorHeavy, entities.Tractor, "Volvo", "FH16 750", 6, 4, 1),
		mustCreateUnit(6, entities.SectorHeavy, entities.Trailer, "Tirsan", "Lowbed", 6, 3, 0),
	}
	if err := repo.LoadUnits(units); err != nil {
		panic(err)
	}
	return repo
}

// BuildPartsTestData builds five parts covering every stock status:
// oil filter optimal (300 days of cover), brake pad and tire critical, air
// filter warning, and a retarder unit on the legacy dead-stock list.
// Movements are dated relative to FixtureAsOf; the air filter and the
// retarder unit have none inside the six-month window.
func BuildPartsTestData() *memory.PartRepository {
	supplier := int64(7)
	repo := memory.NewPartRepository(5)

	parts := []*entities.SparePart{
		mustCreatePart(1, "Oil Filter", "filter", 900, 300, "250", &supplier),
		mustCreatePart(2, "Brake Pad", "brake", 40, 50, "1200", &supplier),
		mustCreatePart(3, "Tire", "tire", 41, 40, "4500", nil),
		mustCreatePart(4, "Air Filter", "filter", 40, 30, "180", &supplier),
		mustCreatePart(5, "Retarder Control Unit", "electrical", 3, 1, "18500", nil),
	}
	if err := repo.LoadParts(parts); err != nil {
		panic(err)
	}

	repo.RecordMovement(1, FixtureAsOf.AddDate(0, 0, -3))
	repo.RecordMovement(2, FixtureAsOf.AddDate(0, -1, 0))
	repo.RecordMovement(3, FixtureAsOf.AddDate(0, -2, 0))
	repo.RecordMovement(4, FixtureAsOf.AddDate(0, -8, 0))
	return repo
}
