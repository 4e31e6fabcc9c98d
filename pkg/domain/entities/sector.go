package entities

import (
	"fmt"
	"sort"
	"strings"
)

// Quantity represents a non-negative count of discrete units (vehicles, parts, trips)
type Quantity int64

// Sector represents a logistics business line
type Sector string

const (
	SectorFood     Sector = "food"
	SectorStandard Sector = "standard"
	SectorHeavy    Sector = "heavy"
)

// Sectors lists every known sector in display order
var Sectors = []Sector{SectorFood, SectorStandard, SectorHeavy}

// ParseSector resolves a sector key case-insensitively
func ParseSector(s string) (Sector, bool) {
	key := Sector(strings.ToLower(strings.TrimSpace(s)))
	for _, sector := range Sectors {
		if sector == key {
			return sector, true
		}
	}
	return "", false
}

// MarketScenario is a market-condition preset applied to growth rates
type MarketScenario string

const (
	ScenarioOptimistic  MarketScenario = "optimistic"
	ScenarioNormal      MarketScenario = "normal"
	ScenarioPessimistic MarketScenario = "pessimistic"
)

// MarketScenarios lists the presets from most to least favourable
var MarketScenarios = []MarketScenario{ScenarioOptimistic, ScenarioNormal, ScenarioPessimistic}

// ParseMarketScenario resolves a scenario key case-insensitively
func ParseMarketScenario(s string) (MarketScenario, bool) {
	key := MarketScenario(strings.ToLower(strings.TrimSpace(s)))
	for _, scenario := range MarketScenarios {
		if scenario == key {
			return scenario, true
		}
	}
	return "", false
}

// UnitType distinguishes tractors from trailers
type UnitType int

const (
	Tractor UnitType = iota
	Trailer
)

// String method for UnitType enum
func (u UnitType) String() string {
	switch u {
	case Tractor:
		return "tractor"
	case Trailer:
		return "trailer"
	default:
		return "unknown"
	}
}

// MarshalText encodes the unit type by name
func (u UnitType) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// ParseUnitType resolves "tractor" or "trailer"
func ParseUnitType(s string) (UnitType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tractor":
		return Tractor, nil
	case "trailer":
		return Trailer, nil
	default:
		return Tractor, fmt.Errorf("invalid unit type: %s (expected tractor or trailer)", s)
	}
}

// FleetUnit is one roster line: a model of tractor or trailer and how many are where.
// Idle is derived as Count - OnRoad - Maintenance and never stored.
type FleetUnit struct {
	ID          int64    `json:"id"`
	Sector      Sector   `json:"sector"`
	Type        UnitType `json:"type"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Model       string   `json:"model"`
	Count       Quantity `json:"count"`
	OnRoad      Quantity `json:"on_road"`
	Maintenance Quantity `json:"maintenance"`
}

// NewFleetUnit creates a validated FleetUnit
func NewFleetUnit(id int64, sector Sector, unitType UnitType, name, brand, model string, count, onRoad, maintenance Quantity) (*FleetUnit, error) {
	if name == "" {
		return nil, fmt.Errorf("fleet unit name cannot be empty")
	}
	if count < 0 || onRoad < 0 || maintenance < 0 {
		return nil, fmt.Errorf("fleet unit counts cannot be negative")
	}
	if onRoad+maintenance > count {
		return nil, fmt.Errorf("on road (%d) plus maintenance (%d) exceeds count %d", onRoad, maintenance, count)
	}

	return &FleetUnit{
		ID:          id,
		Sector:      sector,
		Type:        unitType,
		Name:        name,
		Brand:       brand,
		Model:       model,
		Count:       count,
		OnRoad:      onRoad,
		Maintenance: maintenance,
	}, nil
}

// Idle returns the number of units neither on the road nor in maintenance
func (f FleetUnit) Idle() Quantity {
	idle := f.Count - f.OnRoad - f.Maintenance
	if idle < 0 {
		return 0
	}
	return idle
}

// SectorSnapshot is the read-only view of one sector handed to the engine
type SectorSnapshot struct {
	Sector   Sector      `json:"sector"`
	Capacity Quantity    `json:"capacity"` // trips per day
	Units    []FleetUnit `json:"units"`
}

// FleetSummary aggregates the roster of a sector by unit type
type FleetSummary struct {
	Tractors    Quantity `json:"tractors"`
	Trailers    Quantity `json:"trailers"`
	OnRoad      Quantity `json:"on_road"`
	Maintenance Quantity `json:"maintenance"`
	Idle        Quantity `json:"idle"`
}

// Summary totals the roster
func (s SectorSnapshot) Summary() FleetSummary {
	var summary FleetSummary
	for _, unit := range s.Units {
		switch unit.Type {
		case Tractor:
			summary.Tractors += unit.Count
		case Trailer:
			summary.Trailers += unit.Count
		}
		summary.OnRoad += unit.OnRoad
		summary.Maintenance += unit.Maintenance
		summary.Idle += unit.Idle()
	}
	return summary
}

// PrimaryModel returns the most numerous model of the given type, ties broken by name.
// The boolean is false when the roster holds no unit of that type.
func (s SectorSnapshot) PrimaryModel(unitType UnitType) (FleetUnit, bool) {
	var candidates []FleetUnit
	for _, unit := range s.Units {
		if unit.Type == unitType {
			candidates = append(candidates, unit)
		}
	}
	if len(candidates) == 0 {
		return FleetUnit{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Count != candidates[j].Count {
			return candidates[i].Count > candidates[j].Count
		}
		return candidates[i].Name < candidates[j].Name
	})
	return candidates[0], true
}
