// Package gap sizes and costs the fleet additions that close a capacity deficit.
package gap

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/application/services/shared"
	"github.com/fleetdesk/fleetplan/pkg/config"
	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

// RouteOptimizationGuidance is returned in place of a purchase plan when capacity covers demand
const RouteOptimizationGuidance = "Capacity covers projected demand; optimize routes and raise utilization of idle units before buying."

// Gap returns capacity - demand; negative values are a deficit
func Gap(capacity, demand entities.Quantity) int64 {
	return int64(capacity) - int64(demand)
}

// Engine builds purchase recommendations from the sector price table
type Engine struct {
	tables config.Tables
	logger zerolog.Logger
}

// NewEngine creates a recommendation engine
func NewEngine(tables config.Tables, logger zerolog.Logger) *Engine {
	return &Engine{tables: tables, logger: logger.With().Str("component", "gap").Logger()}
}

// Recommend returns the tractors and trailers needed to absorb deficitAbs trips
// per day. Item names follow the sector's most common roster models; roster may
// be nil. A non-positive deficit yields an empty recommendation with zero
// investment.
func (e *Engine) Recommend(sector entities.Sector, deficitAbs entities.Quantity, roster *entities.SectorSnapshot) entities.Recommendation {
	rec := entities.Recommendation{
		Sector:          sector,
		Lines:           []entities.RecommendationLine{},
		TotalInvestment: decimal.Zero,
	}
	if deficitAbs <= 0 {
		rec.Guidance = RouteOptimizationGuidance
		return rec
	}

	table, ok := e.tables.Sectors[sector]
	if !ok {
		e.logger.Warn().Str("sector", string(sector)).Str("fallback", string(e.tables.DefaultSector)).Msg("no price table for sector, using default")
		table = e.tables.Sectors[e.tables.DefaultSector]
	}

	required := shared.CeilQuantity(shared.Qty(deficitAbs).Mul(e.tables.SafetyMargin))
	tractors := shared.CeilQuantity(shared.Qty(required).Mul(table.TractorShare))
	trailers := shared.CeilQuantity(shared.Qty(required).Mul(table.TrailerShare))

	rec.RequiredVehicles = required
	rec.Lines = append(rec.Lines,
		line(itemName(roster, entities.Tractor, table.DefaultTractorModel), entities.Tractor, tractors, table.TractorUnitPrice),
		line(itemName(roster, entities.Trailer, table.DefaultTrailerModel), entities.Trailer, trailers, table.TrailerUnitPrice),
	)
	for _, l := range rec.Lines {
		rec.TotalInvestment = rec.TotalInvestment.Add(l.LineCost)
	}
	rec.Guidance = fmt.Sprintf("Deficit of %d trips/day: add %d tractors and %d trailers (%d vehicles incl. safety margin).",
		deficitAbs, tractors, trailers, required)

	e.logger.Debug().
		Str("sector", string(sector)).
		Int64("deficit", int64(deficitAbs)).
		Int64("required", int64(required)).
		Str("investment", rec.TotalInvestment.String()).
		Msg("recommendation built")

	return rec
}

func line(name string, unitType entities.UnitType, qty entities.Quantity, unitPrice decimal.Decimal) entities.RecommendationLine {
	return entities.RecommendationLine{
		ItemName:  name,
		UnitType:  unitType,
		Quantity:  qty,
		UnitPrice: unitPrice,
		LineCost:  unitPrice.Mul(shared.Qty(qty)),
	}
}

func itemName(roster *entities.SectorSnapshot, unitType entities.UnitType, fallback string) string {
	if roster == nil {
		return fallback
	}
	unit, ok := roster.PrimaryModel(unitType)
	if !ok {
		return fallback
	}
	if unit.Brand != "" && unit.Model != "" {
		return unit.Brand + " " + unit.Model
	}
	return unit.Name
}
