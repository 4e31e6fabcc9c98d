// Package spareparts classifies stock levels, simulates purchases and flags dead stock.
package spareparts

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/application/services/shared"
	"github.com/fleetdesk/fleetplan/pkg/config"
	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

// Engine evaluates spare parts against the consumption and threshold tables
type Engine struct {
	tables config.Tables
	logger zerolog.Logger
}

// NewEngine creates a spare-parts risk engine
func NewEngine(tables config.Tables, logger zerolog.Logger) *Engine {
	return &Engine{tables: tables, logger: logger.With().Str("component", "spareparts").Logger()}
}

// DailyRate returns the estimated daily consumption of a part. The first table
// entry whose fragment appears in the part name wins; unmatched parts use the
// default rate.
func (e *Engine) DailyRate(name string) decimal.Decimal {
	lower := strings.ToLower(name)
	for _, rate := range e.tables.ConsumptionRates {
		if strings.Contains(lower, strings.ToLower(rate.Match)) {
			return rate.DailyRate
		}
	}
	return e.tables.DefaultDailyRate
}

// CriticalFactor returns the multiplier applied to the minimum stock when
// testing for the critical band; 1 unless an override matches the part name.
func (e *Engine) CriticalFactor(name string) decimal.Decimal {
	lower := strings.ToLower(name)
	for _, override := range e.tables.ThresholdOverrides {
		if strings.Contains(lower, strings.ToLower(override.Match)) {
			return override.CriticalFactor
		}
	}
	return decimal.NewFromInt(1)
}

// DaysRemaining returns floor(stock / dailyRate), or nil when the rate is zero
func DaysRemaining(stock entities.Quantity, dailyRate decimal.Decimal) *int64 {
	if dailyRate.Sign() <= 0 {
		return nil
	}
	if stock < 0 {
		stock = 0
	}
	days := shared.FloorDiv(shared.Qty(stock), dailyRate).IntPart()
	return &days
}

// Status classifies a stock level: critical at or below minStock x critical
// factor, warning at or below minStock x warning factor, optimal above.
func (e *Engine) Status(name string, stock, minStock entities.Quantity) entities.StockStatus {
	s := shared.Qty(clamp(stock))
	m := shared.Qty(clamp(minStock))

	switch {
	case s.LessThanOrEqual(m.Mul(e.CriticalFactor(name))):
		return entities.StockCritical
	case s.LessThanOrEqual(m.Mul(e.tables.WarningFactor)):
		return entities.StockWarning
	default:
		return entities.StockOptimal
	}
}

// Classify derives the risk record of a single part
func (e *Engine) Classify(part *entities.SparePart) entities.StockRisk {
	stock := clamp(part.Stock)
	minStock := clamp(part.MinStock)
	rate := e.DailyRate(part.Name)

	risk := entities.StockRisk{
		PartID:        part.ID,
		Name:          part.Name,
		Category:      part.Category,
		Stock:         stock,
		MinStock:      minStock,
		Status:        e.Status(part.Name, stock, minStock),
		DailyRate:     rate,
		DaysRemaining: DaysRemaining(stock, rate),
		OrderCost:     decimal.Zero,
	}

	if risk.Status != entities.StockOptimal {
		target := shared.CeilQuantity(shared.Qty(minStock).Mul(e.tables.ReorderTargetFactor))
		if target > stock {
			risk.RecommendedOrder = target - stock
		}
		risk.OrderCost = part.UnitPrice.Mul(shared.Qty(risk.RecommendedOrder))
	}

	return risk
}

// ClassifyAll classifies a snapshot, preserving input order
func (e *Engine) ClassifyAll(parts []*entities.SparePart) []entities.StockRisk {
	risks := make([]entities.StockRisk, 0, len(parts))
	for _, part := range parts {
		risks = append(risks, e.Classify(part))
	}
	return risks
}

func clamp(q entities.Quantity) entities.Quantity {
	if q < 0 {
		return 0
	}
	return q
}
