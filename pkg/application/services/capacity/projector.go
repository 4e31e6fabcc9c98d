// Package capacity projects trip demand forward from an annual growth rate.
//
// Growth is applied linearly: a 12% annual rate adds 1% of current capacity
// per month, without compounding.
package capacity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/application/services/gap"
	"github.com/fleetdesk/fleetplan/pkg/application/services/shared"
	"github.com/fleetdesk/fleetplan/pkg/config"
	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

// percentMonths converts an annual percentage into a monthly fraction: rate / 100 / 12
var percentMonths = decimal.NewFromInt(1200)

// Projector turns growth rates into projected demand and risk months
type Projector struct {
	riskThreshold  decimal.Decimal
	lookahead      int
	fallbackMonths int
}

// NewProjector creates a projector using the risk settings from the tables
func NewProjector(tables config.Tables) *Projector {
	return &Projector{
		riskThreshold:  tables.RiskThreshold,
		lookahead:      tables.RiskLookaheadMonths,
		fallbackMonths: tables.RiskFallbackMonths,
	}
}

// ProjectDemand returns ceil(capacity * (1 + annualRate/100/12 * months))
func (p *Projector) ProjectDemand(capacity entities.Quantity, annualRate decimal.Decimal, months int) entities.Quantity {
	if capacity <= 0 {
		return 0
	}
	if months < 0 {
		months = 0
	}

	// capacity * (1200 + rate*months) / 1200 keeps the division exact
	growth := percentMonths.Add(annualRate.Mul(decimal.NewFromInt(int64(months))))
	numerator := shared.Qty(capacity).Mul(growth)
	if numerator.Sign() <= 0 {
		return 0
	}
	return entities.Quantity(shared.CeilDiv(numerator, percentMonths).IntPart())
}

// FindRiskMonth returns the first calendar month after from at which projected
// demand reaches capacity x risk threshold. When no month within the look-ahead
// qualifies (or capacity is zero) it returns the fixed fallback estimate and false.
func (p *Projector) FindRiskMonth(capacity entities.Quantity, annualRate decimal.Decimal, from time.Month) (time.Month, bool) {
	if capacity > 0 {
		threshold := shared.Qty(capacity).Mul(p.riskThreshold)
		for i := 1; i <= p.lookahead; i++ {
			demand := p.ProjectDemand(capacity, annualRate, i)
			if shared.Qty(demand).GreaterThanOrEqual(threshold) {
				return AddMonths(from, i), true
			}
		}
	}
	return AddMonths(from, p.fallbackMonths), false
}

// Project bundles demand, gap and risk month for a horizon
func (p *Projector) Project(capacity entities.Quantity, annualRate decimal.Decimal, horizonMonths int, from time.Month) entities.CapacityProjection {
	demand := p.ProjectDemand(capacity, annualRate, horizonMonths)
	riskMonth, found := p.FindRiskMonth(capacity, annualRate, from)

	return entities.CapacityProjection{
		HorizonMonths: horizonMonths,
		AnnualRate:    annualRate,
		Capacity:      capacity,
		Demand:        demand,
		Gap:           gap.Gap(capacity, demand),
		RiskMonth:     riskMonth,
		RiskEstimated: !found,
	}
}

// AddMonths advances a calendar month, wrapping after December
func AddMonths(from time.Month, n int) time.Month {
	idx := (int(from) - 1 + n) % 12
	if idx < 0 {
		idx += 12
	}
	return time.Month(idx + 1)
}
