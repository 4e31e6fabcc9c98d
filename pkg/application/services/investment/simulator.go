// Package investment builds amortization schedules and weighs purchase against rental.
//
// Monthly net profit is held constant over the horizon; it is not tied to the
// demand growth used by the capacity projector.
package investment

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/application/services/shared"
	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

// Simulator is stateless; the zero value is ready to use
type Simulator struct{}

// NewSimulator creates an investment simulator
func NewSimulator() *Simulator {
	return &Simulator{}
}

// AmortizationSeries returns horizonMonths+1 points: month 0 holds -investment
// and every following month adds monthlyNetProfit.
func (s *Simulator) AmortizationSeries(investment, monthlyNetProfit decimal.Decimal, horizonMonths int) []entities.AmortizationPoint {
	if horizonMonths < 0 {
		horizonMonths = 0
	}

	series := make([]entities.AmortizationPoint, 0, horizonMonths+1)
	cumulative := investment.Neg()
	series = append(series, entities.AmortizationPoint{Month: 0, Cumulative: cumulative})
	for month := 1; month <= horizonMonths; month++ {
		cumulative = cumulative.Add(monthlyNetProfit)
		series = append(series, entities.AmortizationPoint{Month: month, Cumulative: cumulative})
	}
	return series
}

// BreakEvenMonth returns ceil(investment / monthlyNetProfit). It returns 0 when
// there is nothing to recover or when profit is not positive, since the
// investment then never pays back.
func (s *Simulator) BreakEvenMonth(investment, monthlyNetProfit decimal.Decimal) int {
	if investment.Sign() <= 0 || monthlyNetProfit.Sign() <= 0 {
		return 0
	}
	return int(shared.CeilDiv(investment, monthlyNetProfit).IntPart())
}

// CompareRental weighs buying against renting equivalent capacity for the same horizon.
// The verdict is advisory.
func (s *Simulator) CompareRental(investment, monthlyRentalCost decimal.Decimal, horizonMonths int) entities.RentalComparison {
	rentalTotal := monthlyRentalCost.Mul(decimal.NewFromInt(int64(horizonMonths)))
	difference := rentalTotal.Sub(investment)

	cmp := entities.RentalComparison{
		HorizonMonths: horizonMonths,
		Investment:    investment,
		RentalTotal:   rentalTotal,
		Difference:    difference,
	}
	if difference.Sign() > 0 {
		cmp.Verdict = entities.VerdictPurchase
		cmp.Advice = fmt.Sprintf("Purchasing is recommended: renting for %d months would cost %s more than buying.",
			horizonMonths, difference.StringFixed(2))
	} else {
		cmp.Verdict = entities.VerdictRental
		cmp.Advice = fmt.Sprintf("Renting is recommended: it costs %s less than buying over %d months.",
			difference.Neg().StringFixed(2), horizonMonths)
	}
	return cmp
}
