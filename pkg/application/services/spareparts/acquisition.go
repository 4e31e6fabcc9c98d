package spareparts

import (
	"fmt"

	"github.com/fleetdesk/fleetplan/pkg/application/services/shared"
	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

// SimulateAcquisition evaluates buying quantity units of a part against the
// optimal band [minStock, minStock x overstock factor]. Every outcome carries
// at least one recommendation.
func (e *Engine) SimulateAcquisition(part *entities.SparePart, quantity entities.Quantity) entities.SimulationResult {
	if quantity < 0 {
		e.logger.Warn().Int64("part_id", int64(part.ID)).Int64("quantity", int64(quantity)).Msg("negative acquisition quantity treated as zero")
		quantity = 0
	}

	stock := clamp(part.Stock)
	minStock := clamp(part.MinStock)
	newStock := stock + quantity
	rate := e.DailyRate(part.Name)

	n := shared.Qty(newStock)
	m := shared.Qty(minStock)
	safetyFloor := m.Mul(e.tables.WarningFactor)
	optimalMax := shared.CeilQuantity(m.Mul(e.tables.OverstockFactor))

	result := entities.SimulationResult{
		PartID:        part.ID,
		Name:          part.Name,
		Quantity:      quantity,
		CurrentStock:  stock,
		NewStock:      newStock,
		OptimalMin:    minStock,
		OptimalMax:    optimalMax,
		Cost:          part.UnitPrice.Mul(shared.Qty(quantity)),
		DaysRemaining: DaysRemaining(newStock, rate),
	}

	switch {
	case newStock < minStock:
		shortfall := minStock - newStock
		result.Status = entities.SimulationError
		result.Recommendations = []string{
			fmt.Sprintf("Stock after purchase (%d) is still below the minimum of %d.", newStock, minStock),
			fmt.Sprintf("Buy at least %d more units (order %d in total).", shortfall, quantity+shortfall),
		}
	case n.LessThan(safetyFloor):
		topUp := shared.CeilQuantity(safetyFloor.Sub(n))
		result.Status = entities.SimulationWarning
		result.Recommendations = []string{
			fmt.Sprintf("Stock after purchase (%d) leaves an insufficient safety margin below %s units.", newStock, safetyFloor.String()),
			fmt.Sprintf("Consider ordering %d more units.", topUp),
		}
	case newStock > optimalMax:
		excess := newStock - optimalMax
		result.Status = entities.SimulationWarning
		result.Recommendations = []string{
			fmt.Sprintf("Overstock: %d units above the optimal maximum of %d ties up %s in capital.",
				excess, optimalMax, part.UnitPrice.Mul(shared.Qty(excess)).StringFixed(2)),
			fmt.Sprintf("Reduce the order to %d units.", clamp(quantity-excess)),
		}
	default:
		result.Status = entities.SimulationOptimal
		result.Recommendations = []string{
			fmt.Sprintf("Stock after purchase (%d) is inside the optimal band [%d, %d].", newStock, minStock, optimalMax),
		}
		if result.DaysRemaining != nil {
			result.Recommendations = append(result.Recommendations,
				fmt.Sprintf("Covers about %d days of consumption.", *result.DaysRemaining))
		}
	}

	return result
}
