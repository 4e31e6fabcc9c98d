package shared

import (
	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

// CeilDiv returns ceil(a / b) computed exactly. b must be positive.
func CeilDiv(a, b decimal.Decimal) decimal.Decimal {
	q, r := a.QuoRem(b, 0)
	if r.Sign() > 0 {
		q = q.Add(decimal.NewFromInt(1))
	}
	return q
}

// FloorDiv returns floor(a / b) computed exactly for a >= 0 and b positive.
func FloorDiv(a, b decimal.Decimal) decimal.Decimal {
	q, _ := a.QuoRem(b, 0)
	return q
}

// CeilQuantity rounds a non-negative amount up to a whole quantity; negative amounts yield zero.
func CeilQuantity(x decimal.Decimal) entities.Quantity {
	if x.Sign() <= 0 {
		return 0
	}
	return entities.Quantity(x.Ceil().IntPart())
}

// Qty converts a quantity to a decimal
func Qty(q entities.Quantity) decimal.Decimal {
	return decimal.NewFromInt(int64(q))
}
