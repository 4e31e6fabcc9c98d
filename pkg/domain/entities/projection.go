package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapacityProjection compares current capacity with demand projected HorizonMonths ahead
type CapacityProjection struct {
	HorizonMonths int             `json:"horizon_months"`
	AnnualRate    decimal.Decimal `json:"annual_rate"`
	Capacity      Quantity        `json:"capacity"`
	Demand        Quantity        `json:"demand"`
	Gap           int64           `json:"gap"` // capacity - demand, negative means deficit
	RiskMonth     time.Month      `json:"risk_month"`
	// RiskEstimated is set when no month within a year crossed the risk threshold
	// and RiskMonth is the fixed look-ahead estimate.
	RiskEstimated bool `json:"risk_estimated"`
}

// Deficit reports whether projected demand exceeds capacity
func (p CapacityProjection) Deficit() bool {
	return p.Gap < 0
}

// DeficitAbs returns the size of the deficit, zero on surplus
func (p CapacityProjection) DeficitAbs() Quantity {
	if p.Gap >= 0 {
		return 0
	}
	return Quantity(-p.Gap)
}

// RecommendationLine is one purchase line of a fleet recommendation
type RecommendationLine struct {
	ItemName  string          `json:"item_name"`
	UnitType  UnitType        `json:"unit_type"`
	Quantity  Quantity        `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineCost  decimal.Decimal `json:"line_cost"`
}

// Recommendation is the shopping list that closes a capacity deficit
type Recommendation struct {
	Sector           Sector               `json:"sector"`
	RequiredVehicles Quantity             `json:"required_vehicles"`
	Lines            []RecommendationLine `json:"lines"`
	TotalInvestment  decimal.Decimal      `json:"total_investment"`
	Guidance         string               `json:"guidance"`
}

// IsEmpty reports whether the recommendation asks for no purchases
func (r Recommendation) IsEmpty() bool {
	for _, line := range r.Lines {
		if line.Quantity > 0 {
			return false
		}
	}
	return true
}

// AmortizationPoint is the cumulative profit position at the end of a month
type AmortizationPoint struct {
	Month      int             `json:"month"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// Verdict is the advisory outcome of a purchase versus rental comparison
type Verdict int

const (
	VerdictPurchase Verdict = iota
	VerdictRental
)

// String method for Verdict enum
func (v Verdict) String() string {
	switch v {
	case VerdictPurchase:
		return "purchase"
	case VerdictRental:
		return "rental"
	default:
		return "unknown"
	}
}

// MarshalText encodes the verdict by name
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// RentalComparison weighs buying the recommended fleet against renting it for the same horizon
type RentalComparison struct {
	HorizonMonths int             `json:"horizon_months"`
	Investment    decimal.Decimal `json:"investment"`
	RentalTotal   decimal.Decimal `json:"rental_total"`
	Difference    decimal.Decimal `json:"difference"` // rental total - investment
	Verdict       Verdict         `json:"verdict"`
	Advice        string          `json:"advice"`
}
