package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

// FleetOverview summarizes the sector roster at analysis time
type FleetOverview struct {
	entities.FleetSummary
	Units []entities.FleetUnit `json:"units"`
	// UtilizationPercent is the share of units on the road, one decimal place
	UtilizationPercent decimal.Decimal `json:"utilization_percent"`
}

// CapacityAnalysis contains the complete output of a capacity run:
// projection, shopping list, amortization and the rental comparison
type CapacityAnalysis struct {
	RunID            string                       `json:"run_id"`
	AsOf             time.Time                    `json:"as_of"`
	Sector           entities.Sector              `json:"sector"`
	Scenario         entities.MarketScenario      `json:"scenario"`
	RateOverridden   bool                         `json:"rate_overridden"`
	Fleet            FleetOverview                `json:"fleet"`
	Projection       entities.CapacityProjection  `json:"projection"`
	Recommendation   entities.Recommendation      `json:"recommendation"`
	MonthlyNetProfit decimal.Decimal              `json:"monthly_net_profit"`
	Amortization     []entities.AmortizationPoint `json:"amortization"`
	BreakEvenMonth   int                          `json:"break_even_month"`
	Rental           entities.RentalComparison    `json:"rental"`
	Notes            []string                     `json:"notes"`
}

// StatusCounts tallies classified parts
type StatusCounts struct {
	Optimal   int `json:"optimal"`
	Warning   int `json:"warning"`
	Critical  int `json:"critical"`
	DeadStock int `json:"dead_stock"`
}

// PartsAnalysis contains the per-part risk records and the playbook output
type PartsAnalysis struct {
	RunID          string                  `json:"run_id"`
	AsOf           time.Time               `json:"as_of"`
	Risks          []entities.StockRisk    `json:"risks"`
	Counts         StatusCounts            `json:"counts"`
	TotalOrderCost decimal.Decimal         `json:"total_order_cost"`
	Playbook       entities.PlaybookResult `json:"playbook"`
	Notes          []string                `json:"notes"`
}

// DashboardAnalysis bundles both analyses of one dashboard refresh
type DashboardAnalysis struct {
	RunID    string            `json:"run_id"`
	AsOf     time.Time         `json:"as_of"`
	Capacity *CapacityAnalysis `json:"capacity"`
	Parts    *PartsAnalysis    `json:"parts"`
}
