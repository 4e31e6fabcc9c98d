package dto

import (
	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

// CapacityRequest selects the sector and scenario of a capacity analysis.
// Zero horizons and nil money amounts fall back to the configured defaults.
type CapacityRequest struct {
	Sector             string           `json:"sector"`
	Scenario           string           `json:"scenario"`
	RateOverride       *decimal.Decimal `json:"rate_override,omitempty"`
	HorizonMonths      int              `json:"horizon_months,omitempty"`
	AmortizationMonths int              `json:"amortization_months,omitempty"`
	MonthlyNetProfit   *decimal.Decimal `json:"monthly_net_profit,omitempty"`
	MonthlyRentalCost  *decimal.Decimal `json:"monthly_rental_cost,omitempty"`
}

// PartsRequest filters the parts snapshot and carries the playbook scenario parameters
type PartsRequest struct {
	Category         string          `json:"category,omitempty"`
	SupplierID       *int64          `json:"supplier_id,omitempty"`
	Region           string          `json:"region"`
	CargoType        string          `json:"cargo_type"`
	ScenarioID       string          `json:"scenario_id,omitempty"`
	InflationPercent decimal.Decimal `json:"inflation_percent"`
	ExchangeRate     decimal.Decimal `json:"exchange_rate"`
}

// DashboardRequest combines a capacity and a parts analysis
type DashboardRequest struct {
	Capacity CapacityRequest `json:"capacity"`
	Parts    PartsRequest    `json:"parts"`
}

// AcquisitionRequest proposes buying Quantity units of a part
type AcquisitionRequest struct {
	PartID   entities.PartID   `json:"part_id"`
	Quantity entities.Quantity `json:"quantity"`
}
