package config

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// SectorTable holds the per-sector growth, pricing and fleet-mix constants
type SectorTable struct {
	// BaseGrowthRate is the annual growth percentage under the normal scenario.
	BaseGrowthRate decimal.Decimal
	// Multipliers scale the base rate per market scenario.
	// Invariant: optimistic >= normal >= pessimistic.
	Multipliers map[entities.MarketScenario]decimal.Decimal
	// Unit prices used to cost a recommendation.
	TractorUnitPrice decimal.Decimal
	TrailerUnitPrice decimal.Decimal
	// TractorShare and TrailerShare split required vehicles into units.
	// Both default to 0.6: every tractor is assumed to pull exactly one trailer.
	TractorShare decimal.Decimal
	TrailerShare decimal.Decimal
	// Default model names when the roster holds no unit of the type.
	DefaultTractorModel string
	DefaultTrailerModel string
}

// ConsumptionRate maps a part-name fragment to its estimated daily consumption
type ConsumptionRate struct {
	Match     string
	DailyRate decimal.Decimal
}

// ThresholdOverride tightens the critical threshold of parts whose name contains Match
type ThresholdOverride struct {
	Match          string
	CriticalFactor decimal.Decimal
}

// Region carries the terrain profile that drives wear adjustments and regional alerts
type Region struct {
	Name                string
	Mountainous         bool
	ColdClimate         bool
	BrakeWearMultiplier decimal.Decimal
}

// Tables is the full set of business constants used by the engine.
// Every literal the engine applies lives here so the rule set is data, not code.
type Tables struct {
	Sectors         map[entities.Sector]SectorTable
	DefaultSector   entities.Sector
	DefaultScenario entities.MarketScenario

	// User override bounds for the annual growth rate, in percent.
	RateOverrideMin decimal.Decimal
	RateOverrideMax decimal.Decimal

	// SafetyMargin inflates a deficit before sizing the purchase (1.2 = +20%).
	SafetyMargin decimal.Decimal
	// RiskThreshold is the demand/capacity ratio that marks the at-risk month.
	RiskThreshold       decimal.Decimal
	RiskLookaheadMonths int
	// RiskFallbackMonths is the estimate reported when no month crosses the threshold.
	RiskFallbackMonths int

	CapacityHorizonMonths     int
	AmortizationHorizonMonths int
	DefaultMonthlyNetProfit   decimal.Decimal
	DefaultMonthlyRentalCost  decimal.Decimal

	// Spare-parts classification.
	ConsumptionRates    []ConsumptionRate
	DefaultDailyRate    decimal.Decimal
	ThresholdOverrides  []ThresholdOverride
	WarningFactor       decimal.Decimal
	OverstockFactor     decimal.Decimal
	ReorderTargetFactor decimal.Decimal

	// Dead stock: parts without movement for this many months.
	DeadStockWindowMonths int
	// DeadStockList names parts reported unused over the window by the legacy inventory report.
	DeadStockList []string

	// Playbook engine.
	Usage                 []entities.PartUsage
	HourlyLossRate        decimal.Decimal
	LossThreshold         decimal.Decimal
	SafetyStockFactor     decimal.Decimal
	HeavyTireMultiplier   decimal.Decimal
	Regions               map[string]Region
	Playbooks             []entities.ScenarioPlaybook
	InflationThreshold    decimal.Decimal
	ExchangeRateThreshold decimal.Decimal
}

// DefaultTables returns the production rule set
func DefaultTables() Tables {
	return Tables{
		Sectors: map[entities.Sector]SectorTable{
			entities.SectorFood: {
				BaseGrowthRate: d("12.8"),
				Multipliers: map[entities.MarketScenario]decimal.Decimal{
					entities.ScenarioOptimistic:  d("1.25"),
					entities.ScenarioNormal:      d("1"),
					entities.ScenarioPessimistic: d("0.70"),
				},
				TractorUnitPrice:    d("3200000"),
				TrailerUnitPrice:    d("1850000"),
				TractorShare:        d("0.6"),
				TrailerShare:        d("0.6"),
				DefaultTractorModel: "Mercedes-Benz Actros 1845",
				DefaultTrailerModel: "Schmitz Cargobull S.KO Cool",
			},
			entities.SectorStandard: {
				BaseGrowthRate: d("14.0"),
				Multipliers: map[entities.MarketScenario]decimal.Decimal{
					entities.ScenarioOptimistic:  d("1.20"),
					entities.ScenarioNormal:      d("1"),
					entities.ScenarioPessimistic: d("0.75"),
				},
				TractorUnitPrice:    d("3000000"),
				TrailerUnitPrice:    d("1100000"),
				TractorShare:        d("0.6"),
				TrailerShare:        d("0.6"),
				DefaultTractorModel: "Ford Trucks F-MAX",
				DefaultTrailerModel: "Tirsan Curtainsider",
			},
			entities.SectorHeavy: {
				BaseGrowthRate: d("8.8"),
				Multipliers: map[entities.MarketScenario]decimal.Decimal{
					entities.ScenarioOptimistic:  d("1.35"),
					entities.ScenarioNormal:      d("1"),
					entities.ScenarioPessimistic: d("0.60"),
				},
				TractorUnitPrice:    d("3800000"),
				TrailerUnitPrice:    d("1500000"),
				TractorShare:        d("0.6"),
				TrailerShare:        d("0.6"),
				DefaultTractorModel: "Volvo FH16 750",
				DefaultTrailerModel: "Tirsan Lowbed",
			},
		},
		DefaultSector:   entities.SectorStandard,
		DefaultScenario: entities.ScenarioNormal,

		RateOverrideMin: d("0"),
		RateOverrideMax: d("50"),

		SafetyMargin:        d("1.2"),
		RiskThreshold:       d("1.05"),
		RiskLookaheadMonths: 12,
		RiskFallbackMonths:  7,

		CapacityHorizonMonths:     6,
		AmortizationHorizonMonths: 24,
		DefaultMonthlyNetProfit:   d("1350000"),
		DefaultMonthlyRentalCost:  d("650000"),

		ConsumptionRates: []ConsumptionRate{
			{Match: "oil filter", DailyRate: d("3")},
			{Match: "fuel filter", DailyRate: d("2")},
			{Match: "air filter", DailyRate: d("1.5")},
			{Match: "brake pad", DailyRate: d("1.2")},
			{Match: "brake disc", DailyRate: d("0.4")},
			{Match: "tire", DailyRate: d("0.8")},
			{Match: "wiper", DailyRate: d("1")},
			{Match: "headlight", DailyRate: d("0.4")},
			{Match: "battery", DailyRate: d("0.3")},
			{Match: "alternator", DailyRate: d("0.1")},
			{Match: "clutch", DailyRate: d("0.1")},
		},
		DefaultDailyRate: d("0.5"),
		ThresholdOverrides: []ThresholdOverride{
			// Tires are reordered slightly above the minimum because supplier
			// lead times are longer than for other consumables.
			{Match: "tire", CriticalFactor: d("1.05")},
		},
		WarningFactor:       d("1.5"),
		OverstockFactor:     d("3"),
		ReorderTargetFactor: d("2"),

		DeadStockWindowMonths: 6,
		DeadStockList: []string{
			"Retarder Control Unit",
			"Tachograph Sensor Gen1",
			"Side Mirror Glass (Left, Old Type)",
		},

		Usage: []entities.PartUsage{
			{PartName: "Brake Pad", Category: "brake", Frequency: d("6"), AvgDowntimeHours: d("4")},
			{PartName: "Brake Disc", Category: "brake", Frequency: d("2"), AvgDowntimeHours: d("6")},
			{PartName: "Tire", Category: "tire", Frequency: d("8"), AvgDowntimeHours: d("3")},
			{PartName: "Oil Filter", Category: "filter", Frequency: d("12"), AvgDowntimeHours: d("1")},
			{PartName: "Air Filter", Category: "filter", Frequency: d("6"), AvgDowntimeHours: d("1")},
			{PartName: "Battery", Category: "electrical", Frequency: d("2"), AvgDowntimeHours: d("5")},
			{PartName: "Alternator", Category: "electrical", Frequency: d("1"), AvgDowntimeHours: d("8")},
			{PartName: "Clutch Kit", Category: "transmission", Frequency: d("1"), AvgDowntimeHours: d("16")},
			{PartName: "Headlight", Category: "electrical", Frequency: d("3"), AvgDowntimeHours: d("1")},
			{PartName: "Wiper Blade", Category: "body", Frequency: d("4"), AvgDowntimeHours: d("0.5")},
		},
		HourlyLossRate:      d("2500"),
		LossThreshold:       d("50000"),
		SafetyStockFactor:   d("1.5"),
		HeavyTireMultiplier: d("1.3"),
		Regions: map[string]Region{
			"marmara":               {Name: "Marmara", BrakeWearMultiplier: d("1.0")},
			"aegean":                {Name: "Aegean", BrakeWearMultiplier: d("1.1")},
			"mediterranean":         {Name: "Mediterranean", BrakeWearMultiplier: d("1.15")},
			"central-anatolia":      {Name: "Central Anatolia", BrakeWearMultiplier: d("1.1")},
			"black-sea":             {Name: "Black Sea", Mountainous: true, BrakeWearMultiplier: d("1.4")},
			"eastern-anatolia":      {Name: "Eastern Anatolia", Mountainous: true, ColdClimate: true, BrakeWearMultiplier: d("1.5")},
			"southeastern-anatolia": {Name: "Southeastern Anatolia", BrakeWearMultiplier: d("1.2")},
			"scandinavia":           {Name: "Scandinavia", ColdClimate: true, BrakeWearMultiplier: d("1.2")},
		},
		Playbooks: []entities.ScenarioPlaybook{
			{
				ID:        "scandinavian-surge",
				Name:      "Scandinavian demand surge",
				Region:    "scandinavia",
				CargoType: entities.CargoStandard,
				Condition: "Nordic export volumes grow more than 25% quarter over quarter",
				Actions: []entities.PlaybookAction{
					{PartName: "Tire", Quantity: 24, Priority: entities.PriorityCritical, Justification: "Winter tire rules apply on every Nordic route from November to March"},
					{PartName: "Battery", Quantity: 10, Priority: entities.PriorityHigh, Justification: "Cold starts below -20C shorten battery life"},
					{PartName: "Wiper Blade", Quantity: 30, Priority: entities.PriorityMedium, Justification: "Ice and road salt wear blades within weeks"},
				},
			},
			{
				ID:        "black-sea-winter",
				Name:      "Black Sea winter operations",
				Region:    "black-sea",
				CargoType: entities.CargoHeavy,
				Condition: "Heavy loads on steep coastal mountain roads in winter",
				Actions: []entities.PlaybookAction{
					{PartName: "Brake Pad", Quantity: 40, Priority: entities.PriorityCritical, Justification: "Long descents under load double pad wear"},
					{PartName: "Brake Disc", Quantity: 16, Priority: entities.PriorityHigh, Justification: "Overheated discs crack on repeated descents"},
					{PartName: "Tire", Quantity: 20, Priority: entities.PriorityHigh, Justification: "Snow chains and wet asphalt accelerate tread loss"},
				},
			},
			{
				ID:        "cold-chain-peak",
				Name:      "Cold-chain summer peak",
				Region:    "marmara",
				CargoType: entities.CargoRefrigerated,
				Condition: "Refrigerated volumes peak with summer temperatures above 35C",
				Actions: []entities.PlaybookAction{
					{PartName: "Alternator", Quantity: 6, Priority: entities.PriorityHigh, Justification: "Reefer units add continuous electrical load"},
					{PartName: "Battery", Quantity: 12, Priority: entities.PriorityHigh, Justification: "Heat degrades batteries that already power reefer idling"},
					{PartName: "Oil Filter", Quantity: 40, Priority: entities.PriorityMedium, Justification: "Shorter service intervals at high ambient temperature"},
				},
			},
			{
				ID:        "heavy-haul-project",
				Name:      "Central Anatolia heavy-haul project",
				Region:    "central-anatolia",
				CargoType: entities.CargoHeavy,
				Condition: "Infrastructure project cargo over 40 t per trip",
				Actions: []entities.PlaybookAction{
					{PartName: "Tire", Quantity: 32, Priority: entities.PriorityCritical, Justification: "Overweight axles wear tires fastest"},
					{PartName: "Clutch Kit", Quantity: 6, Priority: entities.PriorityHigh, Justification: "Frequent hill starts with full load"},
				},
			},
		},
		InflationThreshold:    d("40"),
		ExchangeRateThreshold: d("35"),
	}
}

// Validate checks the invariants the engine relies on
func (t Tables) Validate() error {
	if _, ok := t.Sectors[t.DefaultSector]; !ok {
		return fmt.Errorf("default sector %q has no table entry", t.DefaultSector)
	}
	for sector, table := range t.Sectors {
		for _, scenario := range entities.MarketScenarios {
			if _, ok := table.Multipliers[scenario]; !ok {
				return fmt.Errorf("sector %s: missing multiplier for scenario %s", sector, scenario)
			}
		}
		opt := table.Multipliers[entities.ScenarioOptimistic]
		norm := table.Multipliers[entities.ScenarioNormal]
		pess := table.Multipliers[entities.ScenarioPessimistic]
		if opt.LessThan(norm) || norm.LessThan(pess) {
			return fmt.Errorf("sector %s: multipliers must satisfy optimistic >= normal >= pessimistic", sector)
		}
		if pess.IsNegative() || table.BaseGrowthRate.IsNegative() {
			return fmt.Errorf("sector %s: growth rate and multipliers cannot be negative", sector)
		}
		if table.TractorUnitPrice.IsNegative() || table.TrailerUnitPrice.IsNegative() {
			return fmt.Errorf("sector %s: unit prices cannot be negative", sector)
		}
		if !table.TractorShare.IsPositive() || !table.TrailerShare.IsPositive() {
			return fmt.Errorf("sector %s: tractor and trailer shares must be positive", sector)
		}
	}
	if t.RateOverrideMin.GreaterThan(t.RateOverrideMax) {
		return fmt.Errorf("rate override bounds inverted: %s > %s", t.RateOverrideMin, t.RateOverrideMax)
	}
	if t.DefaultDailyRate.IsNegative() {
		return fmt.Errorf("default daily rate cannot be negative")
	}
	for _, rate := range t.ConsumptionRates {
		if rate.DailyRate.IsNegative() {
			return fmt.Errorf("consumption rate for %q cannot be negative", rate.Match)
		}
	}
	if t.RiskLookaheadMonths < 1 {
		return fmt.Errorf("risk look-ahead must be at least one month")
	}
	return nil
}
