package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/application/dto"
	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

func sampleCapacity() *dto.CapacityAnalysis {
	return &dto.CapacityAnalysis{
		RunID:    "run-1",
		AsOf:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Sector:   entities.SectorStandard,
		Scenario: entities.ScenarioNormal,
		Projection: entities.CapacityProjection{
			HorizonMonths: 6, AnnualRate: decimal.NewFromInt(14), Capacity: 100, Demand: 107, Gap: -7, RiskMonth: time.July,
		},
		Recommendation: entities.Recommendation{
			Sector:           entities.SectorStandard,
			RequiredVehicles: 9,
			Lines: []entities.RecommendationLine{
				{ItemName: "Ford Trucks F-MAX", UnitType: entities.Tractor, Quantity: 6, UnitPrice: decimal.NewFromInt(3_000_000), LineCost: decimal.NewFromInt(18_000_000)},
			},
			TotalInvestment: decimal.NewFromInt(18_000_000),
			Guidance:        "Deficit of 7 trips/day",
		},
		MonthlyNetProfit: decimal.NewFromInt(1_350_000),
		BreakEvenMonth:   14,
		Rental:           entities.RentalComparison{HorizonMonths: 24, RentalTotal: decimal.NewFromInt(15_600_000), Verdict: entities.VerdictRental},
		Notes:            []string{"unknown scenario \"boom\", using normal"},
	}
}

func TestRender_CapacityText(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatText, sampleCapacity()); err != nil {
		t.Fatalf("Failed to render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"standard / normal", "Gap: -7", "July", "Ford Trucks F-MAX", "18000000.00", "Break-even month: 14", "(rental)", "unknown scenario"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestRender_PartsText(t *testing.T) {
	days := int64(300)
	analysis := &dto.PartsAnalysis{
		RunID: "run-2",
		Risks: []entities.StockRisk{
			{PartID: 1, Name: "Oil Filter", Status: entities.StockOptimal, Stock: 900, MinStock: 300, DaysRemaining: &days, OrderCost: decimal.Zero},
			{PartID: 5, Name: "Retarder Control Unit", Status: entities.StockOptimal, Stock: 3, MinStock: 1, DeadStock: true, OrderCost: decimal.Zero},
		},
		Counts:         dto.StatusCounts{Optimal: 2, DeadStock: 1},
		TotalOrderCost: decimal.Zero,
		Playbook: entities.PlaybookResult{
			ScenarioID: "black-sea-winter",
			Recommendations: []entities.PlaybookRecommendation{
				{Source: entities.SourceScenario, Priority: entities.PriorityCritical, Message: "stock 40 x Brake Pad"},
			},
		},
	}

	var buf bytes.Buffer
	if err := Render(&buf, FormatText, analysis); err != nil {
		t.Fatalf("Failed to render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Dead stock: 1", "300", "yes", "black-sea-winter", "[Critical"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatJSON, sampleCapacity()); err != nil {
		t.Fatalf("Failed to render: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Expected valid JSON: %v", err)
	}
	if decoded["sector"] != "standard" || decoded["run_id"] != "run-1" {
		t.Errorf("Unexpected JSON: %v", decoded)
	}
	rec := decoded["recommendation"].(map[string]any)
	line := rec["lines"].([]any)[0].(map[string]any)
	if line["unit_type"] != "tractor" {
		t.Errorf("Expected unit type encoded by name, got %v", line["unit_type"])
	}
}

func TestRender_Simulation(t *testing.T) {
	result := &entities.SimulationResult{
		Name: "Brake Pad", Quantity: 60, CurrentStock: 40, NewStock: 100, OptimalMin: 50, OptimalMax: 150,
		Status: entities.SimulationOptimal, Cost: decimal.NewFromInt(72_000),
		Recommendations: []string{"Stock after purchase (100) is inside the optimal band [50, 150]."},
	}

	var buf bytes.Buffer
	if err := Render(&buf, FormatText, result); err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	if !strings.Contains(buf.String(), "OPTIMAL") || !strings.Contains(buf.String(), "40 -> 100") {
		t.Errorf("Unexpected output:\n%s", buf.String())
	}
}

func TestRender_Errors(t *testing.T) {
	if err := Render(&bytes.Buffer{}, "xml", sampleCapacity()); err == nil {
		t.Error("Expected error for unsupported format")
	}
	if err := Render(&bytes.Buffer{}, FormatText, 42); err == nil {
		t.Error("Expected error for unsupported result type")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Side Mirror Glass (Left, Old Type)", 10); got != "Side Mirr…" {
		t.Errorf("Unexpected truncation: %q", got)
	}
	if got := truncate("Tire", 10); got != "Tire" {
		t.Errorf("Expected short names untouched, got %q", got)
	}
}
