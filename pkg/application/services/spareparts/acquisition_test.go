package spareparts

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

func TestSimulateAcquisition(t *testing.T) {
	engine := newTestEngine()

	testCases := []struct {
		name      string
		stock     entities.Quantity
		minStock  entities.Quantity
		quantity  entities.Quantity
		want      entities.SimulationStatus
		wantStock entities.Quantity
	}{
		{"still below minimum", 50, 300, 100, entities.SimulationError, 150},
		{"at minimum, thin margin", 100, 300, 200, entities.SimulationWarning, 300},
		{"just under safety margin", 100, 300, 349, entities.SimulationWarning, 449},
		{"at safety margin", 100, 300, 350, entities.SimulationOptimal, 450},
		{"at optimal maximum", 100, 300, 800, entities.SimulationOptimal, 900},
		{"overstock", 100, 300, 801, entities.SimulationWarning, 901},
		{"negative quantity treated as zero", 500, 300, -20, entities.SimulationOptimal, 500},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := engine.SimulateAcquisition(part(9, "Air Filter", tc.stock, tc.minStock), tc.quantity)
			if result.Status != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, result.Status)
			}
			if result.NewStock != tc.wantStock {
				t.Errorf("Expected new stock %d, got %d", tc.wantStock, result.NewStock)
			}
			if len(result.Recommendations) == 0 {
				t.Error("Expected at least one recommendation")
			}
		})
	}
}

func TestSimulateAcquisition_Details(t *testing.T) {
	engine := newTestEngine()

	result := engine.SimulateAcquisition(part(9, "Air Filter", 50, 300), 100)
	if result.OptimalMin != 300 || result.OptimalMax != 900 {
		t.Errorf("Expected band [300, 900], got [%d, %d]", result.OptimalMin, result.OptimalMax)
	}
	if !result.Cost.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("Expected cost 25000, got %s", result.Cost)
	}
	// 150 air filters at 1.5 per day
	if result.DaysRemaining == nil || *result.DaysRemaining != 100 {
		t.Errorf("Expected 100 days remaining, got %v", result.DaysRemaining)
	}
	if want := "Buy at least 150 more units (order 250 in total)."; result.Recommendations[1] != want {
		t.Errorf("Expected %q, got %q", want, result.Recommendations[1])
	}
}
