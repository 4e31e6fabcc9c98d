package investment

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

func amount(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestBreakEvenMonth_WorkedExample(t *testing.T) {
	s := NewSimulator()

	if got := s.BreakEvenMonth(amount(14000000), amount(1350000)); got != 11 {
		t.Errorf("Expected break-even month 11, got %d", got)
	}
}

func TestBreakEvenMonth_Sentinels(t *testing.T) {
	s := NewSimulator()

	testCases := []struct {
		name       string
		investment int64
		profit     int64
		want       int
	}{
		{"zero investment", 0, 1350000, 0},
		{"zero profit", 14000000, 0, 0},
		{"negative profit", 14000000, -5, 0},
		{"exact division", 12000000, 1000000, 12},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.BreakEvenMonth(amount(tc.investment), amount(tc.profit)); got != tc.want {
				t.Errorf("Expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestAmortizationSeries(t *testing.T) {
	s := NewSimulator()

	series := s.AmortizationSeries(amount(14000000), amount(1350000), 24)
	if len(series) != 25 {
		t.Fatalf("Expected 25 points, got %d", len(series))
	}
	if !series[0].Cumulative.Equal(amount(-14000000)) {
		t.Errorf("Expected month 0 at -investment, got %s", series[0].Cumulative)
	}
	for i := 1; i < len(series); i++ {
		if !series[i].Cumulative.GreaterThan(series[i-1].Cumulative) {
			t.Fatalf("Series not strictly increasing at month %d", i)
		}
		if series[i].Month != i {
			t.Errorf("Expected month index %d, got %d", i, series[i].Month)
		}
	}

	// break-even is the first non-negative point
	be := s.BreakEvenMonth(amount(14000000), amount(1350000))
	if series[be].Cumulative.IsNegative() || !series[be-1].Cumulative.IsNegative() {
		t.Errorf("Expected month %d to be the first non-negative point", be)
	}
}

func TestAmortizationSeries_IsReproducible(t *testing.T) {
	s := NewSimulator()

	a := s.AmortizationSeries(amount(5000000), amount(400000), 24)
	b := s.AmortizationSeries(amount(5000000), amount(400000), 24)
	for i := range a {
		if !a[i].Cumulative.Equal(b[i].Cumulative) {
			t.Fatalf("Series diverged at month %d", i)
		}
	}
}

func TestCompareRental(t *testing.T) {
	s := NewSimulator()

	purchase := s.CompareRental(amount(14000000), amount(650000), 24)
	if purchase.Verdict != entities.VerdictPurchase {
		t.Errorf("Expected purchase verdict, got %s", purchase.Verdict)
	}
	if !purchase.RentalTotal.Equal(amount(15600000)) {
		t.Errorf("Expected rental total 15600000, got %s", purchase.RentalTotal)
	}

	rental := s.CompareRental(amount(20000000), amount(650000), 24)
	if rental.Verdict != entities.VerdictRental {
		t.Errorf("Expected rental verdict, got %s", rental.Verdict)
	}

	// equal cost does not favour purchase
	even := s.CompareRental(amount(15600000), amount(650000), 24)
	if even.Verdict != entities.VerdictRental {
		t.Errorf("Expected rental verdict on a tie, got %s", even.Verdict)
	}
	if purchase.Advice == "" || rental.Advice == "" {
		t.Error("Expected advisory text for both verdicts")
	}
}
