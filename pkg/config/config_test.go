package config

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

func TestDefaultTables_Validate(t *testing.T) {
	if err := DefaultTables().Validate(); err != nil {
		t.Fatalf("Expected default tables to be valid: %v", err)
	}
}

func TestTables_Validate_MultiplierOrdering(t *testing.T) {
	tables := DefaultTables()
	food := tables.Sectors[entities.SectorFood]
	food.Multipliers = map[entities.MarketScenario]decimal.Decimal{
		entities.ScenarioOptimistic:  d("0.9"),
		entities.ScenarioNormal:      d("1"),
		entities.ScenarioPessimistic: d("0.7"),
	}
	tables.Sectors[entities.SectorFood] = food

	if err := tables.Validate(); err == nil {
		t.Fatal("Expected error for optimistic multiplier below normal")
	}
}

func TestTables_Validate_MissingDefaultSector(t *testing.T) {
	tables := DefaultTables()
	tables.DefaultSector = "bulk"
	if err := tables.Validate(); err == nil {
		t.Fatal("Expected error for default sector without table entry")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONTHLY_NET_PROFIT", "")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load(DefaultTables())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DatabaseDriver != "pgx" {
		t.Errorf("Expected default driver pgx, got %s", cfg.DatabaseDriver)
	}
	if !cfg.MonthlyNetProfit.Equal(d("1350000")) {
		t.Errorf("Expected default monthly profit 1350000, got %s", cfg.MonthlyNetProfit)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MONTHLY_NET_PROFIT", "900000")
	t.Setenv("DATABASE_DRIVER", "mysql")

	cfg, err := Load(DefaultTables())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.MonthlyNetProfit.Equal(d("900000")) {
		t.Errorf("Expected monthly profit 900000, got %s", cfg.MonthlyNetProfit)
	}

	tables := cfg.ApplyTo(DefaultTables())
	if !tables.DefaultMonthlyNetProfit.Equal(d("900000")) {
		t.Errorf("Expected tables to carry monthly profit 900000, got %s", tables.DefaultMonthlyNetProfit)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric profit", "MONTHLY_NET_PROFIT", "lots"},
		{"negative rental", "MONTHLY_RENTAL_COST", "-5"},
		{"unknown driver", "DATABASE_DRIVER", "sqlite"},
		{"unknown log format", "LOG_FORMAT", "xml"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(DefaultTables()); err == nil {
				t.Errorf("Expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}
