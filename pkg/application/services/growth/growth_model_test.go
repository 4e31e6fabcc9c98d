package growth

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/config"
	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

func newTestModel() *Model {
	return NewModel(config.DefaultTables(), zerolog.Nop())
}

func TestAnnualGrowthRate_NormalMatchesBaseRate(t *testing.T) {
	model := newTestModel()

	testCases := []struct {
		sector entities.Sector
		want   string
	}{
		{entities.SectorFood, "12.8"},
		{entities.SectorStandard, "14"},
		{entities.SectorHeavy, "8.8"},
	}

	for _, tc := range testCases {
		got := model.AnnualGrowthRate(tc.sector, entities.ScenarioNormal)
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("%s: expected %s, got %s", tc.sector, tc.want, got)
		}
	}
}

func TestAnnualGrowthRate_MonotonicInScenario(t *testing.T) {
	model := newTestModel()

	for _, sector := range entities.Sectors {
		opt := model.AnnualGrowthRate(sector, entities.ScenarioOptimistic)
		norm := model.AnnualGrowthRate(sector, entities.ScenarioNormal)
		pess := model.AnnualGrowthRate(sector, entities.ScenarioPessimistic)

		if opt.LessThan(norm) {
			t.Errorf("%s: optimistic %s below normal %s", sector, opt, norm)
		}
		if norm.LessThan(pess) {
			t.Errorf("%s: normal %s below pessimistic %s", sector, norm, pess)
		}
	}
}

func TestResolve_FallbackIsLogged(t *testing.T) {
	var buf bytes.Buffer
	model := NewModel(config.DefaultTables(), zerolog.New(&buf))

	sector, scenario, notes := model.Resolve("bulk", "boom")
	if sector != entities.SectorStandard {
		t.Errorf("Expected fallback sector standard, got %s", sector)
	}
	if scenario != entities.ScenarioNormal {
		t.Errorf("Expected fallback scenario normal, got %s", scenario)
	}
	if len(notes) != 2 {
		t.Errorf("Expected 2 fallback notes, got %d: %v", len(notes), notes)
	}
	if !strings.Contains(buf.String(), "unknown sector") || !strings.Contains(buf.String(), "unknown scenario") {
		t.Errorf("Expected both fallbacks to be logged, got %q", buf.String())
	}
}

func TestResolve_KnownKeys(t *testing.T) {
	model := newTestModel()

	sector, scenario, notes := model.Resolve(" Heavy ", "PESSIMISTIC")
	if sector != entities.SectorHeavy || scenario != entities.ScenarioPessimistic {
		t.Errorf("Expected heavy/pessimistic, got %s/%s", sector, scenario)
	}
	if len(notes) != 0 {
		t.Errorf("Expected no notes, got %v", notes)
	}
}

func TestEffectiveRate_OverrideIsClamped(t *testing.T) {
	model := newTestModel()

	testCases := []struct {
		name     string
		override string
		want     string
	}{
		{"inside range", "22.5", "22.5"},
		{"above range", "80", "50"},
		{"below range", "-3", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			override := decimal.RequireFromString(tc.override)
			got, used := model.EffectiveRate(entities.SectorFood, entities.ScenarioNormal, &override)
			if !used {
				t.Error("Expected override to be used")
			}
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("Expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestEffectiveRate_NoOverrideIsUnclamped(t *testing.T) {
	tables := config.DefaultTables()
	heavy := tables.Sectors[entities.SectorHeavy]
	heavy.BaseGrowthRate = decimal.NewFromInt(60)
	tables.Sectors[entities.SectorHeavy] = heavy
	model := NewModel(tables, zerolog.Nop())

	got, used := model.EffectiveRate(entities.SectorHeavy, entities.ScenarioNormal, nil)
	if used {
		t.Error("Expected table rate, not override")
	}
	if !got.Equal(decimal.NewFromInt(60)) {
		t.Errorf("Expected unclamped 60, got %s", got)
	}
}
