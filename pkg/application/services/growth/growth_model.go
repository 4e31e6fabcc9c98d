// Package growth maps a sector and a market scenario to an annual growth rate.
package growth

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/config"
	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

// Model looks up base growth rates and scenario multipliers
type Model struct {
	tables config.Tables
	logger zerolog.Logger
}

// NewModel creates a growth model over the given tables
func NewModel(tables config.Tables, logger zerolog.Logger) *Model {
	return &Model{tables: tables, logger: logger.With().Str("component", "growth").Logger()}
}

// Resolve parses raw sector and scenario keys. Unknown keys fall back to the
// configured defaults; each fallback is logged and returned as a note.
func (m *Model) Resolve(sectorKey, scenarioKey string) (entities.Sector, entities.MarketScenario, []string) {
	var notes []string

	sector, ok := entities.ParseSector(sectorKey)
	if !ok || !m.hasSector(sector) {
		m.logger.Warn().Str("sector", sectorKey).Str("fallback", string(m.tables.DefaultSector)).Msg("unknown sector, using default")
		notes = append(notes, fmt.Sprintf("unknown sector %q, using %s", sectorKey, m.tables.DefaultSector))
		sector = m.tables.DefaultSector
	}

	scenario, ok := entities.ParseMarketScenario(scenarioKey)
	if !ok {
		m.logger.Warn().Str("scenario", scenarioKey).Str("fallback", string(m.tables.DefaultScenario)).Msg("unknown scenario, using default")
		notes = append(notes, fmt.Sprintf("unknown scenario %q, using %s", scenarioKey, m.tables.DefaultScenario))
		scenario = m.tables.DefaultScenario
	}

	return sector, scenario, notes
}

// AnnualGrowthRate returns base rate x scenario multiplier, in percent. The
// result is not clamped.
func (m *Model) AnnualGrowthRate(sector entities.Sector, scenario entities.MarketScenario) decimal.Decimal {
	table, ok := m.tables.Sectors[sector]
	if !ok {
		m.logger.Warn().Str("sector", string(sector)).Str("fallback", string(m.tables.DefaultSector)).Msg("no growth table for sector, using default")
		table = m.tables.Sectors[m.tables.DefaultSector]
	}

	multiplier, ok := table.Multipliers[scenario]
	if !ok {
		m.logger.Warn().Str("scenario", string(scenario)).Str("fallback", string(m.tables.DefaultScenario)).Msg("no multiplier for scenario, using default")
		multiplier = table.Multipliers[m.tables.DefaultScenario]
	}

	return table.BaseGrowthRate.Mul(multiplier)
}

// EffectiveRate returns the user override clamped to the editable range when
// one is given, and the table rate otherwise. The boolean reports whether the
// override was used.
func (m *Model) EffectiveRate(sector entities.Sector, scenario entities.MarketScenario, override *decimal.Decimal) (decimal.Decimal, bool) {
	if override == nil {
		return m.AnnualGrowthRate(sector, scenario), false
	}
	return m.ClampOverride(*override), true
}

// ClampOverride bounds a user-entered growth rate to [RateOverrideMin, RateOverrideMax]
func (m *Model) ClampOverride(rate decimal.Decimal) decimal.Decimal {
	if rate.LessThan(m.tables.RateOverrideMin) {
		m.logger.Debug().Str("rate", rate.String()).Msg("override below range, clamping")
		return m.tables.RateOverrideMin
	}
	if rate.GreaterThan(m.tables.RateOverrideMax) {
		m.logger.Debug().Str("rate", rate.String()).Msg("override above range, clamping")
		return m.tables.RateOverrideMax
	}
	return rate
}

func (m *Model) hasSector(sector entities.Sector) bool {
	_, ok := m.tables.Sectors[sector]
	return ok
}
