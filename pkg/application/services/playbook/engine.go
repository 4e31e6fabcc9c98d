// Package playbook ranks parts by downtime exposure and assembles scenario-driven stocking advice.
package playbook

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/application/services/shared"
	"github.com/fleetdesk/fleetplan/pkg/config"
	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

const (
	categoryBrake = "brake"
	categoryTire  = "tire"
)

// Input holds the scenario parameters of a playbook run
type Input struct {
	Region           string          `json:"region"`
	CargoType        string          `json:"cargo_type"`
	ScenarioID       string          `json:"scenario_id"`
	InflationPercent decimal.Decimal `json:"inflation_percent"`
	ExchangeRate     decimal.Decimal `json:"exchange_rate"`
}

// Engine evaluates the usage table and playbook catalog
type Engine struct {
	tables config.Tables
	logger zerolog.Logger
}

// NewEngine creates a playbook engine
func NewEngine(tables config.Tables, logger zerolog.Logger) *Engine {
	return &Engine{tables: tables, logger: logger.With().Str("component", "playbook").Logger()}
}

// Run computes downtime losses per part and the ranked recommendation list.
// Recommendation sources are additive: the matched scenario, the top-loss
// part, regional terrain and macro-financial triggers each contribute
// independently.
func (e *Engine) Run(in Input) entities.PlaybookResult {
	region := e.region(in.Region)
	cargo := entities.CargoType(strings.ToLower(strings.TrimSpace(in.CargoType)))

	losses := e.losses(region, cargo)
	result := entities.PlaybookResult{
		LossByPart:      losses,
		PriorityParts:   []entities.PartLoss{},
		Recommendations: []entities.PlaybookRecommendation{},
	}
	for _, loss := range losses {
		if loss.Loss.GreaterThan(e.tables.LossThreshold) {
			result.PriorityParts = append(result.PriorityParts, loss)
		}
	}

	if scenario, ok := e.matchScenario(in.ScenarioID, in.Region, cargo); ok {
		result.ScenarioID = scenario.ID
		result.Recommendations = append(result.Recommendations, scenarioRecommendations(scenario)...)
	}
	if len(losses) > 0 && losses[0].Loss.IsPositive() {
		result.Recommendations = append(result.Recommendations, e.topLossRecommendation(losses[0]))
	}
	result.Recommendations = append(result.Recommendations, regionRecommendations(region)...)
	result.Recommendations = append(result.Recommendations, e.macroRecommendations(in)...)

	sort.SliceStable(result.Recommendations, func(i, j int) bool {
		return result.Recommendations[i].Priority < result.Recommendations[j].Priority
	})
	return result
}

// losses returns every usage-table part with its adjusted frequency and
// downtime loss, sorted by loss descending
func (e *Engine) losses(region config.Region, cargo entities.CargoType) []entities.PartLoss {
	losses := make([]entities.PartLoss, 0, len(e.tables.Usage))
	for _, usage := range e.tables.Usage {
		frequency := usage.Frequency
		category := strings.ToLower(usage.Category)
		if category == categoryBrake {
			frequency = frequency.Mul(region.BrakeWearMultiplier)
		}
		if category == categoryTire && cargo == entities.CargoHeavy {
			frequency = frequency.Mul(e.tables.HeavyTireMultiplier)
		}

		loss := entities.PartLoss{
			PartName:  usage.PartName,
			Category:  usage.Category,
			Frequency: frequency,
			Loss:      frequency.Mul(usage.AvgDowntimeHours).Mul(e.tables.HourlyLossRate),
		}
		if loss.Loss.GreaterThan(e.tables.LossThreshold) {
			loss.SafetyStock = e.safetyStock(frequency)
		}
		losses = append(losses, loss)
	}

	sort.SliceStable(losses, func(i, j int) bool {
		return losses[i].Loss.GreaterThan(losses[j].Loss)
	})
	return losses
}

func (e *Engine) safetyStock(frequency decimal.Decimal) entities.Quantity {
	return shared.CeilQuantity(frequency.Mul(e.tables.SafetyStockFactor))
}

func (e *Engine) region(key string) config.Region {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if region, ok := e.tables.Regions[normalized]; ok {
		return region
	}
	if normalized != "" {
		e.logger.Warn().Str("region", key).Msg("unknown region, no terrain adjustment applied")
	}
	return config.Region{Name: key, BrakeWearMultiplier: decimal.NewFromInt(1)}
}

// matchScenario looks a playbook up by id; without a usable id it falls back to
// the first playbook keyed to the same region and cargo type
func (e *Engine) matchScenario(id, region string, cargo entities.CargoType) (entities.ScenarioPlaybook, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id != "" {
		for _, scenario := range e.tables.Playbooks {
			if scenario.ID == id {
				return scenario, true
			}
		}
		e.logger.Warn().Str("scenario_id", id).Msg("unknown playbook scenario, matching by region and cargo")
	}

	region = strings.ToLower(strings.TrimSpace(region))
	for _, scenario := range e.tables.Playbooks {
		if scenario.Region == region && scenario.CargoType == cargo {
			return scenario, true
		}
	}
	return entities.ScenarioPlaybook{}, false
}

func scenarioRecommendations(scenario entities.ScenarioPlaybook) []entities.PlaybookRecommendation {
	recs := make([]entities.PlaybookRecommendation, 0, len(scenario.Actions))
	for _, action := range scenario.Actions {
		recs = append(recs, entities.PlaybookRecommendation{
			Source:   entities.SourceScenario,
			Priority: action.Priority,
			PartName: action.PartName,
			Quantity: action.Quantity,
			Message:  fmt.Sprintf("%s: stock %d x %s. %s", scenario.Name, action.Quantity, action.PartName, action.Justification),
		})
	}
	return recs
}

func (e *Engine) topLossRecommendation(top entities.PartLoss) entities.PlaybookRecommendation {
	priority := entities.PriorityHigh
	if top.Loss.GreaterThan(e.tables.LossThreshold) {
		priority = entities.PriorityCritical
	}
	stock := e.safetyStock(top.Frequency)
	return entities.PlaybookRecommendation{
		Source:   entities.SourceTopLoss,
		Priority: priority,
		PartName: top.PartName,
		Quantity: stock,
		Message: fmt.Sprintf("%s carries the highest downtime loss (%s per vehicle-year); keep at least %d in stock.",
			top.PartName, top.Loss.StringFixed(2), stock),
	}
}

func regionRecommendations(region config.Region) []entities.PlaybookRecommendation {
	var recs []entities.PlaybookRecommendation
	if region.Mountainous {
		recs = append(recs, entities.PlaybookRecommendation{
			Source:   entities.SourceRegion,
			Priority: entities.PriorityHigh,
			PartName: "Brake Pad",
			Message: fmt.Sprintf("Mountainous terrain in %s: shorten brake inspection intervals and hold extra brake pads and discs (wear x%s).",
				region.Name, region.BrakeWearMultiplier.String()),
		})
	}
	if region.ColdClimate {
		recs = append(recs, entities.PlaybookRecommendation{
			Source:   entities.SourceRegion,
			Priority: entities.PriorityMedium,
			PartName: "Battery",
			Message:  fmt.Sprintf("Cold climate in %s: prepare batteries and winter tires before the season.", region.Name),
		})
	}
	return recs
}

func (e *Engine) macroRecommendations(in Input) []entities.PlaybookRecommendation {
	var recs []entities.PlaybookRecommendation
	if in.InflationPercent.GreaterThan(e.tables.InflationThreshold) {
		recs = append(recs, entities.PlaybookRecommendation{
			Source:   entities.SourceMacro,
			Priority: entities.PriorityHigh,
			Message: fmt.Sprintf("Inflation at %s%% is above %s%%: bring forward purchases of priority parts.",
				in.InflationPercent.String(), e.tables.InflationThreshold.String()),
		})
	}
	if in.ExchangeRate.GreaterThan(e.tables.ExchangeRateThreshold) {
		recs = append(recs, entities.PlaybookRecommendation{
			Source:   entities.SourceMacro,
			Priority: entities.PriorityMedium,
			Message: fmt.Sprintf("Exchange rate %s is above %s: advance-purchase imported parts.",
				in.ExchangeRate.String(), e.tables.ExchangeRateThreshold.String()),
		})
	}
	return recs
}
