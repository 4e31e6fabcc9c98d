package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Priority ranks a recommendation; lower values are more urgent
type Priority int

const (
	PriorityCritical Priority = iota
	PriorityHigh
	PriorityMedium
)

// String method for Priority enum
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "Critical"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the priority by name
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// ParsePriority resolves Critical, High or Medium case-insensitively
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return PriorityCritical, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	default:
		return PriorityMedium, fmt.Errorf("invalid priority: %s (expected Critical, High or Medium)", s)
	}
}

// CargoType is the kind of freight a scenario concerns
type CargoType string

const (
	CargoStandard     CargoType = "standard"
	CargoHeavy        CargoType = "heavy"
	CargoRefrigerated CargoType = "refrigerated"
)

// PlaybookAction is one prescribed stocking action of a scenario playbook
type PlaybookAction struct {
	PartName      string   `json:"part_name"`
	Quantity      Quantity `json:"quantity"`
	Priority      Priority `json:"priority"`
	Justification string   `json:"justification"`
}

// ScenarioPlaybook is a named business scenario with its stocking actions
type ScenarioPlaybook struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Region    string           `json:"region"`
	CargoType CargoType        `json:"cargo_type"`
	Condition string           `json:"condition"`
	Actions   []PlaybookAction `json:"actions"`
}

// PartUsage describes how often a part fails and how long the vehicle stands still when it does
type PartUsage struct {
	PartName         string          `json:"part_name"`
	Category         string          `json:"category"`
	Frequency        decimal.Decimal `json:"frequency"` // replacements per vehicle-year
	AvgDowntimeHours decimal.Decimal `json:"avg_downtime_hours"`
}

// PartLoss is the downtime cost attributed to a part under the current scenario
type PartLoss struct {
	PartName    string          `json:"part_name"`
	Category    string          `json:"category"`
	Frequency   decimal.Decimal `json:"frequency"` // after regional and cargo adjustment
	Loss        decimal.Decimal `json:"loss"`
	SafetyStock Quantity        `json:"safety_stock,omitempty"`
}

// RecommendationSource names the rule family that produced a playbook recommendation
type RecommendationSource string

const (
	SourceScenario RecommendationSource = "scenario"
	SourceTopLoss  RecommendationSource = "top-loss"
	SourceRegion   RecommendationSource = "region"
	SourceMacro    RecommendationSource = "macro"
)

// PlaybookRecommendation is one ranked, priority-tagged advisory
type PlaybookRecommendation struct {
	Source   RecommendationSource `json:"source"`
	Priority Priority             `json:"priority"`
	PartName string               `json:"part_name,omitempty"`
	Quantity Quantity             `json:"quantity,omitempty"`
	Message  string               `json:"message"`
}

// PlaybookResult is the output of a playbook run
type PlaybookResult struct {
	ScenarioID      string                   `json:"scenario_id,omitempty"`
	PriorityParts   []PartLoss               `json:"priority_parts"`
	LossByPart      []PartLoss               `json:"loss_by_part"`
	Recommendations []PlaybookRecommendation `json:"recommendations"`
}
