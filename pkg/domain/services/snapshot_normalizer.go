package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

// SnapshotNormalizer clamps malformed store values before they reach the engine.
// Negative or non-numeric quantities become zero; every adjustment is reported
// as a warning so callers can surface it.
type SnapshotNormalizer struct{}

// NewSnapshotNormalizer creates a new snapshot normalizer
func NewSnapshotNormalizer() *SnapshotNormalizer {
	return &SnapshotNormalizer{}
}

// ParseQuantity reads a raw store value as a non-negative quantity.
// Empty, non-numeric and negative values yield zero and ok=false.
func (n *SnapshotNormalizer) ParseQuantity(raw string) (entities.Quantity, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// tolerate "12.0" style exports from spreadsheets
		dec, decErr := decimal.NewFromString(raw)
		if decErr != nil || !dec.Equal(dec.Truncate(0)) {
			return 0, false
		}
		value = dec.IntPart()
	}
	if value < 0 {
		return 0, false
	}
	return entities.Quantity(value), true
}

// ParseAmount reads a raw store value as a non-negative decimal amount
func (n *SnapshotNormalizer) ParseAmount(raw string) (decimal.Decimal, bool) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || value.IsNegative() {
		return decimal.Zero, false
	}
	return value, true
}

// NormalizeSector returns a copy of the snapshot with non-negative capacity and
// counts, and every unit's count raised to cover its on-road and maintenance units
func (n *SnapshotNormalizer) NormalizeSector(snapshot entities.SectorSnapshot) (entities.SectorSnapshot, []string) {
	var warnings []string

	normalized := entities.SectorSnapshot{
		Sector:   snapshot.Sector,
		Capacity: snapshot.Capacity,
		Units:    make([]entities.FleetUnit, 0, len(snapshot.Units)),
	}
	if normalized.Capacity < 0 {
		warnings = append(warnings, fmt.Sprintf("sector %s: negative capacity %d treated as 0", snapshot.Sector, snapshot.Capacity))
		normalized.Capacity = 0
	}

	for _, unit := range snapshot.Units {
		subject := fmt.Sprintf("fleet unit %d (%s)", unit.ID, unit.Name)
		unit.Count = clampQuantity(unit.Count, subject, "count", &warnings)
		unit.OnRoad = clampQuantity(unit.OnRoad, subject, "on road", &warnings)
		unit.Maintenance = clampQuantity(unit.Maintenance, subject, "maintenance", &warnings)

		if busy := unit.OnRoad + unit.Maintenance; busy > unit.Count {
			warnings = append(warnings, fmt.Sprintf("%s: count %d raised to %d to cover on-road and maintenance units", subject, unit.Count, busy))
			unit.Count = busy
		}
		normalized.Units = append(normalized.Units, unit)
	}

	return normalized, warnings
}

// NormalizeParts returns copies of the parts with non-negative stock, minimum
// stock and unit price. The input slice is left untouched.
func (n *SnapshotNormalizer) NormalizeParts(parts []*entities.SparePart) ([]*entities.SparePart, []string) {
	var warnings []string

	normalized := make([]*entities.SparePart, 0, len(parts))
	for _, part := range parts {
		if part == nil {
			continue
		}
		clean := *part
		subject := fmt.Sprintf("part %d (%s)", part.ID, part.Name)
		clean.Stock = clampQuantity(clean.Stock, subject, "stock", &warnings)
		clean.MinStock = clampQuantity(clean.MinStock, subject, "minimum stock", &warnings)
		if clean.UnitPrice.IsNegative() {
			warnings = append(warnings, fmt.Sprintf("%s: negative unit price %s treated as 0", subject, clean.UnitPrice))
			clean.UnitPrice = decimal.Zero
		}
		normalized = append(normalized, &clean)
	}

	return normalized, warnings
}

func clampQuantity(q entities.Quantity, subject, field string, warnings *[]string) entities.Quantity {
	if q >= 0 {
		return q
	}
	*warnings = append(*warnings, fmt.Sprintf("%s: negative %s %d treated as 0", subject, field, q))
	return 0
}
