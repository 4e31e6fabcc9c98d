package services

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

func TestParseQuantity(t *testing.T) {
	normalizer := NewSnapshotNormalizer()

	tests := []struct {
		raw    string
		want   entities.Quantity
		wantOK bool
	}{
		{"42", 42, true},
		{" 7 ", 7, true},
		{"12.0", 12, true},
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-5", 0, false},
		{"3.5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := normalizer.ParseQuantity(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Expected (%d, %v), got (%d, %v)", tt.want, tt.wantOK, got, ok)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	normalizer := NewSnapshotNormalizer()

	if got, ok := normalizer.ParseAmount("250.50"); !ok || !got.Equal(decimal.RequireFromString("250.5")) {
		t.Errorf("Expected 250.5, got %s (ok=%v)", got, ok)
	}
	if got, ok := normalizer.ParseAmount("-1"); ok || !got.IsZero() {
		t.Errorf("Expected negative amount to yield 0, got %s (ok=%v)", got, ok)
	}
	if _, ok := normalizer.ParseAmount("n/a"); ok {
		t.Error("Expected non-numeric amount to be rejected")
	}
}

func TestNormalizeSector(t *testing.T) {
	normalizer := NewSnapshotNormalizer()

	snapshot := entities.SectorSnapshot{
		Sector:   entities.SectorHeavy,
		Capacity: -10,
		Units: []entities.FleetUnit{
			{ID: 1, Name: "FH16", Type: entities.Tractor, Count: 10, OnRoad: 6, Maintenance: 1},
			{ID: 2, Name: "Lowbed", Type: entities.Trailer, Count: 3, OnRoad: 4, Maintenance: -2},
		},
	}

	normalized, warnings := normalizer.NormalizeSector(snapshot)

	if normalized.Capacity != 0 {
		t.Errorf("Expected capacity 0, got %d", normalized.Capacity)
	}
	if normalized.Units[0] != snapshot.Units[0] {
		t.Errorf("Expected valid unit to pass through unchanged, got %+v", normalized.Units[0])
	}

	trailer := normalized.Units[1]
	if trailer.Maintenance != 0 || trailer.Count != 4 || trailer.Idle() != 0 {
		t.Errorf("Expected maintenance 0 and count raised to 4, got %+v", trailer)
	}
	if len(warnings) != 3 {
		t.Fatalf("Expected 3 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "capacity") {
		t.Errorf("Expected capacity warning first, got %q", warnings[0])
	}

	if snapshot.Capacity != -10 || snapshot.Units[1].Maintenance != -2 {
		t.Error("Input snapshot must not be mutated")
	}
}

func TestNormalizeParts(t *testing.T) {
	normalizer := NewSnapshotNormalizer()

	parts := []*entities.SparePart{
		{ID: 1, Name: "Oil Filter", Stock: 900, MinStock: 300, UnitPrice: decimal.NewFromInt(250)},
		{ID: 2, Name: "Tire", Stock: -4, MinStock: -1, UnitPrice: decimal.NewFromInt(-100)},
		nil,
	}

	normalized, warnings := normalizer.NormalizeParts(parts)

	if len(normalized) != 2 {
		t.Fatalf("Expected 2 parts, got %d", len(normalized))
	}
	if normalized[0] == parts[0] {
		t.Error("Expected parts to be copied")
	}
	tire := normalized[1]
	if tire.Stock != 0 || tire.MinStock != 0 || !tire.UnitPrice.IsZero() {
		t.Errorf("Expected tire values clamped to zero, got %+v", tire)
	}
	if len(warnings) != 3 {
		t.Errorf("Expected 3 warnings, got %d: %v", len(warnings), warnings)
	}
	if parts[1].Stock != -4 {
		t.Error("Input parts must not be mutated")
	}
}
