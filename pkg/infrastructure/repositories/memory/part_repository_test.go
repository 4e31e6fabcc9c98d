package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
	"github.com/fleetdesk/fleetplan/pkg/domain/repositories"
)

func newTestPartRepository() *PartRepository {
	supplier := int64(7)
	repo := NewPartRepository(3)
	repo.AddPart(entities.SparePart{ID: 1, Name: "Oil Filter", Category: "filter", Stock: 900, MinStock: 300, UnitPrice: decimal.NewFromInt(250), SupplierRef: &supplier})
	repo.AddPart(entities.SparePart{ID: 2, Name: "Brake Pad", Category: "brake", Stock: 40, MinStock: 50, UnitPrice: decimal.NewFromInt(1200)})
	repo.AddPart(entities.SparePart{ID: 3, Name: "Air Filter", Category: "filter", Stock: 60, MinStock: 30, UnitPrice: decimal.NewFromInt(180)})
	return repo
}

func TestPartRepository_ListParts(t *testing.T) {
	repo := newTestPartRepository()
	supplier := int64(7)

	tests := []struct {
		name     string
		filter   repositories.PartFilter
		expected []entities.PartID
	}{
		{"no filter", repositories.PartFilter{}, []entities.PartID{1, 2, 3}},
		{"by category", repositories.PartFilter{Category: "filter"}, []entities.PartID{1, 3}},
		{"by supplier", repositories.PartFilter{SupplierID: &supplier}, []entities.PartID{1}},
		{"no match", repositories.PartFilter{Category: "tire"}, []entities.PartID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, err := repo.ListParts(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("Failed to list parts: %v", err)
			}
			if len(parts) != len(tt.expected) {
				t.Fatalf("Expected %d parts, got %d", len(tt.expected), len(parts))
			}
			for i, id := range tt.expected {
				if parts[i].ID != id {
					t.Errorf("Position %d: expected part %d, got %d", i, id, parts[i].ID)
				}
			}
		})
	}
}

func TestPartRepository_GetPart(t *testing.T) {
	repo := newTestPartRepository()

	part, err := repo.GetPart(context.Background(), 2)
	if err != nil {
		t.Fatalf("Failed to get part: %v", err)
	}
	if part.Name != "Brake Pad" {
		t.Errorf("Expected Brake Pad, got %s", part.Name)
	}

	part.Stock = 0
	again, _ := repo.GetPart(context.Background(), 2)
	if again.Stock != 40 {
		t.Errorf("Expected stored part to be unaffected, got stock %d", again.Stock)
	}

	if _, err := repo.GetPart(context.Background(), 99); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPartRepository_AddPart_Replaces(t *testing.T) {
	repo := newTestPartRepository()
	repo.AddPart(entities.SparePart{ID: 2, Name: "Brake Pad", Category: "brake", Stock: 75, MinStock: 50})

	parts, _ := repo.ListParts(context.Background(), repositories.PartFilter{})
	if len(parts) != 3 {
		t.Fatalf("Expected 3 parts after replace, got %d", len(parts))
	}
	if parts[1].Stock != 75 {
		t.Errorf("Expected replaced stock 75, got %d", parts[1].Stock)
	}
}

func TestPartRepository_RecordMovement_KeepsLatest(t *testing.T) {
	repo := newTestPartRepository()
	early := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	repo.RecordMovement(1, late)
	repo.RecordMovement(1, early)

	index, err := repo.LastMovements(context.Background())
	if err != nil {
		t.Fatalf("Failed to read movements: %v", err)
	}
	last, ok := index.LastMovementDate(1)
	if !ok || !last.Equal(late) {
		t.Errorf("Expected latest movement %v, got %v (ok=%v)", late, last, ok)
	}
	if _, ok := index.LastMovementDate(2); ok {
		t.Error("Expected no movement for part 2")
	}
}
