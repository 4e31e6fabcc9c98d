package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
	"github.com/fleetdesk/fleetplan/pkg/domain/repositories"
)

func TestFleetRepository_GetSectorSnapshot(t *testing.T) {
	repo := NewFleetRepository(4)
	repo.SetCapacity(entities.SectorFood, 120)
	repo.AddUnit(entities.FleetUnit{ID: 1, Sector: entities.SectorFood, Type: entities.Tractor, Name: "Actros", Count: 10, OnRoad: 7, Maintenance: 1})
	repo.AddUnit(entities.FleetUnit{ID: 2, Sector: entities.SectorHeavy, Type: entities.Tractor, Name: "FH16", Count: 4})

	snapshot, err := repo.GetSectorSnapshot(context.Background(), entities.SectorFood)
	if err != nil {
		t.Fatalf("Failed to get snapshot: %v", err)
	}

	if snapshot.Capacity != 120 {
		t.Errorf("Expected capacity 120, got %d", snapshot.Capacity)
	}
	if len(snapshot.Units) != 1 || snapshot.Units[0].Name != "Actros" {
		t.Fatalf("Expected only the food roster, got %+v", snapshot.Units)
	}

	// snapshots are copies
	snapshot.Units[0].Count = 99
	again, _ := repo.GetSectorSnapshot(context.Background(), entities.SectorFood)
	if again.Units[0].Count != 10 {
		t.Errorf("Expected stored unit to be unaffected, got count %d", again.Units[0].Count)
	}
}

func TestFleetRepository_RosterWithoutCapacity(t *testing.T) {
	repo := NewFleetRepository(1)
	repo.AddUnit(entities.FleetUnit{ID: 2, Sector: entities.SectorHeavy, Type: entities.Trailer, Name: "Lowbed", Count: 4})

	snapshot, err := repo.GetSectorSnapshot(context.Background(), entities.SectorHeavy)
	if err != nil {
		t.Fatalf("Failed to get snapshot: %v", err)
	}
	if snapshot.Capacity != 0 {
		t.Errorf("Expected zero capacity, got %d", snapshot.Capacity)
	}
}

func TestFleetRepository_NotFound(t *testing.T) {
	repo := NewFleetRepository(0)

	_, err := repo.GetSectorSnapshot(context.Background(), entities.SectorStandard)
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFleetRepository_ListSectors(t *testing.T) {
	repo := NewFleetRepository(0)
	repo.SetCapacity(entities.SectorHeavy, 10)
	repo.SetCapacity("express", 5)
	repo.AddUnit(entities.FleetUnit{ID: 1, Sector: entities.SectorFood, Name: "Actros", Count: 1})

	sectors, err := repo.ListSectors(context.Background())
	if err != nil {
		t.Fatalf("Failed to list sectors: %v", err)
	}

	expected := []entities.Sector{entities.SectorFood, entities.SectorHeavy, "express"}
	if len(sectors) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, sectors)
	}
	for i := range expected {
		if sectors[i] != expected[i] {
			t.Errorf("Position %d: expected %s, got %s", i, expected[i], sectors[i])
		}
	}
}
