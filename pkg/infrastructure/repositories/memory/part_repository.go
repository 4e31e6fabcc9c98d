package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
	"github.com/fleetdesk/fleetplan/pkg/domain/repositories"
)

// PartRepository provides in-memory spare part and movement storage
type PartRepository struct {
	mu        sync.RWMutex
	parts     []entities.SparePart
	partsMap  map[entities.PartID]int
	movements entities.MovementIndex
}

// NewPartRepository creates a new in-memory part repository
func NewPartRepository(expectedParts int) *PartRepository {
	return &PartRepository{
		parts:     make([]entities.SparePart, 0, expectedParts),
		partsMap:  make(map[entities.PartID]int, expectedParts),
		movements: make(entities.MovementIndex),
	}
}

// Verify interface compliance
var _ repositories.PartRepository = (*PartRepository)(nil)

// AddPart adds or replaces a part
func (r *PartRepository) AddPart(part entities.SparePart) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index, exists := r.partsMap[part.ID]; exists {
		r.parts[index] = part
		return
	}
	r.partsMap[part.ID] = len(r.parts)
	r.parts = append(r.parts, part)
}

// LoadParts loads parts into the repository
func (r *PartRepository) LoadParts(parts []*entities.SparePart) error {
	for _, part := range parts {
		if part == nil {
			return fmt.Errorf("nil spare part")
		}
		r.AddPart(*part)
	}
	return nil
}

// RecordMovement registers a stock movement; only the latest date per part is kept
func (r *PartRepository) RecordMovement(id entities.PartID, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if last, ok := r.movements[id]; !ok || at.After(last) {
		r.movements[id] = at
	}
}

// ListParts returns copies of the parts matching the filter, in insertion order
func (r *PartRepository) ListParts(ctx context.Context, filter repositories.PartFilter) ([]*entities.SparePart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parts := make([]*entities.SparePart, 0, len(r.parts))
	for i := range r.parts {
		if filter.Matches(&r.parts[i]) {
			part := r.parts[i]
			parts = append(parts, &part)
		}
	}
	return parts, nil
}

// GetPart returns a copy of one part
func (r *PartRepository) GetPart(ctx context.Context, id entities.PartID) (*entities.SparePart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.partsMap[id]
	if !exists {
		return nil, fmt.Errorf("part %d: %w", id, repositories.ErrNotFound)
	}
	part := r.parts[index]
	return &part, nil
}

// LastMovements returns a copy of the movement index
func (r *PartRepository) LastMovements(ctx context.Context) (entities.MovementIndex, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := make(entities.MovementIndex, len(r.movements))
	for id, at := range r.movements {
		index[id] = at
	}
	return index, nil
}
