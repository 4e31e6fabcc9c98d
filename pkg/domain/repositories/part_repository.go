package repositories

import (
	"context"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

// PartFilter narrows a parts snapshot; zero values match everything
type PartFilter struct {
	Category   string
	SupplierID *int64
}

// Matches reports whether a part passes the filter
func (f PartFilter) Matches(part *entities.SparePart) bool {
	if f.Category != "" && part.Category != f.Category {
		return false
	}
	if f.SupplierID != nil && (part.SupplierRef == nil || *part.SupplierRef != *f.SupplierID) {
		return false
	}
	return true
}

// PartRepository provides read access to the spare parts inventory
type PartRepository interface {
	ListParts(ctx context.Context, filter PartFilter) ([]*entities.SparePart, error)
	GetPart(ctx context.Context, id entities.PartID) (*entities.SparePart, error)
	LastMovements(ctx context.Context) (entities.MovementIndex, error)
}
