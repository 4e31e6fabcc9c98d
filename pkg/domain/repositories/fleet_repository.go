package repositories

import (
	"context"
	"errors"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

// ErrNotFound is returned when a requested record does not exist in the store
var ErrNotFound = errors.New("not found")

// FleetRepository provides read access to sector capacity and fleet rosters
type FleetRepository interface {
	GetSectorSnapshot(ctx context.Context, sector entities.Sector) (*entities.SectorSnapshot, error)
	ListSectors(ctx context.Context) ([]entities.Sector, error)
}
