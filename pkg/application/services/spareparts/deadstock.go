package spareparts

import (
	"strings"
	"time"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

// MovementSource reports the last stock movement of a part. Implementations
// are snapshots prepared by the caller so detection stays pure.
type MovementSource interface {
	LastMovementDate(id entities.PartID) (time.Time, bool)
}

// DeadStockDetector flags parts without consumption over a trailing window
type DeadStockDetector struct {
	windowMonths int
	staticList   map[string]struct{}
	source       MovementSource
}

// NewDeadStockDetector combines the static unused-parts list with an optional
// movement source. With a nil source only the static list applies; with a
// source, parts with no recorded movement at all are dead stock.
func NewDeadStockDetector(windowMonths int, staticList []string, source MovementSource) *DeadStockDetector {
	names := make(map[string]struct{}, len(staticList))
	for _, name := range staticList {
		names[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}
	return &DeadStockDetector{windowMonths: windowMonths, staticList: names, source: source}
}

// IsDeadStock reports whether the part had no movement in the window ending at asOf
func (d *DeadStockDetector) IsDeadStock(part *entities.SparePart, asOf time.Time) bool {
	if _, listed := d.staticList[strings.ToLower(strings.TrimSpace(part.Name))]; listed {
		return true
	}
	if d.source == nil {
		return false
	}
	last, ok := d.source.LastMovementDate(part.ID)
	if !ok {
		return true
	}
	return last.Before(asOf.AddDate(0, -d.windowMonths, 0))
}
