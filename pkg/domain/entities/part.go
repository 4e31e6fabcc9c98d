package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PartID identifies a spare part record in the external store
type PartID int64

// SparePart is a stocked spare part as read from the record store
type SparePart struct {
	ID          PartID          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Stock       Quantity        `json:"stock"`
	MinStock    Quantity        `json:"min_stock"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	SupplierRef *int64          `json:"supplier_ref,omitempty"`
}

// NewSparePart creates a validated SparePart
func NewSparePart(id PartID, name, category string, stock, minStock Quantity, unitPrice decimal.Decimal, supplierRef *int64) (*SparePart, error) {
	if name == "" {
		return nil, fmt.Errorf("part name cannot be empty")
	}
	if stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative, got %d", stock)
	}
	if minStock < 0 {
		return nil, fmt.Errorf("minimum stock cannot be negative, got %d", minStock)
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price cannot be negative, got %s", unitPrice)
	}

	return &SparePart{
		ID:          id,
		Name:        name,
		Category:    category,
		Stock:       stock,
		MinStock:    minStock,
		UnitPrice:   unitPrice,
		SupplierRef: supplierRef,
	}, nil
}

// StockStatus classifies a part's stock level against its minimum
type StockStatus int

const (
	StockOptimal StockStatus = iota
	StockWarning
	StockCritical
)

// String method for StockStatus enum
func (s StockStatus) String() string {
	switch s {
	case StockOptimal:
		return "optimal"
	case StockWarning:
		return "warning"
	case StockCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name
func (s StockStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StockRisk is the per-part risk record derived from a snapshot
type StockRisk struct {
	PartID        PartID          `json:"part_id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Stock         Quantity        `json:"stock"`
	MinStock      Quantity        `json:"min_stock"`
	Status        StockStatus     `json:"status"`
	DailyRate     decimal.Decimal `json:"daily_rate"`
	DaysRemaining *int64          `json:"days_remaining"` // nil when the daily rate is zero
	// RecommendedOrder is the quantity that brings stock back to twice the minimum;
	// zero for optimal parts.
	RecommendedOrder Quantity        `json:"recommended_order"`
	OrderCost        decimal.Decimal `json:"order_cost"`
	DeadStock        bool            `json:"dead_stock"`
}

// SimulationStatus is the verdict on a proposed acquisition
type SimulationStatus int

const (
	SimulationOptimal SimulationStatus = iota
	SimulationWarning
	SimulationError
)

// String method for SimulationStatus enum
func (s SimulationStatus) String() string {
	switch s {
	case SimulationOptimal:
		return "optimal"
	case SimulationWarning:
		return "warning"
	case SimulationError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name
func (s SimulationStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SimulationResult describes the stock position after a hypothetical purchase
type SimulationResult struct {
	PartID          PartID           `json:"part_id"`
	Name            string           `json:"name"`
	Quantity        Quantity         `json:"quantity"`
	CurrentStock    Quantity         `json:"current_stock"`
	NewStock        Quantity         `json:"new_stock"`
	OptimalMin      Quantity         `json:"optimal_min"`
	OptimalMax      Quantity         `json:"optimal_max"`
	Status          SimulationStatus `json:"status"`
	Cost            decimal.Decimal  `json:"cost"`
	DaysRemaining   *int64           `json:"days_remaining"`
	Recommendations []string         `json:"recommendations"`
}

// MovementIndex maps parts to the date of their most recent stock movement
type MovementIndex map[PartID]time.Time

// LastMovementDate returns the last recorded movement of a part
func (m MovementIndex) LastMovementDate(id PartID) (time.Time, bool) {
	t, ok := m[id]
	return t, ok
}
