package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
	"github.com/fleetdesk/fleetplan/pkg/domain/services"
	"github.com/fleetdesk/fleetplan/pkg/infrastructure/repositories/memory"
)

// Snapshot file names inside a data directory
const (
	SectorsFile   = "sectors.csv"
	FleetFile     = "fleet.csv"
	PartsFile     = "parts.csv"
	MovementsFile = "movements.csv"
)

var (
	sectorsHeader   = []string{"sector", "capacity_per_day"}
	fleetHeader     = []string{"id", "sector", "unit_type", "name", "brand", "model", "count", "on_road", "maintenance"}
	partsHeader     = []string{"id", "name", "category", "stock", "min_stock", "unit_price", "supplier_id"}
	movementsHeader = []string{"part_id", "moved_at"}
)

// Loader reads fleet and parts snapshots exported from the record store.
// Malformed numeric cells are read as zero and reported through Warnings.
type Loader struct {
	normalizer *services.SnapshotNormalizer
	warnings   []string
}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{normalizer: services.NewSnapshotNormalizer()}
}

// Warnings returns the cell-level problems found so far
func (l *Loader) Warnings() []string {
	return l.warnings
}

// LoadDir reads sectors.csv, fleet.csv, parts.csv and the optional movements.csv
// from dir into in-memory repositories
func (l *Loader) LoadDir(dir string) (*memory.FleetRepository, *memory.PartRepository, error) {
	capacities, err := l.LoadSectors(filepath.Join(dir, SectorsFile))
	if err != nil {
		return nil, nil, err
	}
	units, err := l.LoadFleet(filepath.Join(dir, FleetFile))
	if err != nil {
		return nil, nil, err
	}
	parts, err := l.LoadParts(filepath.Join(dir, PartsFile))
	if err != nil {
		return nil, nil, err
	}
	movements, err := l.LoadMovements(filepath.Join(dir, MovementsFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, err
	}

	fleetRepo := memory.NewFleetRepository(len(units))
	for sector, capacity := range capacities {
		fleetRepo.SetCapacity(sector, capacity)
	}
	if err := fleetRepo.LoadUnits(units); err != nil {
		return nil, nil, fmt.Errorf("failed to load fleet units: %w", err)
	}

	partRepo := memory.NewPartRepository(len(parts))
	if err := partRepo.LoadParts(parts); err != nil {
		return nil, nil, fmt.Errorf("failed to load parts: %w", err)
	}
	for id, at := range movements {
		partRepo.RecordMovement(id, at)
	}

	return fleetRepo, partRepo, nil
}

// LoadSectors loads daily capacities keyed by sector
func (l *Loader) LoadSectors(filename string) (map[entities.Sector]entities.Quantity, error) {
	records, err := readRecords(filename, "sectors", sectorsHeader)
	if err != nil {
		return nil, err
	}

	capacities := make(map[entities.Sector]entities.Quantity, len(records))
	for i, record := range records {
		row := i + 2
		key := strings.ToLower(strings.TrimSpace(record[0]))
		if key == "" {
			return nil, fmt.Errorf("sectors CSV row %d: sector cannot be empty", row)
		}
		sector := entities.Sector(key)
		if _, dup := capacities[sector]; dup {
			return nil, fmt.Errorf("sectors CSV row %d: duplicate sector %s", row, sector)
		}
		capacities[sector] = l.quantity("sectors", row, "capacity_per_day", record[1])
	}
	return capacities, nil
}

// LoadFleet loads roster lines
func (l *Loader) LoadFleet(filename string) ([]*entities.FleetUnit, error) {
	records, err := readRecords(filename, "fleet", fleetHeader)
	if err != nil {
		return nil, err
	}

	units := make([]*entities.FleetUnit, 0, len(records))
	for i, record := range records {
		row := i + 2
		id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("fleet CSV row %d: invalid id: %s", row, record[0])
		}
		unitType, err := entities.ParseUnitType(record[2])
		if err != nil {
			return nil, fmt.Errorf("fleet CSV row %d: %w", row, err)
		}
		name := strings.TrimSpace(record[3])
		if name == "" {
			return nil, fmt.Errorf("fleet CSV row %d: name cannot be empty", row)
		}

		units = append(units, &entities.FleetUnit{
			ID:          id,
			Sector:      entities.Sector(strings.ToLower(strings.TrimSpace(record[1]))),
			Type:        unitType,
			Name:        name,
			Brand:       strings.TrimSpace(record[4]),
			Model:       strings.TrimSpace(record[5]),
			Count:       l.quantity("fleet", row, "count", record[6]),
			OnRoad:      l.quantity("fleet", row, "on_road", record[7]),
			Maintenance: l.quantity("fleet", row, "maintenance", record[8]),
		})
	}
	return units, nil
}

// LoadParts loads the spare parts inventory
func (l *Loader) LoadParts(filename string) ([]*entities.SparePart, error) {
	records, err := readRecords(filename, "parts", partsHeader)
	if err != nil {
		return nil, err
	}

	parts := make([]*entities.SparePart, 0, len(records))
	for i, record := range records {
		row := i + 2
		id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parts CSV row %d: invalid id: %s", row, record[0])
		}
		name := strings.TrimSpace(record[1])
		if name == "" {
			return nil, fmt.Errorf("parts CSV row %d: name cannot be empty", row)
		}

		price, ok := l.normalizer.ParseAmount(record[5])
		if !ok {
			l.warn("parts", row, "unit_price", record[5])
		}

		var supplier *int64
		if raw := strings.TrimSpace(record[6]); raw != "" {
			ref, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parts CSV row %d: invalid supplier_id: %s", row, raw)
			}
			supplier = &ref
		}

		parts = append(parts, &entities.SparePart{
			ID:          entities.PartID(id),
			Name:        name,
			Category:    strings.TrimSpace(record[2]),
			Stock:       l.quantity("parts", row, "stock", record[3]),
			MinStock:    l.quantity("parts", row, "min_stock", record[4]),
			UnitPrice:   price,
			SupplierRef: supplier,
		})
	}
	return parts, nil
}

// LoadMovements loads stock movements and keeps the latest date per part
func (l *Loader) LoadMovements(filename string) (entities.MovementIndex, error) {
	records, err := readRecords(filename, "movements", movementsHeader)
	if err != nil {
		return nil, err
	}

	index := make(entities.MovementIndex, len(records))
	for i, record := range records {
		row := i + 2
		id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("movements CSV row %d: invalid part_id: %s", row, record[0])
		}
		movedAt, err := time.Parse("2006-01-02", strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("movements CSV row %d: invalid moved_at format: %s (expected YYYY-MM-DD)", row, record[1])
		}
		if last, ok := index[entities.PartID(id)]; !ok || movedAt.After(last) {
			index[entities.PartID(id)] = movedAt
		}
	}
	return index, nil
}

func (l *Loader) quantity(kind string, row int, column, raw string) entities.Quantity {
	q, ok := l.normalizer.ParseQuantity(raw)
	if !ok {
		l.warn(kind, row, column, raw)
	}
	return q
}

func (l *Loader) warn(kind string, row int, column, raw string) {
	l.warnings = append(l.warnings, fmt.Sprintf("%s CSV row %d: %s %q read as 0", kind, row, column, raw))
}

// readRecords opens a CSV file, checks its header and returns the data rows
func readRecords(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("%s CSV must have a header row", kind)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}
	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}
