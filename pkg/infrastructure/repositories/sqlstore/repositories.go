package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
	"github.com/fleetdesk/fleetplan/pkg/domain/repositories"
)

// Verify interface compliance
var (
	_ repositories.FleetRepository = (*DB)(nil)
	_ repositories.PartRepository  = (*DB)(nil)
)

// GetSectorSnapshot reads the capacity and roster of one sector. A sector
// with roster lines but no capacity row reports zero capacity.
func (db *DB) GetSectorSnapshot(ctx context.Context, sector entities.Sector) (*entities.SectorSnapshot, error) {
	snapshot := &entities.SectorSnapshot{Sector: sector, Units: make([]entities.FleetUnit, 0)}

	var capacity sql.NullInt64
	err := db.SQL.QueryRowContext(ctx,
		db.q(`SELECT capacity_per_day FROM sectors WHERE sector_key = ?`), string(sector),
	).Scan(&capacity)
	known := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to read capacity of sector %s: %w", sector, err)
	}
	snapshot.Capacity = entities.Quantity(capacity.Int64)

	rows, err := db.SQL.QueryContext(ctx, db.q(`
		SELECT id, unit_type, name, brand, model, unit_count, on_road, in_maintenance
		FROM fleet_units
		WHERE sector_key = ?
		ORDER BY id
	`), string(sector))
	if err != nil {
		return nil, fmt.Errorf("failed to read fleet of sector %s: %w", sector, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			unit                         entities.FleetUnit
			unitType                     string
			count, onRoad, inMaintenance sql.NullInt64
		)
		if err := rows.Scan(&unit.ID, &unitType, &unit.Name, &unit.Brand, &unit.Model, &count, &onRoad, &inMaintenance); err != nil {
			return nil, fmt.Errorf("failed to scan fleet unit: %w", err)
		}
		if unit.Type, err = entities.ParseUnitType(unitType); err != nil {
			return nil, fmt.Errorf("fleet unit %d: %w", unit.ID, err)
		}
		unit.Sector = sector
		unit.Count = entities.Quantity(count.Int64)
		unit.OnRoad = entities.Quantity(onRoad.Int64)
		unit.Maintenance = entities.Quantity(inMaintenance.Int64)
		snapshot.Units = append(snapshot.Units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fleet of sector %s: %w", sector, err)
	}

	if !known && len(snapshot.Units) == 0 {
		return nil, fmt.Errorf("sector %s: %w", sector, repositories.ErrNotFound)
	}
	return snapshot, nil
}

// ListSectors returns every sector with a capacity row or roster line
func (db *DB) ListSectors(ctx context.Context) ([]entities.Sector, error) {
	rows, err := db.SQL.QueryContext(ctx, `
		SELECT sector_key FROM sectors
		UNION
		SELECT DISTINCT sector_key FROM fleet_units
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan sector: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}
	return sortSectors(keys), nil
}

// ListParts reads the parts matching the filter, ordered by id
func (db *DB) ListParts(ctx context.Context, filter repositories.PartFilter) ([]*entities.SparePart, error) {
	query, args := partsQuery(filter)
	rows, err := db.SQL.QueryContext(ctx, db.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	defer rows.Close()

	parts := make([]*entities.SparePart, 0)
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	return parts, nil
}

// GetPart reads one part by id
func (db *DB) GetPart(ctx context.Context, id entities.PartID) (*entities.SparePart, error) {
	row := db.SQL.QueryRowContext(ctx, db.q(partColumns+` WHERE id = ?`), int64(id))
	part, err := scanPart(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("part %d: %w", id, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return part, nil
}

// LastMovements reads the latest movement date of every part with history
func (db *DB) LastMovements(ctx context.Context) (entities.MovementIndex, error) {
	rows, err := db.SQL.QueryContext(ctx, `
		SELECT part_id, MAX(moved_at)
		FROM part_movements
		GROUP BY part_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read part movements: %w", err)
	}
	defer rows.Close()

	index := make(entities.MovementIndex)
	for rows.Next() {
		var (
			id      int64
			movedAt time.Time
		)
		if err := rows.Scan(&id, &movedAt); err != nil {
			return nil, fmt.Errorf("failed to scan part movement: %w", err)
		}
		index[entities.PartID(id)] = movedAt.UTC()
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read part movements: %w", err)
	}
	return index, nil
}

func (db *DB) q(query string) string {
	return rebind(db.driver, query)
}

const partColumns = `SELECT id, name, category, stock, min_stock, unit_price, supplier_id FROM spare_parts`

// partsQuery builds the filtered parts query with ? placeholders
func partsQuery(filter repositories.PartFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.SupplierID != nil {
		conditions = append(conditions, "supplier_id = ?")
		args = append(args, *filter.SupplierID)
	}

	query := partColumns
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	return query + " ORDER BY id", args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPart(row scanner) (*entities.SparePart, error) {
	var (
		id              int64
		part            entities.SparePart
		stock, minStock sql.NullInt64
		price           decimal.NullDecimal
		supplier        sql.NullInt64
	)
	if err := row.Scan(&id, &part.Name, &part.Category, &stock, &minStock, &price, &supplier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan part: %w", err)
	}
	part.ID = entities.PartID(id)
	part.Stock = entities.Quantity(stock.Int64)
	part.MinStock = entities.Quantity(minStock.Int64)
	part.UnitPrice = price.Decimal
	if supplier.Valid {
		ref := supplier.Int64
		part.SupplierRef = &ref
	}
	return &part, nil
}

// sortSectors orders known sectors first, then the rest alphabetically
func sortSectors(keys []string) []entities.Sector {
	rank := make(map[entities.Sector]int, len(entities.Sectors))
	for i, sector := range entities.Sectors {
		rank[sector] = i
	}

	seen := make(map[entities.Sector]bool, len(keys))
	sectors := make([]entities.Sector, 0, len(keys))
	for _, key := range keys {
		sector := entities.Sector(strings.ToLower(strings.TrimSpace(key)))
		if sector == "" || seen[sector] {
			continue
		}
		seen[sector] = true
		sectors = append(sectors, sector)
	}

	sort.Slice(sectors, func(i, j int) bool {
		ri, iKnown := rank[sectors[i]]
		rj, jKnown := rank[sectors[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown != jKnown:
			return iKnown
		default:
			return sectors[i] < sectors[j]
		}
	})
	return sectors
}
