// Package orchestration reads store snapshots once per request and runs the
// engine components over them.
package orchestration

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/fleetdesk/fleetplan/pkg/application/dto"
	"github.com/fleetdesk/fleetplan/pkg/application/services/capacity"
	"github.com/fleetdesk/fleetplan/pkg/application/services/gap"
	"github.com/fleetdesk/fleetplan/pkg/application/services/growth"
	"github.com/fleetdesk/fleetplan/pkg/application/services/investment"
	"github.com/fleetdesk/fleetplan/pkg/application/services/playbook"
	"github.com/fleetdesk/fleetplan/pkg/application/services/spareparts"
	"github.com/fleetdesk/fleetplan/pkg/config"
	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
	"github.com/fleetdesk/fleetplan/pkg/domain/repositories"
	"github.com/fleetdesk/fleetplan/pkg/domain/services"
)

// runNamespace scopes the name-based run ids
var runNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:fleetplan:analysis-run"))

// Clock returns the analysis reference time
type Clock func() time.Time

// AnalysisOrchestrator coordinates the record store and the engine components
type AnalysisOrchestrator struct {
	fleetRepo  repositories.FleetRepository
	partRepo   repositories.PartRepository
	tables     config.Tables
	clock      Clock
	logger     zerolog.Logger
	normalizer *services.SnapshotNormalizer
	growth     *growth.Model
	projector  *capacity.Projector
	gaps       *gap.Engine
	investment *investment.Simulator
	parts      *spareparts.Engine
	playbook   *playbook.Engine
}

// NewAnalysisOrchestrator creates a new analysis orchestrator. A nil clock uses time.Now.
func NewAnalysisOrchestrator(
	fleetRepo repositories.FleetRepository,
	partRepo repositories.PartRepository,
	tables config.Tables,
	clock Clock,
	logger zerolog.Logger,
) *AnalysisOrchestrator {
	if clock == nil {
		clock = time.Now
	}
	return &AnalysisOrchestrator{
		fleetRepo:  fleetRepo,
		partRepo:   partRepo,
		tables:     tables,
		clock:      clock,
		logger:     logger.With().Str("component", "orchestrator").Logger(),
		normalizer: services.NewSnapshotNormalizer(),
		growth:     growth.NewModel(tables, logger),
		projector:  capacity.NewProjector(tables),
		gaps:       gap.NewEngine(tables, logger),
		investment: investment.NewSimulator(),
		parts:      spareparts.NewEngine(tables, logger),
		playbook:   playbook.NewEngine(tables, logger),
	}
}

// AnalyzeCapacity projects demand for one sector and prices the purchase that closes the gap
func (o *AnalysisOrchestrator) AnalyzeCapacity(ctx context.Context, req dto.CapacityRequest) (*dto.CapacityAnalysis, error) {
	return o.analyzeCapacity(ctx, req, o.clock())
}

func (o *AnalysisOrchestrator) analyzeCapacity(ctx context.Context, req dto.CapacityRequest, asOf time.Time) (*dto.CapacityAnalysis, error) {
	sector, scenario, notes := o.growth.Resolve(req.Sector, req.Scenario)

	snapshot, err := o.fleetRepo.GetSectorSnapshot(ctx, sector)
	if err != nil {
		return nil, fmt.Errorf("failed to read sector %s: %w", sector, err)
	}
	roster, warnings := o.normalizer.NormalizeSector(*snapshot)
	notes = append(notes, o.logWarnings(warnings)...)

	rate, overridden := o.growth.EffectiveRate(sector, scenario, req.RateOverride)
	horizon := positiveOr(req.HorizonMonths, o.tables.CapacityHorizonMonths)
	amortization := positiveOr(req.AmortizationMonths, o.tables.AmortizationHorizonMonths)
	profit := decimalOr(req.MonthlyNetProfit, o.tables.DefaultMonthlyNetProfit)
	rentalCost := decimalOr(req.MonthlyRentalCost, o.tables.DefaultMonthlyRentalCost)

	projection := o.projector.Project(roster.Capacity, rate, horizon, asOf.Month())
	recommendation := o.gaps.Recommend(sector, projection.DeficitAbs(), &roster)

	runID, err := newRunID("capacity", asOf, req, roster)
	if err != nil {
		return nil, err
	}

	return &dto.CapacityAnalysis{
		RunID:            runID,
		AsOf:             asOf,
		Sector:           sector,
		Scenario:         scenario,
		RateOverridden:   overridden,
		Fleet:            fleetOverview(roster),
		Projection:       projection,
		Recommendation:   recommendation,
		MonthlyNetProfit: profit,
		Amortization:     o.investment.AmortizationSeries(recommendation.TotalInvestment, profit, amortization),
		BreakEvenMonth:   o.investment.BreakEvenMonth(recommendation.TotalInvestment, profit),
		Rental:           o.investment.CompareRental(recommendation.TotalInvestment, rentalCost, amortization),
		Notes:            nonNil(notes),
	}, nil
}

// AnalyzeParts classifies the filtered parts snapshot and runs the scenario playbook
func (o *AnalysisOrchestrator) AnalyzeParts(ctx context.Context, req dto.PartsRequest) (*dto.PartsAnalysis, error) {
	return o.analyzeParts(ctx, req, o.clock())
}

func (o *AnalysisOrchestrator) analyzeParts(ctx context.Context, req dto.PartsRequest, asOf time.Time) (*dto.PartsAnalysis, error) {
	raw, err := o.partRepo.ListParts(ctx, repositories.PartFilter{Category: req.Category, SupplierID: req.SupplierID})
	if err != nil {
		return nil, fmt.Errorf("failed to read parts: %w", err)
	}
	movements, err := o.partRepo.LastMovements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read part movements: %w", err)
	}

	parts, warnings := o.normalizer.NormalizeParts(raw)
	notes := o.logWarnings(warnings)

	// an empty index means the store keeps no movement history
	var source spareparts.MovementSource
	if len(movements) > 0 {
		source = movements
	}
	detector := spareparts.NewDeadStockDetector(o.tables.DeadStockWindowMonths, o.tables.DeadStockList, source)

	risks := o.parts.ClassifyAll(parts)
	counts := dto.StatusCounts{}
	total := decimal.Zero
	for i := range risks {
		risks[i].DeadStock = detector.IsDeadStock(parts[i], asOf)
		switch risks[i].Status {
		case entities.StockOptimal:
			counts.Optimal++
		case entities.StockWarning:
			counts.Warning++
		case entities.StockCritical:
			counts.Critical++
		}
		if risks[i].DeadStock {
			counts.DeadStock++
		}
		total = total.Add(risks[i].OrderCost)
	}

	result := o.playbook.Run(playbook.Input{
		Region:           req.Region,
		CargoType:        req.CargoType,
		ScenarioID:       req.ScenarioID,
		InflationPercent: req.InflationPercent,
		ExchangeRate:     req.ExchangeRate,
	})

	runID, err := newRunID("parts", asOf, req, parts, movements)
	if err != nil {
		return nil, err
	}

	return &dto.PartsAnalysis{
		RunID:          runID,
		AsOf:           asOf,
		Risks:          risks,
		Counts:         counts,
		TotalOrderCost: total,
		Playbook:       result,
		Notes:          nonNil(notes),
	}, nil
}

// AnalyzeDashboard runs the capacity and parts analyses concurrently against the same reference time
func (o *AnalysisOrchestrator) AnalyzeDashboard(ctx context.Context, req dto.DashboardRequest) (*dto.DashboardAnalysis, error) {
	asOf := o.clock()
	result := &dto.DashboardAnalysis{AsOf: asOf}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		analysis, err := o.analyzeCapacity(gctx, req.Capacity, asOf)
		if err != nil {
			return err
		}
		result.Capacity = analysis
		return nil
	})
	g.Go(func() error {
		analysis, err := o.analyzeParts(gctx, req.Parts, asOf)
		if err != nil {
			return err
		}
		result.Parts = analysis
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard analysis failed: %w", err)
	}

	runID, err := newRunID("dashboard", asOf, result.Capacity.RunID, result.Parts.RunID)
	if err != nil {
		return nil, err
	}
	result.RunID = runID
	return result, nil
}

// SimulateAcquisition evaluates a proposed purchase of one part
func (o *AnalysisOrchestrator) SimulateAcquisition(ctx context.Context, req dto.AcquisitionRequest) (*entities.SimulationResult, error) {
	raw, err := o.partRepo.GetPart(ctx, req.PartID)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %d: %w", req.PartID, err)
	}
	parts, warnings := o.normalizer.NormalizeParts([]*entities.SparePart{raw})
	o.logWarnings(warnings)

	result := o.parts.SimulateAcquisition(parts[0], req.Quantity)
	return &result, nil
}

// Sectors lists the sectors the store holds a snapshot for
func (o *AnalysisOrchestrator) Sectors(ctx context.Context) ([]entities.Sector, error) {
	sectors, err := o.fleetRepo.ListSectors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}
	return sectors, nil
}

func (o *AnalysisOrchestrator) logWarnings(warnings []string) []string {
	for _, w := range warnings {
		o.logger.Warn().Msg(w)
	}
	return warnings
}

// newRunID derives a name-based UUID from the inputs, so identical snapshots
// analysed on the same day share a run id
func newRunID(kind string, asOf time.Time, inputs ...any) (string, error) {
	payload, err := json.Marshal(struct {
		Kind   string `json:"kind"`
		AsOf   string `json:"as_of"`
		Inputs []any  `json:"inputs"`
	}{kind, asOf.Format(time.DateOnly), inputs})
	if err != nil {
		return "", fmt.Errorf("failed to encode %s run inputs: %w", kind, err)
	}
	return uuid.NewSHA1(runNamespace, payload).String(), nil
}

func fleetOverview(roster entities.SectorSnapshot) dto.FleetOverview {
	summary := roster.Summary()
	overview := dto.FleetOverview{
		FleetSummary:       summary,
		Units:              roster.Units,
		UtilizationPercent: decimal.Zero,
	}
	if total := summary.Tractors + summary.Trailers; total > 0 {
		overview.UtilizationPercent = decimal.NewFromInt(int64(summary.OnRoad)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(total))).
			Round(1)
	}
	return overview
}

func positiveOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func decimalOr(v *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if v == nil {
		return def
	}
	return *v
}

func nonNil(notes []string) []string {
	if notes == nil {
		return []string{}
	}
	return notes
}
