package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fleetdesk/fleetplan/pkg/application/dto"
	"github.com/fleetdesk/fleetplan/pkg/domain/entities"
)

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Render writes an analysis result to w in the given format
func Render(w io.Writer, format string, result any) error {
	switch format {
	case FormatText, "":
		return renderText(w, result)
	case FormatJSON:
		return renderJSON(w, result)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderJSON(w io.Writer, result any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

func renderText(w io.Writer, result any) error {
	p := &printer{w: w}
	switch r := result.(type) {
	case *dto.CapacityAnalysis:
		p.capacity(r)
	case *dto.PartsAnalysis:
		p.parts(r)
	case *dto.DashboardAnalysis:
		p.capacity(r.Capacity)
		p.parts(r.Parts)
	case *entities.SimulationResult:
		p.simulation(r)
	case []entities.Sector:
		for _, sector := range r {
			p.printf("%s\n", sector)
		}
	default:
		return fmt.Errorf("no text rendering for %T", result)
	}
	return p.err
}

// printer keeps the first write error so renderers can print unconditionally
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) capacity(a *dto.CapacityAnalysis) {
	if a == nil {
		return
	}
	proj := a.Projection

	p.printf("📊 Capacity Analysis: %s / %s\n", a.Sector, a.Scenario)
	p.printf("======================\n\n")
	p.printf("Run: %s (as of %s)\n", a.RunID, a.AsOf.Format("2006-01-02"))
	rateNote := ""
	if a.RateOverridden {
		rateNote = " (override)"
	}
	p.printf("Annual growth rate: %s%%%s\n\n", proj.AnnualRate.String(), rateNote)

	p.printf("🚚 Fleet:\n")
	p.printf("  Tractors: %d  Trailers: %d  On road: %d  Maintenance: %d  Idle: %d\n",
		a.Fleet.Tractors, a.Fleet.Trailers, a.Fleet.OnRoad, a.Fleet.Maintenance, a.Fleet.Idle)
	p.printf("  Utilization: %s%%\n\n", a.Fleet.UtilizationPercent.StringFixed(1))

	p.printf("📈 Projection (%d months):\n", proj.HorizonMonths)
	p.printf("  Capacity: %d trips/day  Demand: %d  Gap: %d\n", proj.Capacity, proj.Demand, proj.Gap)
	estimate := ""
	if proj.RiskEstimated {
		estimate = " (estimate)"
	}
	p.printf("  First at-risk month: %s%s\n\n", proj.RiskMonth, estimate)

	rec := a.Recommendation
	if rec.IsEmpty() {
		p.printf("✅ %s\n\n", rec.Guidance)
	} else {
		p.printf("🛒 Recommendation: %s\n", rec.Guidance)
		p.printf("%-32s %-8s %-6s %-14s %-14s\n", "Item", "Type", "Qty", "Unit Price", "Line Cost")
		p.printf("%-32s %-8s %-6s %-14s %-14s\n",
			"--------------------------------", "--------", "------", "--------------", "--------------")
		for _, line := range rec.Lines {
			p.printf("%-32s %-8s %-6d %-14s %-14s\n",
				line.ItemName, line.UnitType, line.Quantity, line.UnitPrice.StringFixed(2), line.LineCost.StringFixed(2))
		}
		p.printf("Total investment: %s\n\n", rec.TotalInvestment.StringFixed(2))
	}

	p.printf("💰 Investment:\n")
	p.printf("  Monthly net profit: %s\n", a.MonthlyNetProfit.StringFixed(2))
	if a.BreakEvenMonth > 0 {
		p.printf("  Break-even month: %d\n", a.BreakEvenMonth)
	} else {
		p.printf("  Break-even month: n/a\n")
	}
	p.printf("  Rental over %d months: %s (%s)\n", a.Rental.HorizonMonths, a.Rental.RentalTotal.StringFixed(2), a.Rental.Verdict)
	p.printf("  %s\n", a.Rental.Advice)

	if len(a.Notes) > 0 {
		p.printf("\n⚠️  Notes:\n")
		for _, note := range a.Notes {
			p.printf("  - %s\n", note)
		}
	}
	p.printf("\n")
}

func (p *printer) parts(a *dto.PartsAnalysis) {
	if a == nil {
		return
	}

	p.printf("📦 Spare Parts Risk\n")
	p.printf("===================\n\n")
	p.printf("Run: %s (as of %s)\n", a.RunID, a.AsOf.Format("2006-01-02"))
	p.printf("Optimal: %d  Warning: %d  Critical: %d  Dead stock: %d\n\n",
		a.Counts.Optimal, a.Counts.Warning, a.Counts.Critical, a.Counts.DeadStock)

	p.printf("%-6s %-28s %-10s %-8s %-8s %-10s %-8s %-8s %-12s\n",
		"ID", "Part", "Status", "Stock", "Min", "Days Left", "Order", "Dead", "Order Cost")
	p.printf("%-6s %-28s %-10s %-8s %-8s %-10s %-8s %-8s %-12s\n",
		"------", "----------------------------", "----------", "--------", "--------", "----------", "--------", "--------", "------------")
	for _, risk := range a.Risks {
		days := "-"
		if risk.DaysRemaining != nil {
			days = fmt.Sprintf("%d", *risk.DaysRemaining)
		}
		dead := ""
		if risk.DeadStock {
			dead = "yes"
		}
		p.printf("%-6d %-28s %-10s %-8d %-8d %-10s %-8d %-8s %-12s\n",
			risk.PartID, truncate(risk.Name, 28), risk.Status, risk.Stock, risk.MinStock, days,
			risk.RecommendedOrder, dead, risk.OrderCost.StringFixed(2))
	}
	p.printf("Total recommended purchase: %s\n\n", a.TotalOrderCost.StringFixed(2))

	playbook := a.Playbook
	if playbook.ScenarioID != "" {
		p.printf("🗺️  Scenario playbook: %s\n", playbook.ScenarioID)
	}
	if len(playbook.PriorityParts) > 0 {
		p.printf("Priority parts by downtime loss:\n")
		for _, loss := range playbook.PriorityParts {
			p.printf("  %-20s loss %-12s safety stock %d\n", loss.PartName, loss.Loss.StringFixed(2), loss.SafetyStock)
		}
	}
	if len(playbook.Recommendations) > 0 {
		p.printf("Recommendations:\n")
		for _, rec := range playbook.Recommendations {
			p.printf("  [%-8s] %s\n", rec.Priority, rec.Message)
		}
	}

	if len(a.Notes) > 0 {
		p.printf("\n⚠️  Notes:\n")
		for _, note := range a.Notes {
			p.printf("  - %s\n", note)
		}
	}
	p.printf("\n")
}

func (p *printer) simulation(r *entities.SimulationResult) {
	p.printf("🧮 Acquisition Simulation: %s\n", r.Name)
	p.printf("  Quantity: %d  Cost: %s\n", r.Quantity, r.Cost.StringFixed(2))
	p.printf("  Stock: %d -> %d  Optimal band: [%d, %d]\n", r.CurrentStock, r.NewStock, r.OptimalMin, r.OptimalMax)
	p.printf("  Status: %s\n", strings.ToUpper(r.Status.String()))
	for _, rec := range r.Recommendations {
		p.printf("  - %s\n", rec)
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
