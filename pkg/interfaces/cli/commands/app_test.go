package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fleetdesk/fleetplan/pkg/domain/repositories"
)

func writeSnapshot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"sectors.csv": "sector,capacity_per_day\nfood,120\nstandard,100\nheavy,40\n",
		"fleet.csv": `id,sector,unit_type,name,brand,model,count,on_road,maintenance
1,standard,tractor,F-MAX,Ford Trucks,F-MAX,20,15,2
2,standard,trailer,Curtainsider,Tirsan,Curtainsider,22,15,1
3,food,tractor,Actros,Mercedes-Benz,Actros 1845,12,9,1
4,food,trailer,S.KO Cool,Schmitz Cargobull,S.KO Cool,12,8,2
5,heavy,tractor,FH16,Volvo,FH16 750,6,4,1
6,heavy,trailer,Lowbed,Tirsan,Lowbed,6,3,0
`,
		"parts.csv": `id,name,category,stock,min_stock,unit_price,supplier_id
1,Oil Filter,filter,900,300,250,7
2,Brake Pad,brake,40,50,1200,7
3,Tire,tire,-3,40,4500,
`,
		"movements.csv": "part_id,moved_at\n1,2026-03-12\n2,2026-02-15\n3,2026-01-15\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := NewApp(&stdout, &stderr)
	err := app.Run(append([]string{"fleetplan", "--log-format", "json", "--log-level", "warn", "--as-of", "2026-03-15"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestCapacityCommand_JSON(t *testing.T) {
	dir := writeSnapshot(t)

	stdout, _, err := run(t, "--data-dir", dir, "--format", "json", "capacity", "--sector", "standard", "--scenario", "normal")
	if err != nil {
		t.Fatalf("Capacity command failed: %v", err)
	}

	var result struct {
		RunID      string `json:"run_id"`
		Projection struct {
			Demand int64 `json:"demand"`
			Gap    int64 `json:"gap"`
		} `json:"projection"`
		Recommendation struct {
			RequiredVehicles int64  `json:"required_vehicles"`
			TotalInvestment  string `json:"total_investment"`
		} `json:"recommendation"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", stdout, err)
	}
	if result.Projection.Demand != 107 || result.Projection.Gap != -7 {
		t.Errorf("Expected demand 107 and gap -7, got %d and %d", result.Projection.Demand, result.Projection.Gap)
	}
	if result.Recommendation.RequiredVehicles != 9 || result.Recommendation.TotalInvestment != "24600000" {
		t.Errorf("Expected 9 vehicles for 24600000, got %d for %s",
			result.Recommendation.RequiredVehicles, result.Recommendation.TotalInvestment)
	}
	if result.RunID == "" {
		t.Error("Expected a run id")
	}
}

func TestCapacityCommand_RunIDIsStable(t *testing.T) {
	dir := writeSnapshot(t)

	first, _, err := run(t, "--data-dir", dir, "--format", "json", "capacity", "--sector", "heavy")
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	second, _, err := run(t, "--data-dir", dir, "--format", "json", "capacity", "--sector", "heavy")
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if first != second {
		t.Error("Expected identical output for identical inputs and date")
	}
}

func TestPartsCommand_Text(t *testing.T) {
	dir := writeSnapshot(t)

	stdout, stderr, err := run(t, "--data-dir", dir, "parts", "--region", "black-sea", "--cargo", "heavy")
	if err != nil {
		t.Fatalf("Parts command failed: %v", err)
	}
	for _, want := range []string{"Spare Parts Risk", "Brake Pad", "black-sea-winter"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, stdout)
		}
	}
	if !strings.Contains(stderr, "stock") {
		t.Errorf("Expected the negative stock cell to be logged, got %q", stderr)
	}
}

func TestSimulateCommand(t *testing.T) {
	dir := writeSnapshot(t)

	stdout, _, err := run(t, "--data-dir", dir, "simulate", "--part-id", "2", "--quantity", "60")
	if err != nil {
		t.Fatalf("Simulate command failed: %v", err)
	}
	if !strings.Contains(stdout, "Status: OPTIMAL") {
		t.Errorf("Expected an optimal verdict, got:\n%s", stdout)
	}

	_, _, err = run(t, "--data-dir", dir, "simulate", "--part-id", "99", "--quantity", "1")
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown part, got %v", err)
	}
}

func TestSectorsCommand(t *testing.T) {
	dir := writeSnapshot(t)

	stdout, _, err := run(t, "--data-dir", dir, "--format", "json", "sectors")
	if err != nil {
		t.Fatalf("Sectors command failed: %v", err)
	}
	var sectors []string
	if err := json.Unmarshal([]byte(stdout), &sectors); err != nil {
		t.Fatalf("Expected JSON list, got %q: %v", stdout, err)
	}
	if strings.Join(sectors, ",") != "food,standard,heavy" {
		t.Errorf("Expected food,standard,heavy, got %v", sectors)
	}
}

func TestCommand_Errors(t *testing.T) {
	dir := writeSnapshot(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"invalid rate", []string{"--data-dir", dir, "capacity", "--rate", "fast"}, "invalid --rate"},
		{"unknown format", []string{"--data-dir", dir, "--format", "xml", "capacity"}, "unsupported output format"},
		{"missing data dir", []string{"--data-dir", filepath.Join(dir, "missing"), "capacity"}, "failed to load snapshot"},
		{"missing quantity", []string{"--data-dir", dir, "simulate", "--part-id", "1"}, "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
