package recorder

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"RiskRadar/internal/model"
)

func newTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"), log)
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func (r *SQLiteRecorder) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestSQLiteRecorder_RecordReport(t *testing.T) {
	r := newTestRecorder(t)

	err := r.RecordReport(&ReportRecord{
		TotalValue: 12500,
		Report: &model.RiskReport{
			VaR95:            850,
			VaR99:            1400,
			CVaR95:           1100,
			Volatility:       0.18,
			OverallRiskLevel: model.RiskMedium,
			Warnings:         []string{"skipped XYZ"},
		},
	})
	if err != nil {
		t.Fatalf("record report: %v", err)
	}
	if got := r.count(t, "risk_reports"); got != 1 {
		t.Errorf("expected 1 report row, got %d", got)
	}

	var level, warnings string
	if err := r.db.QueryRow("SELECT risk_level, warnings FROM risk_reports").Scan(&level, &warnings); err != nil {
		t.Fatalf("query back: %v", err)
	}
	if level != "MEDIUM" {
		t.Errorf("expected MEDIUM, got %s", level)
	}
	if warnings != "skipped XYZ" {
		t.Errorf("expected warning persisted, got %q", warnings)
	}
}

func TestSQLiteRecorder_RecordSimulationAndStress(t *testing.T) {
	r := newTestRecorder(t)

	err := r.RecordSimulation(&SimulationRecord{
		Simulations: 10000,
		Horizon:     252,
		Seed:        42,
		Result: &model.SimulationResult{
			Percentiles:       map[string]float64{"p5": 9000, "p50": 10500, "p95": 12500},
			ExpectedReturn:    0.06,
			ProbabilityOfLoss: 0.31,
			VaR95:             1000,
			CVaR95:            1350,
		},
	})
	if err != nil {
		t.Fatalf("record simulation: %v", err)
	}
	if got := r.count(t, "simulations"); got != 1 {
		t.Errorf("expected 1 simulation row, got %d", got)
	}

	for _, id := range []string{"market_crash", "recession"} {
		err := r.RecordStress(&StressRecord{Outcome: model.StressOutcome{
			ScenarioID: id,
			NewValue:   8000,
			PnL:        -2000,
			PnLPercent: -0.2,
		}})
		if err != nil {
			t.Fatalf("record stress: %v", err)
		}
	}
	if got := r.count(t, "stress_outcomes"); got != 2 {
		t.Errorf("expected 2 stress rows, got %d", got)
	}
}

func TestSQLiteRecorder_Reopen(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	path := filepath.Join(t.TempDir(), "test.db")

	r, err := NewSQLiteRecorder(path, log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := r.RecordStress(&StressRecord{Outcome: model.StressOutcome{ScenarioID: "rate_hike"}}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Migrations are idempotent and data survives reopening.
	r2, err := NewSQLiteRecorder(path, log)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r2.Close()
	if got := r2.count(t, "stress_outcomes"); got != 1 {
		t.Errorf("expected row to survive reopen, got %d", got)
	}
}
