package recorder

import "RiskRadar/internal/model"

// ReportRecord holds one scheduled or requested risk analysis for the
// history tables.
type ReportRecord struct {
	TotalValue float64
	Report     *model.RiskReport
}

// SimulationRecord summarizes one Monte Carlo run. Final values are not
// persisted; only the order statistics survive the request.
type SimulationRecord struct {
	Simulations int
	Horizon     int
	Seed        int64
	Result      *model.SimulationResult
}

// StressRecord holds one scenario outcome.
type StressRecord struct {
	Outcome model.StressOutcome
}

// Recorder persists risk history for later inspection.
type Recorder interface {
	RecordReport(rec *ReportRecord) error
	RecordSimulation(rec *SimulationRecord) error
	RecordStress(rec *StressRecord) error
	Close() error
}
