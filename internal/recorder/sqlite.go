package recorder

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists risk history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *logrus.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string, log *logrus.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read
	// while the scheduler writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS risk_reports (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			total_value     REAL,
			var_95          REAL,
			var_99          REAL,
			cvar_95         REAL,
			volatility      REAL,
			expected_return REAL,
			sharpe_ratio    REAL,
			diversification REAL,
			concentration   REAL,
			risk_level      TEXT,
			warnings        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_ts ON risk_reports(timestamp)`,

		`CREATE TABLE IF NOT EXISTS simulations (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			simulations     INTEGER,
			horizon         INTEGER,
			seed            INTEGER,
			expected_return REAL,
			prob_of_loss    REAL,
			p5              REAL,
			p50             REAL,
			p95             REAL,
			var_95          REAL,
			cvar_95         REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_simulations_ts ON simulations(timestamp)`,

		`CREATE TABLE IF NOT EXISTS stress_outcomes (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			scenario_id TEXT,
			new_value   REAL,
			pnl         REAL,
			pnl_percent REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stress_ts ON stress_outcomes(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordReport(rec *ReportRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep := rec.Report
	// NaN marks an undefined Sharpe (zero-vol portfolio); store NULL.
	var sharpe any
	if !math.IsNaN(rep.SharpeRatio) {
		sharpe = rep.SharpeRatio
	}
	_, err := r.db.Exec(`INSERT INTO risk_reports
		(timestamp, total_value, var_95, var_99, cvar_95, volatility,
		 expected_return, sharpe_ratio, diversification, concentration,
		 risk_level, warnings)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.TotalValue,
		rep.VaR95, rep.VaR99, rep.CVaR95, rep.Volatility,
		rep.ExpectedReturn, sharpe, rep.DiversificationBenefit,
		rep.ConcentrationRisk, string(rep.OverallRiskLevel),
		strings.Join(rep.Warnings, "; "),
	)
	return err
}

func (r *SQLiteRecorder) RecordSimulation(rec *SimulationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := rec.Result
	_, err := r.db.Exec(`INSERT INTO simulations
		(timestamp, simulations, horizon, seed, expected_return,
		 prob_of_loss, p5, p50, p95, var_95, cvar_95)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Simulations, rec.Horizon, rec.Seed,
		res.ExpectedReturn, res.ProbabilityOfLoss,
		res.Percentiles["p5"], res.Percentiles["p50"], res.Percentiles["p95"],
		res.VaR95, res.CVaR95,
	)
	return err
}

func (r *SQLiteRecorder) RecordStress(rec *StressRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := rec.Outcome
	_, err := r.db.Exec(`INSERT INTO stress_outcomes
		(timestamp, scenario_id, new_value, pnl, pnl_percent)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), out.ScenarioID, out.NewValue, out.PnL, out.PnLPercent,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
