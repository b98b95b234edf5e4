package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"RiskRadar/internal/model"
	"RiskRadar/internal/portfolio"
	"RiskRadar/internal/provider"
	"RiskRadar/internal/recorder"
	"RiskRadar/internal/report"
	"RiskRadar/internal/risk"
)

// Scheduler runs the periodic risk evaluation pipeline: fetch price
// histories for the held tickers, analyze, record, and alert when the
// portfolio crosses into high risk.
type Scheduler struct {
	Cron      *cron.Cron
	Provider  provider.HistoricalPriceProvider
	Portfolio *portfolio.Manager
	Engine    *risk.Engine
	Notifier  *report.TelegramNotifier // nil when Telegram is not configured
	Recorder  recorder.Recorder
	Log       *logrus.Logger
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, p provider.HistoricalPriceProvider, pm *portfolio.Manager, engine *risk.Engine, tn *report.TelegramNotifier, rec recorder.Recorder, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Provider:  p,
		Portfolio: pm,
		Engine:    engine,
		Notifier:  tn,
		Recorder:  rec,
		Log:       log,
		Ctx:       ctx,
	}
}

// RegisterAll registers the daily risk evaluation task.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.Log.Info("scheduler stopped")
}

// RunDailyNow executes the daily task immediately (manual trigger /
// RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	s.Log.Info("running daily risk evaluation")

	holdings := s.Portfolio.Snapshot()
	if len(holdings) == 0 {
		s.Log.Info("portfolio empty, skipping daily evaluation")
		return
	}

	histories, totalValue, err := s.collect(holdings)
	if err != nil {
		s.Log.Errorf("daily collect: %v", err)
		s.trySend(fmt.Sprintf("❌ Daily risk run failed to fetch data: %v", err))
		return
	}

	rep, err := s.Engine.AnalyzeRisk(s.Ctx, holdings, histories, risk.Options{
		Seed: time.Now().UnixNano(),
	})
	if err != nil {
		s.Log.Errorf("daily analyze: %v", err)
		s.trySend(fmt.Sprintf("❌ Daily risk analysis failed: %v", err))
		return
	}

	s.trySend(report.FormatRiskReport(rep, totalValue))
	if rep.OverallRiskLevel == model.RiskHigh {
		s.trySend(report.FormatRiskAlert(rep))
	}

	if err := s.Recorder.RecordReport(&recorder.ReportRecord{
		TotalValue: totalValue,
		Report:     rep,
	}); err != nil {
		s.Log.Errorf("record report: %v", err)
	}

	stressRep, err := s.Engine.RunStressTest(holdings, histories, nil, risk.Options{})
	if err != nil {
		s.Log.Errorf("daily stress test: %v", err)
		return
	}
	for _, out := range stressRep.Outcomes {
		if err := s.Recorder.RecordStress(&recorder.StressRecord{Outcome: out}); err != nil {
			s.Log.Errorf("record stress outcome: %v", err)
		}
	}
}

// collect fetches one lookback window of history per held ticker and
// values the portfolio at the latest closes.
func (s *Scheduler) collect(holdings []model.Holding) (map[string]*model.PriceSeries, float64, error) {
	end := time.Now()
	// Calendar days to cover the trading-day lookback, with slack for
	// weekends and holidays.
	start := end.AddDate(0, 0, -(s.Engine.Lookback*7/5 + 14))

	histories, err := provider.FetchHistories(s.Provider, s.Portfolio.Tickers(), start, end)
	if err != nil {
		return nil, 0, err
	}

	prices := make(map[string]float64, len(histories))
	for ticker, series := range histories {
		if last, ok := series.Last(); ok {
			prices[ticker] = last.Price
		}
	}
	total, _, _, err := s.Portfolio.Valuation(prices)
	if err != nil {
		return nil, 0, err
	}
	value, _ := total.Float64()
	return histories, value, nil
}

// HandleCommand processes a Telegram command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/risk":
		s.dailyTask()
		return ""
	case "/portfolio":
		return report.FormatPortfolio(s.Portfolio.Snapshot())
	case "/stress":
		holdings := s.Portfolio.Snapshot()
		if len(holdings) == 0 {
			return "Portfolio is empty."
		}
		histories, _, err := s.collect(holdings)
		if err != nil {
			return fmt.Sprintf("❌ fetch data: %v", err)
		}
		rep, err := s.Engine.RunStressTest(holdings, histories, nil, risk.Options{})
		if err != nil {
			return fmt.Sprintf("❌ stress test: %v", err)
		}
		return report.FormatStressReport(rep)
	default:
		return "Available commands:\n• /risk\n• /portfolio\n• /stress"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.Log.Errorf("send notification: %v", err)
	}
}
