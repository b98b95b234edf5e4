package risk

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"RiskRadar/internal/calculator"
	"RiskRadar/internal/model"
	"RiskRadar/internal/stress"
)

func testEngine() *Engine {
	e := NewEngine()
	e.Simulations = 2000
	e.Horizon = 60
	return e
}

// walk builds a deterministic daily price series with realistic noise.
func walk(ticker string, seed int64, start float64, days int) *model.PriceSeries {
	rng := rand.New(rand.NewSource(seed))
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, days)
	price := start
	for i := range points {
		points[i] = model.PricePoint{Date: date.AddDate(0, 0, i), Price: price}
		price *= math.Exp(0.0003 + 0.01*rng.NormFloat64())
	}
	return &model.PriceSeries{Ticker: ticker, Points: points}
}

func testHoldings() []model.Holding {
	return []model.Holding{
		{Ticker: "AAPL", Quantity: decimal.NewFromInt(10), CostBasis: decimal.NewFromInt(120), Sector: stress.SectorTechnology},
		{Ticker: "BND", Quantity: decimal.NewFromInt(50), CostBasis: decimal.NewFromInt(70), Sector: stress.SectorBonds},
	}
}

func testHistories() map[string]*model.PriceSeries {
	return map[string]*model.PriceSeries{
		"AAPL": walk("AAPL", 1, 150, 300),
		"BND":  walk("BND", 2, 72, 300),
	}
}

func TestAnalyzeRisk_FullReport(t *testing.T) {
	engine := testEngine()
	report, err := engine.AnalyzeRisk(context.Background(), testHoldings(), testHistories(), Options{Seed: 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Volatility <= 0 {
		t.Errorf("expected positive volatility, got %g", report.Volatility)
	}
	if report.VaR95 < 0 || report.CVaR95 < report.VaR95 {
		t.Errorf("VaR ordering violated: VaR95=%.2f CVaR95=%.2f", report.VaR95, report.CVaR95)
	}
	if len(report.Assets) != 2 {
		t.Fatalf("expected 2 asset breakdowns, got %d", len(report.Assets))
	}

	weightSum, contribSum := 0.0, 0.0
	maxWeight := 0.0
	for _, a := range report.Assets {
		weightSum += a.Weight
		contribSum += a.RiskContribution
		if a.Weight > maxWeight {
			maxWeight = a.Weight
		}
	}
	if math.Abs(weightSum-1) > 1e-9 {
		t.Errorf("weights must sum to 1, got %.9f", weightSum)
	}
	if math.Abs(contribSum-1) > 1e-9 {
		t.Errorf("risk contributions must sum to 1, got %.9f", contribSum)
	}
	if math.Abs(report.ConcentrationRisk-maxWeight) > 1e-12 {
		t.Errorf("concentration must be the max weight: %.4f vs %.4f", report.ConcentrationRisk, maxWeight)
	}
	if report.OverallRiskLevel == "" {
		t.Error("overall risk level must always be set")
	}
	if report.DiversificationBenefit <= 0 || report.DiversificationBenefit >= 1 {
		t.Errorf("two imperfectly correlated assets should diversify, got %.4f", report.DiversificationBenefit)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", report.Warnings)
	}
}

func TestAnalyzeRisk_Reproducible(t *testing.T) {
	engine := testEngine()
	holdings, histories := testHoldings(), testHistories()
	opts := Options{Seed: 7}

	a, err := engine.AnalyzeRisk(context.Background(), holdings, histories, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := engine.AnalyzeRisk(context.Background(), holdings, histories, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.VaR95 != b.VaR95 || a.CVaR95 != b.CVaR95 {
		t.Errorf("same seed must reproduce VaR exactly: %v vs %v", a.VaR95, b.VaR95)
	}
}

func TestAnalyzeRisk_MissingHistoryFails(t *testing.T) {
	engine := testEngine()
	histories := testHistories()
	delete(histories, "BND")

	_, err := engine.AnalyzeRisk(context.Background(), testHoldings(), histories, Options{})
	var availErr *model.DataUnavailableError
	if !errors.As(err, &availErr) {
		t.Fatalf("expected DataUnavailableError, got %v", err)
	}
	if availErr.Ticker != "BND" {
		t.Errorf("expected BND as the unavailable ticker, got %s", availErr.Ticker)
	}
}

func TestAnalyzeRisk_SkipUnavailable(t *testing.T) {
	engine := testEngine()
	histories := testHistories()
	delete(histories, "BND")

	report, err := engine.AnalyzeRisk(context.Background(), testHoldings(), histories, Options{Seed: 1, SkipUnavailable: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Assets) != 1 || report.Assets[0].Ticker != "AAPL" {
		t.Fatalf("expected AAPL only, got %+v", report.Assets)
	}
	// Remaining weights renormalize to 1.
	if math.Abs(report.Assets[0].Weight-1) > 1e-12 {
		t.Errorf("single surviving asset must carry full weight, got %.6f", report.Assets[0].Weight)
	}
	if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "BND") {
		t.Errorf("expected a warning naming BND, got %v", report.Warnings)
	}
}

func TestAnalyzeRisk_EmptyPortfolio(t *testing.T) {
	_, err := testEngine().AnalyzeRisk(context.Background(), nil, nil, Options{})
	var paramErr *model.InvalidParameterError
	if !errors.As(err, &paramErr) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestRunMonteCarlo_Defaults(t *testing.T) {
	engine := testEngine()
	result, err := engine.RunMonteCarlo(context.Background(), testHoldings(), testHistories(), 0, 0, Options{Seed: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.FinalValues) != engine.Simulations {
		t.Errorf("zero simulations should fall back to engine default %d, got %d",
			engine.Simulations, len(result.FinalValues))
	}
}

func TestRunStressTest_CatalogApplied(t *testing.T) {
	report, err := testEngine().RunStressTest(testHoldings(), testHistories(), nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Outcomes) != len(stress.Catalog) {
		t.Fatalf("expected %d outcomes, got %d", len(stress.Catalog), len(report.Outcomes))
	}
	if report.WorstCase == "" || report.BestCase == "" {
		t.Error("best and worst cases must be identified")
	}
}

func TestPricePDF_FitsFromHistory(t *testing.T) {
	engine := testEngine()
	series := walk("AAPL", 1, 150, 300)
	dist, err := engine.PricePDF("AAPL", series, 1.0, calculator.Grid{Points: 200, Width: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last, _ := series.Last()
	if dist.CurrentPrice != last.Price {
		t.Errorf("distribution must anchor at the last close %.2f, got %.2f", last.Price, dist.CurrentPrice)
	}
	if len(dist.Points) != 200 {
		t.Errorf("expected 200 grid points, got %d", len(dist.Points))
	}
	if dist.ProbAboveSpot <= 0 || dist.ProbAboveSpot >= 1 {
		t.Errorf("P(above spot) %.4f out of range", dist.ProbAboveSpot)
	}
}

func TestPricePDF_ConstantPriceClamps(t *testing.T) {
	// A flat series fits zero volatility; the sigma floor keeps the
	// density finite instead of failing.
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, 30)
	for i := range points {
		points[i] = model.PricePoint{Date: date.AddDate(0, 0, i), Price: 100}
	}
	series := &model.PriceSeries{Ticker: "CASH", Points: points}

	dist, err := testEngine().PricePDF("CASH", series, 1.0, calculator.DefaultGrid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range dist.Points {
		if math.IsNaN(p.Density) || math.IsInf(p.Density, 0) {
			t.Fatalf("non-finite density at %g", p.X)
		}
	}
}

func TestPricePDF_NilSeries(t *testing.T) {
	_, err := testEngine().PricePDF("AAPL", nil, 1.0, calculator.DefaultGrid)
	var availErr *model.DataUnavailableError
	if !errors.As(err, &availErr) {
		t.Fatalf("expected DataUnavailableError, got %v", err)
	}
}
