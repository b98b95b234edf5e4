package calculator

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"RiskRadar/internal/model"
)

func TestComputeCovariance_SingleAsset(t *testing.T) {
	// Alternating ±1% daily returns: mean 0, known sample variance.
	n := 252
	returns := make([]float64, n)
	for i := range returns {
		if i%2 == 0 {
			returns[i] = 0.01
		} else {
			returns[i] = -0.01
		}
	}
	stats, err := ComputeCovariance([]string{"SPY"}, [][]float64{returns}, []float64{1}, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantVol := math.Sqrt(TradingPeriodsPerYear * 1e-4 * float64(n) / float64(n-1))
	if math.Abs(stats.AssetVols[0]-wantVol) > 1e-9 {
		t.Errorf("asset vol: expected %.9f, got %.9f", wantVol, stats.AssetVols[0])
	}
	if math.Abs(stats.PortfolioVol-stats.AssetVols[0]) > 1e-12 {
		t.Errorf("single-asset portfolio vol must equal asset vol")
	}
	if math.Abs(stats.RiskContrib["SPY"]-1) > 1e-9 {
		t.Errorf("single-asset risk contribution must be 1, got %.9f", stats.RiskContrib["SPY"])
	}
	if math.Abs(stats.Diversification) > 1e-12 {
		t.Errorf("single asset has no diversification benefit, got %.9f", stats.Diversification)
	}
	if stats.Correlation[0][0] != 1 {
		t.Errorf("self-correlation must be 1, got %g", stats.Correlation[0][0])
	}
}

func TestComputeCovariance_TwoAssetDiversified(t *testing.T) {
	// Correlated synthetic returns: ~0.5 correlation, daily vols 1.2%
	// and 0.8%. The equal-weight portfolio must sit below the weighted
	// average of the asset vols.
	rng := rand.New(rand.NewSource(42))
	n := 1000
	r1 := make([]float64, n)
	r2 := make([]float64, n)
	for i := 0; i < n; i++ {
		z1 := rng.NormFloat64()
		z2 := rng.NormFloat64()
		r1[i] = 0.0008 + 0.012*z1
		r2[i] = 0.0005 + 0.008*(0.5*z1+math.Sqrt(0.75)*z2)
	}
	stats, err := ComputeCovariance([]string{"AAPL", "BND"}, [][]float64{r1, r2}, []float64{0.5, 0.5}, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.PortfolioVol < 0.10 || stats.PortfolioVol > 0.18 {
		t.Errorf("portfolio vol %.4f outside expected band", stats.PortfolioVol)
	}
	weightedVol := 0.5*stats.AssetVols[0] + 0.5*stats.AssetVols[1]
	if stats.PortfolioVol >= weightedVol {
		t.Errorf("imperfect correlation must diversify: portfolio %.4f >= weighted %.4f", stats.PortfolioVol, weightedVol)
	}
	if stats.Diversification <= 0 || stats.Diversification >= 1 {
		t.Errorf("diversification benefit %.4f outside (0,1)", stats.Diversification)
	}
	sum := stats.RiskContrib["AAPL"] + stats.RiskContrib["BND"]
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("risk contributions must sum to 1, got %.9f", sum)
	}
	if stats.RiskContrib["AAPL"] <= stats.RiskContrib["BND"] {
		t.Errorf("higher-vol asset must contribute more risk: %v", stats.RiskContrib)
	}
	if c := stats.Correlation[0][1]; c < 0.3 || c > 0.7 {
		t.Errorf("expected correlation near 0.5, got %.4f", c)
	}
	if math.Abs(stats.Correlation[0][1]-stats.Correlation[1][0]) > 1e-12 {
		t.Errorf("correlation matrix must be symmetric")
	}
}

func TestComputeCovariance_AntiCorrelated(t *testing.T) {
	n := 100
	r1 := make([]float64, n)
	r2 := make([]float64, n)
	for i := 0; i < n; i++ {
		r1[i] = 0.01 * math.Sin(float64(i))
		r2[i] = -r1[i]
	}
	stats, err := ComputeCovariance([]string{"A", "B"}, [][]float64{r1, r2}, []float64{0.5, 0.5}, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(stats.Correlation[0][1]+1) > 1e-9 {
		t.Errorf("expected correlation -1, got %.9f", stats.Correlation[0][1])
	}
	if stats.PortfolioVol > 1e-9 {
		t.Errorf("perfectly hedged portfolio must have ~0 vol, got %.g", stats.PortfolioVol)
	}
	if !math.IsNaN(stats.SharpeRatio) {
		t.Errorf("Sharpe is undefined at zero vol, got %g", stats.SharpeRatio)
	}
}

func TestComputeCovariance_CashRow(t *testing.T) {
	stock := []float64{0.01, -0.005, 0.02, -0.01, 0.003}
	cash := []float64{0, 0, 0, 0, 0}
	stats, err := ComputeCovariance([]string{"AAPL", "CASH"}, [][]float64{stock, cash}, []float64{0.6, 0.4}, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.AssetVols[1] != 0 {
		t.Errorf("cash vol must be exactly 0, got %g", stats.AssetVols[1])
	}
	for j := 0; j < 2; j++ {
		if stats.Covariance[1][j] != 0 || stats.Covariance[j][1] != 0 {
			t.Errorf("cash covariance row/column must be zeroed")
		}
	}
	if stats.Correlation[1][1] != 0 || stats.Correlation[0][1] != 0 {
		t.Errorf("cash correlations must be 0, got %v", stats.Correlation[1])
	}
	// Cash scales portfolio vol linearly with the risky weight.
	want := 0.6 * stats.AssetVols[0]
	if math.Abs(stats.PortfolioVol-want) > 1e-9 {
		t.Errorf("expected portfolio vol %.6f, got %.6f", want, stats.PortfolioVol)
	}
	sum := stats.RiskContrib["AAPL"] + stats.RiskContrib["CASH"]
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("risk contributions must sum to 1, got %.9f", sum)
	}
	if stats.RiskContrib["CASH"] != 0 {
		t.Errorf("cash contributes no risk, got %g", stats.RiskContrib["CASH"])
	}
}

func TestComputeCovariance_AllCash(t *testing.T) {
	cash := []float64{0, 0, 0, 0}
	stats, err := ComputeCovariance([]string{"CASH"}, [][]float64{cash}, []float64{1}, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.PortfolioVol != 0 {
		t.Errorf("all-cash vol must be 0, got %g", stats.PortfolioVol)
	}
	if !math.IsNaN(stats.SharpeRatio) {
		t.Errorf("all-cash Sharpe must be NaN, got %g", stats.SharpeRatio)
	}
	if stats.RiskContrib["CASH"] != 1 {
		t.Errorf("zero-variance contributions fall back to weights, got %g", stats.RiskContrib["CASH"])
	}
}

func TestComputeCovariance_BadInputs(t *testing.T) {
	returns := []float64{0.01, -0.01, 0.02}

	_, err := ComputeCovariance([]string{"A"}, [][]float64{returns}, []float64{0.9}, 0.05)
	var paramErr *model.InvalidParameterError
	if !errors.As(err, &paramErr) {
		t.Errorf("weights not summing to 1: expected InvalidParameterError, got %v", err)
	}

	_, err = ComputeCovariance([]string{"A", "B"}, [][]float64{returns}, []float64{0.5, 0.5}, 0.05)
	if !errors.As(err, &paramErr) {
		t.Errorf("length mismatch: expected InvalidParameterError, got %v", err)
	}

	_, err = ComputeCovariance([]string{"A"}, [][]float64{{0.01}}, []float64{1}, 0.05)
	var insufErr *model.InsufficientDataError
	if !errors.As(err, &insufErr) {
		t.Errorf("one period: expected InsufficientDataError, got %v", err)
	}
}

func TestComputeCovariance_Sharpe(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 2000
	returns := make([]float64, n)
	for i := range returns {
		returns[i] = 0.0006 + 0.01*rng.NormFloat64()
	}
	stats, err := ComputeCovariance([]string{"SPY"}, [][]float64{returns}, []float64{1}, 0.02)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (stats.PortfolioMean - 0.02) / stats.PortfolioVol
	if math.Abs(stats.SharpeRatio-want) > 1e-12 {
		t.Errorf("Sharpe: expected %.6f, got %.6f", want, stats.SharpeRatio)
	}
	if stats.SharpeRatio < 0 {
		t.Errorf("positive excess drift should give positive Sharpe, got %.4f", stats.SharpeRatio)
	}
}

func TestComputeCovariance_SixtyFortyPortfolio(t *testing.T) {
	// 60/40 two-stock portfolio with synthetic daily returns drawn at
	// annual vols 25% and 22%. The sample estimate must land near the
	// theoretical independent-asset volatility sqrt(.36·.0625+.16·.0484)
	// ≈ 0.174.
	rng := rand.New(rand.NewSource(42))
	n := 252
	aapl := make([]float64, n)
	googl := make([]float64, n)
	for i := 0; i < n; i++ {
		aapl[i] = 0.1/252 + 0.25/math.Sqrt(252)*rng.NormFloat64()
		googl[i] = 0.08/252 + 0.22/math.Sqrt(252)*rng.NormFloat64()
	}
	stats, err := ComputeCovariance([]string{"AAPL", "GOOGL"}, [][]float64{aapl, googl}, []float64{0.6, 0.4}, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.PortfolioVol < 0.15 || stats.PortfolioVol > 0.19 {
		t.Errorf("portfolio vol %.4f outside reference band [0.15, 0.19]", stats.PortfolioVol)
	}
	if math.Abs(stats.AssetVols[0]-0.25) > 0.04 {
		t.Errorf("AAPL vol %.4f should estimate ~0.25", stats.AssetVols[0])
	}
	if math.Abs(stats.AssetVols[1]-0.22) > 0.04 {
		t.Errorf("GOOGL vol %.4f should estimate ~0.22", stats.AssetVols[1])
	}
}
