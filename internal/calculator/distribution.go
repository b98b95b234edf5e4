package calculator

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"RiskRadar/internal/model"
)

// MinSigma is the floor applied to volatility when fitting the price
// distribution. A zero-volatility input (cash) is clamped rather than
// rejected so a density always exists; the clamp is part of the
// documented contract and covered by tests.
const MinSigma = 1e-4

// distConfidenceLevels are the two-sided confidence intervals reported
// with every sampled density.
var distConfidenceLevels = []float64{0.90, 0.95, 0.99}

// DistributionInput carries the fitted annualized parameters for one
// ticker or for the whole portfolio.
type DistributionInput struct {
	Ticker       string
	CurrentPrice float64
	Drift        float64 // annualized mean log return
	Volatility   float64 // annualized
}

// Grid controls where the density is evaluated: Points samples across
// ±Width standard deviations of the terminal log price.
type Grid struct {
	Points int
	Width  float64
}

// DefaultGrid mirrors the 1000-point, ±3σ evaluation window used by the
// charting layer.
var DefaultGrid = Grid{Points: 1000, Width: 3}

// ComputePricePDF samples the log-normal price density over the
// forecast horizon: ln(P_t/P_0) ~ Normal(μt, σ²t). Because returns are
// log returns, μ is already the log drift and needs no −σ²/2
// adjustment. The result is recomputed fresh on every call.
func ComputePricePDF(in DistributionInput, horizonYears float64, grid Grid) (*model.PriceDistribution, error) {
	if horizonYears <= 0 || math.IsNaN(horizonYears) {
		return nil, &model.InvalidHorizonError{Horizon: horizonYears}
	}
	if in.CurrentPrice <= 0 || math.IsNaN(in.CurrentPrice) {
		return nil, &model.InvalidPriceError{Ticker: in.Ticker, Date: "now", Price: in.CurrentPrice}
	}
	if in.Volatility < 0 {
		return nil, &model.InvalidParameterError{Name: "volatility", Reason: "must be non-negative"}
	}
	if grid.Points < 2 {
		grid.Points = DefaultGrid.Points
	}
	if grid.Width <= 0 {
		grid.Width = DefaultGrid.Width
	}

	sigma := in.Volatility
	if sigma < MinSigma {
		sigma = MinSigma
	}

	muLog := math.Log(in.CurrentPrice) + in.Drift*horizonYears
	sigmaLog := sigma * math.Sqrt(horizonYears)
	dist := distuv.LogNormal{Mu: muLog, Sigma: sigmaLog}

	low := math.Exp(muLog - grid.Width*sigmaLog)
	high := math.Exp(muLog + grid.Width*sigmaLog)
	step := (high - low) / float64(grid.Points-1)

	points := make([]model.DistributionPoint, grid.Points)
	for i := range points {
		x := low + float64(i)*step
		points[i] = model.DistributionPoint{
			X:       x,
			Density: dist.Prob(x),
			CDF:     dist.CDF(x),
		}
	}

	intervals := make([]model.ConfidenceInterval, 0, len(distConfidenceLevels))
	for _, c := range distConfidenceLevels {
		alpha := 1 - c
		intervals = append(intervals, model.ConfidenceInterval{
			Confidence: c,
			Lower:      dist.Quantile(alpha / 2),
			Upper:      dist.Quantile(1 - alpha/2),
		})
	}

	return &model.PriceDistribution{
		Ticker:        in.Ticker,
		CurrentPrice:  in.CurrentPrice,
		HorizonYears:  horizonYears,
		Points:        points,
		ExpectedPrice: math.Exp(muLog + sigmaLog*sigmaLog/2),
		Intervals:     intervals,
		ProbAboveSpot: 1 - dist.CDF(in.CurrentPrice),
	}, nil
}
