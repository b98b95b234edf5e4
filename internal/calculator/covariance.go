package calculator

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"RiskRadar/internal/model"
)

// TradingPeriodsPerYear is the annualization factor: daily statistics
// scale by 252 trading days per year.
const TradingPeriodsPerYear = 252.0

// DefaultRiskFreeRate is used for the Sharpe ratio when the caller does
// not supply one.
const DefaultRiskFreeRate = 0.05

// zeroVarianceTolerance: assets whose daily variance falls below this
// are treated as cash and get a zeroed covariance row/column instead of
// producing NaN correlations.
const zeroVarianceTolerance = 1e-18

// ComputeCovariance computes the full annualized statistical model from
// an aligned return matrix: mean vector, sample covariance (n-1
// denominator), correlation, portfolio volatility, Euler risk
// contributions, diversification benefit and Sharpe ratio.
//
// weights must be ordered the same as tickers and sum to 1 within
// model.WeightSumTolerance.
func ComputeCovariance(tickers []string, matrix [][]float64, weights []float64, riskFreeRate float64) (*model.CovarianceStats, error) {
	n := len(tickers)
	if n == 0 || len(matrix) != n || len(weights) != n {
		return nil, &model.InvalidParameterError{Name: "matrix", Reason: "tickers, matrix and weights must have equal length"}
	}
	periods := len(matrix[0])
	if periods < 2 {
		return nil, &model.InsufficientDataError{Ticker: tickers[0], Points: periods}
	}
	for i := range matrix {
		if len(matrix[i]) != periods {
			return nil, &model.InvalidParameterError{Name: "matrix", Reason: "ragged return matrix"}
		}
	}
	wsum := 0.0
	for _, w := range weights {
		wsum += w
	}
	if math.Abs(wsum-1.0) > model.WeightSumTolerance {
		return nil, &model.InvalidParameterError{Name: "weights", Reason: "weights do not sum to 1"}
	}

	// Annualized means and sample covariance.
	means := make([]float64, n)
	for i := range matrix {
		means[i] = stat.Mean(matrix[i], nil) * TradingPeriodsPerYear
	}

	cov := make([][]float64, n)
	for i := range cov {
		cov[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c := stat.Covariance(matrix[i], matrix[j], nil) * TradingPeriodsPerYear
			cov[i][j] = c
			cov[j][i] = c
		}
	}

	// Zero out rows/columns of cash-like assets so correlations stay
	// finite and the diagonal stays non-negative.
	vols := make([]float64, n)
	for i := 0; i < n; i++ {
		if cov[i][i] < zeroVarianceTolerance {
			for j := 0; j < n; j++ {
				cov[i][j] = 0
				cov[j][i] = 0
			}
		}
		vols[i] = math.Sqrt(cov[i][i])
	}

	corr := make([][]float64, n)
	for i := range corr {
		corr[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			switch {
			case i == j && vols[i] > 0:
				corr[i][j] = 1
			case vols[i] > 0 && vols[j] > 0:
				corr[i][j] = cov[i][j] / (vols[i] * vols[j])
			default:
				corr[i][j] = 0
			}
		}
	}

	// Portfolio variance w'Σw and marginal contributions Σw.
	sigma := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sigma.SetSym(i, j, cov[i][j])
		}
	}
	w := mat.NewVecDense(n, append([]float64(nil), weights...))
	var sigmaW mat.VecDense
	sigmaW.MulVec(sigma, w)
	portVariance := mat.Dot(w, &sigmaW)
	if portVariance < 0 {
		portVariance = 0
	}
	portVol := math.Sqrt(portVariance)

	// Euler decomposition: rc_i = w_i (Σw)_i / w'Σw, sums to 1. For an
	// all-cash portfolio variance is 0; attribute by weight instead.
	contrib := make(model.Weights, n)
	for i, ticker := range tickers {
		if portVariance > 0 {
			contrib[ticker] = weights[i] * sigmaW.AtVec(i) / portVariance
		} else {
			contrib[ticker] = weights[i]
		}
	}

	portMean := 0.0
	weightedVol := 0.0
	for i := range weights {
		portMean += weights[i] * means[i]
		weightedVol += weights[i] * vols[i]
	}

	diversification := 0.0
	if weightedVol > 0 {
		diversification = 1 - portVol/weightedVol
	}

	sharpe := math.NaN()
	if portVol > 0 {
		sharpe = (portMean - riskFreeRate) / portVol
	}

	return &model.CovarianceStats{
		Tickers:         tickers,
		MeanReturns:     means,
		Covariance:      cov,
		Correlation:     corr,
		AssetVols:       vols,
		PortfolioMean:   portMean,
		PortfolioVol:    portVol,
		SharpeRatio:     sharpe,
		RiskContrib:     contrib,
		Diversification: diversification,
	}, nil
}
