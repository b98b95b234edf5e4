package model

// RiskLevel is the qualitative classification of overall portfolio risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// CovarianceStats holds the annualized statistical model of the
// portfolio produced by the covariance engine. Matrices are indexed by
// the Tickers slice; recomputed per request, never persisted.
type CovarianceStats struct {
	Tickers        []string
	MeanReturns    []float64   // annualized mean log return per ticker
	Covariance     [][]float64 // annualized, symmetric, diagonal >= 0
	Correlation    [][]float64
	AssetVols      []float64 // annualized volatility per ticker
	PortfolioMean  float64
	PortfolioVol   float64
	SharpeRatio    float64
	RiskContrib    Weights // Euler decomposition, sums to 1
	Diversification float64
}

// AssetRisk is the per-ticker breakdown included in a RiskReport.
type AssetRisk struct {
	Ticker           string  `json:"ticker"`
	Weight           float64 `json:"weight"`
	Volatility       float64 `json:"volatility"`
	RiskContribution float64 `json:"risk_contribution"`
}

// RiskReport is the fixed-schema output of a full risk analysis. Every
// field is always present; values that could not be computed are NaN
// rather than omitted.
type RiskReport struct {
	VaR95                  float64     `json:"var_95"`
	VaR99                  float64     `json:"var_99"`
	CVaR95                 float64     `json:"cvar_95"`
	Volatility             float64     `json:"volatility"`
	ExpectedReturn         float64     `json:"expected_return"`
	SharpeRatio            float64     `json:"sharpe_ratio"`
	DiversificationBenefit float64     `json:"diversification_benefit"`
	RiskContributions      Weights     `json:"risk_contributions"`
	ConcentrationRisk      float64     `json:"concentration_risk"`
	OverallRiskLevel       RiskLevel   `json:"overall_risk_level"`
	Assets                 []AssetRisk `json:"assets"`
	Warnings               []string    `json:"warnings"`
}

// SimulationResult is the empirical terminal-value distribution from a
// Monte Carlo run. FinalValues is sorted ascending. Ephemeral: discarded
// after the call returns.
type SimulationResult struct {
	FinalValues       []float64           `json:"final_values"`
	Percentiles       map[string]float64  `json:"percentiles"`
	ExpectedReturn    float64             `json:"expected_return"`
	ProbabilityOfLoss float64             `json:"probability_of_loss"`
	MeanFinalValue    float64             `json:"mean_final_value"`
	StdFinalValue     float64             `json:"std_final_value"`
	VaR95             float64             `json:"var_95"`
	VaR99             float64             `json:"var_99"`
	CVaR95            float64             `json:"cvar_95"`
}
