package model

// DistributionPoint is one (x, density) sample of a probability density.
type DistributionPoint struct {
	X       float64 `json:"x"`
	Density float64 `json:"density"`
	CDF     float64 `json:"cdf"`
}

// ConfidenceInterval is a two-sided interval at a given confidence.
type ConfidenceInterval struct {
	Confidence float64 `json:"confidence"`
	Lower      float64 `json:"lower"`
	Upper      float64 `json:"upper"`
}

// PriceDistribution is the sampled log-normal price density over a
// forecast horizon. Points are recomputed fresh on every call; nothing
// is carried between calls.
type PriceDistribution struct {
	Ticker        string               `json:"ticker"`
	CurrentPrice  float64              `json:"current_price"`
	HorizonYears  float64              `json:"horizon_years"`
	Points        []DistributionPoint  `json:"points"`
	ExpectedPrice float64              `json:"expected_price"`
	Intervals     []ConfidenceInterval `json:"confidence_intervals"`
	ProbAboveSpot float64              `json:"prob_above_current"`
}
