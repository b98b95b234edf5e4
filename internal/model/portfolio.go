package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is a single position in the portfolio. Quantity and cost basis
// are kept as decimals; the risk engines read float64 snapshots.
type Holding struct {
	Ticker          string          `json:"ticker"`
	Quantity        decimal.Decimal `json:"quantity"`
	CostBasis       decimal.Decimal `json:"cost_basis"`
	Sector          string          `json:"sector"`
	AcquisitionDate time.Time       `json:"acquisition_date"`
}

// MarketValue returns quantity × price as a decimal.
func (h Holding) MarketValue(price float64) decimal.Decimal {
	return h.Quantity.Mul(decimal.NewFromFloat(price))
}

// UnrealizedPnL returns market value minus total cost.
func (h Holding) UnrealizedPnL(price float64) decimal.Decimal {
	return h.MarketValue(price).Sub(h.CostBasis.Mul(h.Quantity))
}

// Weights maps ticker to its fraction of total portfolio value.
// A valid weight vector sums to 1 within WeightSumTolerance; cash may
// appear as a zero-volatility asset.
type Weights map[string]float64

// WeightSumTolerance is the allowed deviation of a weight vector from 1.
const WeightSumTolerance = 1e-6

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

// Validate checks that weights sum to 1 within tolerance and that no
// weight is negative.
func (w Weights) Validate() error {
	if len(w) == 0 {
		return &InvalidParameterError{Name: "weights", Reason: "empty weight vector"}
	}
	for ticker, v := range w {
		if v < 0 {
			return &InvalidParameterError{Name: "weights", Reason: "negative weight for " + ticker}
		}
	}
	if diff := w.Sum() - 1.0; diff > WeightSumTolerance || diff < -WeightSumTolerance {
		return &InvalidParameterError{Name: "weights", Reason: "weights do not sum to 1"}
	}
	return nil
}
