package model

import "time"

// PricePoint is a single close observation for a ticker.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// PriceSeries holds the raw price history for one ticker, ordered by
// strictly ascending date with no duplicates.
type PriceSeries struct {
	Ticker    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Len returns the number of observations in the series.
func (s *PriceSeries) Len() int { return len(s.Points) }

// Last returns the most recent price point. The second return is false
// when the series is empty.
func (s *PriceSeries) Last() (PricePoint, bool) {
	if len(s.Points) == 0 {
		return PricePoint{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// ReturnSeries holds periodic log returns for one ticker, aligned to the
// common date intersection of the request. Returns[i] is the log return
// from Dates[i] to Dates[i+1]; len(Returns) = len(Dates) - 1.
type ReturnSeries struct {
	Ticker  string
	Dates   []time.Time
	Returns []float64
}
