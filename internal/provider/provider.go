package provider

import (
	"time"

	"RiskRadar/internal/model"
)

// HistoricalPriceProvider supplies ordered daily close histories. The
// risk core never fetches data itself: callers assemble a precomputed
// map of series through FetchHistories and pass it in.
type HistoricalPriceProvider interface {
	HistoricalPrices(ticker string, start, end time.Time) (*model.PriceSeries, error)
	Name() string
}

// FetchHistories builds the precomputed ticker→series map the risk
// engine consumes. Any provider failure is wrapped as a
// DataUnavailableError for the offending ticker and propagated; the
// core never substitutes fabricated data.
func FetchHistories(p HistoricalPriceProvider, tickers []string, start, end time.Time) (map[string]*model.PriceSeries, error) {
	out := make(map[string]*model.PriceSeries, len(tickers))
	for _, ticker := range tickers {
		series, err := p.HistoricalPrices(ticker, start, end)
		if err != nil {
			return nil, &model.DataUnavailableError{Ticker: ticker, Err: err}
		}
		out[ticker] = series
	}
	return out, nil
}

// FetchHistoriesPartial is the opt-in lenient variant: tickers whose
// fetch fails are omitted from the map and reported back so the caller
// can surface them as warnings.
func FetchHistoriesPartial(p HistoricalPriceProvider, tickers []string, start, end time.Time) (map[string]*model.PriceSeries, []error) {
	out := make(map[string]*model.PriceSeries, len(tickers))
	var failed []error
	for _, ticker := range tickers {
		series, err := p.HistoricalPrices(ticker, start, end)
		if err != nil {
			failed = append(failed, &model.DataUnavailableError{Ticker: ticker, Err: err})
			continue
		}
		out[ticker] = series
	}
	return out, failed
}

// StaticProvider serves preloaded series, for tests and offline use.
type StaticProvider struct {
	Series map[string]*model.PriceSeries
}

func (s *StaticProvider) Name() string { return "static" }

func (s *StaticProvider) HistoricalPrices(ticker string, start, end time.Time) (*model.PriceSeries, error) {
	series, ok := s.Series[ticker]
	if !ok {
		return nil, &model.DataUnavailableError{Ticker: ticker}
	}
	var points []model.PricePoint
	for _, pt := range series.Points {
		if pt.Date.Before(start) || pt.Date.After(end) {
			continue
		}
		points = append(points, pt)
	}
	if len(points) == 0 {
		return nil, &model.DataUnavailableError{Ticker: ticker}
	}
	return &model.PriceSeries{Ticker: ticker, Points: points, FetchedAt: series.FetchedAt}, nil
}
