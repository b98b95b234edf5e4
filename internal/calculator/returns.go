package calculator

import (
	"math"
	"sort"
	"time"

	"RiskRadar/internal/model"
)

// BuildReturnSeries converts raw price histories into log-return series
// aligned on the intersection of trading dates across all tickers.
// Missing dates are never interpolated: a date is kept only if every
// ticker has a price for it. Returns use r_t = ln(p_t / p_{t-1}), which
// compounds additively and matches the log-normal model downstream.
//
// lookback limits each aligned series to the most recent N dates;
// lookback <= 0 keeps everything.
func BuildReturnSeries(histories map[string]*model.PriceSeries, lookback int) (map[string]*model.ReturnSeries, error) {
	if len(histories) == 0 {
		return nil, &model.InvalidParameterError{Name: "histories", Reason: "no price series supplied"}
	}

	for ticker, series := range histories {
		if series == nil || series.Len() < 2 {
			n := 0
			if series != nil {
				n = series.Len()
			}
			return nil, &model.InsufficientDataError{Ticker: ticker, Points: n}
		}
		for _, p := range series.Points {
			if p.Price <= 0 || math.IsNaN(p.Price) {
				return nil, &model.InvalidPriceError{
					Ticker: ticker,
					Date:   p.Date.Format("2006-01-02"),
					Price:  p.Price,
				}
			}
		}
	}

	dates := alignDates(histories, lookback)
	if len(dates) < 2 {
		// Find a ticker to blame: the one with the shortest series.
		shortest, n := "", math.MaxInt
		for ticker, series := range histories {
			if series.Len() < n {
				shortest, n = ticker, series.Len()
			}
		}
		return nil, &model.InsufficientDataError{Ticker: shortest, Points: len(dates)}
	}

	out := make(map[string]*model.ReturnSeries, len(histories))
	for ticker, series := range histories {
		byDate := make(map[int64]float64, series.Len())
		for _, p := range series.Points {
			byDate[dayKey(p.Date)] = p.Price
		}
		returns := make([]float64, len(dates)-1)
		for i := 1; i < len(dates); i++ {
			prev := byDate[dayKey(dates[i-1])]
			cur := byDate[dayKey(dates[i])]
			returns[i-1] = math.Log(cur / prev)
		}
		out[ticker] = &model.ReturnSeries{Ticker: ticker, Dates: dates, Returns: returns}
	}
	return out, nil
}

// alignDates returns the sorted intersection of trading dates across all
// series, truncated to the most recent lookback dates when positive.
func alignDates(histories map[string]*model.PriceSeries, lookback int) []time.Time {
	counts := make(map[int64]int)
	sample := make(map[int64]time.Time)
	for _, series := range histories {
		for _, p := range series.Points {
			k := dayKey(p.Date)
			counts[k]++
			sample[k] = p.Date
		}
	}

	var dates []time.Time
	for k, c := range counts {
		if c == len(histories) {
			dates = append(dates, sample[k])
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	if lookback > 0 && len(dates) > lookback {
		dates = dates[len(dates)-lookback:]
	}
	return dates
}

// dayKey collapses a timestamp to its UTC calendar day.
func dayKey(t time.Time) int64 {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}

// ReturnMatrix lays out aligned return series as a matrix (one row per
// ticker, one column per period) in the given ticker order. All series
// must already share the same length; BuildReturnSeries guarantees this.
func ReturnMatrix(series map[string]*model.ReturnSeries, tickers []string) [][]float64 {
	matrix := make([][]float64, len(tickers))
	for i, ticker := range tickers {
		matrix[i] = series[ticker].Returns
	}
	return matrix
}

// SortedTickers returns the map's tickers in deterministic order.
func SortedTickers[V any](m map[string]V) []string {
	tickers := make([]string, 0, len(m))
	for t := range m {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}
