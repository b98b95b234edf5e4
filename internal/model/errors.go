package model

import "fmt"

// InsufficientDataError reports a ticker with too few price points to
// build a return series.
type InsufficientDataError struct {
	Ticker string
	Points int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: %d price points, need at least 2", e.Ticker, e.Points)
}

// InvalidPriceError reports a non-positive price in a series.
type InvalidPriceError struct {
	Ticker string
	Date   string
	Price  float64
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("invalid price for %s on %s: %g", e.Ticker, e.Date, e.Price)
}

// InvalidParameterError reports a bad caller-supplied parameter such as
// a non-positive simulation count or weights not summing to 1.
type InvalidParameterError struct {
	Name   string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Name, e.Reason)
}

// InvalidHorizonError reports a non-positive forecast horizon.
type InvalidHorizonError struct {
	Horizon float64
}

func (e *InvalidHorizonError) Error() string {
	return fmt.Sprintf("invalid horizon %g: must be positive", e.Horizon)
}

// NonPositiveSemiDefiniteError reports a covariance matrix that cannot
// be Cholesky-factored.
type NonPositiveSemiDefiniteError struct {
	Row   int
	Pivot float64
}

func (e *NonPositiveSemiDefiniteError) Error() string {
	return fmt.Sprintf("covariance matrix is not positive semi-definite: pivot %g at row %d", e.Pivot, e.Row)
}

// DataUnavailableError reports that the price provider could not supply
// history for a ticker. The core propagates it and never substitutes
// fabricated data.
type DataUnavailableError struct {
	Ticker string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("price data unavailable for %s: %v", e.Ticker, e.Err)
	}
	return fmt.Sprintf("price data unavailable for %s", e.Ticker)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }
