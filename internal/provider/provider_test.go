package provider

import (
	"errors"
	"testing"
	"time"

	"RiskRadar/internal/model"
)

func staticSeries(ticker string, start time.Time, prices ...float64) *model.PriceSeries {
	points := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = model.PricePoint{Date: start.AddDate(0, 0, i), Price: p}
	}
	return &model.PriceSeries{Ticker: ticker, Points: points}
}

func TestStaticProvider_DateFilter(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &StaticProvider{Series: map[string]*model.PriceSeries{
		"AAPL": staticSeries("AAPL", start, 100, 101, 102, 103, 104),
	}}

	series, err := p.HistoricalPrices("AAPL", start.AddDate(0, 0, 1), start.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Len() != 3 {
		t.Errorf("expected 3 points in range, got %d", series.Len())
	}
	if series.Points[0].Price != 101 {
		t.Errorf("expected first in-range price 101, got %g", series.Points[0].Price)
	}
}

func TestStaticProvider_Unknown(t *testing.T) {
	p := &StaticProvider{Series: map[string]*model.PriceSeries{}}
	_, err := p.HistoricalPrices("NOPE", time.Now().AddDate(0, 0, -10), time.Now())
	var availErr *model.DataUnavailableError
	if !errors.As(err, &availErr) {
		t.Fatalf("expected DataUnavailableError, got %v", err)
	}
}

func TestFetchHistories(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &StaticProvider{Series: map[string]*model.PriceSeries{
		"AAPL": staticSeries("AAPL", start, 100, 101, 102),
		"BND":  staticSeries("BND", start, 70, 71, 72),
	}}

	histories, err := FetchHistories(p, []string{"AAPL", "BND"}, start, start.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(histories) != 2 {
		t.Fatalf("expected 2 series, got %d", len(histories))
	}

	_, err = FetchHistories(p, []string{"AAPL", "MISSING"}, start, start.AddDate(0, 0, 5))
	var availErr *model.DataUnavailableError
	if !errors.As(err, &availErr) {
		t.Fatalf("expected DataUnavailableError, got %v", err)
	}
	if availErr.Ticker != "MISSING" {
		t.Errorf("error must name the failing ticker, got %s", availErr.Ticker)
	}
}

func TestFetchHistoriesPartial(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &StaticProvider{Series: map[string]*model.PriceSeries{
		"AAPL": staticSeries("AAPL", start, 100, 101, 102),
	}}

	histories, failed := FetchHistoriesPartial(p, []string{"AAPL", "MISSING"}, start, start.AddDate(0, 0, 5))
	if len(histories) != 1 {
		t.Fatalf("expected the fetchable series only, got %d", len(histories))
	}
	if _, ok := histories["AAPL"]; !ok {
		t.Error("AAPL should have been fetched")
	}
	if len(failed) != 1 {
		t.Fatalf("expected one failure, got %d", len(failed))
	}
	var availErr *model.DataUnavailableError
	if !errors.As(failed[0], &availErr) || availErr.Ticker != "MISSING" {
		t.Errorf("failure must be a DataUnavailableError for MISSING, got %v", failed[0])
	}
}
