package portfolio

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"RiskRadar/internal/model"
)

// Manager owns the portfolio snapshot with concurrency safety. The risk
// engines never touch it directly: callers take a snapshot and hand the
// holdings in.
type Manager struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewManager creates a Manager, loading state from disk if present.
func NewManager(filePath string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Manager{state: state, filePath: filePath}, nil
}

// Snapshot returns a copy of the current holdings.
func (m *Manager) Snapshot() []model.Holding {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Holding, len(m.state.Holdings))
	copy(out, m.state.Holdings)
	return out
}

// Tickers returns the distinct tickers currently held.
func (m *Manager) Tickers() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	var out []string
	for _, h := range m.state.Holdings {
		if !seen[h.Ticker] {
			seen[h.Ticker] = true
			out = append(out, h.Ticker)
		}
	}
	return out
}

// Add appends a holding and persists the state. Quantity must be
// positive.
func (m *Manager) Add(h model.Holding) error {
	if h.Ticker == "" {
		return &model.InvalidParameterError{Name: "ticker", Reason: "must not be empty"}
	}
	if !h.Quantity.IsPositive() {
		return &model.InvalidParameterError{Name: "quantity", Reason: "must be positive"}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Holdings = append(m.state.Holdings, h)
	return m.save()
}

// Remove drops all holdings of a ticker and persists the state.
func (m *Manager) Remove(ticker string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.state.Holdings[:0]
	removed := 0
	for _, h := range m.state.Holdings {
		if h.Ticker == ticker {
			removed++
			continue
		}
		kept = append(kept, h)
	}
	if removed == 0 {
		return &model.InvalidParameterError{Name: "ticker", Reason: fmt.Sprintf("no holding for %s", ticker)}
	}
	m.state.Holdings = kept
	return m.save()
}

// Valuation prices every holding at the supplied latest prices and
// returns total value, per-ticker weights and unrealized P&L. Money
// arithmetic stays in decimals until the final weight division.
func (m *Manager) Valuation(prices map[string]float64) (total decimal.Decimal, weights model.Weights, pnl decimal.Decimal, err error) {
	holdings := m.Snapshot()
	if len(holdings) == 0 {
		return decimal.Zero, nil, decimal.Zero, &model.InvalidParameterError{Name: "holdings", Reason: "empty portfolio"}
	}

	values := make(map[string]decimal.Decimal, len(holdings))
	for _, h := range holdings {
		price, ok := prices[h.Ticker]
		if !ok {
			return decimal.Zero, nil, decimal.Zero, &model.DataUnavailableError{Ticker: h.Ticker}
		}
		v := h.MarketValue(price)
		values[h.Ticker] = values[h.Ticker].Add(v)
		total = total.Add(v)
		pnl = pnl.Add(h.UnrealizedPnL(price))
	}
	if !total.IsPositive() {
		return decimal.Zero, nil, decimal.Zero, &model.InvalidParameterError{Name: "holdings", Reason: "portfolio has no positive value"}
	}

	weights = make(model.Weights, len(values))
	for ticker, v := range values {
		w, _ := v.Div(total).Float64()
		weights[ticker] = w
	}
	return total, weights, pnl, nil
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}
