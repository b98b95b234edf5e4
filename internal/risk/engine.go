package risk

import (
	"context"
	"fmt"
	"sort"

	"RiskRadar/internal/calculator"
	"RiskRadar/internal/model"
	"RiskRadar/internal/simulator"
	"RiskRadar/internal/stress"
)

// Engine orchestrates the return builder, covariance engine, Monte
// Carlo simulator and stress tester into one risk report. It holds only
// configuration: every call builds its own series, matrices and buffers
// from the supplied inputs, and all randomness is confined to the
// seeded Monte Carlo step.
type Engine struct {
	RiskFreeRate float64
	Lookback     int // trading days of history per analysis, <=0 means all
	Simulations  int
	Horizon      int // Monte Carlo horizon in trading periods
}

// NewEngine returns an engine with the documented defaults: 5%
// risk-free rate, 252-day lookback, 10,000 simulations over a 252-period
// horizon.
func NewEngine() *Engine {
	return &Engine{
		RiskFreeRate: calculator.DefaultRiskFreeRate,
		Lookback:     252,
		Simulations:  simulator.DefaultSimulations,
		Horizon:      simulator.DefaultHorizon,
	}
}

// Options tunes a single analysis call.
type Options struct {
	RiskFreeRate *float64
	Seed         int64
	// SkipUnavailable opts in to partial-portfolio analysis: tickers
	// with missing or unusable histories are dropped and weights
	// renormalized, with a warning per skipped ticker. Never automatic.
	SkipUnavailable bool
}

// portfolioInputs is the validated, weighted view of the request that
// every engine step consumes.
type portfolioInputs struct {
	tickers    []string
	weights    []float64
	weightMap  model.Weights
	histories  map[string]*model.PriceSeries
	positions  []stress.Position
	totalValue float64
	warnings   []string
}

// AnalyzeRisk is the single entry point: holdings plus price histories
// in, complete risk report out. Pure computation, no I/O.
func (e *Engine) AnalyzeRisk(ctx context.Context, holdings []model.Holding, histories map[string]*model.PriceSeries, opts Options) (*model.RiskReport, error) {
	in, err := e.prepare(holdings, histories, opts)
	if err != nil {
		return nil, err
	}

	stats, err := e.fit(in, opts)
	if err != nil {
		return nil, err
	}

	sim, err := simulator.Run(ctx, stats, in.weights, simulator.Config{
		Simulations:    e.Simulations,
		HorizonPeriods: e.Horizon,
		InitialValue:   in.totalValue,
		Seed:           opts.Seed,
	})
	if err != nil {
		return nil, err
	}

	concentration := 0.0
	for _, w := range in.weights {
		if w > concentration {
			concentration = w
		}
	}

	assets := make([]model.AssetRisk, len(in.tickers))
	for i, ticker := range in.tickers {
		assets[i] = model.AssetRisk{
			Ticker:           ticker,
			Weight:           in.weights[i],
			Volatility:       stats.AssetVols[i],
			RiskContribution: stats.RiskContrib[ticker],
		}
	}

	return &model.RiskReport{
		VaR95:                  sim.VaR95,
		VaR99:                  sim.VaR99,
		CVaR95:                 sim.CVaR95,
		Volatility:             stats.PortfolioVol,
		ExpectedReturn:         stats.PortfolioMean,
		SharpeRatio:            stats.SharpeRatio,
		DiversificationBenefit: stats.Diversification,
		RiskContributions:      stats.RiskContrib,
		ConcentrationRisk:      concentration,
		OverallRiskLevel:       classifyRisk(stats.PortfolioVol, concentration),
		Assets:                 assets,
		Warnings:               in.warnings,
	}, nil
}

// RunMonteCarlo fits the model and simulates terminal portfolio values
// without producing the full report.
func (e *Engine) RunMonteCarlo(ctx context.Context, holdings []model.Holding, histories map[string]*model.PriceSeries, simulations, horizon int, opts Options) (*model.SimulationResult, error) {
	in, err := e.prepare(holdings, histories, opts)
	if err != nil {
		return nil, err
	}
	stats, err := e.fit(in, opts)
	if err != nil {
		return nil, err
	}
	if simulations <= 0 {
		simulations = e.Simulations
	}
	if horizon <= 0 {
		horizon = e.Horizon
	}
	return simulator.Run(ctx, stats, in.weights, simulator.Config{
		Simulations:    simulations,
		HorizonPeriods: horizon,
		InitialValue:   in.totalValue,
		Seed:           opts.Seed,
	})
}

// PricePDF fits a log-normal model from one ticker's history and
// samples its price density over the horizon (in years).
func (e *Engine) PricePDF(ticker string, series *model.PriceSeries, horizonYears float64, grid calculator.Grid) (*model.PriceDistribution, error) {
	if series == nil {
		return nil, &model.DataUnavailableError{Ticker: ticker}
	}
	returns, err := calculator.BuildReturnSeries(map[string]*model.PriceSeries{ticker: series}, e.Lookback)
	if err != nil {
		return nil, err
	}
	stats, err := calculator.ComputeCovariance([]string{ticker}, calculator.ReturnMatrix(returns, []string{ticker}), []float64{1}, e.RiskFreeRate)
	if err != nil {
		return nil, err
	}
	last, _ := series.Last()
	return calculator.ComputePricePDF(calculator.DistributionInput{
		Ticker:       ticker,
		CurrentPrice: last.Price,
		Drift:        stats.MeanReturns[0],
		Volatility:   stats.AssetVols[0],
	}, horizonYears, grid)
}

// RunStressTest applies the scenario set (the fixed catalog when nil)
// to the current holdings valued at the latest supplied prices.
func (e *Engine) RunStressTest(holdings []model.Holding, histories map[string]*model.PriceSeries, scenarios []model.StressScenario, opts Options) (*model.StressReport, error) {
	in, err := e.prepare(holdings, histories, opts)
	if err != nil {
		return nil, err
	}
	return stress.RunAll(in.positions, scenarios)
}

// prepare validates the request, values each holding at its latest
// price and derives the weight vector. Holdings without a usable
// history fail the call unless SkipUnavailable was requested.
func (e *Engine) prepare(holdings []model.Holding, histories map[string]*model.PriceSeries, opts Options) (*portfolioInputs, error) {
	if len(holdings) == 0 {
		return nil, &model.InvalidParameterError{Name: "holdings", Reason: "empty portfolio"}
	}

	in := &portfolioInputs{histories: make(map[string]*model.PriceSeries)}
	values := make(map[string]float64)

	for _, h := range holdings {
		series, ok := histories[h.Ticker]
		if !ok || series.Len() == 0 {
			if opts.SkipUnavailable {
				in.warnings = append(in.warnings, fmt.Sprintf("skipped %s: no price history", h.Ticker))
				continue
			}
			return nil, &model.DataUnavailableError{Ticker: h.Ticker}
		}
		last, _ := series.Last()
		value, _ := h.MarketValue(last.Price).Float64()
		values[h.Ticker] += value
		in.histories[h.Ticker] = series
		in.positions = append(in.positions, stress.Position{
			Ticker: h.Ticker,
			Sector: h.Sector,
			Value:  value,
		})
		in.totalValue += value
	}

	if len(values) == 0 {
		return nil, &model.InsufficientDataError{Ticker: holdings[0].Ticker, Points: 0}
	}
	if in.totalValue <= 0 {
		return nil, &model.InvalidParameterError{Name: "holdings", Reason: "portfolio has no positive value"}
	}

	in.tickers = make([]string, 0, len(values))
	for t := range values {
		in.tickers = append(in.tickers, t)
	}
	sort.Strings(in.tickers)

	in.weights = make([]float64, len(in.tickers))
	in.weightMap = make(model.Weights, len(in.tickers))
	for i, t := range in.tickers {
		w := values[t] / in.totalValue
		in.weights[i] = w
		in.weightMap[t] = w
	}
	return in, nil
}

// fit builds aligned return series and the annualized covariance model.
func (e *Engine) fit(in *portfolioInputs, opts Options) (*model.CovarianceStats, error) {
	returns, err := calculator.BuildReturnSeries(in.histories, e.Lookback)
	if err != nil {
		return nil, err
	}
	rate := e.RiskFreeRate
	if opts.RiskFreeRate != nil {
		rate = *opts.RiskFreeRate
	}
	return calculator.ComputeCovariance(in.tickers, calculator.ReturnMatrix(returns, in.tickers), in.weights, rate)
}
