package simulator

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"RiskRadar/internal/model"
)

// Defaults for a Monte Carlo run.
const (
	DefaultSimulations = 10000
	DefaultHorizon     = 252 // trading periods
	DefaultBatchSize   = 1000
)

// dt is the length of one simulation period in years.
const dt = 1.0 / 252.0

// Config parameterizes one Monte Carlo run.
type Config struct {
	Simulations    int
	HorizonPeriods int
	InitialValue   float64
	Seed           int64
	Workers        int // <=0 means GOMAXPROCS
	BatchSize      int // <=0 means DefaultBatchSize
}

// Run draws correlated log-return paths from the fitted model and
// returns the empirical distribution of terminal portfolio value.
//
// Per period, asset log returns are μ·Δt + √Δt·L·z with Σ = LLᵀ and z
// standard normal; log returns are summed per asset across the horizon,
// combined per path into a weighted portfolio log return, and
// exponentiated into a terminal value.
//
// Paths are computed in fixed-size batches. Batch b always uses the
// sub-seed Seed+b, so results are bit-reproducible for a given seed no
// matter how batches are scheduled across workers; the run can be
// cancelled between batches via ctx. Final values are fully sorted
// before any order statistic is taken.
func Run(ctx context.Context, stats *model.CovarianceStats, weights []float64, cfg Config) (*model.SimulationResult, error) {
	if cfg.Simulations <= 0 {
		return nil, &model.InvalidParameterError{Name: "simulations", Reason: fmt.Sprintf("must be positive, got %d", cfg.Simulations)}
	}
	if cfg.HorizonPeriods <= 0 {
		return nil, &model.InvalidParameterError{Name: "horizon", Reason: fmt.Sprintf("must be positive, got %d", cfg.HorizonPeriods)}
	}
	if cfg.InitialValue <= 0 || math.IsNaN(cfg.InitialValue) {
		return nil, &model.InvalidParameterError{Name: "initial_value", Reason: "must be positive"}
	}
	n := len(stats.Tickers)
	if n == 0 || len(weights) != n {
		return nil, &model.InvalidParameterError{Name: "weights", Reason: "weights must match the fitted tickers"}
	}
	wsum := 0.0
	for _, w := range weights {
		wsum += w
	}
	if math.Abs(wsum-1.0) > model.WeightSumTolerance {
		return nil, &model.InvalidParameterError{Name: "weights", Reason: "weights do not sum to 1"}
	}

	chol, err := choleskyPSD(stats.Covariance)
	if err != nil {
		return nil, err
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	batches := (cfg.Simulations + batchSize - 1) / batchSize

	finalValues := make([]float64, cfg.Simulations)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range jobs {
				offset := b * batchSize
				count := batchSize
				if offset+count > cfg.Simulations {
					count = cfg.Simulations - offset
				}
				runBatch(finalValues[offset:offset+count], cfg.Seed+int64(b),
					stats.MeanReturns, chol, weights, cfg.HorizonPeriods, cfg.InitialValue)
			}
		}()
	}

	var ctxErr error
feed:
	for b := 0; b < batches; b++ {
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		case jobs <- b:
		}
	}
	close(jobs)
	wg.Wait()
	if ctxErr != nil {
		return nil, ctxErr
	}

	sort.Float64s(finalValues)
	return summarize(finalValues, cfg.InitialValue), nil
}

// runBatch fills out with terminal values for one batch of paths.
func runBatch(out []float64, seed int64, mu []float64, chol [][]float64, weights []float64, horizon int, initial float64) {
	n := len(mu)
	sampler := newNormalSampler(seed)
	sqrtDt := math.Sqrt(dt)

	z := make([]float64, n)
	sumLog := make([]float64, n)

	for path := range out {
		for i := range sumLog {
			sumLog[i] = 0
		}
		for t := 0; t < horizon; t++ {
			for i := range z {
				z[i] = sampler.Next()
			}
			// Correlated shock for asset i is row i of L times z.
			for i := 0; i < n; i++ {
				shock := 0.0
				for k := 0; k <= i; k++ {
					shock += chol[i][k] * z[k]
				}
				sumLog[i] += mu[i]*dt + sqrtDt*shock
			}
		}
		portLog := 0.0
		for i := 0; i < n; i++ {
			portLog += weights[i] * sumLog[i]
		}
		out[path] = initial * math.Exp(portLog)
	}
}

// summarize computes order statistics and risk metrics from the sorted
// terminal values.
func summarize(sorted []float64, initial float64) *model.SimulationResult {
	mean := stat.Mean(sorted, nil)
	std := stat.StdDev(sorted, nil)
	if len(sorted) < 2 {
		std = 0
	}

	p5 := percentile(sorted, 5)
	p1 := percentile(sorted, 1)

	losses := 0
	for _, v := range sorted {
		if v < initial {
			losses++
		}
	}

	return &model.SimulationResult{
		FinalValues: sorted,
		Percentiles: map[string]float64{
			"p5":  p5,
			"p25": percentile(sorted, 25),
			"p50": percentile(sorted, 50),
			"p75": percentile(sorted, 75),
			"p95": percentile(sorted, 95),
		},
		ExpectedReturn:    mean/initial - 1,
		ProbabilityOfLoss: float64(losses) / float64(len(sorted)),
		MeanFinalValue:    mean,
		StdFinalValue:     std,
		VaR95:             math.Max(0, initial-p5),
		VaR99:             math.Max(0, initial-p1),
		CVaR95:            math.Max(0, initial-tailMean(sorted, p5)),
	}
}
