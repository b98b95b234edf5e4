package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"RiskRadar/internal/calculator"
	"RiskRadar/internal/model"
	"RiskRadar/internal/recorder"
	"RiskRadar/internal/risk"
)

// statusFor maps the engine's error taxonomy onto HTTP status codes:
// bad request parameters are 400, portfolios the model cannot fit are
// 422, upstream data failures are 502.
func statusFor(err error) int {
	var (
		paramErr   *model.InvalidParameterError
		horizonErr *model.InvalidHorizonError
		dataErr    *model.InsufficientDataError
		priceErr   *model.InvalidPriceError
		psdErr     *model.NonPositiveSemiDefiniteError
		availErr   *model.DataUnavailableError
	)
	switch {
	case errors.As(err, &paramErr), errors.As(err, &horizonErr):
		return http.StatusBadRequest
	case errors.As(err, &dataErr), errors.As(err, &priceErr), errors.As(err, &psdErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &availErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	s.Log.Warnf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

type holdingRequest struct {
	Ticker          string  `json:"ticker" binding:"required"`
	Quantity        float64 `json:"quantity" binding:"required"`
	CostBasis       float64 `json:"cost_basis"`
	Sector          string  `json:"sector"`
	AcquisitionDate string  `json:"acquisition_date"` // YYYY-MM-DD
}

func (s *Server) getPortfolio(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"holdings": s.Portfolio.Snapshot()})
}

func (s *Server) addHolding(c *gin.Context) {
	var req holdingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h := model.Holding{
		Ticker:    req.Ticker,
		Quantity:  decimal.NewFromFloat(req.Quantity),
		CostBasis: decimal.NewFromFloat(req.CostBasis),
		Sector:    req.Sector,
	}
	if req.AcquisitionDate != "" {
		t, err := time.Parse("2006-01-02", req.AcquisitionDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "acquisition_date must be YYYY-MM-DD"})
			return
		}
		h.AcquisitionDate = t
	}
	if err := s.Portfolio.Add(h); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, h)
}

func (s *Server) removeHolding(c *gin.Context) {
	if err := s.Portfolio.Remove(c.Param("ticker")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type analyzeRequest struct {
	RiskFreeRate    *float64 `json:"risk_free_rate"`
	Seed            int64    `json:"seed"`
	SkipUnavailable bool     `json:"skip_unavailable"`
}

func (s *Server) analyzeRisk(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	holdings := s.Portfolio.Snapshot()
	histories, prices, err := s.fetchHistories(req.SkipUnavailable)
	if err != nil {
		s.fail(c, err)
		return
	}
	rep, err := s.Engine.AnalyzeRisk(c.Request.Context(), holdings, histories, risk.Options{
		RiskFreeRate:    req.RiskFreeRate,
		Seed:            req.Seed,
		SkipUnavailable: req.SkipUnavailable,
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	total, _, _, err := s.Portfolio.Valuation(prices)
	if err == nil {
		value, _ := total.Float64()
		if recErr := s.Recorder.RecordReport(&recorder.ReportRecord{TotalValue: value, Report: rep}); recErr != nil {
			s.Log.Errorf("record report: %v", recErr)
		}
	}
	c.JSON(http.StatusOK, rep)
}

type monteCarloRequest struct {
	Simulations     int      `json:"simulations"`
	HorizonDays     int      `json:"horizon_days"`
	Seed            int64    `json:"seed"`
	RiskFreeRate    *float64 `json:"risk_free_rate"`
	SkipUnavailable bool     `json:"skip_unavailable"`
}

func (s *Server) runMonteCarlo(c *gin.Context) {
	var req monteCarloRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	holdings := s.Portfolio.Snapshot()
	histories, _, err := s.fetchHistories(req.SkipUnavailable)
	if err != nil {
		s.fail(c, err)
		return
	}
	result, err := s.Engine.RunMonteCarlo(c.Request.Context(), holdings, histories, req.Simulations, req.HorizonDays, risk.Options{
		RiskFreeRate:    req.RiskFreeRate,
		Seed:            req.Seed,
		SkipUnavailable: req.SkipUnavailable,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	if recErr := s.Recorder.RecordSimulation(&recorder.SimulationRecord{
		Simulations: req.Simulations,
		Horizon:     req.HorizonDays,
		Seed:        req.Seed,
		Result:      result,
	}); recErr != nil {
		s.Log.Errorf("record simulation: %v", recErr)
	}
	c.JSON(http.StatusOK, result)
}

type stressRequest struct {
	SkipUnavailable bool `json:"skip_unavailable"`
}

func (s *Server) runStress(c *gin.Context) {
	var req stressRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	holdings := s.Portfolio.Snapshot()
	histories, _, err := s.fetchHistories(req.SkipUnavailable)
	if err != nil {
		s.fail(c, err)
		return
	}
	rep, err := s.Engine.RunStressTest(holdings, histories, nil, risk.Options{
		SkipUnavailable: req.SkipUnavailable,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	for _, out := range rep.Outcomes {
		if recErr := s.Recorder.RecordStress(&recorder.StressRecord{Outcome: out}); recErr != nil {
			s.Log.Errorf("record stress outcome: %v", recErr)
		}
	}
	c.JSON(http.StatusOK, rep)
}

func (s *Server) pricePDF(c *gin.Context) {
	ticker := c.Param("ticker")

	horizon := 1.0
	if raw := c.Query("horizon_years"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "horizon_years must be a number"})
			return
		}
		horizon = v
	}
	grid := calculator.DefaultGrid
	if raw := c.Query("points"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "points must be an integer"})
			return
		}
		grid.Points = v
	}

	end := time.Now()
	start := end.AddDate(0, 0, -(s.Engine.Lookback*7/5 + 14))
	series, err := s.Provider.HistoricalPrices(ticker, start, end)
	if err != nil {
		s.fail(c, &model.DataUnavailableError{Ticker: ticker, Err: err})
		return
	}

	dist, err := s.Engine.PricePDF(ticker, series, horizon, grid)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dist)
}
