package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"RiskRadar/internal/model"
	"RiskRadar/internal/portfolio"
	"RiskRadar/internal/provider"
	"RiskRadar/internal/recorder"
	"RiskRadar/internal/risk"
)

// Server exposes the risk engine and portfolio store over HTTP.
type Server struct {
	Engine    *risk.Engine
	Provider  provider.HistoricalPriceProvider
	Portfolio *portfolio.Manager
	Recorder  recorder.Recorder
	Log       *logrus.Logger
}

// New creates a Server.
func New(engine *risk.Engine, p provider.HistoricalPriceProvider, pm *portfolio.Manager, rec recorder.Recorder, log *logrus.Logger) *Server {
	return &Server{
		Engine:    engine,
		Provider:  p,
		Portfolio: pm,
		Recorder:  rec,
		Log:       log,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/portfolio", s.getPortfolio)
		api.POST("/portfolio/holdings", s.addHolding)
		api.DELETE("/portfolio/holdings/:ticker", s.removeHolding)

		api.POST("/risk/analyze", s.analyzeRisk)
		api.POST("/risk/montecarlo", s.runMonteCarlo)
		api.POST("/risk/stress", s.runStress)
		api.GET("/risk/pdf/:ticker", s.pricePDF)
	}
	return r
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
		}).Info("request")
	}
}

// fetchHistories pulls one lookback window of history for the held
// tickers, plus the latest close per ticker for valuation. With skip
// set, tickers that fail to fetch are dropped instead of failing the
// request; the engine reports them as warnings.
func (s *Server) fetchHistories(skip bool) (map[string]*model.PriceSeries, map[string]float64, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -(s.Engine.Lookback*7/5 + 14))

	var histories map[string]*model.PriceSeries
	if skip {
		var failed []error
		histories, failed = provider.FetchHistoriesPartial(s.Provider, s.Portfolio.Tickers(), start, end)
		for _, err := range failed {
			s.Log.Warnf("history fetch: %v", err)
		}
	} else {
		var err error
		histories, err = provider.FetchHistories(s.Provider, s.Portfolio.Tickers(), start, end)
		if err != nil {
			return nil, nil, err
		}
	}
	prices := make(map[string]float64, len(histories))
	for ticker, series := range histories {
		if last, ok := series.Last(); ok {
			prices[ticker] = last.Price
		}
	}
	return histories, prices, nil
}
