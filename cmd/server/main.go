package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"RiskRadar/internal/config"
	"RiskRadar/internal/portfolio"
	"RiskRadar/internal/provider"
	"RiskRadar/internal/recorder"
	"RiskRadar/internal/report"
	"RiskRadar/internal/risk"
	"RiskRadar/internal/scheduler"
	"RiskRadar/internal/server"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if os.Getenv("LOG_LEVEL") == "debug" {
		log.SetLevel(logrus.DebugLevel)
	}
	log.Info("RiskRadar starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	// Price provider
	p := provider.NewYahooProvider(cfg.Proxy)
	log.Infof("price provider: %s", p.Name())

	// Portfolio store
	pm, err := portfolio.NewManager(cfg.Portfolio.StateFile)
	if err != nil {
		log.Fatalf("init portfolio manager: %v", err)
	}

	// Risk engine
	engine := risk.NewEngine()
	engine.RiskFreeRate = cfg.Risk.RiskFreeRate
	engine.Lookback = cfg.Risk.LookbackDays
	engine.Simulations = cfg.Simulation.Count
	engine.Horizon = cfg.Simulation.HorizonDays

	// Recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warnf("init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telegram notifier is optional: without a token the scheduler still
	// runs and records, it just stays quiet.
	var tn *report.TelegramNotifier
	if cfg.Telegram.BotToken != "" {
		tn = report.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
	}

	// Scheduler
	sched := scheduler.NewScheduler(ctx, p, pm, engine, tn, rec, log)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info("Telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, executing daily task now")
		go sched.RunDailyNow()
	}

	// HTTP API
	srv := server.New(engine, p, pm, rec, log)
	httpSrv := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: srv.Router(),
	}
	go func() {
		log.Infof("HTTP API listening on %s", cfg.Server.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	log.Info("RiskRadar is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("http shutdown: %v", err)
	}
	log.Info("RiskRadar stopped")
}
