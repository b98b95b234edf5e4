package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Portfolio struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"portfolio"`
	Risk struct {
		RiskFreeRate float64 `yaml:"risk_free_rate"`
		LookbackDays int     `yaml:"lookback_days"`
	} `yaml:"risk"`
	Simulation struct {
		Count       int `yaml:"count"`
		HorizonDays int `yaml:"horizon_days"`
	} `yaml:"simulation"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("RISK_FREE_RATE"); v != "" {
		var rate float64
		if _, err := fmt.Sscanf(v, "%f", &rate); err == nil {
			cfg.Risk.RiskFreeRate = rate
		}
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}

	// Defaults
	if cfg.Portfolio.StateFile == "" {
		cfg.Portfolio.StateFile = "data/portfolio.json"
	}
	if cfg.Risk.RiskFreeRate == 0 {
		cfg.Risk.RiskFreeRate = 0.05
	}
	if cfg.Risk.LookbackDays == 0 {
		cfg.Risk.LookbackDays = 252
	}
	if cfg.Simulation.Count == 0 {
		cfg.Simulation.Count = 10000
	}
	if cfg.Simulation.HorizonDays == 0 {
		cfg.Simulation.HorizonDays = 252
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 22 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/riskradar.db"
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}

	return cfg, nil
}

// Validate checks that configured values are usable. Telegram is
// optional: without a bot token the notifier is disabled.
func (c *Config) Validate() error {
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when bot_token is set")
	}
	if c.Risk.RiskFreeRate < 0 {
		return fmt.Errorf("risk.risk_free_rate must not be negative")
	}
	if c.Risk.LookbackDays < 2 {
		return fmt.Errorf("risk.lookback_days must be at least 2")
	}
	if c.Simulation.Count <= 0 {
		return fmt.Errorf("simulation.count must be positive")
	}
	if c.Simulation.HorizonDays <= 0 {
		return fmt.Errorf("simulation.horizon_days must be positive")
	}
	return nil
}
