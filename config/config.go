package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rustyeddy/paperbot/market"
	"gopkg.in/yaml.v3"
)

// Config represents the complete paper-trading configuration
type Config struct {
	Account  AccountConfig   `json:"account" yaml:"account"`
	Universe market.Universe `json:"universe" yaml:"universe"`
	Strategy StrategyConfig  `json:"strategy" yaml:"strategy"`
	Engine   EngineConfig    `json:"engine" yaml:"engine"`
	Journal  JournalConfig   `json:"journal" yaml:"journal"`
}

// AccountConfig contains account initialization parameters
type AccountConfig struct {
	StartingCash float64 `json:"starting_cash" yaml:"starting_cash"`
}

// StrategyConfig contains SMA crossover strategy parameters
type StrategyConfig struct {
	FastWindow   int     `json:"fast_window" yaml:"fast_window"`
	SlowWindow   int     `json:"slow_window" yaml:"slow_window"`
	TickSeconds  float64 `json:"tick_seconds" yaml:"tick_seconds"`
	RiskPerTrade float64 `json:"risk_per_trade" yaml:"risk_per_trade"`
}

// EngineConfig contains bounded-buffer capacities
type EngineConfig struct {
	HistoryCap int `json:"history_cap" yaml:"history_cap"`
	WarmupBars int `json:"warmup_bars" yaml:"warmup_bars"`
	TradeCap   int `json:"trade_cap" yaml:"trade_cap"`
	LogCap     int `json:"log_cap" yaml:"log_cap"`
	EquityCap  int `json:"equity_cap" yaml:"equity_cap"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.StartingCash <= 0 {
		return fmt.Errorf("account.starting_cash must be positive")
	}
	if err := c.Universe.Validate(); err != nil {
		return err
	}
	if c.Strategy.FastWindow <= 0 {
		return fmt.Errorf("strategy.fast_window must be positive")
	}
	if c.Strategy.SlowWindow <= c.Strategy.FastWindow {
		return fmt.Errorf("strategy.slow_window must be greater than fast_window")
	}
	if c.Strategy.TickSeconds <= 0 {
		return fmt.Errorf("strategy.tick_seconds must be positive")
	}
	if c.Strategy.RiskPerTrade <= 0 || c.Strategy.RiskPerTrade > 1 {
		return fmt.Errorf("strategy.risk_per_trade must be between 0 and 1")
	}
	if c.Engine.HistoryCap < c.Strategy.SlowWindow+2 {
		return fmt.Errorf("engine.history_cap must be at least slow_window+2")
	}
	if c.Engine.WarmupBars <= 0 || c.Engine.WarmupBars > c.Engine.HistoryCap {
		return fmt.Errorf("engine.warmup_bars must be between 1 and history_cap")
	}
	if c.Engine.TradeCap <= 0 || c.Engine.LogCap <= 0 || c.Engine.EquityCap <= 0 {
		return fmt.Errorf("engine trade_cap, log_cap and equity_cap must be positive")
	}
	switch c.Journal.Type {
	case "none", "":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			StartingCash: 10_000,
		},
		Universe: market.DefaultUniverse(),
		Strategy: StrategyConfig{
			FastWindow:   7,
			SlowWindow:   21,
			TickSeconds:  1.0,
			RiskPerTrade: 0.12,
		},
		Engine: EngineConfig{
			HistoryCap: 200,
			WarmupBars: 80,
			TradeCap:   250,
			LogCap:     200,
			EquityCap:  600,
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}
