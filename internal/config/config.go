package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"StockPulse/internal/catalog"
	"StockPulse/internal/synth"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr             string `yaml:"addr"`
		StreamIntervalMS int    `yaml:"stream_interval_ms"`
	} `yaml:"server"`
	Generator struct {
		HistoryDays          int  `yaml:"history_days"`
		ForecastDays         int  `yaml:"forecast_days"`
		ReproducibleForecast bool `yaml:"reproducible_forecast"`
	} `yaml:"generator"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		DigestCron string `yaml:"digest_cron"`
	} `yaml:"schedule"`
	Watchlist []string `yaml:"watchlist"`
	Database  struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// LoadEnv loads a .env file from the working directory when one exists.
func LoadEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	log.Println("[INFO] .env found, loading variables")
	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] load .env: %v", err)
	}
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
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

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("HISTORY_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Generator.HistoryDays = n
		}
	}
	if v := os.Getenv("FORECAST_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Generator.ForecastDays = n
		}
	}
	if v := os.Getenv("REPRODUCIBLE_FORECAST"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Generator.ReproducibleForecast = b
		}
	}
	if v := os.Getenv("CRON_DIGEST"); v != "" {
		c.Schedule.DigestCron = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		c.Watchlist = strings.Split(v, ",")
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.StreamIntervalMS == 0 {
		c.Server.StreamIntervalMS = 50
	}
	if c.Generator.HistoryDays == 0 {
		c.Generator.HistoryDays = synth.DefaultHistoryDays
	}
	if c.Generator.ForecastDays == 0 {
		c.Generator.ForecastDays = synth.DefaultForecastDays
	}
	if c.Schedule.DigestCron == "" {
		c.Schedule.DigestCron = "0 30 8 * * 1-5"
	}
	if len(c.Watchlist) == 0 {
		c.Watchlist = catalog.Tickers()
	}
	for i, t := range c.Watchlist {
		c.Watchlist[i] = catalog.Normalize(t)
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/stockpulse.db"
	}
}

// StreamInterval is the delay between websocket chart messages.
func (c *Config) StreamInterval() time.Duration {
	return time.Duration(c.Server.StreamIntervalMS) * time.Millisecond
}

// TelegramEnabled reports whether both Telegram credentials are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Generator.HistoryDays <= 0 {
		return fmt.Errorf("generator.history_days must be positive")
	}
	if c.Generator.ForecastDays <= 0 {
		return fmt.Errorf("generator.forecast_days must be positive")
	}
	if c.Server.StreamIntervalMS < 0 {
		return fmt.Errorf("server.stream_interval_ms must not be negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	for _, t := range c.Watchlist {
		if _, err := catalog.Lookup(t); err != nil {
			return fmt.Errorf("watchlist %q: %w", t, err)
		}
	}
	return nil
}
