package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	binanceKeyENV     = "BINANCE_API_KEY"
	binanceSecretENV  = "BINANCE_API_SECRET"
)

// Config is read once at startup and passed around as an immutable value.
type Config struct {
	Binance struct {
		APIKey    string `yaml:"-"`
		APISecret string `yaml:"-"`
		BaseURL   string `yaml:"base_url"`
		WSURL     string `yaml:"ws_url"`
	} `yaml:"binance"`

	// Paper: log intended actions, never touch the venue.
	Paper bool `yaml:"paper"`

	DefaultSymbol string `yaml:"default_symbol"`
	// Lot-size precision for the OCO sell quantity (fractional digits).
	QtyPrecision int32 `yaml:"qty_precision"`

	// Fill tracking
	PollInterval      time.Duration // .env: POLL_INTERVAL (1500ms)
	DefaultMaxWaitSec int           // .env: MAKER_MAX_WAIT_SEC (60)

	Service struct {
		Addr string `yaml:"addr"`
	} `yaml:"service"`

	Telegram struct {
		Token  string
		ChatID int64
	}

	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Paper:             boolFromEnv("PAPER", true),
		DefaultSymbol:     getenvDefault("SYMBOL_DEFAULT", "BTCUSDT"),
		QtyPrecision:      int32(intFromEnv("QTY_PRECISION", 5)),
		PollInterval:      durationFromEnv("POLL_INTERVAL", "1500ms"),
		DefaultMaxWaitSec: intFromEnv("MAKER_MAX_WAIT_SEC", 60),
	}
	cfg.Binance.BaseURL = getenvDefault("BINANCE_BASE_URL", "https://api.binance.com")
	cfg.Binance.WSURL = getenvDefault("BINANCE_WS_URL", "wss://stream.binance.com:9443/ws")
	cfg.Service.Addr = getenvDefault("HTTP_ADDR", ":8080")
	cfg.Telegram.Token = os.Getenv("TELEGRAM_TOKEN")
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}
	cfg.Jaeger.Host = os.Getenv("JAEGER_HOST")
	cfg.Jaeger.Port = intFromEnv("JAEGER_PORT", 6831)

	// Optional yaml overrides on top of the env defaults.
	if name := os.Getenv(configFilePathENV); name != "" {
		file, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open config file: %w", err)
		}
		defer func() {
			_ = file.Close()
		}()
		if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config file: %w", err)
		}
		// Mode is env-sourced: a paper key in the file never flips PAPER.
		if os.Getenv("PAPER") != "" {
			cfg.Paper = boolFromEnv("PAPER", cfg.Paper)
		}
	}

	// Credentials come from env only, never from the file.
	cfg.Binance.APIKey = os.Getenv(binanceKeyENV)
	cfg.Binance.APISecret = os.Getenv(binanceSecretENV)

	if !cfg.Paper && (cfg.Binance.APIKey == "" || cfg.Binance.APISecret == "") {
		return nil, fmt.Errorf("set %s and %s for LIVE mode", binanceKeyENV, binanceSecretENV)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 1500 * time.Millisecond
	}

	return cfg, nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func boolFromEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
