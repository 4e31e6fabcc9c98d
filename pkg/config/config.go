package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Config holds runtime settings read from the environment
type Config struct {
	Env               string
	LogLevel          string
	LogFormat         string // json or console
	ListenAddr        string
	DataDir           string
	DatabaseDriver    string // pgx or mysql
	DatabaseURL       string
	MonthlyNetProfit  decimal.Decimal
	MonthlyRentalCost decimal.Decimal
	HourlyLossRate    decimal.Decimal
}

// Load reads the environment, falling back to defaults taken from the given tables
func Load(tables Tables) (Config, error) {
	cfg := Config{
		Env:            getenv("FLEETPLAN_ENV", "development"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "console"),
		ListenAddr:     getenv("LISTEN_ADDR", ":8080"),
		DataDir:        os.Getenv("FLEETPLAN_DATA_DIR"),
		DatabaseDriver: getenv("DATABASE_DRIVER", "pgx"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}

	var err error
	if cfg.MonthlyNetProfit, err = getenvDecimal("MONTHLY_NET_PROFIT", tables.DefaultMonthlyNetProfit); err != nil {
		return cfg, err
	}
	if cfg.MonthlyRentalCost, err = getenvDecimal("MONTHLY_RENTAL_COST", tables.DefaultMonthlyRentalCost); err != nil {
		return cfg, err
	}
	if cfg.HourlyLossRate, err = getenvDecimal("HOURLY_LOSS_RATE", tables.HourlyLossRate); err != nil {
		return cfg, err
	}

	switch cfg.DatabaseDriver {
	case "pgx", "mysql":
	default:
		return cfg, fmt.Errorf("unsupported DATABASE_DRIVER %q (expected pgx or mysql)", cfg.DatabaseDriver)
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "json", "console":
	default:
		return cfg, fmt.Errorf("unsupported LOG_FORMAT %q (expected json or console)", cfg.LogFormat)
	}
	return cfg, nil
}

// ApplyTo copies the configured money amounts into the tables the engine reads
func (c Config) ApplyTo(tables Tables) Tables {
	tables.DefaultMonthlyNetProfit = c.MonthlyNetProfit
	tables.DefaultMonthlyRentalCost = c.MonthlyRentalCost
	tables.HourlyLossRate = c.HourlyLossRate
	return tables
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDecimal(key string, def decimal.Decimal) (decimal.Decimal, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	out, err := decimal.NewFromString(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if out.IsNegative() {
		return def, fmt.Errorf("invalid %s %q: must not be negative", key, v)
	}
	return out, nil
}
