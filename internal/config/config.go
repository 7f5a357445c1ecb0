// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/shopspring/decimal"

	"starpoint/internal/domain"
	"starpoint/pkg/db" // Import db package for its Config struct
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	DB         db.Config
	Ledger     LedgerConfig
}

// LedgerConfig holds the points rule and display settings.
type LedgerConfig struct {
	MinAmount    decimal.Decimal `env:"STARPOINT_MIN_AMOUNT" envDefault:"2000"`
	PointsRate   decimal.Decimal `env:"STARPOINT_POINTS_RATE" envDefault:"0.0002"`
	HistoryLimit int             `env:"STARPOINT_HISTORY_LIMIT" envDefault:"200"`
	TimeZone     string          `env:"STARPOINT_TZ" envDefault:"Local"`
}

// PointsRule returns the configured rule.
func (c LedgerConfig) PointsRule() domain.PointsRule {
	return domain.PointsRule{MinAmount: c.MinAmount, Rate: c.PointsRate}
}

// Location loads the configured time zone used to display timestamps.
func (c LedgerConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid STARPOINT_TZ %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// LoadConfig loads configuration from environment variables.
// It returns an AppConfig instance or an error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env parsing cannot.
func (c *AppConfig) Validate() error {
	if c.DB.Path == "" {
		return fmt.Errorf("STARPOINT_DB must not be empty")
	}
	if c.Ledger.MinAmount.IsNegative() {
		return fmt.Errorf("STARPOINT_MIN_AMOUNT must not be negative, got %s", c.Ledger.MinAmount)
	}
	if !c.Ledger.PointsRate.IsPositive() {
		return fmt.Errorf("STARPOINT_POINTS_RATE must be positive, got %s", c.Ledger.PointsRate)
	}
	if c.Ledger.HistoryLimit <= 0 {
		return fmt.Errorf("STARPOINT_HISTORY_LIMIT must be positive, got %d", c.Ledger.HistoryLimit)
	}
	if _, err := c.Ledger.Location(); err != nil {
		return err
	}
	return nil
}
