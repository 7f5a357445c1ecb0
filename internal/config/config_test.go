// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "StarPoint.db", cfg.DB.Path)
	assert.Equal(t, 5*time.Second, cfg.DB.BusyTimeout)
	assert.True(t, cfg.Ledger.MinAmount.Equal(decimal.NewFromInt(2000)))
	assert.True(t, cfg.Ledger.PointsRate.Equal(decimal.RequireFromString("0.0002")))
	assert.Equal(t, 200, cfg.Ledger.HistoryLimit)

	rule := cfg.Ledger.PointsRule()
	assert.True(t, rule.PointsFor(decimal.NewFromInt(2000)).Equal(decimal.RequireFromString("0.4")))
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STARPOINT_DB", "/var/lib/starpoint/ledger.db")
	t.Setenv("STARPOINT_BUSY_TIMEOUT", "250ms")
	t.Setenv("STARPOINT_MIN_AMOUNT", "1000")
	t.Setenv("STARPOINT_POINTS_RATE", "0.001")
	t.Setenv("STARPOINT_HISTORY_LIMIT", "50")
	t.Setenv("STARPOINT_TZ", "America/Argentina/Buenos_Aires")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "/var/lib/starpoint/ledger.db", cfg.DB.Path)
	assert.Equal(t, 250*time.Millisecond, cfg.DB.BusyTimeout)
	assert.True(t, cfg.Ledger.MinAmount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 50, cfg.Ledger.HistoryLimit)

	loc, err := cfg.Ledger.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Argentina/Buenos_Aires", loc.String())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"zero rate":        {"STARPOINT_POINTS_RATE": "0"},
		"negative minimum": {"STARPOINT_MIN_AMOUNT": "-1"},
		"bad history":      {"STARPOINT_HISTORY_LIMIT": "0"},
		"unknown zone":     {"STARPOINT_TZ": "Mars/Olympus_Mons"},
		"malformed number": {"STARPOINT_MIN_AMOUNT": "two thousand"},
	}

	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
