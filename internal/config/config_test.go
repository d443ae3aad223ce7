package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "fortuna", cfg.DBName)
	assert.False(t, cfg.ChainEnabled)
	assert.Equal(t, int64(8453), cfg.ChainID)
	assert.True(t, cfg.SpinFee.Equal(decimal.Zero))
	assert.Equal(t, 0, cfg.DailySpinCap)
	assert.Equal(t, "UTC", cfg.ResetTimezone)
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestLoadChainRequiresEndpoint(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("CHAIN_ENABLED", "true")
	t.Setenv("CHAIN_RPC_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHAIN_RPC_URL")
}

func TestLoadChainSettings(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("CHAIN_ENABLED", "true")
	t.Setenv("CHAIN_RPC_URL", "https://mainnet.base.org")
	t.Setenv("CONTRACT_ADDRESS", "0x1234567890abcdef1234567890abcdef12345678")
	t.Setenv("SPIN_FEE", "0.0001")
	t.Setenv("DAILY_SPIN_CAP", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.ChainEnabled)
	assert.True(t, cfg.SpinFee.Equal(decimal.RequireFromString("0.0001")))
	assert.Equal(t, 10, cfg.DailySpinCap)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadTrustedProxies(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 10.0.0.2,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "app",
		DBPassword: "secret",
		DBHost:     "db",
		DBPort:     "5432",
		DBName:     "fortuna",
	}

	assert.Equal(t, "postgres://app:secret@db:5432/fortuna?sslmode=disable", cfg.GetDBConnString())
}
