package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	Version     string
	ServiceName string
	LogLevel    string
	LogFormat   string
	LogDir      string
	APIKey      string // API key for authentication

	// TrustedProxies lists proxy addresses whose X-Forwarded-For headers
	// are honored when resolving client IPs.
	TrustedProxies []string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Chain settings. When ChainEnabled is false the spin session skips the
	// on-chain commit phase and spins settle locally only.
	ChainEnabled    bool
	ChainRPCURL     string
	ChainID         int64
	ContractAddress string
	SpinFee         decimal.Decimal

	// Spin eligibility. DailySpinCap <= 0 means unlimited spins.
	DailySpinCap  int
	ResetTimezone string // IANA zone for the daily cap reset, e.g. "UTC"

	// Notifications
	NotifyEnabled   bool
	NotifyHourUTC   int
	NotifyTargetURL string // page opened when a reminder is tapped
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "dev"),
		Version:     getEnv("VERSION", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "fortuna"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		APIKey:      getEnv("API_KEY", ""),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "fortuna"),

		ChainRPCURL:     getEnv("CHAIN_RPC_URL", ""),
		ContractAddress: getEnv("CONTRACT_ADDRESS", ""),
		ResetTimezone:   getEnv("RESET_TIMEZONE", "UTC"),

		NotifyTargetURL: getEnv("NOTIFY_TARGET_URL", ""),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	chainID, err := getEnvInt("CHAIN_ID", 8453) // Base mainnet
	if err != nil {
		return nil, err
	}
	cfg.ChainID = int64(chainID)

	cfg.ChainEnabled = getEnv("CHAIN_ENABLED", "false") == "true"
	if cfg.ChainEnabled {
		if cfg.ChainRPCURL == "" {
			return nil, fmt.Errorf("CHAIN_RPC_URL must be set when CHAIN_ENABLED=true")
		}
		if cfg.ContractAddress == "" {
			return nil, fmt.Errorf("CONTRACT_ADDRESS must be set when CHAIN_ENABLED=true")
		}
	}

	fee, err := decimal.NewFromString(getEnv("SPIN_FEE", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid SPIN_FEE value: %w", err)
	}
	cfg.SpinFee = fee

	spinCap, err := getEnvInt("DAILY_SPIN_CAP", 0)
	if err != nil {
		return nil, err
	}
	cfg.DailySpinCap = spinCap

	cfg.NotifyEnabled = getEnv("NOTIFY_ENABLED", "false") == "true"
	notifyHour, err := getEnvInt("NOTIFY_HOUR_UTC", 18)
	if err != nil {
		return nil, err
	}
	cfg.NotifyHourUTC = notifyHour

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
