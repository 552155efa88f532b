package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	APIBaseURL         string
	RequestTimeout     time.Duration
	DepositCeiling     float64
	WithdrawalCeiling  float64
	TokenFile          string
	TokenEncryptionKey string
	DefaultCurrency    string
}

func Load() Config {
	return Config{
		APIBaseURL:         getEnv("BANKCLI_API_URL", "http://localhost:8080/api"),
		RequestTimeout:     getDuration("BANKCLI_REQUEST_TIMEOUT", 10*time.Second),
		DepositCeiling:     getFloat("BANKCLI_DEPOSIT_CEILING", 100000),
		WithdrawalCeiling:  getFloat("BANKCLI_WITHDRAWAL_CEILING", 10000),
		TokenFile:          getEnv("BANKCLI_TOKEN_FILE", defaultTokenFile()),
		TokenEncryptionKey: getEnv("BANKCLI_TOKEN_KEY", ""),
		DefaultCurrency:    getEnv("BANKCLI_CURRENCY", "USD"),
	}
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bankcli-token"
	}
	return filepath.Join(home, ".bankcli", "token")
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
