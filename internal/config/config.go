package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL        string
	APITimeoutSeconds int
	DataDir           string
	ExportDir         string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	CatalogTTLSeconds int
	CurrencySymbol    string
}

func Load() Config {
	// A .env next to the binary is a convenience for dev setups; absence is
	// not an error.
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	timeout, err := strconv.Atoi(getEnv("API_TIMEOUT_SECONDS", "15"))
	if err != nil || timeout < 1 {
		timeout = 15
	}
	ttl, err := strconv.Atoi(getEnv("CATALOG_TTL_SECONDS", "60"))
	if err != nil || ttl < 1 {
		ttl = 60
	}

	cfg := Config{
		APIBaseURL:        strings.TrimSpace(os.Getenv("API_BASE_URL")),
		APITimeoutSeconds: timeout,
		DataDir:           getEnv("DATA_DIR", defaultDataDir()),
		ExportDir:         getEnv("EXPORT_DIR", "."),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           redisDB,
		CatalogTTLSeconds: ttl,
		CurrencySymbol:    getEnv("CURRENCY_SYMBOL", "₹"),
	}

	return cfg
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".invoicely"
	}
	return filepath.Join(home, ".invoicely")
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
