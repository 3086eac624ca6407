package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	ScanTimeoutMs    int
	ScanRateLimitRPS int
	ScanUserAgent    string

	MonitorIntervalSec int
	MonitorBatch       int
	MonitorAutoExport  bool

	DefaultConfidence string

	EstimateBaseAUD    float64
	EstimatePerMustAUD float64
	EstimatePerNiceAUD float64
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		ScanTimeoutMs:    getEnvInt("SCAN_TIMEOUT_MS", 20000),
		ScanRateLimitRPS: getEnvInt("SCAN_RATE_LIMIT_RPS", 2),
		ScanUserAgent:    getEnv("SCAN_USER_AGENT", "growthlens-audit/1.0"),

		MonitorIntervalSec: getEnvInt("MONITOR_INTERVAL_SEC", 3600),
		MonitorBatch:       getEnvInt("MONITOR_BATCH", 10),
		MonitorAutoExport:  getEnvBool("MONITOR_AUTO_EXPORT", false),

		DefaultConfidence: getEnv("DEFAULT_CONFIDENCE", "moderate"),

		EstimateBaseAUD:    getEnvFloat("ESTIMATE_BASE_AUD", 3000),
		EstimatePerMustAUD: getEnvFloat("ESTIMATE_PER_MUST_AUD", 1500),
		EstimatePerNiceAUD: getEnvFloat("ESTIMATE_PER_NICE_AUD", 900),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
