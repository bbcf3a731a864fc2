package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	defaultPort        = "8080"
	defaultEnvironment = "production"
	defaultLogLevel    = "info"
	defaultRPSLimit    = 100.0
	defaultRPSBurst    = 200
)

// Config holds the runtime settings read from the environment
type Config struct {
	Port        string
	Environment string
	LogLevel    string
	RPSLimit    float64
	RPSBurst    int
	// DBConfig is the JSON provider document; empty selects the in-memory store
	DBConfig string
	SeedData bool
}

// Load reads a .env file when present and then the process environment.
// Malformed numbers fall back to their defaults.
func Load(logger *zap.Logger) *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env file", zap.Error(err))
	}

	cfg := &Config{
		Port:        getEnv("PORT", defaultPort),
		Environment: getEnv("ENVIRONMENT", defaultEnvironment),
		LogLevel:    getEnv("LOG_LEVEL", defaultLogLevel),
		RPSLimit:    getFloat(logger, "RPS_LIMIT", defaultRPSLimit),
		RPSBurst:    getInt(logger, "RPS_BURST", defaultRPSBurst),
		DBConfig:    os.Getenv("DB_CONFIG"),
		SeedData:    getBool(logger, "SEED_DATA", false),
	}

	logger.Info("configuration loaded",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.Float64("rps_limit", cfg.RPSLimit),
		zap.Int("rps_burst", cfg.RPSBurst),
		zap.Bool("db_config_set", cfg.DBConfig != ""),
		zap.Bool("seed_data", cfg.SeedData),
	)
	return cfg
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(logger *zap.Logger, key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		logger.Warn("invalid integer in environment, using default",
			zap.String("key", key), zap.String("value", raw), zap.Int("default", fallback))
		return fallback
	}
	return v
}

func getFloat(logger *zap.Logger, key string, fallback float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		logger.Warn("invalid number in environment, using default",
			zap.String("key", key), zap.String("value", raw), zap.Float64("default", fallback))
		return fallback
	}
	return v
}

func getBool(logger *zap.Logger, key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		logger.Warn("invalid boolean in environment, using default",
			zap.String("key", key), zap.String("value", raw), zap.Bool("default", fallback))
		return fallback
	}
	return v
}
