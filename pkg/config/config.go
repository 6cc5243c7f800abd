package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// SSOT: every environment variable is read here and nowhere else
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// CronSecret guards the scan/measure trigger endpoints
	CronSecret string

	// Stores
	Redis    RedisConfig
	Database DatabaseConfig

	// External APIs
	Finnhub FinnhubConfig
	Gemini  GeminiConfig
	Yahoo   YahooConfig

	// Engine
	Engine EngineConfig

	// Scan pass
	Scan ScanConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration (pool + leaderboard documents)
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration for the measured-event archive
type DatabaseConfig struct {
	URL     string
	Enabled bool

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// FinnhubConfig holds Finnhub API configuration
type FinnhubConfig struct {
	APIKey  string
	BaseURL string

	// Client-side throttle (requests per minute)
	RateLimit int
}

// GeminiConfig holds the optional Gemini comment generator configuration
type GeminiConfig struct {
	APIKey string
	Model  string
}

// YahooConfig holds the fallback headline scraper configuration
type YahooConfig struct {
	Enabled bool
	BaseURL string
}

// EngineConfig holds the scoring engine tunables
type EngineConfig struct {
	MeasureMinScore    int // only high scores get a realized measurement
	MeasureMaxItems    int // measurement batch cap per pass
	MinAgeHours        int // event must be this old before measuring
	CandleLookbackDays int // candle fetch window
	PoolCapacity       int // hard cap on pool items
	LeaderboardTopN    int // ranked view size
}

// ScanConfig holds the scan pass configuration
type ScanConfig struct {
	Symbols          []string // override for the tracked universe (empty = defaults)
	Workers          int      // concurrent per-symbol fetch workers
	NewsLookbackDays int      // news fetch window
	MaxNewsPerSymbol int      // newest headlines scored per symbol per pass
}

// Load reads configuration from environment variables
// SSOT: this is the only function that calls os.Getenv()
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		CronSecret: getEnv("CRON_SECRET", ""),

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			Enabled:         getEnvAsBool("HISTORY_ENABLED", false),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Finnhub: FinnhubConfig{
			APIKey:    getEnv("FINNHUB_API_KEY", ""),
			BaseURL:   getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
			RateLimit: getEnvAsInt("FINNHUB_RATE_LIMIT", 50),
		},

		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},

		Yahoo: YahooConfig{
			Enabled: getEnvAsBool("YAHOO_FALLBACK_ENABLED", false),
			BaseURL: getEnv("YAHOO_BASE_URL", "https://finance.yahoo.com"),
		},

		Engine: EngineConfig{
			MeasureMinScore:    getEnvAsInt("MEASURE_MIN_SCORE", 75),
			MeasureMaxItems:    getEnvAsInt("MEASURE_MAX_ITEMS", 25),
			MinAgeHours:        getEnvAsInt("MIN_AGE_HOURS", 20),
			CandleLookbackDays: getEnvAsInt("CANDLE_LOOKBACK_DAYS", 120),
			PoolCapacity:       getEnvAsInt("MAX_POOL_ITEMS", 500),
			LeaderboardTopN:    getEnvAsInt("LEADERBOARD_TOP_N", 120),
		},

		Scan: ScanConfig{
			Symbols:          getEnvAsList("SCAN_SYMBOLS"),
			Workers:          getEnvAsInt("SCAN_WORKERS", 5),
			NewsLookbackDays: getEnvAsInt("NEWS_LOOKBACK_DAYS", 7),
			MaxNewsPerSymbol: getEnvAsInt("MAX_NEWS_PER_SYMBOL", 10),
		},

		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Database.Enabled && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required when HISTORY_ENABLED=true")
	}

	if c.Engine.MeasureMaxItems <= 0 {
		return fmt.Errorf("MEASURE_MAX_ITEMS must be positive")
	}

	if c.Engine.PoolCapacity <= 0 {
		return fmt.Errorf("MAX_POOL_ITEMS must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsList parses a comma-separated env var into a trimmed slice
func getEnvAsList(key string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return nil
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, strings.ToUpper(p))
		}
	}
	return out
}
