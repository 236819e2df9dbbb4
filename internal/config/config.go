// Package config loads application configuration from environment
// variables (optionally backed by a local .env file), following the same
// getEnvOrDefault convention used throughout this stack.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Season      SeasonConfig
	Simulation  SimulationConfig
	Marketplace MarketplaceConfig
	Auth        AuthConfig
	Features    FeatureFlags
}

type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
}

type DatabaseConfig struct {
	MySQL   MySQLConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
}

type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SeasonConfig governs C1/C8's calendar arithmetic.
type SeasonConfig struct {
	TimeZone          string        // IANA zone name, civil clock per spec §4.1
	DayStartHour      int           // 03:00 local day-boundary rule
	TickInterval      time.Duration // C8's cron cadence for the day-advancement check
	AdvisoryLockKey   string        // Redis SetNX key for single-leader C8 election
	AdvisoryLockTTL   time.Duration
}

// SimulationConfig governs C3/C4.
type SimulationConfig struct {
	MatchWindowStartHour int
	MatchWindowEndHour   int
	TickRateHz           int           // simulated ticks per wall-clock second in LIVE mode
	CheckpointInterval   time.Duration // C4 checkpoint cadence, 15s per spec §4.4
	StallThreshold       time.Duration // no tick progress within this window -> MatchStalled
	StallReleaseAfter    time.Duration // TTL of a live match's advisory lock when first acquired; each worker tick renews it for 90s, and a stall does not checkpoint or release the match
	DailyTournamentSize  int
	PlayoffTournamentSize int
}

// MarketplaceConfig governs C6.
type MarketplaceConfig struct {
	MaxActiveListingsPerSeller int
	MaxAuctionExtensions       int
	ListingFeePercent          float64
	MarketTaxPercent           float64
	AntiSnipeWindow            time.Duration
	AntiSnipeExtension         time.Duration
}

type AuthConfig struct {
	AdminTokenSecret string
	AdminTokenTTL    time.Duration
	BCryptCost       int
}

type FeatureFlags struct {
	EnableWebSocket bool
	EnableMetrics   bool
	MaintenanceMode bool
}

// Load reads configuration from the environment, optionally seeded by a
// local .env file (ignored in environments where one doesn't exist).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8080"),
			ReadTimeout:    getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationOrDefault("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:    getDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second),
			AllowedOrigins: getListOrDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			MySQL: MySQLConfig{
				DSN:             getEnvOrDefault("MYSQL_DSN", ""),
				MaxOpenConns:    getIntOrDefault("MYSQL_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    getIntOrDefault("MYSQL_MAX_IDLE_CONNS", 5),
				ConnMaxLifetime: getDurationOrDefault("MYSQL_CONN_MAX_LIFETIME", 5*time.Minute),
			},
			MongoDB: MongoDBConfig{
				URI:      getEnvOrDefault("MONGO_URI", ""),
				Database: getEnvOrDefault("MONGO_DATABASE", "domeball"),
			},
			Redis: RedisConfig{
				Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getIntOrDefault("REDIS_DB", 0),
			},
		},
		Season: SeasonConfig{
			TimeZone:        getEnvOrDefault("SEASON_TIMEZONE", "America/Chicago"),
			DayStartHour:    getIntOrDefault("SEASON_DAY_START_HOUR", 3),
			TickInterval:    getDurationOrDefault("SEASON_TICK_INTERVAL", 60*time.Second),
			AdvisoryLockKey: getEnvOrDefault("SEASON_LEADER_LOCK_KEY", "domeball:season:leader"),
			AdvisoryLockTTL: getDurationOrDefault("SEASON_LEADER_LOCK_TTL", 90*time.Second),
		},
		Simulation: SimulationConfig{
			MatchWindowStartHour:  getIntOrDefault("MATCH_WINDOW_START_HOUR", 16),
			MatchWindowEndHour:    getIntOrDefault("MATCH_WINDOW_END_HOUR", 22),
			TickRateHz:            getIntOrDefault("SIMULATION_TICK_RATE_HZ", 1),
			CheckpointInterval:    getDurationOrDefault("CHECKPOINT_INTERVAL", 15*time.Second),
			StallThreshold:        getDurationOrDefault("MATCH_STALL_THRESHOLD", 5*time.Second),
			StallReleaseAfter:     getDurationOrDefault("MATCH_STALL_RELEASE_AFTER", 60*time.Second),
			DailyTournamentSize:   getIntOrDefault("DAILY_TOURNAMENT_SIZE", 8),
			PlayoffTournamentSize: getIntOrDefault("PLAYOFF_TOURNAMENT_SIZE", 16),
		},
		Marketplace: MarketplaceConfig{
			MaxActiveListingsPerSeller: getIntOrDefault("MARKET_MAX_LISTINGS_PER_SELLER", 3),
			MaxAuctionExtensions:       getIntOrDefault("MARKET_MAX_EXTENSIONS", 5),
			ListingFeePercent:          getFloatOrDefault("MARKET_LISTING_FEE_PERCENT", 0.03),
			MarketTaxPercent:           getFloatOrDefault("MARKET_TAX_PERCENT", 0.05),
			AntiSnipeWindow:            getDurationOrDefault("MARKET_ANTI_SNIPE_WINDOW", 60*time.Second),
			AntiSnipeExtension:         getDurationOrDefault("MARKET_ANTI_SNIPE_EXTENSION", 60*time.Second),
		},
		Auth: AuthConfig{
			AdminTokenSecret: getEnvOrDefault("ADMIN_TOKEN_SECRET", ""),
			AdminTokenTTL:    getDurationOrDefault("ADMIN_TOKEN_TTL", 12*time.Hour),
			BCryptCost:       getIntOrDefault("BCRYPT_COST", 10),
		},
		Features: FeatureFlags{
			EnableWebSocket: getBoolOrDefault("ENABLE_WEBSOCKET", true),
			EnableMetrics:   getBoolOrDefault("ENABLE_METRICS", true),
			MaintenanceMode: getBoolOrDefault("MAINTENANCE_MODE", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() error {
	if c.Database.MySQL.DSN == "" {
		return fmt.Errorf("MYSQL_DSN is required")
	}
	if c.Database.MongoDB.URI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.Auth.AdminTokenSecret == "" {
		return fmt.Errorf("ADMIN_TOKEN_SECRET is required")
	}
	if c.Simulation.DailyTournamentSize != 8 && c.Simulation.DailyTournamentSize != 16 {
		return fmt.Errorf("DAILY_TOURNAMENT_SIZE must be 8 or 16")
	}
	if c.Simulation.PlayoffTournamentSize != 8 && c.Simulation.PlayoffTournamentSize != 16 {
		return fmt.Errorf("PLAYOFF_TOURNAMENT_SIZE must be 8 or 16")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
