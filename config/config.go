package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisTokenDB  int    `mapstructure:"REDIS_TOKEN_DB"`

	// Relay agent delivery.
	RelayAPIURL          string `mapstructure:"RELAY_API_URL"`
	RelayTimeoutSeconds  int    `mapstructure:"RELAY_TIMEOUT_SECONDS"`
	RelayKeySecret       string `mapstructure:"RELAY_KEY_SECRET"`
	RelayIntegrationName string `mapstructure:"RELAY_INTEGRATION_NAME"`

	// Brain classifier endpoint. Empty means the built-in keyword
	// classifier is used.
	ClassifierURL string `mapstructure:"CLASSIFIER_URL"`

	// Business hours used for free-slot windows.
	DayStartHour int `mapstructure:"DAY_START_HOUR"`
	DayEndHour   int `mapstructure:"DAY_END_HOUR"`

	// Availability poll loop tuning.
	SyncPollInitialMS  int     `mapstructure:"SYNC_POLL_INITIAL_MS"`
	SyncPollBackoff    float64 `mapstructure:"SYNC_POLL_BACKOFF"`
	SyncPollCapMS      int     `mapstructure:"SYNC_POLL_CAP_MS"`
	SyncPollDeadlineMS int     `mapstructure:"SYNC_POLL_DEADLINE_MS"`

	// MCP server settings: where the HTTP API lives and the key the
	// MCP process presents when no per-call key is supplied.
	APIURL    string `mapstructure:"API_URL"`
	MCPAPIKey string `mapstructure:"MCP_API_KEY"`

	// MemoryMode runs every store in process, for development without
	// Mongo or Redis.
	MemoryMode bool `mapstructure:"MEMORY_MODE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_TOKEN_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("RELAY_API_URL", "")
	viper.SetDefault("RELAY_TIMEOUT_SECONDS", 15)
	viper.SetDefault("RELAY_KEY_SECRET", "")
	viper.SetDefault("RELAY_INTEGRATION_NAME", "Huddle")
	viper.SetDefault("CLASSIFIER_URL", "")
	viper.SetDefault("DAY_START_HOUR", 9)
	viper.SetDefault("DAY_END_HOUR", 18)
	viper.SetDefault("SYNC_POLL_INITIAL_MS", 2000)
	viper.SetDefault("SYNC_POLL_BACKOFF", 1.3)
	viper.SetDefault("SYNC_POLL_CAP_MS", 5000)
	viper.SetDefault("SYNC_POLL_DEADLINE_MS", 45000)
	viper.SetDefault("API_URL", "http://localhost:8080")
	viper.SetDefault("MCP_API_KEY", "")
	viper.SetDefault("MEMORY_MODE", false)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
