package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Words   WordsConfig
	Store   StoreConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
	Env  string // "development" or "production"
}

// GameConfig holds duel-related configuration
type GameConfig struct {
	WordLength      int
	MaxTurns        int
	HardModeDefault bool
	JoinGracePeriod time.Duration
}

// WordsConfig holds word-list file locations; empty values fall back to
// the embedded defaults
type WordsConfig struct {
	AnswersFile string
	AllowedFile string
}

// StoreConfig holds external storage configuration
type StoreConfig struct {
	RedisAddr     string
	RedisPassword string
	DatabaseURL   string
	NameTTL       time.Duration
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
			Env:  getEnv("ENV", "development"),
		},
		Game: GameConfig{
			WordLength:      getEnvInt("WORD_LENGTH", 5),
			MaxTurns:        getEnvInt("MAX_TURNS", 6),
			HardModeDefault: getEnvBool("HARD_MODE_DEFAULT", false),
			JoinGracePeriod: time.Duration(getEnvInt("JOIN_GRACE_PERIOD_SECONDS", 120)) * time.Second,
		},
		Words: WordsConfig{
			AnswersFile: getEnv("WORDS_ANSWERS_FILE", ""),
			AllowedFile: getEnv("WORDS_ALLOWED_FILE", ""),
		},
		Store: StoreConfig{
			RedisAddr:     getEnv("REDIS_ADDR", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			DatabaseURL:   getEnv("DATABASE_URL", ""),
			NameTTL:       time.Duration(getEnvInt("NAME_TTL_HOURS", 24*30)) * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool returns an environment variable as a boolean or a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
