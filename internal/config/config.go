package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Game     GameConfig
}

// ServerConfig holds the server configuration
type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

// DatabaseConfig holds the SQLite database configuration
type DatabaseConfig struct {
	Path     string
	TestPath string // Separate database file for testing
}

// AuthConfig holds authentication configuration, including the default
// credential pair seeded on first run
type AuthConfig struct {
	JWTSecret       string
	DefaultUsername string
	DefaultPassword string
}

// GameConfig holds gameplay-related settings
type GameConfig struct {
	SessionTTL    time.Duration
	RedirectDelay time.Duration
}

// LoadConfig loads the configuration from the environment, reading a
// .env file first if one is present
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins: []string{getEnv("CORS_ORIGIN", "*")},
		},
		Database: DatabaseConfig{
			Path:     getEnv("DB_PATH", "bingo.db"),
			TestPath: getEnv("TEST_DB_PATH", ""),
		},
		Auth: AuthConfig{
			JWTSecret:       getEnv("JWT_SECRET", "your-secret-key-here"),
			DefaultUsername: getEnv("DEFAULT_USERNAME", "User"),
			DefaultPassword: getEnv("DEFAULT_PASSWORD", "password"),
		},
		Game: GameConfig{
			SessionTTL:    getEnvAsDuration("SESSION_TTL", 30*time.Minute),
			RedirectDelay: getEnvAsDuration("REDIRECT_DELAY", 2*time.Second),
		},
	}
}

// Helper functions to read environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
