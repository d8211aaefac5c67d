package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App   AppConfig
	Mongo MongoConfig
	JWT   JWTConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// MongoConfig is the full configuration surface the data layer consumes:
// connection URI, database name and one collection name per resource.
type MongoConfig struct {
	URI                string
	Database           string
	BooksCollection    string
	ProfilesCollection string
	CommentsCollection string

	MaxRetries     int
	ConnectTimeout int // seconds
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Bookshelf API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Mongo: MongoConfig{
			URI:                getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:           getEnv("MONGO_DB_NAME", "booksdb"),
			BooksCollection:    getEnv("MONGO_BOOKS_COLLECTION", "books"),
			ProfilesCollection: getEnv("MONGO_PROFILES_COLLECTION", "profiles"),
			CommentsCollection: getEnv("MONGO_COMMENTS_COLLECTION", "comments"),
			MaxRetries:         getEnvInt("MONGO_MAX_RETRIES", 3),
			ConnectTimeout:     getEnvInt("MONGO_CONNECT_TIMEOUT", 10),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks config sanity before startup.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI must not be empty")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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
