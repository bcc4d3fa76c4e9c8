// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, vector store, and model access

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// VectorDB contains vector store configuration
	VectorDB VectorDBConfig

	// LLM contains language model and embedding configuration
	LLM LLMConfig

	// Store contains relational index configuration
	Store StoreConfig

	// Logging contains logger configuration
	Logging LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// VectorDBConfig holds Qdrant connection configuration
type VectorDBConfig struct {
	// URL is the Qdrant REST endpoint
	URL string
}

// LLMConfig holds Ollama model configuration
type LLMConfig struct {
	// URL is the Ollama server endpoint
	URL string

	// Model is the completion model name
	Model string

	// EmbeddingModel is the embedding model name
	EmbeddingModel string
}

// StoreConfig holds relational index configuration
type StoreConfig struct {
	// SQLitePath is the article index database file
	SQLitePath string
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	// Level is the minimum log level (debug/info/warn/error)
	Level string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8000"),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
		},
		VectorDB: VectorDBConfig{
			URL: getEnvOrDefault("QDRANT_URL", "http://localhost:6333"),
		},
		LLM: LLMConfig{
			URL:            getEnvOrDefault("OLLAMA_URL", "http://localhost:11434"),
			Model:          getEnvOrDefault("OLLAMA_MODEL", "llama3"),
			EmbeddingModel: getEnvOrDefault("OLLAMA_EMBEDDING_MODEL", "all-minilm"),
		},
		Store: StoreConfig{
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "articles.db"),
		},
		Logging: LoggingConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.VectorDB.URL == "" {
		return errors.New("vector store URL cannot be empty")
	}

	if c.LLM.URL == "" {
		return errors.New("model server URL cannot be empty")
	}

	if c.LLM.Model == "" || c.LLM.EmbeddingModel == "" {
		return errors.New("model names cannot be empty")
	}

	return nil
}
