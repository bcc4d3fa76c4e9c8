package config

import (
	"os"
	"testing"
)

func TestLoadFromEnv(t *testing.T) {
	tests := []struct {
		name         string
		envVars      map[string]string
		expectedPort string
		expectedQdrant string
	}{
		{
			name:           "defaults when nothing set",
			envVars:        map[string]string{},
			expectedPort:   "8000",
			expectedQdrant: "http://localhost:6333",
		},
		{
			name:           "uses PORT env var when set",
			envVars:        map[string]string{"PORT": "3000"},
			expectedPort:   "3000",
			expectedQdrant: "http://localhost:6333",
		},
		{
			name:           "uses QDRANT_URL env var when set",
			envVars:        map[string]string{"QDRANT_URL": "http://qdrant:6333"},
			expectedPort:   "8000",
			expectedQdrant: "http://qdrant:6333",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg, err := LoadFromEnv()
			if err != nil {
				t.Fatalf("LoadFromEnv() error = %v", err)
			}

			if cfg.Server.Port != tt.expectedPort {
				t.Errorf("Port = %v, want %v", cfg.Server.Port, tt.expectedPort)
			}

			if cfg.VectorDB.URL != tt.expectedQdrant {
				t.Errorf("VectorDB.URL = %v, want %v", cfg.VectorDB.URL, tt.expectedQdrant)
			}
		})
	}
}

func TestLoadFromEnv_ModelDefaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.LLM.URL != "http://localhost:11434" {
		t.Errorf("LLM.URL = %v", cfg.LLM.URL)
	}
	if cfg.LLM.Model == "" || cfg.LLM.EmbeddingModel == "" {
		t.Error("model names should default to non-empty values")
	}
}

func TestLoadFromEnv_InvalidRedisDB(t *testing.T) {
	os.Clearenv()
	os.Setenv("REDIS_DB", "not-a-number")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	// Should use default value when parsing fails
	if cfg.Cache.Redis.DB != 0 {
		t.Errorf("Redis.DB = %v, want 0 (default)", cfg.Cache.Redis.DB)
	}
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: "8000"},
		Cache:  CacheConfig{Type: "memory"},
		VectorDB: VectorDBConfig{
			URL: "http://localhost:6333",
		},
		LLM: LLMConfig{
			URL:            "http://localhost:11434",
			Model:          "llama3",
			EmbeddingModel: "all-minilm",
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: true,
			errMsg:  "port cannot be empty",
		},
		{
			name:    "invalid cache type",
			mutate:  func(c *Config) { c.Cache.Type = "invalid" },
			wantErr: true,
			errMsg:  "cache type must be 'redis' or 'memory'",
		},
		{
			name: "redis type with empty address",
			mutate: func(c *Config) {
				c.Cache.Type = "redis"
				c.Cache.Redis.Address = ""
			},
			wantErr: true,
			errMsg:  "redis address cannot be empty when using redis cache",
		},
		{
			name:    "empty vector store URL",
			mutate:  func(c *Config) { c.VectorDB.URL = "" },
			wantErr: true,
			errMsg:  "vector store URL cannot be empty",
		},
		{
			name:    "empty model server URL",
			mutate:  func(c *Config) { c.LLM.URL = "" },
			wantErr: true,
			errMsg:  "model server URL cannot be empty",
		},
		{
			name:    "empty embedding model",
			mutate:  func(c *Config) { c.LLM.EmbeddingModel = "" },
			wantErr: true,
			errMsg:  "model names cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && tt.errMsg != "" && err.Error() != tt.errMsg {
				t.Errorf("Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}
