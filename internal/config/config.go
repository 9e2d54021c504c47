// Package config provides configuration management for Inkwell. Settings are
// loaded from environment variables with the INKWELL_ prefix, with sensible
// defaults for every option, and can optionally be overlaid from a YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration settings for the Inkwell application.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	LLM     LLMConfig     `yaml:"llm"`
	Engine  EngineConfig  `yaml:"engine"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host string `yaml:"host"` // Server host (default: 127.0.0.1)
	Port int    `yaml:"port"` // Server port (default: 7171)
}

// StorageConfig contains journal storage configuration.
type StorageConfig struct {
	DataPath string `yaml:"data_path"` // Path to data directory (default: ./data)
}

// LLMConfig contains remote analysis provider configuration.
type LLMConfig struct {
	Provider     string `yaml:"provider"`       // none, ollama, openai (default: none)
	OllamaURL    string `yaml:"ollama_url"`     // Ollama API URL (default: http://localhost:11434)
	OllamaModel  string `yaml:"ollama_model"`   // Ollama model name (default: qwen2.5:7b)
	OpenAIAPIKey string `yaml:"openai_api_key"` // OpenAI API key
	OpenAIModel  string `yaml:"openai_model"`   // OpenAI model name (default: gpt-4o-mini)
}

// EngineConfig contains enrichment engine configuration.
type EngineConfig struct {
	Workers   int `yaml:"workers"`    // Enrichment worker count (default: 2)
	QueueSize int `yaml:"queue_size"` // Enrichment queue capacity (default: 64)
}

// LoadConfig loads configuration from environment variables with defaults.
// All environment variables use the INKWELL_ prefix.
func LoadConfig() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("INKWELL_HOST", "127.0.0.1"),
			Port: getEnvInt("INKWELL_PORT", 7171),
		},
		Storage: StorageConfig{
			DataPath: getEnv("INKWELL_DATA_PATH", "./data"),
		},
		LLM: LLMConfig{
			Provider:     getEnv("INKWELL_LLM_PROVIDER", "none"),
			OllamaURL:    getEnv("INKWELL_OLLAMA_URL", "http://localhost:11434"),
			OllamaModel:  getEnv("INKWELL_OLLAMA_MODEL", "qwen2.5:7b"),
			OpenAIAPIKey: getEnv("INKWELL_OPENAI_API_KEY", ""),
			OpenAIModel:  getEnv("INKWELL_OPENAI_MODEL", "gpt-4o-mini"),
		},
		Engine: EngineConfig{
			Workers:   getEnvInt("INKWELL_WORKERS", 2),
			QueueSize: getEnvInt("INKWELL_QUEUE_SIZE", 64),
		},
	}, nil
}

// LoadConfigFile loads configuration from environment variables and then
// overlays any values present in the YAML file at path. File values take
// precedence over environment variables.
func LoadConfigFile(path string) (*Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default
// value. Unparsable values fall back to the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
