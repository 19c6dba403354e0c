// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Port            string
	FrontendURL     string
	DBPath          string
	ComplaintAPIURL string
	OpenAI          OpenAIConfig
	Qdrant          QdrantConfig
	RetrievalLimit  int
	HistoryWindow   int
}

// OpenAIConfig configures the language-model and embedding clients.
type OpenAIConfig struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	Temperature    float64
}

// QdrantConfig configures the vector store client.
type QdrantConfig struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		FrontendURL:     getEnv("FRONTEND_URL", ""),
		DBPath:          getEnv("DB_PATH", "./data/complaints.db"),
		ComplaintAPIURL: getEnv("COMPLAINT_API_URL", ""),
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			BaseURL:        getEnv("OPENAI_BASE_URL", ""),
			ChatModel:      getEnv("CHAT_MODEL", "gpt-3.5-turbo"),
			EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			Temperature:    getEnvFloat("CHAT_TEMPERATURE", 0.7),
		},
		Qdrant: QdrantConfig{
			Host:       getEnv("QDRANT_HOST", "localhost"),
			Port:       getEnvInt("QDRANT_PORT", 6334),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			UseTLS:     getEnvBool("QDRANT_USE_TLS", false),
			Collection: getEnv("QDRANT_COLLECTION", "customer_complaints_collection"),
		},
		RetrievalLimit: getEnvInt("RETRIEVAL_LIMIT", 3),
		HistoryWindow:  getEnvInt("HISTORY_WINDOW", 5),
	}

	// The assistant serves the complaint API itself unless pointed elsewhere.
	if cfg.ComplaintAPIURL == "" {
		cfg.ComplaintAPIURL = "http://localhost:" + cfg.Port
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.OpenAI.ChatModel == "" {
		return fmt.Errorf("CHAT_MODEL cannot be empty")
	}
	if c.OpenAI.EmbeddingModel == "" {
		return fmt.Errorf("EMBEDDING_MODEL cannot be empty")
	}
	if c.Qdrant.Collection == "" {
		return fmt.Errorf("QDRANT_COLLECTION cannot be empty")
	}
	if c.RetrievalLimit <= 0 {
		return fmt.Errorf("RETRIEVAL_LIMIT must be > 0")
	}
	if c.HistoryWindow <= 0 {
		return fmt.Errorf("HISTORY_WINDOW must be > 0")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}
