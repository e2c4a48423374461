// Package config loads the service's recognized configuration options
// from the environment, matching the env-var-first style
// services/llm and services/orchestrator use — no config file, no flags.
package config

import (
	"os"
	"strconv"
)

// Config is the full set of recognized options from SPEC_FULL.md §10.3.
type Config struct {
	OpenAIAPIKey        string
	DefaultModel        string
	MaxTokens           int
	Temperature         float32
	EmbeddingURL        string
	EmbeddingModel      string
	WeaviateURL         string
	WeaviateClass       string
	RAGTopK             int
	FamilyTopK          int
	RAGMinAnswers       int
	MaxRegeneration     int
	SimilarityThreshold float64
	CORSAllowedOrigins  string
	ServerPort          string
	OTLPEndpoint        string
}

// Load reads the environment and fills in defaults for anything unset.
func Load() Config {
	return Config{
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		DefaultModel:        getString("DEFAULT_MODEL", "gpt-4o-mini"),
		MaxTokens:           getInt("MAX_TOKENS", 2000),
		Temperature:         float32(getFloat("TEMPERATURE", 0.8)),
		EmbeddingURL:        os.Getenv("EMBEDDING_SERVICE_URL"),
		EmbeddingModel:      getString("EMBEDDING_MODEL", "text-embedding-3-small"),
		WeaviateURL:         os.Getenv("WEAVIATE_URL"),
		WeaviateClass:       getString("WEAVIATE_COLLECTION", "FamilyQA"),
		RAGTopK:             getInt("RAG_TOP_K", 5),
		FamilyTopK:          getInt("FAMILY_TOP_K", 10),
		RAGMinAnswers:       getInt("RAG_MIN_ANSWERS", 5),
		MaxRegeneration:     getInt("MAX_REGENERATION", 3),
		SimilarityThreshold: getFloat("SIMILARITY_THRESHOLD", 0.9),
		CORSAllowedOrigins:  os.Getenv("CORS_ALLOWED_ORIGINS"),
		ServerPort:          getString("SERVER_PORT", "8080"),
		OTLPEndpoint:        os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
