package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Vector   VectorConfig
	Ai       AIConfig
	Drift    DriftConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type VectorConfig struct {
	Backend          string // "pgvector", "qdrant" or "memory"
	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string
	Dimension        int
	QueryTimeout     time.Duration
}

type AIConfig struct {
	EmbeddingProvider string // "ollama"
	OllamaBaseURL     string
	EmbeddingModel    string
	LLMProvider       string // "ollama"
	LLMModel          string
	EmbeddingTimeout  time.Duration
	JudgmentTimeout   time.Duration
}

type DriftConfig struct {
	SimHigh         float64 // at or above: treated as unchanged, suppressed
	SimLow          float64 // at or above (but below SimHigh): modified
	TopK            int
	MinClauseLength int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Vector: VectorConfig{
			Backend:          getEnv("VECTOR_BACKEND", "pgvector"),
			QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			QdrantAPIKey:     getEnv("QDRANT_API_KEY", ""),
			QdrantCollection: getEnv("QDRANT_COLLECTION", "legal_docs"),
			Dimension:        getEnvAsInt("VECTOR_DIMENSION", 384),
			QueryTimeout:     getEnvAsDuration("VECTOR_QUERY_TIMEOUT", 5*time.Second),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingModel:    getEnv("OLLAMA_EMBEDDING_MODEL", "all-minilm"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			EmbeddingTimeout:  getEnvAsDuration("EMBEDDING_TIMEOUT", 5*time.Second),
			JudgmentTimeout:   getEnvAsDuration("JUDGMENT_TIMEOUT", 10*time.Second),
		},
		Drift: DriftConfig{
			SimHigh:         getEnvAsFloat("DRIFT_SIM_HIGH", 0.88),
			SimLow:          getEnvAsFloat("DRIFT_SIM_LOW", 0.65),
			TopK:            getEnvAsInt("DRIFT_TOP_K", 1),
			MinClauseLength: getEnvAsInt("MIN_CLAUSE_LENGTH", 10),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
