package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"studyrag"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres  Postgres
	Redis     Redis
	OpenAI    OpenAI
	Chunking  Chunking
	Retrieval Retrieval
	Quiz      Quiz
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Redis holds the optional embedding-cache configuration. The cache is
// disabled when Addr is empty.
type Redis struct {
	Addr     string        `env:"REDIS_ADDR"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	PoolSize int           `env:"REDIS_POOL_SIZE" envDefault:"20"`
	CacheTTL time.Duration `env:"EMBEDDING_CACHE_TTL" envDefault:"24h"`
}

// OpenAI configures the embedding and completion model clients.
type OpenAI struct {
	APIKey          string        `env:"OPENAI_API_KEY,notEmpty"`
	BaseURL         string        `env:"OPENAI_BASE_URL"`
	EmbeddingModel  string        `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	EmbeddingDim    int           `env:"EMBEDDING_DIMENSION" envDefault:"1536"`
	CompletionModel string        `env:"COMPLETION_MODEL" envDefault:"gpt-4o-mini"`
	Temperature     float64       `env:"COMPLETION_TEMPERATURE" envDefault:"0.3"`
	HTTPTimeout     time.Duration `env:"OPENAI_HTTP_TIMEOUT" envDefault:"60s"`
}

// Chunking groups document splitting defaults.
type Chunking struct {
	Size    int `env:"CHUNK_SIZE" envDefault:"1200"`
	Overlap int `env:"CHUNK_OVERLAP" envDefault:"200"`
}

// Retrieval governs how context is selected for generation.
type Retrieval struct {
	TopK   int    `env:"RETRIEVAL_TOP_K" envDefault:"10"`
	Intent string `env:"RETRIEVAL_INTENT" envDefault:"quiz"`
}

// Quiz holds generation and validation policy.
type Quiz struct {
	MaxQuestions    int    `env:"QUIZ_MAX_QUESTIONS" envDefault:"200"`
	CountTolerance  int    `env:"QUIZ_COUNT_TOLERANCE" envDefault:"2"`
	CorrectMode     string `env:"QUIZ_CORRECT_MODE" envDefault:"label"`
	DefaultLanguage string `env:"QUIZ_DEFAULT_LANGUAGE" envDefault:"en"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Chunking.Overlap >= cfg.Chunking.Size {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", cfg.Chunking.Overlap, cfg.Chunking.Size)
	}
	if cfg.Quiz.CorrectMode != "label" && cfg.Quiz.CorrectMode != "text" {
		return nil, fmt.Errorf("QUIZ_CORRECT_MODE must be \"label\" or \"text\", got %q", cfg.Quiz.CorrectMode)
	}
	return cfg, nil
}
