package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvector "github.com/pgvector/pgvector-go/pgx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/quizforge/studyrag/internal/config"
	"github.com/quizforge/studyrag/internal/db/repository"
	"github.com/quizforge/studyrag/internal/embedding"
	"github.com/quizforge/studyrag/internal/ingest"
	"github.com/quizforge/studyrag/internal/logging"
	"github.com/quizforge/studyrag/internal/quizgen"
	"github.com/quizforge/studyrag/internal/retrieval"
	"github.com/quizforge/studyrag/internal/server"
)

// Application aggregates shared infrastructure (DB, model clients, HTTP
// server). All process-wide state lives here, constructed once at
// startup; request handling itself is stateless.
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps config, logger, Postgres, model clients and the HTTP
// server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	poolCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := server.Ping(ctx, pool); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	var redisClient *redis.Client
	var embeddingCache *embedding.Cache
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		embeddingCache = embedding.NewCache(redisClient, cfg.Redis.CacheTTL)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("embedding cache enabled")
	}

	llmOpts := []openai.Option{
		openai.WithToken(cfg.OpenAI.APIKey),
		openai.WithModel(cfg.OpenAI.CompletionModel),
		openai.WithEmbeddingModel(cfg.OpenAI.EmbeddingModel),
		openai.WithHTTPClient(&http.Client{Timeout: cfg.OpenAI.HTTPTimeout}),
	}
	if cfg.OpenAI.BaseURL != "" {
		llmOpts = append(llmOpts, openai.WithBaseURL(cfg.OpenAI.BaseURL))
	}
	llm, err := openai.New(llmOpts...)
	if err != nil {
		return nil, fmt.Errorf("create model client: %w", err)
	}

	llmEmbedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}
	embedClient, err := embedding.NewClient(llmEmbedder, cfg.OpenAI.EmbeddingModel, cfg.OpenAI.EmbeddingDim, embeddingCache, logger)
	if err != nil {
		return nil, err
	}

	projectRepo := repository.NewProjectRepository(pool)
	chunkRepo := repository.NewChunkRepository(pool)

	ingestSvc := ingest.NewService(projectRepo, chunkRepo, embedClient, ingest.Options{
		ChunkSize:    cfg.Chunking.Size,
		ChunkOverlap: cfg.Chunking.Overlap,
	}, logger)
	ingestHandlers := ingest.NewHTTPHandlers(ingestSvc, projectRepo, logger)

	retriever := retrieval.NewRetriever(embedClient, chunkRepo, retrieval.Options{
		TopK:   cfg.Retrieval.TopK,
		Intent: cfg.Retrieval.Intent,
	}, logger)

	generator := quizgen.NewGenerator(llm, quizgen.GeneratorOptions{
		Temperature:    cfg.OpenAI.Temperature,
		CorrectMode:    cfg.Quiz.CorrectMode,
		CountTolerance: cfg.Quiz.CountTolerance,
	}, logger)

	quizSvc := quizgen.NewService(retriever, generator, quizgen.ServiceOptions{
		MaxQuestions:    cfg.Quiz.MaxQuestions,
		DefaultLanguage: cfg.Quiz.DefaultLanguage,
	}, logger)
	quizHandlers := quizgen.NewHTTPHandlers(quizSvc, logger)

	apiServer := server.NewHTTPServer(cfg, logger, pool, ingestHandlers, quizHandlers)

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pool.Close()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
