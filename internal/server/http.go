package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/quizforge/studyrag/internal/config"
	"github.com/quizforge/studyrag/internal/ingest"
	"github.com/quizforge/studyrag/internal/quizgen"
)

// NewHTTPServer wires the API routes: health, metrics, and the
// ingest/generation surface.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, ingestHandlers *ingest.HTTPHandlers, quizHandlers *quizgen.HTTPHandlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			logger.Error().Err(err).Msg("health check ping failed")
			http.Error(w, `{"status":"degraded"}`, http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/projects", ingestHandlers.CreateProject)
	mux.HandleFunc("/v1/projects/{id}/documents", ingestHandlers.IngestDocuments)
	mux.HandleFunc("/v1/projects/{id}/quiz", quizHandlers.GenerateQuiz)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}

// Ping verifies store connectivity, used during bootstrap.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}
