package retrieval

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog"

	"github.com/quizforge/studyrag/internal/db/repository"
	"github.com/quizforge/studyrag/internal/fault"
)

// QueryEmbedder produces the query vector for a retrieval intent.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// ChunkSearcher exposes nearest-neighbor lookup over stored chunks.
type ChunkSearcher interface {
	Nearest(ctx context.Context, projectID uuid.UUID, query pgvector.Vector, k int) ([]repository.ScoredChunk, error)
	CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
}

// Options controls ranking breadth and the retrieval intent.
type Options struct {
	// TopK caps how many chunks feed the prompt.
	TopK int
	// Intent is embedded as the query instead of literal user text: no
	// question exists yet at request time, so retrieval approximates
	// relevance to the task itself.
	Intent string
}

// Retriever selects the context chunks for one quiz request.
type Retriever struct {
	embedder QueryEmbedder
	store    ChunkSearcher
	opts     Options
	logger   zerolog.Logger
}

// NewRetriever constructs a retriever.
func NewRetriever(embedder QueryEmbedder, store ChunkSearcher, opts Options, logger zerolog.Logger) *Retriever {
	if opts.TopK <= 0 {
		opts.TopK = 10
	}
	if opts.Intent == "" {
		opts.Intent = "quiz"
	}
	return &Retriever{
		embedder: embedder,
		store:    store,
		opts:     opts,
		logger:   logger.With().Str("component", "retrieval").Logger(),
	}
}

// Retrieve returns up to TopK chunks of the project ranked nearest-first.
// A project with no chunks at all is a precondition failure, reported
// before any embedding call is spent on it.
func (r *Retriever) Retrieve(ctx context.Context, projectID uuid.UUID) ([]repository.ScoredChunk, error) {
	count, err := r.store.CountByProject(ctx, projectID)
	if err != nil {
		return nil, fault.Wrap(err, fault.KindUpstream, "count chunks for project %s", projectID)
	}
	if count == 0 {
		return nil, fault.New(fault.KindPrecondition, "project %s has no ingested chunks", projectID)
	}

	vec, err := r.embedder.EmbedQuery(ctx, r.opts.Intent)
	if err != nil {
		return nil, fault.Wrap(err, fault.KindUpstream, "embed retrieval intent")
	}

	chunks, err := r.store.Nearest(ctx, projectID, pgvector.NewVector(vec), r.opts.TopK)
	if err != nil {
		return nil, fault.Wrap(err, fault.KindUpstream, "nearest chunks for project %s", projectID)
	}

	r.logger.Debug().
		Str("project_id", projectID.String()).
		Int("retrieved", len(chunks)).
		Msg("context retrieved")
	return chunks, nil
}
