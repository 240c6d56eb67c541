package ingest

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog"

	"github.com/quizforge/studyrag/internal/db/repository"
	"github.com/quizforge/studyrag/internal/fault"
	"github.com/quizforge/studyrag/internal/metrics"
)

// Embedder maps a batch of texts to fixed-dimension vectors, one per
// input, same order.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// Store persists one ingest call atomically.
type Store interface {
	SaveIngest(ctx context.Context, projectID uuid.UUID, docs []repository.DocumentIngest) error
}

// ProjectGetter verifies that a project exists before writing into it.
type ProjectGetter interface {
	Get(ctx context.Context, id uuid.UUID) (repository.Project, error)
}

// Options holds chunking parameters for the service.
type Options struct {
	ChunkSize    int
	ChunkOverlap int
}

// Service runs the write path: document -> chunks -> embeddings -> store.
type Service struct {
	projects ProjectGetter
	store    Store
	embedder Embedder
	opts     Options
	logger   zerolog.Logger
}

// NewService constructs the ingest service.
func NewService(projects ProjectGetter, store Store, embedder Embedder, opts Options, logger zerolog.Logger) *Service {
	return &Service{
		projects: projects,
		store:    store,
		embedder: embedder,
		opts:     opts,
		logger:   logger.With().Str("component", "ingest").Logger(),
	}
}

// Ingest chunks and embeds every document and commits all resulting rows
// in one transaction. A failure at any document aborts the remaining ones
// and nothing of the call is persisted.
func (s *Service) Ingest(ctx context.Context, projectID uuid.UUID, docs []DocumentInput) (IngestResponse, error) {
	if len(docs) == 0 {
		return IngestResponse{}, fault.New(fault.KindInvalid, "at least one document is required")
	}
	for i, d := range docs {
		if strings.TrimSpace(d.Title) == "" {
			return IngestResponse{}, fault.New(fault.KindInvalid, "document %d: title is required", i)
		}
	}

	if _, err := s.projects.Get(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return IngestResponse{}, fault.New(fault.KindNotFound, "project %s does not exist", projectID)
		}
		return IngestResponse{}, fault.Wrap(err, fault.KindInternal, "look up project %s", projectID)
	}

	batch := make([]repository.DocumentIngest, 0, len(docs))
	results := make([]DocumentResult, 0, len(docs))
	for i, d := range docs {
		texts, err := ChunkText(d.Text, s.opts.ChunkSize, s.opts.ChunkOverlap)
		if err != nil {
			return IngestResponse{}, err
		}

		di := repository.DocumentIngest{
			Document: repository.Document{
				ID:        uuid.New(),
				ProjectID: projectID,
				Title:     d.Title,
				Filename:  d.Filename,
				Page:      d.Page,
			},
		}

		if len(texts) > 0 {
			vectors, err := s.embedder.EmbedDocuments(ctx, texts)
			if err != nil {
				return IngestResponse{}, fault.Wrap(err, fault.KindUpstream, "embed document %d (%q)", i, d.Title)
			}
			if len(vectors) != len(texts) {
				return IngestResponse{}, fault.New(fault.KindUpstream, "embedder returned %d vectors for %d texts", len(vectors), len(texts))
			}
			for j, v := range vectors {
				if len(v) != s.embedder.Dimension() {
					return IngestResponse{}, fault.New(fault.KindUpstream, "document %d chunk %d: embedding dimension %d, want %d", i, j, len(v), s.embedder.Dimension())
				}
				di.Chunks = append(di.Chunks, repository.Chunk{
					ID:         uuid.New(),
					ProjectID:  projectID,
					DocumentID: di.Document.ID,
					Title:      d.Title,
					Page:       d.Page,
					Text:       texts[j],
					Embedding:  pgvector.NewVector(v),
				})
			}
		}

		batch = append(batch, di)
		results = append(results, DocumentResult{
			DocumentID: di.Document.ID.String(),
			Title:      d.Title,
			Chunks:     len(di.Chunks),
		})
	}

	if err := s.store.SaveIngest(ctx, projectID, batch); err != nil {
		return IngestResponse{}, fault.Wrap(err, fault.KindUpstream, "persist ingest for project %s", projectID)
	}

	total := 0
	for _, r := range results {
		total += r.Chunks
	}
	metrics.ChunksIngested.Add(float64(total))
	s.logger.Info().
		Str("project_id", projectID.String()).
		Int("documents", len(docs)).
		Int("chunks", total).
		Msg("ingest committed")

	return IngestResponse{ProjectID: projectID.String(), Documents: results}, nil
}
