package embedding

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/embeddings"

	"github.com/quizforge/studyrag/internal/fault"
)

// Client wraps a langchaingo embedder with dimension enforcement and an
// optional cache. The embedding service contract is strict: one vector
// per input, same order, fixed dimension.
type Client struct {
	embedder embeddings.Embedder
	model    string
	dim      int
	cache    *Cache
	logger   zerolog.Logger
}

// NewClient builds the embedding client. cache may be nil.
func NewClient(embedder embeddings.Embedder, model string, dim int, cache *Cache, logger zerolog.Logger) (*Client, error) {
	if dim <= 0 {
		return nil, fault.New(fault.KindConfig, "embedding dimension must be positive, got %d", dim)
	}
	return &Client{
		embedder: embedder,
		model:    model,
		dim:      dim,
		cache:    cache,
		logger:   logger.With().Str("component", "embedding").Logger(),
	}, nil
}

// Dimension returns the configured model output dimension.
func (c *Client) Dimension() int { return c.dim }

// EmbedDocuments embeds a batch of texts, serving cached vectors where
// available and issuing a single upstream call for the misses.
func (c *Client) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	var missIdx []int
	var missTexts []string

	for i, t := range texts {
		if c.cache != nil {
			if v, err := c.cache.Get(ctx, c.model, t); err == nil && v != nil {
				out[i] = v
				continue
			}
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, t)
	}

	if len(missTexts) > 0 {
		vectors, err := c.embedder.EmbedDocuments(ctx, missTexts)
		if err != nil {
			return nil, fault.Wrap(err, fault.KindUpstream, "embedding service call (%s)", c.model)
		}
		if len(vectors) != len(missTexts) {
			return nil, fault.New(fault.KindUpstream, "embedding service returned %d vectors for %d inputs", len(vectors), len(missTexts))
		}
		for j, v := range vectors {
			if len(v) != c.dim {
				return nil, fault.New(fault.KindUpstream, "embedding dimension %d does not match configured %d (model %s)", len(v), c.dim, c.model)
			}
			out[missIdx[j]] = v
			if c.cache != nil {
				if err := c.cache.Set(ctx, c.model, missTexts[j], v); err != nil {
					c.logger.Warn().Err(err).Msg("embedding cache write failed")
				}
			}
		}
	}

	return out, nil
}

// EmbedQuery embeds a single text.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}
