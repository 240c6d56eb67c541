package retrieval

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/studyrag/internal/db/repository"
	"github.com/quizforge/studyrag/internal/fault"
)

type stubEmbedder struct {
	calls   int
	queries []string
}

func (s *stubEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	s.calls++
	s.queries = append(s.queries, text)
	return []float32{0.1, 0.2, 0.3}, nil
}

type stubSearcher struct {
	chunks     map[uuid.UUID][]repository.ScoredChunk
	lastK      int
	lastProj   uuid.UUID
	nearCalled bool
}

func (s *stubSearcher) Nearest(_ context.Context, projectID uuid.UUID, _ pgvector.Vector, k int) ([]repository.ScoredChunk, error) {
	s.nearCalled = true
	s.lastK = k
	s.lastProj = projectID
	list := s.chunks[projectID]
	if len(list) > k {
		list = list[:k]
	}
	return list, nil
}

func (s *stubSearcher) CountByProject(_ context.Context, projectID uuid.UUID) (int64, error) {
	return int64(len(s.chunks[projectID])), nil
}

func scored(projectID uuid.UUID, text string, distance float64) repository.ScoredChunk {
	return repository.ScoredChunk{
		Chunk:    repository.Chunk{ID: uuid.New(), ProjectID: projectID, Title: "doc", Text: text},
		Distance: distance,
	}
}

func TestRetrieveEmptyProjectIsPreconditionFailure(t *testing.T) {
	embedder := &stubEmbedder{}
	store := &stubSearcher{chunks: map[uuid.UUID][]repository.ScoredChunk{}}
	r := NewRetriever(embedder, store, Options{TopK: 10, Intent: "quiz"}, zerolog.Nop())

	_, err := r.Retrieve(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.KindPrecondition))
	assert.Zero(t, embedder.calls, "no embedding call for an empty project")
	assert.False(t, store.nearCalled)
}

func TestRetrieveReturnsAvailableWhenFewerThanK(t *testing.T) {
	projectID := uuid.New()
	embedder := &stubEmbedder{}
	store := &stubSearcher{chunks: map[uuid.UUID][]repository.ScoredChunk{
		projectID: {scored(projectID, "one", 0.1), scored(projectID, "two", 0.2)},
	}}
	r := NewRetriever(embedder, store, Options{TopK: 10, Intent: "quiz"}, zerolog.Nop())

	chunks, err := r.Retrieve(context.Background(), projectID)
	require.NoError(t, err)
	assert.Len(t, chunks, 2, "k is a ceiling, never a pad target")
	assert.Equal(t, 10, store.lastK)
}

func TestRetrieveScopesToRequestedProject(t *testing.T) {
	mine := uuid.New()
	other := uuid.New()
	embedder := &stubEmbedder{}
	store := &stubSearcher{chunks: map[uuid.UUID][]repository.ScoredChunk{
		mine:  {scored(mine, "mine", 0.1)},
		other: {scored(other, "other", 0.05)},
	}}
	r := NewRetriever(embedder, store, Options{TopK: 5, Intent: "quiz"}, zerolog.Nop())

	chunks, err := r.Retrieve(context.Background(), mine)
	require.NoError(t, err)
	assert.Equal(t, mine, store.lastProj)
	for _, sc := range chunks {
		assert.Equal(t, mine, sc.Chunk.ProjectID)
	}
}

func TestRetrieveEmbedsIntentNotUserText(t *testing.T) {
	projectID := uuid.New()
	embedder := &stubEmbedder{}
	store := &stubSearcher{chunks: map[uuid.UUID][]repository.ScoredChunk{
		projectID: {scored(projectID, "one", 0.1)},
	}}
	r := NewRetriever(embedder, store, Options{TopK: 5, Intent: "generate an exam quiz"}, zerolog.Nop())

	_, err := r.Retrieve(context.Background(), projectID)
	require.NoError(t, err)
	require.Len(t, embedder.queries, 1)
	assert.Equal(t, "generate an exam quiz", embedder.queries[0])
}
