package quizgen

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/quizforge/studyrag/internal/db/repository"
	"github.com/quizforge/studyrag/internal/fault"
)

type stubCompleter struct {
	calls   int
	content string
	err     error
}

func (s *stubCompleter) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: s.content}}}, nil
}

func testChunks() []repository.ScoredChunk {
	page := 3
	return []repository.ScoredChunk{
		{Chunk: repository.Chunk{Title: "Cell Membranes", Page: &page, Text: "The membrane is a lipid bilayer."}, Distance: 0.1},
	}
}

func newTestGenerator(llm Completer) *Generator {
	return NewGenerator(llm, GeneratorOptions{Temperature: 0.3, CorrectMode: CorrectModeLabel, CountTolerance: 2}, zerolog.Nop())
}

func TestGenerateRecoversWrappedOutput(t *testing.T) {
	llm := &stubCompleter{content: "Here is your quiz:\n```json\n" + validQuizJSON + "\n```"}
	gen := newTestGenerator(llm)

	quiz, err := gen.Generate(context.Background(), testChunks(), Request{NumQuestions: 1, Language: "en", Difficulty: DifficultyMedium})
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "A", quiz.Questions[0].Correct)
}

func TestGenerateUpstreamFailure(t *testing.T) {
	llm := &stubCompleter{err: errors.New("rate limited")}
	gen := newTestGenerator(llm)

	_, err := gen.Generate(context.Background(), testChunks(), Request{NumQuestions: 1, Language: "en", Difficulty: DifficultyMedium})
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.KindUpstream))
}

func TestGenerateMalformedOutput(t *testing.T) {
	llm := &stubCompleter{content: "I cannot produce a quiz from this."}
	gen := newTestGenerator(llm)

	_, err := gen.Generate(context.Background(), testChunks(), Request{NumQuestions: 1, Language: "en", Difficulty: DifficultyMedium})
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.KindMalformed))
}

func TestGenerateRejectsDomainInvalidOutput(t *testing.T) {
	// syntactically valid JSON, domain-invalid content (three options)
	llm := &stubCompleter{content: `{"questions":[{"question":"Q?","options":["a","b","c"],"correct":"A","explanation":"e"}]}`}
	gen := newTestGenerator(llm)

	_, err := gen.Generate(context.Background(), testChunks(), Request{NumQuestions: 1, Language: "en", Difficulty: DifficultyMedium})
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.KindMalformed))
	assert.Contains(t, err.Error(), "3 options")
}

func TestGenerateAcceptsFewerQuestionsThanRequested(t *testing.T) {
	llm := &stubCompleter{content: validQuizJSON}
	gen := newTestGenerator(llm)

	quiz, err := gen.Generate(context.Background(), testChunks(), Request{NumQuestions: 5, Language: "en", Difficulty: DifficultyMedium})
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 1)
}

func TestGenerateCarriesTimer(t *testing.T) {
	llm := &stubCompleter{content: validQuizJSON}
	gen := newTestGenerator(llm)

	quiz, err := gen.Generate(context.Background(), testChunks(), Request{NumQuestions: 1, Language: "en", Difficulty: DifficultyMedium, TimerSeconds: 30})
	require.NoError(t, err)
	assert.Equal(t, 30, quiz.TimerSeconds)
}
