package quizgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/studyrag/internal/db/repository"
)

func promptChunks() []repository.ScoredChunk {
	p3, p9 := 3, 9
	return []repository.ScoredChunk{
		{Chunk: repository.Chunk{Title: "Cell Membranes", Page: &p3, Text: "The membrane is a lipid bilayer."}, Distance: 0.12},
		{Chunk: repository.Chunk{Title: "Transport", Page: &p9, Text: "Active transport consumes ATP."}, Distance: 0.31},
		{Chunk: repository.Chunk{Title: "Notes", Page: nil, Text: "Osmosis is passive."}, Distance: 0.44},
	}
}

func basePromptRequest() Request {
	return Request{NumQuestions: 5, Language: "en", Difficulty: DifficultyMedium}
}

func TestBuildPromptDeterministic(t *testing.T) {
	a := BuildPrompt(promptChunks(), basePromptRequest(), PromptOptions{CorrectMode: CorrectModeLabel})
	b := BuildPrompt(promptChunks(), basePromptRequest(), PromptOptions{CorrectMode: CorrectModeLabel})
	assert.Equal(t, a, b)
}

func TestBuildPromptPreservesRankOrder(t *testing.T) {
	prompt := BuildPrompt(promptChunks(), basePromptRequest(), PromptOptions{CorrectMode: CorrectModeLabel})

	first := strings.Index(prompt, "SOURCE: Cell Membranes")
	second := strings.Index(prompt, "SOURCE: Transport")
	third := strings.Index(prompt, "SOURCE: Notes")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	require.NotEqual(t, -1, third)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestBuildPromptProvenanceBlocks(t *testing.T) {
	prompt := BuildPrompt(promptChunks(), basePromptRequest(), PromptOptions{CorrectMode: CorrectModeLabel})

	assert.Contains(t, prompt, "SOURCE: Cell Membranes\nPAGE: 3\nTEXT:\nThe membrane is a lipid bilayer.")
	assert.Contains(t, prompt, "SOURCE: Notes\nPAGE: unknown\nTEXT:\nOsmosis is passive.")
}

func TestBuildPromptRequestParameters(t *testing.T) {
	req := basePromptRequest()
	req.NumQuestions = 12
	req.Language = "it"
	req.Difficulty = DifficultyHigh

	prompt := BuildPrompt(promptChunks(), req, PromptOptions{CorrectMode: CorrectModeLabel})

	assert.Contains(t, prompt, "Create 12 multiple-choice questions")
	assert.Contains(t, prompt, "language: it")
	assert.Contains(t, prompt, "Difficulty: high")
}

func TestBuildPromptCorrectModeSchema(t *testing.T) {
	label := BuildPrompt(promptChunks(), basePromptRequest(), PromptOptions{CorrectMode: CorrectModeLabel})
	text := BuildPrompt(promptChunks(), basePromptRequest(), PromptOptions{CorrectMode: CorrectModeText})

	assert.Contains(t, label, `"correct":"<A|B|C|D>"`)
	assert.NotContains(t, label, "character for character")
	assert.Contains(t, text, `"correct":"<the exact text of the correct option>"`)
	assert.Contains(t, text, "character for character")
}

func TestBuildPromptConditionalRules(t *testing.T) {
	req := basePromptRequest()
	plain := BuildPrompt(promptChunks(), req, PromptOptions{CorrectMode: CorrectModeLabel})
	assert.NotContains(t, plain, "macro-topic")
	assert.NotContains(t, plain, "option positions;")
	assert.NotContains(t, plain, "answerable within")

	req.GroupByTopic = true
	req.ShuffleAnswers = true
	req.TimerSeconds = 45
	full := BuildPrompt(promptChunks(), req, PromptOptions{CorrectMode: CorrectModeLabel})
	assert.Contains(t, full, "Group questions by macro-topic")
	assert.Contains(t, full, "Spread the correct answer across different option positions")
	assert.Contains(t, full, "answerable within roughly 45 seconds")
}
