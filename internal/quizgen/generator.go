package quizgen

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"

	"github.com/quizforge/studyrag/internal/db/repository"
	"github.com/quizforge/studyrag/internal/fault"
)

// Completer issues one completion request. Satisfied by langchaingo's
// OpenAI client.
type Completer interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// GeneratorOptions fixes the model call and validation policy.
type GeneratorOptions struct {
	Temperature    float64
	CorrectMode    string
	CountTolerance int
}

// Generator runs a single issue->strip->parse->extract->validate attempt
// against the completion model. One call produces either a valid Quiz or
// a fully diagnosed failure; retrying is the caller's policy, not ours.
type Generator struct {
	llm    Completer
	opts   GeneratorOptions
	logger zerolog.Logger
}

// NewGenerator constructs a generator over a completion client.
func NewGenerator(llm Completer, opts GeneratorOptions, logger zerolog.Logger) *Generator {
	if opts.CorrectMode == "" {
		opts.CorrectMode = CorrectModeLabel
	}
	return &Generator{
		llm:    llm,
		opts:   opts,
		logger: logger.With().Str("component", "quiz_generator").Logger(),
	}
}

// Generate prompts the model over the retrieved context and recovers a
// validated quiz from the raw completion. The JSON-mode hint is sent but
// never trusted: the raw text goes through the full repair pipeline
// regardless.
func (g *Generator) Generate(ctx context.Context, chunks []repository.ScoredChunk, req Request) (Quiz, error) {
	prompt := BuildPrompt(chunks, req, PromptOptions{CorrectMode: g.opts.CorrectMode})

	resp, err := g.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, SystemPrompt),
			llms.TextParts(llms.ChatMessageTypeHuman, prompt),
		},
		llms.WithTemperature(g.opts.Temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		return Quiz{}, fault.Wrap(err, fault.KindUpstream, "completion call")
	}
	if len(resp.Choices) == 0 {
		return Quiz{}, fault.New(fault.KindUpstream, "completion returned no choices")
	}

	quiz, err := ParseQuiz(resp.Choices[0].Content)
	if err != nil {
		return Quiz{}, err
	}

	err = ValidateQuiz(&quiz, ValidateOptions{
		Requested:   req.NumQuestions,
		Tolerance:   g.opts.CountTolerance,
		CorrectMode: g.opts.CorrectMode,
	}, g.logger)
	if err != nil {
		return Quiz{}, err
	}

	if req.TimerSeconds > 0 {
		quiz.TimerSeconds = req.TimerSeconds
	}
	return quiz, nil
}
