package quizgen

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quizforge/studyrag/internal/db/repository"
	"github.com/quizforge/studyrag/internal/fault"
	"github.com/quizforge/studyrag/internal/metrics"
)

// ContextRetriever selects the chunks that ground one quiz.
type ContextRetriever interface {
	Retrieve(ctx context.Context, projectID uuid.UUID) ([]repository.ScoredChunk, error)
}

// QuizGenerator turns retrieved context into a validated quiz.
type QuizGenerator interface {
	Generate(ctx context.Context, chunks []repository.ScoredChunk, req Request) (Quiz, error)
}

// ServiceOptions bounds and defaults for quiz requests.
type ServiceOptions struct {
	MaxQuestions    int
	DefaultLanguage string
}

// Service runs the read path: request -> retrieval -> prompt ->
// generation -> validated quiz.
type Service struct {
	retriever ContextRetriever
	generator QuizGenerator
	opts      ServiceOptions
	logger    zerolog.Logger
}

// NewService constructs the quiz service.
func NewService(retriever ContextRetriever, generator QuizGenerator, opts ServiceOptions, logger zerolog.Logger) *Service {
	if opts.MaxQuestions <= 0 {
		opts.MaxQuestions = 200
	}
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = "en"
	}
	return &Service{
		retriever: retriever,
		generator: generator,
		opts:      opts,
		logger:    logger.With().Str("component", "quiz").Logger(),
	}
}

// Generate validates the request, retrieves context and produces a quiz.
// A project without any chunks fails the precondition before the
// completion service is ever called.
func (s *Service) Generate(ctx context.Context, projectID uuid.UUID, req Request) (Quiz, error) {
	req, err := s.normalize(req)
	if err != nil {
		return Quiz{}, err
	}

	chunks, err := s.retriever.Retrieve(ctx, projectID)
	if err != nil {
		metrics.QuizGenerations.WithLabelValues(string(fault.KindOf(err))).Inc()
		return Quiz{}, err
	}

	quiz, err := s.generator.Generate(ctx, chunks, req)
	if err != nil {
		metrics.QuizGenerations.WithLabelValues(string(fault.KindOf(err))).Inc()
		return Quiz{}, err
	}

	metrics.QuizGenerations.WithLabelValues("accepted").Inc()
	s.logger.Info().
		Str("project_id", projectID.String()).
		Int("requested", req.NumQuestions).
		Int("produced", len(quiz.Questions)).
		Msg("quiz generated")
	return quiz, nil
}

func (s *Service) normalize(req Request) (Request, error) {
	if req.NumQuestions < 1 || req.NumQuestions > s.opts.MaxQuestions {
		return Request{}, fault.New(fault.KindInvalid, "num_questions must be between 1 and %d, got %d", s.opts.MaxQuestions, req.NumQuestions)
	}
	switch req.Difficulty {
	case "":
		req.Difficulty = DifficultyMedium
	case DifficultyLow, DifficultyMedium, DifficultyHigh:
	default:
		return Request{}, fault.New(fault.KindInvalid, "difficulty must be one of low, medium, high, got %q", req.Difficulty)
	}
	if req.Language == "" {
		req.Language = s.opts.DefaultLanguage
	}
	if req.TimerSeconds < 0 {
		return Request{}, fault.New(fault.KindInvalid, "timer_seconds must not be negative")
	}
	return req, nil
}
