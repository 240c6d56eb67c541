package quizgen

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/quizforge/studyrag/internal/fault"
)

// ValidateOptions carries the per-request validation policy.
type ValidateOptions struct {
	// Requested is the question count the caller asked for. The model may
	// under-produce; that is accepted. Overshooting by more than
	// Tolerance is accepted too, but never silently.
	Requested int
	Tolerance int
	// CorrectMode selects how the correct marker references its option.
	CorrectMode string
}

// ValidateQuiz checks domain validity of a parsed quiz and normalizes
// ids and correct markers in place. Syntactic JSON validity does not
// imply domain validity: a model can emit three options or a correct
// marker pointing nowhere, so every item is checked individually. Any
// violation names the offending item and the rule it broke.
func ValidateQuiz(quiz *Quiz, opts ValidateOptions, logger zerolog.Logger) error {
	if len(quiz.Questions) == 0 {
		return fault.New(fault.KindMalformed, "quiz has no questions")
	}

	seenStems := make(map[string]int, len(quiz.Questions))
	for i := range quiz.Questions {
		q := &quiz.Questions[i]

		stem := strings.TrimSpace(q.Question)
		if stem == "" {
			return fault.New(fault.KindMalformed, "question %d: empty question text", i)
		}
		if prev, dup := seenStems[stem]; dup {
			return fault.New(fault.KindMalformed, "question %d: duplicate of question %d", i, prev)
		}
		seenStems[stem] = i

		if len(q.Options) != 4 {
			return fault.New(fault.KindMalformed, "question %d: has %d options, want exactly 4", i, len(q.Options))
		}
		trimmed := lo.Map(q.Options, func(opt string, _ int) string { return strings.TrimSpace(opt) })
		if lo.SomeBy(trimmed, func(opt string) bool { return opt == "" }) {
			return fault.New(fault.KindMalformed, "question %d: empty option", i)
		}
		if len(lo.Uniq(trimmed)) != 4 {
			return fault.New(fault.KindMalformed, "question %d: duplicate option text", i)
		}
		q.Options = trimmed

		if err := resolveCorrect(q, i, opts.CorrectMode); err != nil {
			return err
		}

		if strings.TrimSpace(q.Explanation) == "" {
			return fault.New(fault.KindMalformed, "question %d: missing explanation", i)
		}

		// Ids from the model are untrusted; renumber to guarantee
		// uniqueness within the quiz.
		q.ID = i + 1
	}

	if opts.Requested > 0 && len(quiz.Questions) > opts.Requested+opts.Tolerance {
		logger.Warn().
			Int("requested", opts.Requested).
			Int("produced", len(quiz.Questions)).
			Msg("model produced more questions than requested")
	}

	return nil
}

// resolveCorrect checks that the correct marker references exactly one
// option and canonicalizes it to a letter label.
func resolveCorrect(q *Question, idx int, mode string) error {
	marker := strings.TrimSpace(q.Correct)
	if marker == "" {
		return fault.New(fault.KindMalformed, "question %d: missing correct marker", idx)
	}

	if mode == CorrectModeText {
		pos := lo.IndexOf(q.Options, marker)
		if pos == -1 {
			return fault.New(fault.KindMalformed, "question %d: correct text %q matches no option", idx, snippet(marker))
		}
		q.Correct = OptionLabels[pos]
		return nil
	}

	label := strings.ToUpper(marker)
	pos := lo.IndexOf(OptionLabels, label)
	if pos == -1 || pos >= len(q.Options) {
		return fault.New(fault.KindMalformed, "question %d: correct label %q is not one of A-D", idx, snippet(marker))
	}
	q.Correct = label
	return nil
}
