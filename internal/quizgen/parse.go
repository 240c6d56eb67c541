package quizgen

import (
	"encoding/json"
	"strings"

	"github.com/quizforge/studyrag/internal/fault"
)

// snippetLimit bounds how much raw model output an error message may
// carry.
const snippetLimit = 240

// wireQuestion tolerates the key variants models actually emit: the
// option list arrives as "options" or "answers", the stem as "question"
// or "stem", the page as "source_page" or "page".
type wireQuestion struct {
	ID                  int      `json:"id"`
	Topic               string   `json:"topic"`
	Question            string   `json:"question"`
	Stem                string   `json:"stem"`
	Options             []string `json:"options"`
	Answers             []string `json:"answers"`
	Correct             string   `json:"correct"`
	Explanation         string   `json:"explanation"`
	ExplanationExtended string   `json:"explanation_extended"`
	SourceFile          string   `json:"source_file"`
	SourcePage          *int     `json:"source_page"`
	Page                *int     `json:"page"`
	SourceExcerpt       string   `json:"source_excerpt"`
}

type wireQuiz struct {
	Questions []wireQuestion `json:"questions"`
}

// ParseQuiz recovers a Quiz value from untrusted completion text. It
// strips code fences, tries a direct parse, and falls back to extracting
// the outermost bracket-delimited container before giving up. The
// returned quiz is syntactically sound but not yet domain-validated.
func ParseQuiz(raw string) (Quiz, error) {
	stripped := stripFences(raw)

	if quiz, ok := decodeQuiz(stripped); ok {
		return quiz, nil
	}

	extracted, ok := extractContainer(stripped)
	if !ok {
		return Quiz{}, fault.New(fault.KindMalformed, "completion contains no JSON container: %q", snippet(raw))
	}
	if quiz, ok := decodeQuiz(extracted); ok {
		return quiz, nil
	}
	return Quiz{}, fault.New(fault.KindMalformed, "completion is not parseable JSON: %q", snippet(raw))
}

// stripFences removes a wrapping markdown code fence and its language
// tag, if present.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractContainer locates the outermost bracket pair: from the first
// opening brace or bracket to the last matching closer. Models routinely
// wrap valid JSON in prose despite instructions, so giving up after the
// direct parse would be needlessly brittle.
func extractContainer(s string) (string, bool) {
	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')

	start := objStart
	closer := byte('}')
	if start == -1 || (arrStart != -1 && arrStart < start) {
		start = arrStart
		closer = ']'
	}
	if start == -1 {
		return "", false
	}

	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// decodeQuiz parses either the {"questions": [...]} container or a bare
// top-level array of questions.
func decodeQuiz(s string) (Quiz, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Quiz{}, false
	}

	var wire wireQuiz
	if trimmed[0] == '[' {
		if err := json.Unmarshal([]byte(trimmed), &wire.Questions); err != nil {
			return Quiz{}, false
		}
	} else {
		if err := json.Unmarshal([]byte(trimmed), &wire); err != nil {
			return Quiz{}, false
		}
	}

	quiz := Quiz{Questions: make([]Question, 0, len(wire.Questions))}
	for _, wq := range wire.Questions {
		quiz.Questions = append(quiz.Questions, wq.normalize())
	}
	return quiz, true
}

func (wq wireQuestion) normalize() Question {
	q := Question{
		ID:                  wq.ID,
		Topic:               wq.Topic,
		Question:            wq.Question,
		Options:             wq.Options,
		Correct:             wq.Correct,
		Explanation:         wq.Explanation,
		ExplanationExtended: wq.ExplanationExtended,
		SourceFile:          wq.SourceFile,
		SourcePage:          wq.SourcePage,
		SourceExcerpt:       wq.SourceExcerpt,
	}
	if q.Question == "" {
		q.Question = wq.Stem
	}
	if len(q.Options) == 0 {
		q.Options = wq.Answers
	}
	if q.SourcePage == nil {
		q.SourcePage = wq.Page
	}
	return q
}

// snippet truncates raw output for diagnostics so error payloads stay
// bounded.
func snippet(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) <= snippetLimit {
		return s
	}
	return s[:snippetLimit] + "..."
}
