package quizgen

import (
	"fmt"
	"strings"

	"github.com/quizforge/studyrag/internal/db/repository"
)

// SystemPrompt frames the completion model's role for every generation.
const SystemPrompt = "You create exam questions with full explanations, grounded strictly in the provided study material, always citing the source."

// PromptOptions fixes the schema variant the prompt asks for.
type PromptOptions struct {
	CorrectMode string
}

// BuildPrompt assembles the instruction+context prompt. It is a pure
// function: identical chunks and request yield an identical prompt.
// Chunk order preserves retrieval rank. The schema and rules below are
// advisory to the model; enforcement happens in validation.
func BuildPrompt(chunks []repository.ScoredChunk, req Request, opts PromptOptions) string {
	var b strings.Builder

	b.WriteString("Create ")
	b.WriteString(fmt.Sprint(req.NumQuestions))
	b.WriteString(" multiple-choice questions from the study material below.\n\n")

	b.WriteString("Return ONLY valid JSON. No prose. No markdown. Exactly this shape:\n")
	b.WriteString(`{"questions":[{"id":1,"topic":"string","question":"string","options":["string","string","string","string"],`)
	if opts.CorrectMode == CorrectModeText {
		b.WriteString(`"correct":"<the exact text of the correct option>",`)
	} else {
		b.WriteString(`"correct":"<A|B|C|D>",`)
	}
	b.WriteString(`"explanation":"string","explanation_extended":"string","source_file":"string","source_page":3,"source_excerpt":"string"}]}`)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Each question has exactly 4 options, all different, none empty.\n")
	if opts.CorrectMode == CorrectModeText {
		b.WriteString("- \"correct\" repeats the text of exactly one option, character for character.\n")
	} else {
		b.WriteString("- Options are in answer positions A, B, C, D in order; \"correct\" is the letter of the right one.\n")
	}
	b.WriteString("- \"explanation\" is required for every question and says why the answer is right.\n")
	b.WriteString("- Wrong options must be plausible distractors, not obvious throwaways.\n")
	b.WriteString("- Never refer to \"the slides\", \"the page\", \"the text above\" or similar in the question itself.\n")
	b.WriteString("- Write all questions, options and explanations in language: ")
	b.WriteString(req.Language)
	b.WriteString(".\n- Difficulty: ")
	b.WriteString(req.Difficulty)
	b.WriteString(".\n")
	if req.GroupByTopic {
		b.WriteString("- Group questions by macro-topic and set \"topic\" on every question.\n")
	}
	if req.ShuffleAnswers {
		b.WriteString("- Spread the correct answer across different option positions; do not always use the first.\n")
	}
	if req.TimerSeconds > 0 {
		b.WriteString(fmt.Sprintf("- Questions must be answerable within roughly %d seconds each.\n", req.TimerSeconds))
	}
	b.WriteString("- Cite source_file and source_page from the SOURCE and PAGE tags of the material you used.\n")

	b.WriteString("\nMaterial:\n")
	for _, sc := range chunks {
		b.WriteString("\nSOURCE: ")
		b.WriteString(sc.Chunk.Title)
		b.WriteString("\nPAGE: ")
		if sc.Chunk.Page != nil {
			b.WriteString(fmt.Sprint(*sc.Chunk.Page))
		} else {
			b.WriteString("unknown")
		}
		b.WriteString("\nTEXT:\n")
		b.WriteString(sc.Chunk.Text)
		b.WriteString("\n")
	}

	return b.String()
}
