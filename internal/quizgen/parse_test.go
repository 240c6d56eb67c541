package quizgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/studyrag/internal/fault"
)

const validQuizJSON = `{"questions":[{"id":1,"question":"What does the sodium-potassium pump transport?","options":["Ions","Glucose","Lipids","Water"],"correct":"A","explanation":"It moves sodium and potassium ions across the membrane.","source_file":"Cell Membranes","source_page":3}]}`

func TestParseQuizDirect(t *testing.T) {
	quiz, err := ParseQuiz(validQuizJSON)
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "A", quiz.Questions[0].Correct)
	require.NotNil(t, quiz.Questions[0].SourcePage)
	assert.Equal(t, 3, *quiz.Questions[0].SourcePage)
}

func TestParseQuizStripsCodeFence(t *testing.T) {
	fenced := "```json\n" + validQuizJSON + "\n```"
	quiz, err := ParseQuiz(fenced)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 1)
}

func TestParseQuizRecoversFromProseWrapping(t *testing.T) {
	// leading sentence plus a trailing fence marker, the shape models
	// actually produce despite instructions
	wrapped := "Sure, here is the quiz you asked for:\n" + validQuizJSON + "\n```"
	quiz, err := ParseQuiz(wrapped)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 1)
}

func TestParseQuizAcceptsTopLevelArray(t *testing.T) {
	arr := `[{"question":"Q1?","options":["a","b","c","d"],"correct":"B","explanation":"because"}]`
	quiz, err := ParseQuiz("Here you go: " + arr)
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "Q1?", quiz.Questions[0].Question)
}

func TestParseQuizToleratesKeyVariants(t *testing.T) {
	variant := `{"questions":[{"stem":"Q1?","answers":["a","b","c","d"],"correct":"C","explanation":"because","page":7}]}`
	quiz, err := ParseQuiz(variant)
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	q := quiz.Questions[0]
	assert.Equal(t, "Q1?", q.Question)
	assert.Equal(t, []string{"a", "b", "c", "d"}, q.Options)
	require.NotNil(t, q.SourcePage)
	assert.Equal(t, 7, *q.SourcePage)
}

func TestParseQuizNoContainer(t *testing.T) {
	_, err := ParseQuiz("I could not generate a quiz from this material, sorry.")
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.KindMalformed))
}

func TestParseQuizUnparseableContainer(t *testing.T) {
	_, err := ParseQuiz(`{"questions": [ {"question": "broken`)
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.KindMalformed))
}

func TestParseQuizDiagnosticIsBounded(t *testing.T) {
	garbage := "not json " + strings.Repeat("x", 10000)
	_, err := ParseQuiz(garbage)
	require.Error(t, err)
	assert.Less(t, len(err.Error()), 400, "diagnostics must never carry the full raw output")
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"json tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripFences(tc.in))
		})
	}
}

func TestExtractContainer(t *testing.T) {
	got, ok := extractContainer(`prefix {"questions":[]} suffix`)
	require.True(t, ok)
	assert.Equal(t, `{"questions":[]}`, got)

	got, ok = extractContainer(`text [1,2,3] more`)
	require.True(t, ok)
	assert.Equal(t, `[1,2,3]`, got)

	_, ok = extractContainer("no brackets at all")
	assert.False(t, ok)

	_, ok = extractContainer("only open {")
	assert.False(t, ok)
}
