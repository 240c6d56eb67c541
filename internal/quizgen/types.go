package quizgen

// Difficulty tiers accepted in quiz requests.
const (
	DifficultyLow    = "low"
	DifficultyMedium = "medium"
	DifficultyHigh   = "high"
)

// Correct-marker schema variants. With CorrectModeLabel the model cites
// the option letter (A-D); with CorrectModeText it repeats the option
// text verbatim.
const (
	CorrectModeLabel = "label"
	CorrectModeText  = "text"
)

// OptionLabels are the four fixed option letters, in order.
var OptionLabels = []string{"A", "B", "C", "D"}

// Request is the transient quiz request value object. It is never
// persisted.
type Request struct {
	NumQuestions   int    `json:"num_questions"`
	Language       string `json:"language,omitempty"`
	Difficulty     string `json:"difficulty,omitempty"`
	GroupByTopic   bool   `json:"group_by_topic,omitempty"`
	ShuffleAnswers bool   `json:"shuffle_answers,omitempty"`
	TimerSeconds   int    `json:"timer_seconds,omitempty"`
}

// Question is one validated quiz item.
type Question struct {
	ID                  int      `json:"id"`
	Topic               string   `json:"topic,omitempty"`
	Question            string   `json:"question"`
	Options             []string `json:"options"`
	Correct             string   `json:"correct"`
	Explanation         string   `json:"explanation"`
	ExplanationExtended string   `json:"explanation_extended,omitempty"`
	SourceFile          string   `json:"source_file,omitempty"`
	SourcePage          *int     `json:"source_page,omitempty"`
	SourceExcerpt       string   `json:"source_excerpt,omitempty"`
}

// Quiz is the validated output returned to callers.
type Quiz struct {
	Questions    []Question `json:"questions"`
	TimerSeconds int        `json:"timer_seconds,omitempty"`
}
