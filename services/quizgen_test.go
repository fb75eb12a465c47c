package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider is a canned AIProvider for generator tests
type stubProvider struct {
	response string
	err      error
}

func (s *stubProvider) GenerateText(prompt, systemPrompt string) (string, error) {
	return s.response, s.err
}

func (s *stubProvider) GenerateJSON(prompt, systemPrompt string) (string, error) {
	return s.response, s.err
}

func (s *stubProvider) Configured() bool { return true }
func (s *stubProvider) Name() string     { return "stub" }

func TestFallbackQuizExactCountAndShapeMCQ(t *testing.T) {
	for _, n := range []int{1, 4, 20} {
		questions := FallbackQuiz(sampleScript, n, QuestionTypeMCQ)
		normalizeQuestions(questions, QuestionTypeMCQ)

		require.Len(t, questions, n)
		for i, q := range questions {
			assert.Equal(t, fmt.Sprintf("q%d", i+1), q.ID)
			assert.Len(t, q.Options, 4)
			require.NotNil(t, q.CorrectAnswer)
			assert.GreaterOrEqual(t, *q.CorrectAnswer, 0)
			assert.Less(t, *q.CorrectAnswer, 4)
			assert.NotEmpty(t, q.Question)
		}
	}
}

func TestFallbackQuizTrueFalseWithoutAPIKey(t *testing.T) {
	provider := &OpenAIProvider{APIKey: ""}

	questions := GenerateQuiz(provider, sampleScript, 5, QuestionTypeTrueFalse)

	require.Len(t, questions, 5)
	for _, q := range questions {
		assert.Equal(t, []string{"True", "False"}, q.Options)
		require.NotNil(t, q.CorrectAnswer)
		assert.Contains(t, []int{0, 1}, *q.CorrectAnswer)
	}
}

func TestFallbackQuizCyclesTopicsWhenFewerThanRequested(t *testing.T) {
	// Four headings, ten questions: topics must cycle, not run out
	questions := FallbackQuiz(sampleScript, 10, QuestionTypeMCQ)
	require.Len(t, questions, 10)
	assert.Equal(t, questions[0].Question, questions[4].Question)
}

func TestFallbackQuizOnHeadinglessScript(t *testing.T) {
	script := "Entropy always increases in an isolated system over time. " +
		"Energy spontaneously disperses from being localized to becoming spread out."
	questions := FallbackQuiz(script, 3, QuestionTypeMCQ)
	require.Len(t, questions, 3)
	for _, q := range questions {
		assert.NotEmpty(t, q.Question)
	}
}

func TestGenerateQuizAcceptsWellFormedAIResponse(t *testing.T) {
	provider := &stubProvider{response: `{"questions": [
		{"id": "q1", "question": "What splits water?", "type": "mcq",
		 "options": ["Light reactions", "Calvin cycle", "Osmosis", "Glycolysis"],
		 "correct_answer": 0, "explanation": "Photolysis occurs in the light reactions."}
	]}`}

	questions := GenerateQuiz(provider, sampleScript, 1, QuestionTypeMCQ)
	require.Len(t, questions, 1)
	assert.Equal(t, "What splits water?", questions[0].Question)
	assert.Equal(t, 0, *questions[0].CorrectAnswer)
}

func TestGenerateQuizNormalizesPartialAIResponse(t *testing.T) {
	// Model omitted ids, options and correct answers
	provider := &stubProvider{response: `{"questions": [
		{"question": "First?"},
		{"question": "Second?"}
	]}`}

	questions := GenerateQuiz(provider, sampleScript, 2, QuestionTypeMCQ)

	require.Len(t, questions, 2)
	assert.Equal(t, "q1", questions[0].ID)
	assert.Equal(t, "q2", questions[1].ID)
	for _, q := range questions {
		assert.Len(t, q.Options, 4)
		require.NotNil(t, q.CorrectAnswer)
		assert.Equal(t, 0, *q.CorrectAnswer)
	}
}

func TestGenerateQuizStripsMarkdownFences(t *testing.T) {
	provider := &stubProvider{response: "```json\n{\"questions\": [{\"id\": \"q1\", \"question\": \"Fenced?\", \"options\": [\"a\", \"b\", \"c\", \"d\"], \"correct_answer\": 2}]}\n```"}

	questions := GenerateQuiz(provider, sampleScript, 1, QuestionTypeMCQ)
	require.Len(t, questions, 1)
	assert.Equal(t, "Fenced?", questions[0].Question)
	assert.Equal(t, 2, *questions[0].CorrectAnswer)
}

func TestGenerateQuizRepairsCountMismatch(t *testing.T) {
	// Provider returned 1 question when 3 were requested: topped up
	provider := &stubProvider{response: `{"questions": [{"id": "q1", "question": "Only one?", "options": ["a", "b", "c", "d"], "correct_answer": 1}]}`}
	questions := GenerateQuiz(provider, sampleScript, 3, QuestionTypeMCQ)
	require.Len(t, questions, 3)

	// Provider returned 3 questions when 1 was requested: truncated
	provider = &stubProvider{response: `{"questions": [
		{"question": "a?"}, {"question": "b?"}, {"question": "c?"}
	]}`}
	questions = GenerateQuiz(provider, sampleScript, 1, QuestionTypeMCQ)
	require.Len(t, questions, 1)
	assert.Equal(t, "a?", questions[0].Question)
}

func TestGenerateQuizRepairedSetHasUniqueIDs(t *testing.T) {
	// Topped-up fallback questions restart numbering at q1; the AI already
	// used q1 and q2, so the repaired set must be renumbered
	provider := &stubProvider{response: `{"questions": [
		{"id": "q1", "question": "One?", "options": ["a", "b", "c", "d"], "correct_answer": 0},
		{"id": "q2", "question": "Two?", "options": ["a", "b", "c", "d"], "correct_answer": 1}
	]}`}

	questions := GenerateQuiz(provider, sampleScript, 5, QuestionTypeMCQ)
	require.Len(t, questions, 5)

	ids := make(map[string]bool)
	for _, q := range questions {
		assert.NotEmpty(t, q.ID)
		assert.False(t, ids[q.ID], "duplicate id %q", q.ID)
		ids[q.ID] = true
	}
}

func TestGenerateQuizFallsBackOnInvalidJSON(t *testing.T) {
	provider := &stubProvider{response: "I'm sorry, I can't produce JSON right now."}

	questions := GenerateQuiz(provider, sampleScript, 4, QuestionTypeMCQ)
	require.Len(t, questions, 4)
	for _, q := range questions {
		assert.Len(t, q.Options, 4)
	}
}

func TestGenerateQuizFallsBackOnMissingQuestionsArray(t *testing.T) {
	provider := &stubProvider{response: `{"items": []}`}

	questions := GenerateQuiz(provider, sampleScript, 2, QuestionTypeTrueFalse)
	require.Len(t, questions, 2)
	assert.Equal(t, []string{"True", "False"}, questions[0].Options)
}

func TestNormalizeClampsOutOfRangeCorrectAnswer(t *testing.T) {
	bad := 9
	questions := []GeneratedQuestion{{Question: "x?", Options: []string{"a", "b"}, CorrectAnswer: &bad}}
	normalizeQuestions(questions, QuestionTypeMCQ)
	assert.Equal(t, 0, *questions[0].CorrectAnswer)
}
