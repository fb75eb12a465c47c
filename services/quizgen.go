package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

const (
	QuestionTypeMCQ       = "mcq"
	QuestionTypeTrueFalse = "true_false"

	MinQuizQuestions = 1
	MaxQuizQuestions = 20
)

const quizSystemPrompt = "You are a quiz writer. You respond with strict JSON only, no prose and no markdown fences."

// GeneratedQuestion is a quiz question from either generation path. The
// pointer fields mirror the provider's loosely shaped JSON; normalization
// fills anything the model omitted.
type GeneratedQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// GenerateQuiz produces exactly numQuestions questions from a lesson script.
// The AI attempt runs first when a provider is configured; any transport,
// parse or shape failure falls back to the deterministic generator. A count
// mismatch from the provider is repaired: excess is truncated, shortfall is
// topped up from the fallback generator. Normalization always runs.
func GenerateQuiz(provider AIProvider, script string, numQuestions int, questionType string) []GeneratedQuestion {
	var questions []GeneratedQuestion

	if provider != nil && provider.Configured() {
		questions = aiQuiz(provider, script, numQuestions, questionType)
	}
	if questions == nil {
		questions = FallbackQuiz(script, numQuestions, questionType)
	}

	if len(questions) != numQuestions {
		log.Printf("Quiz generator returned %d questions, expected %d; repairing", len(questions), numQuestions)
		if len(questions) > numQuestions {
			questions = questions[:numQuestions]
		} else {
			filler := FallbackQuiz(script, numQuestions-len(questions), questionType)
			questions = append(questions, filler...)
		}
	}

	normalizeQuestions(questions, questionType)
	return questions
}

func aiQuiz(provider AIProvider, script string, numQuestions int, questionType string) []GeneratedQuestion {
	prompt := buildQuizPrompt(script, numQuestions, questionType)

	raw, err := provider.GenerateJSON(prompt, quizSystemPrompt)
	if err != nil {
		log.Printf("AI quiz generation failed, using local fallback: %v", err)
		return nil
	}

	var parsed struct {
		Questions []GeneratedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		log.Printf("AI quiz response was not valid JSON, using local fallback: %v", err)
		return nil
	}
	if len(parsed.Questions) == 0 {
		log.Println("AI quiz response missing questions array, using local fallback")
		return nil
	}
	return parsed.Questions
}

func buildQuizPrompt(script string, numQuestions int, questionType string) string {
	optionRule := "exactly 4 plausible options"
	if questionType == QuestionTypeTrueFalse {
		optionRule = `exactly the 2 options ["True", "False"]`
	}
	return fmt.Sprintf(`Write %d %s questions about the lesson script below.
Respond with JSON of this exact shape:
{"questions": [{"id": "q1", "question": "...", "type": %q, "options": ["..."], "correct_answer": 0, "explanation": "..."}]}
Each question must have %s, and correct_answer must be the zero-based index of the right option.

Lesson script:
%s`, numQuestions, questionType, questionType, optionRule, script)
}

// FallbackQuiz deterministically synthesizes questions by cycling through
// the script's topics
func FallbackQuiz(script string, numQuestions int, questionType string) []GeneratedQuestion {
	topics := scriptTopics(script)

	questions := make([]GeneratedQuestion, numQuestions)
	for i := 0; i < numQuestions; i++ {
		topic := topics[i%len(topics)]
		correct := 0

		if questionType == QuestionTypeTrueFalse {
			questions[i] = GeneratedQuestion{
				ID:            fmt.Sprintf("q%d", i+1),
				Question:      fmt.Sprintf("True or False: this lesson covers \"%s\".", topic.Name),
				Type:          QuestionTypeTrueFalse,
				Options:       []string{"True", "False"},
				CorrectAnswer: &correct,
				Explanation:   fmt.Sprintf("The lesson includes a section on %s.", topic.Name),
			}
			continue
		}

		questions[i] = GeneratedQuestion{
			ID:       fmt.Sprintf("q%d", i+1),
			Question: fmt.Sprintf("Which of the following best relates to \"%s\"?", topic.Name),
			Type:     QuestionTypeMCQ,
			Options: []string{
				topicSnippet(topic),
				"A concept not covered in this lesson",
				"An unrelated historical event",
				"None of the above",
			},
			CorrectAnswer: &correct,
			Explanation:   fmt.Sprintf("See the \"%s\" section of the lesson.", topic.Name),
		}
	}
	return questions
}

type scriptTopic struct {
	Name string
	Body string
}

// scriptTopics derives fallback topics from the "## " headings, from long
// sentences when no headings exist, or from the whole script as a last
// resort
func scriptTopics(script string) []scriptTopic {
	segments := ParseSegments(script)
	topics := make([]scriptTopic, 0, len(segments))
	for _, seg := range segments[1:] {
		if seg.Heading != "" {
			topics = append(topics, scriptTopic{Name: seg.Heading, Body: seg.Body})
		}
	}
	if len(topics) > 0 {
		return topics
	}

	for _, sentence := range splitSentences(script) {
		if len(sentence) >= 40 {
			topics = append(topics, scriptTopic{Name: headingFromText(sentence), Body: sentence})
		}
	}
	if len(topics) > 0 {
		return topics
	}

	return []scriptTopic{{Name: "the lesson material", Body: script}}
}

func topicSnippet(topic scriptTopic) string {
	sentences := splitSentences(topic.Body)
	if len(sentences) > 0 {
		return strings.TrimSpace(sentences[0])
	}
	return topic.Name
}

// normalizeQuestions fills missing fields in place, regardless of which path
// produced the questions: ids unique within the set, option templates by
// kind, default correct answer, and clamping the correct index into range.
func normalizeQuestions(questions []GeneratedQuestion, questionType string) {
	seen := make(map[string]bool, len(questions))
	next := 1
	for i := range questions {
		q := &questions[i]
		// Repaired sets can mix AI ids with fallback ids; reassign collisions
		for q.ID == "" || seen[q.ID] {
			q.ID = fmt.Sprintf("q%d", next)
			next++
		}
		seen[q.ID] = true
		if q.Type == "" {
			q.Type = questionType
		}
		if len(q.Options) == 0 {
			if q.Type == QuestionTypeTrueFalse {
				q.Options = []string{"True", "False"}
			} else {
				q.Options = []string{"Option A", "Option B", "Option C", "Option D"}
			}
		}
		if q.CorrectAnswer == nil || *q.CorrectAnswer < 0 || *q.CorrectAnswer >= len(q.Options) {
			zero := 0
			q.CorrectAnswer = &zero
		}
		if q.Question == "" {
			q.Question = fmt.Sprintf("Question %d", i+1)
		}
	}
}
