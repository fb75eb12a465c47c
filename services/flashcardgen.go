package services

import (
	"encoding/json"
	"fmt"
	"log"
)

const (
	MinFlashcards = 1
	MaxFlashcards = 20
)

const flashcardSystemPrompt = "You are a study-card writer. You respond with strict JSON only, no prose and no markdown fences."

// GeneratedFlashcard is a front/back study card from either generation path
type GeneratedFlashcard struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// GenerateFlashcards produces exactly numCards cards from a lesson script.
// Same dual-path shape as quiz generation: AI attempt, deterministic
// fallback on any failure, count repair, then normalization so every card
// has non-empty id/front/back.
func GenerateFlashcards(provider AIProvider, script string, numCards int) []GeneratedFlashcard {
	var cards []GeneratedFlashcard

	if provider != nil && provider.Configured() {
		cards = aiFlashcards(provider, script, numCards)
	}
	if cards == nil {
		cards = FallbackFlashcards(script, numCards)
	}

	if len(cards) != numCards {
		log.Printf("Flashcard generator returned %d cards, expected %d; repairing", len(cards), numCards)
		if len(cards) > numCards {
			cards = cards[:numCards]
		} else {
			cards = append(cards, FallbackFlashcards(script, numCards-len(cards))...)
		}
	}

	normalizeFlashcards(cards)
	return cards
}

func aiFlashcards(provider AIProvider, script string, numCards int) []GeneratedFlashcard {
	prompt := fmt.Sprintf(`Write %d flashcards about the lesson script below.
Respond with JSON of this exact shape:
{"flashcards": [{"id": "card1", "front": "question or term", "back": "answer or definition"}]}

Lesson script:
%s`, numCards, script)

	raw, err := provider.GenerateJSON(prompt, flashcardSystemPrompt)
	if err != nil {
		log.Printf("AI flashcard generation failed, using local fallback: %v", err)
		return nil
	}

	var parsed struct {
		Flashcards []GeneratedFlashcard `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		log.Printf("AI flashcard response was not valid JSON, using local fallback: %v", err)
		return nil
	}
	if len(parsed.Flashcards) == 0 {
		log.Println("AI flashcard response missing flashcards array, using local fallback")
		return nil
	}
	return parsed.Flashcards
}

// FallbackFlashcards deterministically synthesizes cards by cycling through
// the script's topics
func FallbackFlashcards(script string, numCards int) []GeneratedFlashcard {
	topics := scriptTopics(script)

	cards := make([]GeneratedFlashcard, numCards)
	for i := 0; i < numCards; i++ {
		topic := topics[i%len(topics)]
		cards[i] = GeneratedFlashcard{
			ID:    fmt.Sprintf("card%d", i+1),
			Front: topic.Name,
			Back:  topicSnippet(topic),
		}
	}
	return cards
}

// normalizeFlashcards guarantees non-empty, set-unique ids and non-empty
// front/back on every card, whichever path produced it
func normalizeFlashcards(cards []GeneratedFlashcard) {
	seen := make(map[string]bool, len(cards))
	next := 1
	for i := range cards {
		card := &cards[i]
		for card.ID == "" || seen[card.ID] {
			card.ID = fmt.Sprintf("card%d", next)
			next++
		}
		seen[card.ID] = true
		if card.Front == "" {
			card.Front = fmt.Sprintf("Card %d", i+1)
		}
		if card.Back == "" {
			card.Back = "Review the lesson material."
		}
	}
}
