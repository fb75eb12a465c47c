package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackFlashcardsExactCount(t *testing.T) {
	for _, n := range []int{1, 6, 20} {
		cards := FallbackFlashcards(sampleScript, n)
		require.Len(t, cards, n)
	}
}

func TestFlashcardsNonEmptyAfterNormalization(t *testing.T) {
	// Every returned card has non-empty id/front/back regardless of path
	paths := map[string][]GeneratedFlashcard{
		"fallback": GenerateFlashcards(&AnthropicProvider{}, sampleScript, 5),
		"ai-partial": GenerateFlashcards(&stubProvider{response: `{"flashcards": [
			{"front": "Calvin cycle"}, {"back": "Occurs in the stroma"}, {}
		]}`}, sampleScript, 3),
	}

	for name, cards := range paths {
		for _, card := range cards {
			assert.NotEmpty(t, card.ID, name)
			assert.NotEmpty(t, card.Front, name)
			assert.NotEmpty(t, card.Back, name)
		}
	}
}

func TestFlashcardsFrontsComeFromHeadings(t *testing.T) {
	cards := FallbackFlashcards(sampleScript, 4)
	assert.Equal(t, "Light-dependent reactions", cards[0].Front)
	assert.Contains(t, cards[0].Back, "Chlorophyll")
}

func TestGenerateFlashcardsRepairsCountMismatch(t *testing.T) {
	provider := &stubProvider{response: `{"flashcards": [{"id": "card1", "front": "f", "back": "b"}]}`}

	cards := GenerateFlashcards(provider, sampleScript, 3)
	require.Len(t, cards, 3)

	cards = GenerateFlashcards(&stubProvider{response: `{"flashcards": [
		{"front": "a", "back": "1"}, {"front": "b", "back": "2"}, {"front": "c", "back": "3"}
	]}`}, sampleScript, 2)
	require.Len(t, cards, 2)
	assert.Equal(t, "a", cards[0].Front)
}

func TestGenerateFlashcardsRepairedSetHasUniqueIDs(t *testing.T) {
	provider := &stubProvider{response: `{"flashcards": [{"id": "card1", "front": "f", "back": "b"}]}`}

	cards := GenerateFlashcards(provider, sampleScript, 4)
	require.Len(t, cards, 4)

	ids := make(map[string]bool)
	for _, card := range cards {
		assert.False(t, ids[card.ID], "duplicate id %q", card.ID)
		ids[card.ID] = true
	}
}

func TestGenerateFlashcardsFallsBackOnInvalidJSON(t *testing.T) {
	cards := GenerateFlashcards(&stubProvider{response: "not json"}, sampleScript, 2)
	require.Len(t, cards, 2)
	assert.NotEmpty(t, cards[0].Front)
}
