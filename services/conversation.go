package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"learnix/config"

	"github.com/go-resty/resty/v2"
)

// ConversationSession is a live avatar session started at the provider
type ConversationSession struct {
	ConversationID  string `json:"conversation_id"`
	ConversationURL string `json:"conversation_url"`
	Resuming        bool   `json:"resuming"`
}

// BuildConversationContext derives the conversational context and greeting
// for a lesson. Starting from the beginning (or with no recorded progress)
// sends the whole script and enumerates every key concept; otherwise only
// the suffix from the last completed segment onward is sent, with a greeting
// naming the next topic.
func BuildConversationContext(script string, lastCompletedSegmentIndex int, startFromBeginning bool) (context string, greeting string, resuming bool) {
	concepts := KeyConcepts(script)

	if startFromBeginning || lastCompletedSegmentIndex <= 0 {
		greeting = fmt.Sprintf(
			"Hi! I'm your tutor for this lesson. We'll work through: %s. Ready to start?",
			strings.Join(concepts, ", "))
		return script, greeting, false
	}

	nextTopic := "the next part of the lesson"
	if lastCompletedSegmentIndex < len(concepts) {
		nextTopic = concepts[lastCompletedSegmentIndex]
	}

	greeting = fmt.Sprintf(
		"Welcome back! Last time we stopped partway through. Let's continue with %s.",
		nextTopic)
	return SliceFrom(script, lastCompletedSegmentIndex), greeting, true
}

// StartConversation starts an avatar video session seeded with lesson
// context. This is the one pipeline operation with no degraded mode: there
// is no local substitute for a live video session, so provider failures are
// surfaced with the provider's error body attached.
func StartConversation(lessonTitle, context, greeting string) (*ConversationSession, error) {
	cfg := config.AppConfig
	if cfg.ConversationApiKey == "" {
		return nil, fmt.Errorf("conversation provider is not configured")
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", cfg.ConversationApiKey).
		SetBody(map[string]interface{}{
			"replica_id":             cfg.ReplicaID,
			"persona_id":             cfg.PersonaID,
			"conversation_name":      lessonTitle,
			"conversational_context": context,
			"custom_greeting":        greeting,
		}).
		Post(cfg.ConversationApiURL)
	if err != nil {
		return nil, fmt.Errorf("conversation provider request failed: %v", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("conversation provider error (%d): %s", resp.StatusCode(), resp.String())
	}

	var result struct {
		ConversationID  string `json:"conversation_id"`
		ConversationURL string `json:"conversation_url"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("invalid conversation provider response: %v", err)
	}

	return &ConversationSession{
		ConversationID:  result.ConversationID,
		ConversationURL: result.ConversationURL,
	}, nil
}
