package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"learnix/config"

	"github.com/go-resty/resty/v2"
)

// AIProvider is the interface for AI model providers
type AIProvider interface {
	GenerateText(prompt string, systemPrompt string) (string, error)
	GenerateJSON(prompt string, systemPrompt string) (string, error)
	Configured() bool
	Name() string
}

// AnthropicProvider implements Claude
type AnthropicProvider struct {
	APIKey string
	Model  string
}

// OpenAIProvider implements OpenAI
type OpenAIProvider struct {
	APIKey string
	Model  string
}

// NewAIProvider builds the provider selected by configuration
func NewAIProvider() AIProvider {
	cfg := config.AppConfig
	switch strings.ToLower(cfg.ModelProvider) {
	case "openai":
		return &OpenAIProvider{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel}
	default:
		return &AnthropicProvider{APIKey: cfg.AnthropicAPIKey, Model: cfg.AnthropicModel}
	}
}

func (a *AnthropicProvider) Name() string { return "anthropic" }

func (a *AnthropicProvider) Configured() bool { return a.APIKey != "" }

func (a *AnthropicProvider) GenerateText(prompt string, systemPrompt string) (string, error) {
	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", a.APIKey).
		SetHeader("anthropic-version", "2023-06-01").
		SetBody(map[string]interface{}{
			"model":      a.Model,
			"max_tokens": 4096,
			"system":     systemPrompt,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}).
		Post("https://api.anthropic.com/v1/messages")
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("API error (%d): %s", resp.StatusCode(), resp.String())
	}

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %v", err)
	}
	if len(result.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	return result.Content[0].Text, nil
}

// GenerateJSON is the same as GenerateText for Anthropic (no special JSON mode)
func (a *AnthropicProvider) GenerateJSON(prompt string, systemPrompt string) (string, error) {
	return a.GenerateText(prompt, systemPrompt)
}

func (o *OpenAIProvider) Name() string { return "openai" }

func (o *OpenAIProvider) Configured() bool { return o.APIKey != "" }

func (o *OpenAIProvider) complete(prompt, systemPrompt string, jsonMode bool) (string, error) {
	body := map[string]interface{}{
		"model": o.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
		"max_tokens": 4096,
	}
	if jsonMode {
		body["response_format"] = map[string]string{"type": "json_object"}
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+o.APIKey).
		SetBody(body).
		Post("https://api.openai.com/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("API error (%d): %s", resp.StatusCode(), resp.String())
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %v", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return result.Choices[0].Message.Content, nil
}

func (o *OpenAIProvider) GenerateText(prompt string, systemPrompt string) (string, error) {
	return o.complete(prompt, systemPrompt, false)
}

// GenerateJSON is for JSON-formatted responses (quiz and flashcard generation)
func (o *OpenAIProvider) GenerateJSON(prompt string, systemPrompt string) (string, error) {
	return o.complete(prompt, systemPrompt, true)
}

// extractJSON removes markdown code block formatting if present and extracts the JSON
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		// Skip past the opening ``` and optional language identifier (e.g., "json")
		start := 3
		if newlineIdx := strings.Index(content[start:], "\n"); newlineIdx != -1 {
			start += newlineIdx + 1
		}
		if endIdx := strings.Index(content[start:], "```"); endIdx != -1 {
			content = content[start : start+endIdx]
		} else {
			content = content[start:]
		}
	}

	return strings.TrimSpace(content)
}
