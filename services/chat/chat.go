package chat

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// FallbackReply is returned whenever the upstream provider is unavailable
// or the service is not configured. The primary operation never fails on a
// chatbot outage.
const FallbackReply = "Je ne suis pas disponible pour le moment. Réessayez dans quelques minutes ou contactez un formateur via la messagerie."

const systemPrompt = "Tu es l'assistant de la formation Inspecteur Auto. " +
	"Tu réponds en français, de façon concise, aux questions des élèves sur " +
	"l'inspection automobile, la mécanique et le déroulement de la formation."

// ErrDisabled is returned when no API key is configured
var ErrDisabled = errors.New("chat service is disabled")

// Turn is one prior message replayed as context
type Turn struct {
	Role    string `json:"role"` // user, assistant
	Content string `json:"content"`
}

// Service wraps an OpenAI-compatible chat completions endpoint
type Service struct {
	client  *resty.Client
	apiKey  string
	apiURL  string
	model   string
	enabled bool
}

// NewService builds the chat service. An empty API key yields a disabled
// service whose callers fall back to FallbackReply.
func NewService(apiKey, apiURL, model string) *Service {
	return &Service{
		client:  resty.New(),
		apiKey:  apiKey,
		apiURL:  apiURL,
		model:   model,
		enabled: apiKey != "",
	}
}

// Enabled reports whether the provider is configured
func (s *Service) Enabled() bool {
	return s.enabled
}

// Complete sends the conversation history plus the new user message and
// returns the assistant reply
func (s *Service) Complete(history []Turn, userMessage string) (string, error) {
	if !s.enabled {
		return "", ErrDisabled
	}

	messages := make([]map[string]string, 0, len(history)+2)
	messages = append(messages, map[string]string{"role": "system", "content": systemPrompt})
	for _, turn := range history {
		messages = append(messages, map[string]string{"role": turn.Role, "content": turn.Content})
	}
	messages = append(messages, map[string]string{"role": "user", "content": userMessage})

	payload := map[string]interface{}{
		"model":    s.model,
		"messages": messages,
	}

	resp, err := s.client.R().
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.apiURL + "/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("chat provider returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &completion); err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat provider returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}
