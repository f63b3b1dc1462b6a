package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"github.com/sodo-hospital/admin-api/internal/logging"
)

var ErrChatUnavailable = errors.New("chat assistant is temporarily unavailable")

const chatSystemPrompt = "You are a helpful medical assistant for Sodo Hospital. " +
	"Provide accurate, professional, and compassionate responses to healthcare-related questions."

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

// ChatService proxies dashboard chat conversations to OpenAI. Calls go
// through a circuit breaker so a flapping upstream fails fast instead of
// tying up request handlers.
type ChatService struct {
	client  *openai.Client
	breaker *gobreaker.CircuitBreaker
}

// NewChatService creates a new ChatService
func NewChatService(apiKey string) *ChatService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "openai-chat",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.WithFields(map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Chat circuit breaker state changed")
		},
	})

	return &ChatService{
		client:  openai.NewClient(apiKey),
		breaker: breaker,
	}
}

// Complete sends the conversation to the model and returns the assistant's reply.
func (s *ChatService) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	chatMessages = append(chatMessages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: chatSystemPrompt,
	})
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       openai.GPT4oMini,
			Messages:    chatMessages,
			Temperature: 0.3,
		})
		if err != nil {
			return nil, fmt.Errorf("OpenAI API error: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no response from OpenAI")
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", ErrChatUnavailable
		}
		return "", err
	}

	return result.(string), nil
}
