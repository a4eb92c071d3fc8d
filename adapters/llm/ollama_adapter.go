package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/career-os/internal/application/service"
	"github.com/khoahotran/career-os/internal/config"
	"github.com/khoahotran/career-os/internal/domain/document"
	"github.com/khoahotran/career-os/pkg/logger"
)

type ollamaLLMAdapter struct {
	client *openai.Client
	model  string
	log    logger.Logger
}

// NewOllamaLLMAdapter talks to Ollama's OpenAI-compatible endpoint. Prompt
// caching is not supported there, so CacheSystem is ignored.
func NewOllamaLLMAdapter(cfg config.Config, log logger.Logger) (service.LLMService, error) {
	if cfg.Ollama.Host == "" {
		return nil, fmt.Errorf("ollama Host is not configured")
	}

	config := openai.DefaultConfig("dummy-key")
	config.BaseURL = cfg.Ollama.Host

	client := openai.NewClientWithConfig(config)

	log.Info("Ollama Chat (LLM) Adapter initialized", zap.String("model", cfg.Ollama.Model))
	return &ollamaLLMAdapter{client: client, model: cfg.Ollama.Model, log: log}, nil
}

func (a *ollamaLLMAdapter) Complete(ctx context.Context, req service.CompletionRequest) (*service.Completion, error) {
	ctx, span := tracer.Start(ctx, "ollama.CreateChatCompletion")
	defer span.End()

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: req.System,
	})
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == service.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		span.RecordError(err)
		status := 0
		var apiErr *openai.APIError
		var reqErr *openai.RequestError
		switch {
		case errors.As(err, &apiErr):
			status = apiErr.HTTPStatusCode
		case errors.As(err, &reqErr):
			status = reqErr.HTTPStatusCode
		}
		return nil, describeFailure("ollama", status, err)
	}

	completion := &service.Completion{
		Usage: document.Usage{
			InputTokens:  int64(resp.Usage.PromptTokens),
			OutputTokens: int64(resp.Usage.CompletionTokens),
		},
	}
	if details := resp.Usage.PromptTokensDetails; details != nil {
		cached := int64(details.CachedTokens)
		completion.Usage.CacheReadInputTokens = &cached
	}
	if len(resp.Choices) > 0 {
		completion.Content = resp.Choices[0].Message.Content
	}

	span.SetAttributes(
		attribute.String("model", a.model),
		attribute.Int("input_tokens", resp.Usage.PromptTokens),
		attribute.Int("output_tokens", resp.Usage.CompletionTokens),
	)
	return completion, nil
}
