package llm

import (
	"context"
	"errors"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/career-os/internal/application/service"
	"github.com/khoahotran/career-os/internal/config"
	"github.com/khoahotran/career-os/internal/domain/document"
	"github.com/khoahotran/career-os/pkg/logger"
)

const requestTimeout = 120 * time.Second

var tracer = otel.Tracer("llm_adapter")

type anthropicAdapter struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	hasKey    bool
	log       logger.Logger
}

// NewAnthropicAdapter builds the Messages API client. Extra options (e.g. a
// base URL) are appended after the configured ones.
func NewAnthropicAdapter(cfg config.Config, log logger.Logger, opts ...option.RequestOption) service.LLMService {
	base := []option.RequestOption{
		option.WithAPIKey(cfg.Anthropic.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(requestTimeout),
	}

	if cfg.Anthropic.APIKey == "" {
		log.Warn("Anthropic API key is not configured; generation requests will fail")
	}
	log.Info("Anthropic LLM Adapter initialized", zap.String("model", cfg.Anthropic.Model))

	return &anthropicAdapter{
		client:    anthropic.NewClient(append(base, opts...)...),
		model:     cfg.Anthropic.Model,
		maxTokens: cfg.Anthropic.MaxTokens,
		hasKey:    cfg.Anthropic.APIKey != "",
		log:       log,
	}
}

func (a *anthropicAdapter) Complete(ctx context.Context, req service.CompletionRequest) (*service.Completion, error) {
	if !a.hasKey {
		return nil, errors.New("anthropic API key is not configured")
	}

	ctx, span := tracer.Start(ctx, "anthropic.Messages.New")
	defer span.End()

	system := anthropic.TextBlockParam{Text: req.System}
	if req.CacheSystem {
		system.CacheControl = anthropic.NewCacheControlEphemeralParam()
	}

	messages := make([]anthropic.MessageParam, 0, len(req.Messages))
	for _, m := range req.Messages {
		block := anthropic.NewTextBlock(m.Content)
		switch m.Role {
		case service.RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(block))
		default:
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		System:    []anthropic.TextBlockParam{system},
		Messages:  messages,
	})
	if err != nil {
		span.RecordError(err)
		var apiErr *anthropic.Error
		status := 0
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		return nil, describeFailure("anthropic", status, err)
	}

	completion := &service.Completion{
		Usage: document.Usage{
			InputTokens:  msg.Usage.InputTokens,
			OutputTokens: msg.Usage.OutputTokens,
		},
	}
	if msg.Usage.JSON.CacheReadInputTokens.Valid() {
		v := msg.Usage.CacheReadInputTokens
		completion.Usage.CacheReadInputTokens = &v
	}
	if msg.Usage.JSON.CacheCreationInputTokens.Valid() {
		v := msg.Usage.CacheCreationInputTokens
		completion.Usage.CacheCreationInputTokens = &v
	}
	for _, block := range msg.Content {
		if block.Type == "text" {
			completion.Content = block.Text
			break
		}
	}

	span.SetAttributes(
		attribute.String("model", a.model),
		attribute.Int64("input_tokens", msg.Usage.InputTokens),
		attribute.Int64("output_tokens", msg.Usage.OutputTokens),
		attribute.String("stop_reason", string(msg.StopReason)),
	)
	if completion.Content == "" {
		a.log.Warn("Anthropic reply carried no text block", zap.String("stop_reason", string(msg.StopReason)))
	}
	return completion, nil
}

