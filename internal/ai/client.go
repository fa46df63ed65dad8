package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"choicefiction/internal/config"
	"choicefiction/internal/models"

	"go.uber.org/zap"
)

// ErrGenerationFailed - ошибка вызова модели. Оборачивается вместе с причиной.
var ErrGenerationFailed = models.ErrAIGenerationFailed

// Request - один запрос к модели без истории.
type Request struct {
	// UserID нужен только для логов.
	UserID       string
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	// JSON включает режим ответа JSON-объектом, если провайдер его поддерживает.
	JSON bool
}

// Client - провайдер языковой модели.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
	Provider() string
	Model() string
}

// Usage - счетчики токенов одного ответа.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// NewClient создает клиента по AI_PROVIDER.
func NewClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Client, error) {
	httpClient := &http.Client{Timeout: cfg.AIRequestTimeout}
	log := logger.Named("ai")

	switch strings.ToLower(cfg.AIProvider) {
	case "openai":
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.AIBaseURL, cfg.AIModel, httpClient, log), nil
	case "ollama":
		return NewOllamaClient(cfg.AIBaseURL, cfg.AIModel, httpClient, log)
	case "gemini":
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.AIModel, httpClient, log)
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.AIProvider)
	}
}

// finish записывает метрики и логирует результат вызова.
func finish(log *zap.Logger, provider, model string, req Request, started time.Time, output string, usage Usage, err error) {
	duration := time.Since(started)
	if err != nil {
		aiRequestsTotal.WithLabelValues(provider, model, "error").Inc()
		log.Error("AI request failed",
			zap.String("model", model),
			zap.String("user_id", req.UserID),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}

	if usage.PromptTokens == 0 {
		usage.PromptTokens = EstimateTokens(model, req.SystemPrompt) + EstimateTokens(model, req.UserPrompt)
	}
	if usage.CompletionTokens == 0 {
		usage.CompletionTokens = EstimateTokens(model, output)
	}

	aiRequestsTotal.WithLabelValues(provider, model, "success").Inc()
	aiRequestDuration.WithLabelValues(provider, model).Observe(duration.Seconds())
	aiPromptTokens.WithLabelValues(provider, model).Observe(float64(usage.PromptTokens))
	aiCompletionTokens.WithLabelValues(provider, model).Observe(float64(usage.CompletionTokens))

	log.Info("AI response received",
		zap.String("model", model),
		zap.String("user_id", req.UserID),
		zap.Duration("duration", duration),
		zap.Int("prompt_tokens", usage.PromptTokens),
		zap.Int("completion_tokens", usage.CompletionTokens),
		zap.Int("response_chars", len([]rune(output))),
	)
}
