package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type openAIClient struct {
	client *openaigo.Client
	model  string
	log    *zap.Logger
}

// NewOpenAIClient создает клиента OpenAI. Пустой baseURL означает api.openai.com;
// иначе можно указать любой OpenAI-совместимый сервер.
func NewOpenAIClient(apiKey, baseURL, model string, httpClient *http.Client, log *zap.Logger) Client {
	cfg := openaigo.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	log.Info("OpenAI client created", zap.String("base_url", cfg.BaseURL), zap.String("model", model))
	return &openAIClient{client: openaigo.NewClientWithConfig(cfg), model: model, log: log}
}

func (c *openAIClient) Provider() string { return "openai" }
func (c *openAIClient) Model() string    { return c.model }

func (c *openAIClient) Generate(ctx context.Context, req Request) (text string, err error) {
	started := time.Now()
	var usage Usage
	defer func() { finish(c.log, c.Provider(), c.model, req, started, text, usage, err) }()

	messages := make([]openaigo.ChatCompletionMessage, 0, 2)
	if strings.TrimSpace(req.SystemPrompt) != "" {
		messages = append(messages, openaigo.ChatCompletionMessage{Role: openaigo.ChatMessageRoleSystem, Content: req.SystemPrompt})
	}
	messages = append(messages, openaigo.ChatCompletionMessage{Role: openaigo.ChatMessageRoleUser, Content: req.UserPrompt})

	chatReq := openaigo.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
	}
	if req.JSON {
		chatReq.ResponseFormat = &openaigo.ChatCompletionResponseFormat{
			Type: openaigo.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("%w: openai: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", ErrGenerationFailed)
	}

	usage = Usage{PromptTokens: resp.Usage.PromptTokens, CompletionTokens: resp.Usage.CompletionTokens}
	return resp.Choices[0].Message.Content, nil
}
