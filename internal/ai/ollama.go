package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

type ollamaClient struct {
	client *api.Client
	model  string
	log    *zap.Logger
}

// NewOllamaClient создает клиента Ollama. baseURL без суффикса /v1.
func NewOllamaClient(baseURL, model string, httpClient *http.Client, log *zap.Logger) (Client, error) {
	base := strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/v1")
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse Ollama base URL %q: %w", base, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	log.Info("Ollama client created", zap.String("base_url", base), zap.String("model", model))
	return &ollamaClient{client: api.NewClient(parsed, httpClient), model: model, log: log}, nil
}

func (c *ollamaClient) Provider() string { return "ollama" }
func (c *ollamaClient) Model() string    { return c.model }

func (c *ollamaClient) Generate(ctx context.Context, req Request) (text string, err error) {
	started := time.Now()
	var usage Usage
	defer func() { finish(c.log, c.Provider(), c.model, req, started, text, usage, err) }()

	messages := make([]api.Message, 0, 2)
	if strings.TrimSpace(req.SystemPrompt) != "" {
		messages = append(messages, api.Message{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, api.Message{Role: "user", Content: req.UserPrompt})

	stream := false
	chatReq := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   &stream,
		Options:  map[string]any{"temperature": req.Temperature},
	}
	if req.JSON {
		chatReq.Format = json.RawMessage(`"json"`)
	}

	var resp api.ChatResponse
	err = c.client.Chat(ctx, chatReq, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: ollama: %v", ErrGenerationFailed, err)
	}
	if resp.Message.Content == "" {
		return "", fmt.Errorf("%w: ollama returned empty content", ErrGenerationFailed)
	}

	usage = Usage{PromptTokens: resp.PromptEvalCount, CompletionTokens: resp.EvalCount}
	return resp.Message.Content, nil
}
