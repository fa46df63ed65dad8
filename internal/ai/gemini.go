package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type geminiClient struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// NewGeminiClient создает клиента Gemini API.
func NewGeminiClient(ctx context.Context, apiKey, model string, httpClient *http.Client, log *zap.Logger) (Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	log.Info("Gemini client created", zap.String("model", model))
	return &geminiClient{client: client, model: model, log: log}, nil
}

func (c *geminiClient) Provider() string { return "gemini" }
func (c *geminiClient) Model() string    { return c.model }

func (c *geminiClient) Generate(ctx context.Context, req Request) (text string, err error) {
	started := time.Now()
	var usage Usage
	defer func() { finish(c.log, c.Provider(), c.model, req, started, text, usage, err) }()

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if strings.TrimSpace(req.SystemPrompt) != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if req.JSON {
		genCfg.ResponseMIMEType = "application/json"
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(req.UserPrompt, genai.RoleUser)}, genCfg)
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", ErrGenerationFailed, err)
	}
	out := result.Text()
	if out == "" {
		return "", fmt.Errorf("%w: gemini returned empty content", ErrGenerationFailed)
	}
	if md := result.UsageMetadata; md != nil {
		usage = Usage{PromptTokens: int(md.PromptTokenCount), CompletionTokens: int(md.CandidatesTokenCount)}
	}
	return out, nil
}
