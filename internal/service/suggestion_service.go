package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"choicefiction/internal/ai"
	"choicefiction/internal/models"
	"choicefiction/internal/prompts"

	"go.uber.org/zap"
)

// GenreResolver заменяет id жанров названиями для промптов.
type GenreResolver interface {
	Titles(values []string) []string
}

// SuggestionService - одноразовые запросы к модели без состояния.
type SuggestionService interface {
	GeneratePrompts(ctx context.Context, userID string, req models.GeneratePromptsRequest) ([]models.StoryPrompt, error)
	GenerateSuggestions(ctx context.Context, userID string, req models.GenerateSuggestionsRequest) (*models.SuggestionsResult, error)
}

type suggestionServiceImpl struct {
	client      ai.Client
	genres      GenreResolver
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

// NewSuggestionService создает SuggestionService. genres может быть nil.
// temperature передается модели в каждом запросе.
func NewSuggestionService(client ai.Client, genres GenreResolver, temperature float64, timeout time.Duration, logger *zap.Logger) SuggestionService {
	return &suggestionServiceImpl{
		client:      client,
		genres:      genres,
		temperature: temperature,
		timeout:     timeout,
		logger:      logger.Named("SuggestionService"),
	}
}

func (s *suggestionServiceImpl) genreText(genre models.GenreList) string {
	if s.genres == nil {
		return genre.String()
	}
	return strings.Join(s.genres.Titles(genre), ", ")
}

// generate вызывает модель в JSON-режиме с ограничением по времени.
func (s *suggestionServiceImpl) generate(ctx context.Context, userID, prompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.client.Generate(ctx, ai.Request{
		UserID:      userID,
		UserPrompt:  prompt,
		Temperature: s.temperature,
		JSON:        true,
	})
}

func (s *suggestionServiceImpl) GeneratePrompts(ctx context.Context, userID string, req models.GeneratePromptsRequest) ([]models.StoryPrompt, error) {
	if req.Character == nil || len(req.Genre) == 0 {
		return nil, models.NewValidationError(models.MsgPromptsMissing)
	}

	prompt := prompts.BuildStoryPromptsPrompt(*req.Character, s.genreText(req.Genre))
	raw, err := s.generate(ctx, userID, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate story prompts: %w", err)
	}

	result, err := prompts.ParseStoryPrompts(raw)
	if err != nil {
		s.logger.Error("Failed to parse story prompts", zap.String("userID", userID), zap.Error(err), zap.Int("raw_len", len(raw)))
		return nil, fmt.Errorf("%w: %v", models.ErrAIGenerationFailed, err)
	}
	s.logger.Info("Story prompts generated", zap.String("userID", userID), zap.Int("count", len(result)))
	return result, nil
}

func (s *suggestionServiceImpl) GenerateSuggestions(ctx context.Context, userID string, req models.GenerateSuggestionsRequest) (*models.SuggestionsResult, error) {
	if strings.TrimSpace(req.Title) == "" || req.Character == nil || len(req.Genre) == 0 {
		return nil, models.NewValidationError(models.MsgSuggestionsMissing)
	}

	req.Genre = models.GenreList{s.genreText(req.Genre)}
	chapterCtx := prompts.BuildChapterContext(req)
	prompt := prompts.BuildSuggestionsPrompt(req, chapterCtx)

	raw, err := s.generate(ctx, userID, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate suggestions: %w", err)
	}

	result, err := prompts.ParseSuggestions(raw)
	if err != nil {
		s.logger.Error("Failed to parse suggestions", zap.String("userID", userID), zap.Error(err), zap.Int("raw_len", len(raw)))
		return nil, fmt.Errorf("%w: %v", models.ErrAIGenerationFailed, err)
	}
	s.logger.Info("Suggestions generated",
		zap.String("userID", userID),
		zap.Int("count", len(result.Suggestions)),
		zap.Int("sequence", chapterCtx.CurrentChapter.Sequence),
	)
	return result, nil
}
