package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"choicefiction/internal/ai"
	"choicefiction/internal/genres"
	"choicefiction/internal/mocks"
	"choicefiction/internal/models"
	"choicefiction/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSuggestionService(t *testing.T) (service.SuggestionService, *mocks.MockAIClient) {
	t.Helper()
	catalog, err := genres.Load()
	require.NoError(t, err)
	client := new(mocks.MockAIClient)
	return service.NewSuggestionService(client, catalog, 0.35, time.Minute, zap.NewNop()), client
}

func TestSuggestionService_GeneratePrompts(t *testing.T) {
	svc, client := newSuggestionService(t)
	character := &models.CharacterProfile{Name: "Aria", Personality: "침착함"}

	client.On("Generate", mock.Anything, mock.MatchedBy(func(r ai.Request) bool {
		return r.JSON && r.UserID == "user-1" && r.Temperature == 0.35 &&
			strings.Contains(r.UserPrompt, "Aria") &&
			strings.Contains(r.UserPrompt, "로맨스 판타지") &&
			!strings.Contains(r.UserPrompt, "rofan")
	})).Return(`{"prompts":[{"title":"t","description":"d","preview":"p"},{"title":"broken"}]}`, nil).Once()

	result, err := svc.GeneratePrompts(context.Background(), "user-1", models.GeneratePromptsRequest{
		Character: character,
		Genre:     models.GenreList{"rofan"},
	})
	require.NoError(t, err)
	assert.Equal(t, []models.StoryPrompt{{Title: "t", Description: "d", Preview: "p"}}, result)
	client.AssertExpectations(t)
}

func TestSuggestionService_GeneratePrompts_Validation(t *testing.T) {
	svc, client := newSuggestionService(t)

	_, err := svc.GeneratePrompts(context.Background(), "", models.GeneratePromptsRequest{Genre: models.GenreList{"판타지"}})
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, models.MsgPromptsMissing, vErr.Message)

	_, err = svc.GeneratePrompts(context.Background(), "", models.GeneratePromptsRequest{Character: &models.CharacterProfile{Name: "Aria"}})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	client.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestSuggestionService_GeneratePrompts_Failures(t *testing.T) {
	svc, client := newSuggestionService(t)
	req := models.GeneratePromptsRequest{Character: &models.CharacterProfile{Name: "Aria"}, Genre: models.GenreList{"판타지"}}

	client.On("Generate", mock.Anything, mock.Anything).Return("", ai.ErrGenerationFailed).Once()
	_, err := svc.GeneratePrompts(context.Background(), "", req)
	assert.ErrorIs(t, err, models.ErrAIGenerationFailed)

	client.On("Generate", mock.Anything, mock.Anything).Return("이건 JSON이 아닙니다", nil).Once()
	_, err = svc.GeneratePrompts(context.Background(), "", req)
	assert.ErrorIs(t, err, models.ErrAIGenerationFailed)
}

func TestSuggestionService_GenerateSuggestions(t *testing.T) {
	svc, client := newSuggestionService(t)

	client.On("Generate", mock.Anything, mock.MatchedBy(func(r ai.Request) bool {
		return r.JSON && strings.Contains(r.UserPrompt, "첫 장면") && strings.Contains(r.UserPrompt, "무협")
	})).Return("```json\n{\"suggestions\":[\"a\",\"b\",\"c\"],\"chapter_summary\":{\"keyEvents\":[\"e\"],\"characterDevelopment\":[]}}\n```", nil).Once()

	result, err := svc.GenerateSuggestions(context.Background(), "", models.GenerateSuggestionsRequest{
		Title:     "Test",
		Character: &models.CharacterProfile{Name: "Aria"},
		Genre:     models.GenreList{"mukhyub"},
		Content:   "첫 장면",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, result.Suggestions)
	require.NotNil(t, result.ChapterSummary)
	assert.Equal(t, []string{"e"}, result.ChapterSummary.KeyEvents)
}

func TestSuggestionService_GenerateSuggestions_Errors(t *testing.T) {
	svc, client := newSuggestionService(t)

	_, err := svc.GenerateSuggestions(context.Background(), "", models.GenerateSuggestionsRequest{
		Character: &models.CharacterProfile{Name: "Aria"}, Genre: models.GenreList{"판타지"},
	})
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, models.MsgSuggestionsMissing, vErr.Message)

	req := models.GenerateSuggestionsRequest{Title: "Test", Character: &models.CharacterProfile{Name: "Aria"}, Genre: models.GenreList{"판타지"}}
	client.On("Generate", mock.Anything, mock.Anything).Return(`{"suggestions":[]}`, nil).Once()
	_, err = svc.GenerateSuggestions(context.Background(), "", req)
	assert.ErrorIs(t, err, models.ErrAIGenerationFailed)

	upstream := errors.New("context deadline exceeded")
	client.On("Generate", mock.Anything, mock.Anything).Return("", upstream).Once()
	_, err = svc.GenerateSuggestions(context.Background(), "", req)
	assert.ErrorIs(t, err, upstream)
}
