package mocks

import (
	"context"
	"io"

	"choicefiction/internal/models"
	"choicefiction/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCharacterService is a mock type for the CharacterService type
type MockCharacterService struct {
	mock.Mock
}

var _ service.CharacterService = (*MockCharacterService)(nil)

func (m *MockCharacterService) Create(ctx context.Context, userID uuid.UUID, req models.CreateCharacterRequest) (*models.Character, error) {
	args := m.Called(ctx, userID, req)
	c, _ := args.Get(0).(*models.Character)
	return c, args.Error(1)
}

func (m *MockCharacterService) Get(ctx context.Context, id uuid.UUID) (*models.Character, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Character)
	return c, args.Error(1)
}

func (m *MockCharacterService) List(ctx context.Context, userID uuid.UUID) ([]models.Character, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.Character)
	return list, args.Error(1)
}

func (m *MockCharacterService) CheckName(ctx context.Context, userID uuid.UUID, name string) (*models.NameAvailability, error) {
	args := m.Called(ctx, userID, name)
	a, _ := args.Get(0).(*models.NameAvailability)
	return a, args.Error(1)
}

// MockStoryService is a mock type for the StoryService type
type MockStoryService struct {
	mock.Mock
}

var _ service.StoryService = (*MockStoryService)(nil)

func (m *MockStoryService) Create(ctx context.Context, userID uuid.UUID, req models.CreateStoryRequest) (*models.Story, error) {
	args := m.Called(ctx, userID, req)
	s, _ := args.Get(0).(*models.Story)
	return s, args.Error(1)
}

func (m *MockStoryService) Get(ctx context.Context, id uuid.UUID, viewer string) (*models.Story, error) {
	args := m.Called(ctx, id, viewer)
	s, _ := args.Get(0).(*models.Story)
	return s, args.Error(1)
}

func (m *MockStoryService) Update(ctx context.Context, userID, id uuid.UUID, req models.UpdateStoryRequest) (*models.Story, error) {
	args := m.Called(ctx, userID, id, req)
	s, _ := args.Get(0).(*models.Story)
	return s, args.Error(1)
}

func (m *MockStoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockStoryService) List(ctx context.Context, userID uuid.UUID) ([]models.Story, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.Story)
	return list, args.Error(1)
}

// MockChapterService is a mock type for the ChapterService type
type MockChapterService struct {
	mock.Mock
}

var _ service.ChapterService = (*MockChapterService)(nil)

func (m *MockChapterService) Upsert(ctx context.Context, userID uuid.UUID, req models.UpsertChapterRequest) (*models.Chapter, error) {
	args := m.Called(ctx, userID, req)
	c, _ := args.Get(0).(*models.Chapter)
	return c, args.Error(1)
}

func (m *MockChapterService) Get(ctx context.Context, id uuid.UUID) (*models.ChapterView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*models.ChapterView)
	return v, args.Error(1)
}

func (m *MockChapterService) Update(ctx context.Context, userID, id uuid.UUID, req models.UpdateChapterRequest) (*models.Chapter, error) {
	args := m.Called(ctx, userID, id, req)
	c, _ := args.Get(0).(*models.Chapter)
	return c, args.Error(1)
}

// MockAuthService is a mock type for the AuthService type
type MockAuthService struct {
	mock.Mock
}

var _ service.AuthService = (*MockAuthService)(nil)

func (m *MockAuthService) SignIn(ctx context.Context, identity models.OAuthIdentity) (*models.User, string, error) {
	args := m.Called(ctx, identity)
	u, _ := args.Get(0).(*models.User)
	return u, args.String(1), args.Error(2)
}

func (m *MockAuthService) VerifyToken(tokenString string) (*models.Claims, error) {
	args := m.Called(tokenString)
	c, _ := args.Get(0).(*models.Claims)
	return c, args.Error(1)
}

func (m *MockAuthService) UpdateUsername(ctx context.Context, userID uuid.UUID, username string) (string, error) {
	args := m.Called(ctx, userID, username)
	return args.String(0), args.Error(1)
}

// MockSuggestionService is a mock type for the SuggestionService type
type MockSuggestionService struct {
	mock.Mock
}

var _ service.SuggestionService = (*MockSuggestionService)(nil)

func (m *MockSuggestionService) GeneratePrompts(ctx context.Context, userID string, req models.GeneratePromptsRequest) ([]models.StoryPrompt, error) {
	args := m.Called(ctx, userID, req)
	list, _ := args.Get(0).([]models.StoryPrompt)
	return list, args.Error(1)
}

func (m *MockSuggestionService) GenerateSuggestions(ctx context.Context, userID string, req models.GenerateSuggestionsRequest) (*models.SuggestionsResult, error) {
	args := m.Called(ctx, userID, req)
	r, _ := args.Get(0).(*models.SuggestionsResult)
	return r, args.Error(1)
}

// MockDraftService is a mock type for the DraftService type
type MockDraftService struct {
	mock.Mock
}

var _ service.DraftService = (*MockDraftService)(nil)

func (m *MockDraftService) Get(ctx context.Context, userID uuid.UUID, slot string) (models.Draft, error) {
	args := m.Called(ctx, userID, slot)
	d, _ := args.Get(0).(models.Draft)
	return d, args.Error(1)
}

func (m *MockDraftService) Save(ctx context.Context, userID uuid.UUID, slot string, draft models.Draft) (models.Draft, error) {
	args := m.Called(ctx, userID, slot, draft)
	d, _ := args.Get(0).(models.Draft)
	return d, args.Error(1)
}

func (m *MockDraftService) Patch(ctx context.Context, userID uuid.UUID, slot string, patch models.DraftPatch) (models.Draft, error) {
	args := m.Called(ctx, userID, slot, patch)
	d, _ := args.Get(0).(models.Draft)
	return d, args.Error(1)
}

func (m *MockDraftService) Reset(ctx context.Context, userID uuid.UUID, slot string) error {
	return m.Called(ctx, userID, slot).Error(0)
}

// MockUploadService is a mock type for the UploadService type
type MockUploadService struct {
	mock.Mock
}

var _ service.UploadService = (*MockUploadService)(nil)

func (m *MockUploadService) UploadImage(ctx context.Context, file io.Reader, filename, contentType string, size int64) (string, error) {
	args := m.Called(ctx, file, filename, contentType, size)
	return args.String(0), args.Error(1)
}
