package mocks

import (
	"context"

	"choicefiction/internal/interfaces"
	"choicefiction/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock type for the UserRepository type
type MockUserRepository struct {
	mock.Mock
}

var _ interfaces.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if fn, ok := args.Get(0).(func(context.Context, *models.User) error); ok {
		return fn(ctx, user)
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) UpdateUsername(ctx context.Context, userID uuid.UUID, username string) error {
	return m.Called(ctx, userID, username).Error(0)
}

func (m *MockUserRepository) LinkOAuthAccount(ctx context.Context, userID uuid.UUID, provider, providerAccountID string) error {
	return m.Called(ctx, userID, provider, providerAccountID).Error(0)
}

// MockCharacterRepository is a mock type for the CharacterRepository type
type MockCharacterRepository struct {
	mock.Mock
}

var _ interfaces.CharacterRepository = (*MockCharacterRepository)(nil)

func (m *MockCharacterRepository) Create(ctx context.Context, character *models.Character) error {
	args := m.Called(ctx, character)
	if fn, ok := args.Get(0).(func(context.Context, *models.Character) error); ok {
		return fn(ctx, character)
	}
	return args.Error(0)
}

func (m *MockCharacterRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Character, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Character)
	return c, args.Error(1)
}

func (m *MockCharacterRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Character, error) {
	args := m.Called(ctx, id, userID)
	c, _ := args.Get(0).(*models.Character)
	return c, args.Error(1)
}

func (m *MockCharacterRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Character, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.Character)
	return list, args.Error(1)
}

func (m *MockCharacterRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, userID, name)
	return args.Bool(0), args.Error(1)
}

// MockStoryRepository is a mock type for the StoryRepository type
type MockStoryRepository struct {
	mock.Mock
}

var _ interfaces.StoryRepository = (*MockStoryRepository)(nil)

func (m *MockStoryRepository) Create(ctx context.Context, story *models.Story) error {
	args := m.Called(ctx, story)
	if fn, ok := args.Get(0).(func(context.Context, *models.Story) error); ok {
		return fn(ctx, story)
	}
	return args.Error(0)
}

func (m *MockStoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.Story)
	return s, args.Error(1)
}

func (m *MockStoryRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Story, error) {
	args := m.Called(ctx, id, userID)
	s, _ := args.Get(0).(*models.Story)
	return s, args.Error(1)
}

func (m *MockStoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Story, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.Story)
	return list, args.Error(1)
}

func (m *MockStoryRepository) ListByCharacter(ctx context.Context, characterID uuid.UUID) ([]models.Story, error) {
	args := m.Called(ctx, characterID)
	list, _ := args.Get(0).([]models.Story)
	return list, args.Error(1)
}

func (m *MockStoryRepository) Update(ctx context.Context, id uuid.UUID, req models.UpdateStoryRequest) (*models.Story, error) {
	args := m.Called(ctx, id, req)
	s, _ := args.Get(0).(*models.Story)
	return s, args.Error(1)
}

func (m *MockStoryRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStoryRepository) DeleteVotes(ctx context.Context, querier interfaces.DBTX, storyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, querier, storyID)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockStoryRepository) DeleteReviews(ctx context.Context, querier interfaces.DBTX, storyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, querier, storyID)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockStoryRepository) DeleteChoices(ctx context.Context, querier interfaces.DBTX, storyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, querier, storyID)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockStoryRepository) DeleteChapters(ctx context.Context, querier interfaces.DBTX, storyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, querier, storyID)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockStoryRepository) Delete(ctx context.Context, querier interfaces.DBTX, storyID uuid.UUID) error {
	return m.Called(ctx, querier, storyID).Error(0)
}

// MockChapterRepository is a mock type for the ChapterRepository type
type MockChapterRepository struct {
	mock.Mock
}

var _ interfaces.ChapterRepository = (*MockChapterRepository)(nil)

func (m *MockChapterRepository) Upsert(ctx context.Context, chapter *models.Chapter) error {
	args := m.Called(ctx, chapter)
	if fn, ok := args.Get(0).(func(context.Context, *models.Chapter) error); ok {
		return fn(ctx, chapter)
	}
	return args.Error(0)
}

func (m *MockChapterRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Chapter, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Chapter)
	return c, args.Error(1)
}

func (m *MockChapterRepository) ListByStory(ctx context.Context, storyID uuid.UUID) ([]models.Chapter, error) {
	args := m.Called(ctx, storyID)
	list, _ := args.Get(0).([]models.Chapter)
	return list, args.Error(1)
}

func (m *MockChapterRepository) PreviousID(ctx context.Context, storyID uuid.UUID, sequence int) (*uuid.UUID, error) {
	args := m.Called(ctx, storyID, sequence)
	id, _ := args.Get(0).(*uuid.UUID)
	return id, args.Error(1)
}

func (m *MockChapterRepository) NextID(ctx context.Context, storyID uuid.UUID, sequence int) (*uuid.UUID, error) {
	args := m.Called(ctx, storyID, sequence)
	id, _ := args.Get(0).(*uuid.UUID)
	return id, args.Error(1)
}

func (m *MockChapterRepository) Update(ctx context.Context, id uuid.UUID, req models.UpdateChapterRequest) (*models.Chapter, error) {
	args := m.Called(ctx, id, req)
	c, _ := args.Get(0).(*models.Chapter)
	return c, args.Error(1)
}
