package interfaces

import (
	"context"

	"choicefiction/internal/models"

	"github.com/google/uuid"
)

// StoryRepository - хранилище историй.
// Методы удаления принимают querier, чтобы сервис мог собрать их в одну транзакцию.
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	// GetByID returns models.ErrStoryNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Story, error)
	// ListByUser - истории владельца с главным персонажем и последней главой, по updated_at DESC.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Story, error)
	ListByCharacter(ctx context.Context, characterID uuid.UUID) ([]models.Story, error)
	Update(ctx context.Context, id uuid.UUID, req models.UpdateStoryRequest) (*models.Story, error)
	IncrementViewCount(ctx context.Context, id uuid.UUID) error

	DeleteVotes(ctx context.Context, querier DBTX, storyID uuid.UUID) (int64, error)
	DeleteReviews(ctx context.Context, querier DBTX, storyID uuid.UUID) (int64, error)
	DeleteChoices(ctx context.Context, querier DBTX, storyID uuid.UUID) (int64, error)
	DeleteChapters(ctx context.Context, querier DBTX, storyID uuid.UUID) (int64, error)
	Delete(ctx context.Context, querier DBTX, storyID uuid.UUID) error
}
