package interfaces

import (
	"context"

	"choicefiction/internal/models"

	"github.com/google/uuid"
)

// ChapterRepository - хранилище глав.
type ChapterRepository interface {
	// Upsert вставляет главу или перезаписывает title/content главы с тем же (story_id, sequence).
	Upsert(ctx context.Context, chapter *models.Chapter) error
	// GetByID returns models.ErrChapterNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Chapter, error)
	ListByStory(ctx context.Context, storyID uuid.UUID) ([]models.Chapter, error)
	// PreviousID - глава с ближайшим меньшим sequence, nil если нет.
	PreviousID(ctx context.Context, storyID uuid.UUID, sequence int) (*uuid.UUID, error)
	// NextID - глава с ближайшим большим sequence, nil если нет.
	NextID(ctx context.Context, storyID uuid.UUID, sequence int) (*uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req models.UpdateChapterRequest) (*models.Chapter, error)
}
