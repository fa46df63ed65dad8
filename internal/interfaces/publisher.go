package interfaces

import (
	"context"

	"choicefiction/internal/models"
)

// StoryEventPublisher публикует события об изменении историй.
type StoryEventPublisher interface {
	PublishStoryEvent(ctx context.Context, event models.StoryEvent) error
}
