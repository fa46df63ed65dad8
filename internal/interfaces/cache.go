package interfaces

import (
	"context"
	"time"

	"choicefiction/internal/models"

	"github.com/google/uuid"
)

// ViewRegistry запоминает просмотры, чтобы не считать повторные.
type ViewRegistry interface {
	// MarkViewed возвращает true, если просмотр новый в пределах окна.
	MarkViewed(ctx context.Context, storyID uuid.UUID, viewer string, window time.Duration) (bool, error)
}

// DraftStore - подключаемое хранилище черновиков.
type DraftStore interface {
	// Load возвращает found=false, если черновика нет.
	Load(ctx context.Context, userID uuid.UUID, slot string) (draft models.Draft, found bool, err error)
	Save(ctx context.Context, userID uuid.UUID, slot string, draft models.Draft) error
	Delete(ctx context.Context, userID uuid.UUID, slot string) error
}
