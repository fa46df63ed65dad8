package service

import (
	"context"
	"strings"
	"time"

	"choicefiction/internal/interfaces"
	"choicefiction/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// normalizeName обрезает пробелы и приводит строку к NFC,
// чтобы визуально одинаковые имена совпадали побайтово.
func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// publishStoryEvent отправляет событие. Ошибка публикации только логируется:
// изменение в БД уже зафиксировано.
func publishStoryEvent(ctx context.Context, pub interfaces.StoryEventPublisher, logger *zap.Logger, eventType string, storyID, userID uuid.UUID, chapterID *uuid.UUID) {
	if pub == nil {
		return
	}
	event := models.StoryEvent{
		Type:       eventType,
		StoryID:    storyID,
		UserID:     userID,
		ChapterID:  chapterID,
		OccurredAt: time.Now().UTC(),
	}
	if err := pub.PublishStoryEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish story event",
			zap.String("type", eventType),
			zap.Stringer("storyID", storyID),
			zap.Error(err),
		)
	}
}
