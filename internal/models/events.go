package models

import (
	"time"

	"github.com/google/uuid"
)

// Типы событий историй.
const (
	StoryEventCreated = "story.created"
	StoryEventUpdated = "story.updated"
	StoryEventDeleted = "story.deleted"
	StoryEventChapter = "story.chapter_saved"
)

// StoryEvent публикуется в очередь после изменения истории.
type StoryEvent struct {
	Type       string     `json:"type"`
	StoryID    uuid.UUID  `json:"storyId"`
	UserID     uuid.UUID  `json:"userId"`
	ChapterID  *uuid.UUID `json:"chapterId,omitempty"`
	OccurredAt time.Time  `json:"occurredAt"`
}
