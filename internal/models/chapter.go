package models

import (
	"time"

	"github.com/google/uuid"
)

// Chapter - глава истории. Пара (story_id, sequence) уникальна.
type Chapter struct {
	ID          uuid.UUID `db:"id" json:"id"`
	StoryID     uuid.UUID `db:"story_id" json:"storyId"`
	Title       string    `db:"title" json:"title"`
	Content     string    `db:"content" json:"content"`
	Sequence    int       `db:"sequence" json:"sequence"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
	ContentHTML string    `db:"-" json:"contentHtml,omitempty"`
}

// ChapterStoryRef - краткие данные истории для страницы главы.
type ChapterStoryRef struct {
	ID     uuid.UUID `db:"id" json:"id"`
	Title  string    `db:"title" json:"title"`
	UserID uuid.UUID `db:"user_id" json:"userId"`
}

// ChapterNavigation - соседние главы. nil сериализуется как null.
type ChapterNavigation struct {
	PreviousChapterID *uuid.UUID `json:"previousChapterId"`
	NextChapterID     *uuid.UUID `json:"nextChapterId"`
}

// ChapterView - ответ GET /api/chapters/:id.
type ChapterView struct {
	Chapter    Chapter           `json:"chapter"`
	Story      ChapterStoryRef   `json:"story"`
	Navigation ChapterNavigation `json:"navigation"`
}

// UpsertChapterRequest - тело POST /api/chapters.
type UpsertChapterRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	StoryID  string `json:"storyId" binding:"required"`
	Sequence int    `json:"sequence" binding:"required"`
}

// Validate проверяет номер главы.
func (r *UpsertChapterRequest) Validate() error {
	if r.StoryID == "" {
		return NewValidationError(MsgMissingFields)
	}
	if r.Sequence < 1 {
		return NewValidationError(MsgInvalidSequence)
	}
	return nil
}

// UpdateChapterRequest - PATCH главы, меняются только title и content.
type UpdateChapterRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Choice - вариант продолжения, привязанный к главе.
type Choice struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	ChapterID     uuid.UUID  `db:"chapter_id" json:"chapterId"`
	Content       string     `db:"content" json:"content"`
	NextChapterID *uuid.UUID `db:"next_chapter_id" json:"nextChapterId"`
	Votes         int        `db:"votes" json:"votes"`
}
