package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StoryStatus - стадия жизненного цикла истории. Переходы не ограничены.
type StoryStatus string

const (
	StoryStatusDraft     StoryStatus = "DRAFT"
	StoryStatusOngoing   StoryStatus = "ONGOING"
	StoryStatusCompleted StoryStatus = "COMPLETED"
)

// IsValid проверяет, что статус известен.
func (s StoryStatus) IsValid() bool {
	switch s {
	case StoryStatusDraft, StoryStatusOngoing, StoryStatusCompleted:
		return true
	}
	return false
}

// GenreList - список жанров. Из JSON принимает и строку, и массив строк.
type GenreList []string

func (g *GenreList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*g = nil
		return nil
	}
	var raw []string
	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		raw = []string{single}
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out GenreList
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	*g = out
	return nil
}

// String склеивает жанры для промптов.
func (g GenreList) String() string {
	return strings.Join(g, ", ")
}

// Story - история пользователя.
type Story struct {
	ID              uuid.UUID   `db:"id" json:"id"`
	UserID          uuid.UUID   `db:"user_id" json:"userId"`
	MainCharacterID uuid.UUID   `db:"main_character_id" json:"mainCharacterId"`
	Title           string      `db:"title" json:"title"`
	Description     string      `db:"description" json:"description"`
	Genre           []string    `db:"genre" json:"genre"`
	Status          StoryStatus `db:"status" json:"status"`
	ViewCount       int64       `db:"view_count" json:"viewCount"`
	LikeCount       int64       `db:"like_count" json:"likeCount"`
	CreatedAt       time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updatedAt"`

	MainCharacter *Character `db:"-" json:"mainCharacter,omitempty"`
	Chapters      []Chapter  `db:"-" json:"chapters,omitempty"`
}

// CreateStoryRequest - тело POST /api/stories.
type CreateStoryRequest struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description" binding:"required"`
	Genre           GenreList `json:"genre" binding:"required,min=1"`
	MainCharacterID string    `json:"mainCharacterId" binding:"required"`
}

// Validate проверяет обязательные поля.
func (r *CreateStoryRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Description) == "" ||
		len(r.Genre) == 0 || strings.TrimSpace(r.MainCharacterID) == "" {
		return NewValidationError(MsgMissingFields)
	}
	return nil
}

// UpdateStoryRequest - частичное обновление истории (PATCH). nil поле не меняется.
type UpdateStoryRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Genre       *GenreList   `json:"genre"`
	Status      *StoryStatus `json:"status"`
}

// Validate проверяет статус, если он передан.
func (r *UpdateStoryRequest) Validate() error {
	if r.Status != nil && !r.Status.IsValid() {
		return NewValidationError(MsgInvalidStatus)
	}
	return nil
}

// IsEmpty сообщает, что обновлять нечего.
func (r *UpdateStoryRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Genre == nil && r.Status == nil
}
