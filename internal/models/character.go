package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Character - персонаж пользователя. Имя уникально в пределах владельца.
type Character struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	Name         string    `json:"name"`
	Gender       string    `json:"gender"`
	Age          int       `json:"age"`
	ProfileImage *string   `json:"profileImage"`
	Personality  string    `json:"personality"`
	Appearance   string    `json:"appearance"`
	Background   string    `json:"background"`
	Stats        Stats     `json:"stats"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Stories []Story `json:"stories,omitempty"`
}

// CreateCharacterRequest - тело POST /api/characters.
type CreateCharacterRequest struct {
	Name         string  `json:"name" binding:"required"`
	Gender       string  `json:"gender" binding:"required"`
	Age          int     `json:"age" binding:"required,gt=0"`
	Appearance   string  `json:"appearance" binding:"required"`
	Personality  string  `json:"personality" binding:"required"`
	Background   string  `json:"background" binding:"required"`
	ProfileImage *string `json:"profileImage"`
	Stats        *Stats  `json:"stats" binding:"omitempty,statsum"`
}

// Validate проверяет обязательные поля и блок характеристик.
func (r *CreateCharacterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Gender) == "" || r.Age <= 0 ||
		strings.TrimSpace(r.Appearance) == "" || strings.TrimSpace(r.Personality) == "" ||
		strings.TrimSpace(r.Background) == "" {
		return NewValidationError(MsgMissingFields)
	}
	if r.Stats != nil {
		return r.Stats.Validate()
	}
	return nil
}

// CheckNameRequest - тело POST /api/characters/check-name.
type CheckNameRequest struct {
	Name string `json:"name"`
}

// CharacterProfile - персонаж в том виде, в каком его присылает клиент
// (в запросах к AI и в черновике). Может еще не иметь ID.
type CharacterProfile struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Gender       string `json:"gender,omitempty"`
	Age          int    `json:"age,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	Personality  string `json:"personality,omitempty"`
	Appearance   string `json:"appearance,omitempty"`
	Background   string `json:"background,omitempty"`
	Role         string `json:"role,omitempty"`
	Stats        Stats  `json:"stats"`
}
