package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PlaceholderUsernamePrefix - префикс имени, выдаваемого при первом входе.
const PlaceholderUsernamePrefix = "user_"

// Ограничения длины имени пользователя (в символах).
const (
	UsernameMinLength = 2
	UsernameMaxLength = 20
)

// User - пользователь системы.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Username     string    `db:"username" json:"username"`
	ProfileImage *string   `db:"profile_image" json:"profileImage"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// HasPlaceholderUsername сообщает, что пользователь еще не выбрал себе имя.
func (u *User) HasPlaceholderUsername() bool {
	return strings.HasPrefix(u.Username, PlaceholderUsernamePrefix)
}

// OAuthIdentity - данные, полученные от OAuth провайдера.
type OAuthIdentity struct {
	Provider          string
	ProviderAccountID string
	Email             string
	Picture           string
}
