package interfaces

import (
	"context"

	"choicefiction/internal/models"

	"github.com/google/uuid"
)

// UserRepository - хранилище пользователей.
type UserRepository interface {
	// CreateUser вставляет пользователя и заполняет ID и временные метки.
	// Возвращает models.ErrEmailAlreadyExists или models.ErrUsernameTaken при нарушении уникальности.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID returns models.ErrUserNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetUserByEmail returns models.ErrUserNotFound if the user does not exist.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateUsername меняет имя одним UPDATE; занятое имя дает models.ErrUsernameTaken.
	UpdateUsername(ctx context.Context, userID uuid.UUID, username string) error

	// LinkOAuthAccount связывает учетную запись провайдера с пользователем (идемпотентно).
	LinkOAuthAccount(ctx context.Context, userID uuid.UUID, provider, providerAccountID string) error
}
