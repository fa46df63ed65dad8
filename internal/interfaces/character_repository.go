package interfaces

import (
	"context"

	"choicefiction/internal/models"

	"github.com/google/uuid"
)

// CharacterRepository - хранилище персонажей.
type CharacterRepository interface {
	// Create вставляет персонажа. Имя, занятое этим же владельцем, дает models.ErrCharacterNameTaken.
	Create(ctx context.Context, character *models.Character) error
	// GetByID returns models.ErrCharacterNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Character, error)
	// GetByIDForUser ищет персонажа среди персонажей владельца.
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Character, error)
	// ListByUser - персонажи владельца, новые первыми.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Character, error)
	ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error)
}
