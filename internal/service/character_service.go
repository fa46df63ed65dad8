package service

import (
	"context"
	"errors"
	"fmt"

	"choicefiction/internal/interfaces"
	"choicefiction/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CharacterService - персонажи пользователя.
type CharacterService interface {
	Create(ctx context.Context, userID uuid.UUID, req models.CreateCharacterRequest) (*models.Character, error)
	// Get возвращает персонажа вместе с его историями.
	Get(ctx context.Context, id uuid.UUID) (*models.Character, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Character, error)
	CheckName(ctx context.Context, userID uuid.UUID, name string) (*models.NameAvailability, error)
}

type characterServiceImpl struct {
	characters interfaces.CharacterRepository
	stories    interfaces.StoryRepository
	logger     *zap.Logger
}

// NewCharacterService создает CharacterService.
func NewCharacterService(characters interfaces.CharacterRepository, stories interfaces.StoryRepository, logger *zap.Logger) CharacterService {
	return &characterServiceImpl{
		characters: characters,
		stories:    stories,
		logger:     logger.Named("CharacterService"),
	}
}

func (s *characterServiceImpl) Create(ctx context.Context, userID uuid.UUID, req models.CreateCharacterRequest) (*models.Character, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	character := &models.Character{
		UserID:       userID,
		Name:         normalizeName(req.Name),
		Gender:       req.Gender,
		Age:          req.Age,
		ProfileImage: req.ProfileImage,
		Personality:  req.Personality,
		Appearance:   req.Appearance,
		Background:   req.Background,
	}
	if req.Stats != nil {
		character.Stats = *req.Stats
	}

	// Уникальность проверяет ограничение (user_id, name) в самой вставке.
	if err := s.characters.Create(ctx, character); err != nil {
		if errors.Is(err, models.ErrCharacterNameTaken) {
			s.logger.Info("Character name already taken", zap.Stringer("userID", userID), zap.String("name", character.Name))
			return nil, err
		}
		return nil, fmt.Errorf("create character: %w", err)
	}

	s.logger.Info("Character created", zap.Stringer("characterID", character.ID), zap.Stringer("userID", userID))
	return character, nil
}

func (s *characterServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Character, error) {
	character, err := s.characters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stories, err := s.stories.ListByCharacter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list character stories: %w", err)
	}
	character.Stories = stories
	return character, nil
}

func (s *characterServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]models.Character, error) {
	characters, err := s.characters.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	return characters, nil
}

func (s *characterServiceImpl) CheckName(ctx context.Context, userID uuid.UUID, name string) (*models.NameAvailability, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, models.NewValidationError(models.MsgCharacterNameRequired)
	}
	exists, err := s.characters.ExistsByName(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("check character name: %w", err)
	}
	if exists {
		return &models.NameAvailability{IsAvailable: false, Message: models.MsgCharacterNameTaken}, nil
	}
	return &models.NameAvailability{IsAvailable: true, Message: models.MsgCharacterNameFree}, nil
}
