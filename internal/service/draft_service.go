package service

import (
	"context"
	"fmt"

	"choicefiction/internal/interfaces"
	"choicefiction/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DraftService - черновик выбора между шагами создания истории.
type DraftService interface {
	// Get возвращает пустой черновик, если сохраненного нет.
	Get(ctx context.Context, userID uuid.UUID, slot string) (models.Draft, error)
	Save(ctx context.Context, userID uuid.UUID, slot string, draft models.Draft) (models.Draft, error)
	Patch(ctx context.Context, userID uuid.UUID, slot string, patch models.DraftPatch) (models.Draft, error)
	Reset(ctx context.Context, userID uuid.UUID, slot string) error
}

type draftServiceImpl struct {
	store  interfaces.DraftStore
	logger *zap.Logger
}

// NewDraftService создает DraftService поверх хранилища черновиков.
func NewDraftService(store interfaces.DraftStore, logger *zap.Logger) DraftService {
	return &draftServiceImpl{store: store, logger: logger.Named("DraftService")}
}

func checkSlot(slot string) error {
	if !models.IsValidDraftSlot(slot) {
		return models.NewValidationError(models.MsgInvalidDraftSlot)
	}
	return nil
}

func (s *draftServiceImpl) Get(ctx context.Context, userID uuid.UUID, slot string) (models.Draft, error) {
	if err := checkSlot(slot); err != nil {
		return models.Draft{}, err
	}
	draft, _, err := s.store.Load(ctx, userID, slot)
	if err != nil {
		return models.Draft{}, fmt.Errorf("load draft: %w", err)
	}
	return draft, nil
}

func (s *draftServiceImpl) Save(ctx context.Context, userID uuid.UUID, slot string, draft models.Draft) (models.Draft, error) {
	if err := checkSlot(slot); err != nil {
		return models.Draft{}, err
	}
	if err := s.store.Save(ctx, userID, slot, draft); err != nil {
		return models.Draft{}, fmt.Errorf("save draft: %w", err)
	}
	return draft, nil
}

func (s *draftServiceImpl) Patch(ctx context.Context, userID uuid.UUID, slot string, patch models.DraftPatch) (models.Draft, error) {
	current, err := s.Get(ctx, userID, slot)
	if err != nil {
		return models.Draft{}, err
	}
	return s.Save(ctx, userID, slot, patch.Apply(current))
}

func (s *draftServiceImpl) Reset(ctx context.Context, userID uuid.UUID, slot string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, userID, slot); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	s.logger.Debug("Draft reset", zap.Stringer("userID", userID), zap.String("slot", slot))
	return nil
}
