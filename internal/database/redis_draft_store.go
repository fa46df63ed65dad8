package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"choicefiction/internal/interfaces"
	"choicefiction/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const draftKeyPrefix = "draft"

var _ interfaces.DraftStore = (*redisDraftStore)(nil)

type redisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisDraftStore создает хранилище черновиков в Redis. ttl продлевается при каждой записи.
func NewRedisDraftStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) interfaces.DraftStore {
	return &redisDraftStore{client: client, ttl: ttl, logger: logger.Named("RedisDraftStore")}
}

func draftKey(userID uuid.UUID, slot string) string {
	return fmt.Sprintf("%s:%s:%s", draftKeyPrefix, userID, slot)
}

func (s *redisDraftStore) Load(ctx context.Context, userID uuid.UUID, slot string) (models.Draft, bool, error) {
	raw, err := s.client.Get(ctx, draftKey(userID, slot)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Draft{}, false, nil
		}
		s.logger.Error("Failed to load draft", zap.Error(err), zap.Stringer("userID", userID), zap.String("slot", slot))
		return models.Draft{}, false, fmt.Errorf("failed to load draft: %w", err)
	}
	var d models.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		s.logger.Warn("Corrupted draft, ignoring", zap.Error(err), zap.Stringer("userID", userID), zap.String("slot", slot))
		return models.Draft{}, false, nil
	}
	return d, true, nil
}

func (s *redisDraftStore) Save(ctx context.Context, userID uuid.UUID, slot string, draft models.Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(userID, slot), raw, s.ttl).Err(); err != nil {
		s.logger.Error("Failed to save draft", zap.Error(err), zap.Stringer("userID", userID), zap.String("slot", slot))
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (s *redisDraftStore) Delete(ctx context.Context, userID uuid.UUID, slot string) error {
	if err := s.client.Del(ctx, draftKey(userID, slot)).Err(); err != nil {
		s.logger.Error("Failed to delete draft", zap.Error(err), zap.Stringer("userID", userID), zap.String("slot", slot))
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
