package database

import (
	"context"
	"fmt"
	"time"

	"choicefiction/internal/interfaces"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const viewKeyPrefix = "story_view"

var _ interfaces.ViewRegistry = (*redisViewRegistry)(nil)

type redisViewRegistry struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisViewRegistry создает реестр просмотров на Redis.
func NewRedisViewRegistry(client *redis.Client, logger *zap.Logger) interfaces.ViewRegistry {
	return &redisViewRegistry{client: client, logger: logger.Named("RedisViewRegistry")}
}

func viewKey(storyID uuid.UUID, viewer string) string {
	return fmt.Sprintf("%s:%s:%s", viewKeyPrefix, storyID, viewer)
}

// MarkViewed ставит ключ через SET NX с TTL окна; true означает, что ключа не было.
func (r *redisViewRegistry) MarkViewed(ctx context.Context, storyID uuid.UUID, viewer string, window time.Duration) (bool, error) {
	if window <= 0 {
		return true, nil
	}
	ok, err := r.client.SetNX(ctx, viewKey(storyID, viewer), 1, window).Result()
	if err != nil {
		r.logger.Error("Failed to mark story view", zap.Error(err), zap.Stringer("storyID", storyID))
		return false, fmt.Errorf("failed to mark story view: %w", err)
	}
	return ok, nil
}
