package session

import (
	"context"
	"delivery-ops-service/internal/platform/obs"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const pageErrorPrefix = "roster:error:"

// RedisPageErrorStore keeps the last roster error of each viewer.
// Keys never expire; a newer error overwrites the old one.
type RedisPageErrorStore struct {
	RDB *redis.Client
}

func NewRedisPageErrorStore(rdb *redis.Client) *RedisPageErrorStore {
	return &RedisPageErrorStore{RDB: rdb}
}

func (s *RedisPageErrorStore) Get(ctx context.Context, viewerID string) (_ string, err error) {
	defer obs.Time(ctx, "session.PageError.Get")(&err)

	if s.RDB == nil {
		return "", errors.New("page error store: redis client is nil")
	}

	msg, err := s.RDB.Get(ctx, pageErrorPrefix+viewerID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get page error: redis get: %w", err)
	}

	return msg, nil
}

func (s *RedisPageErrorStore) Set(ctx context.Context, viewerID string, msg string) (err error) {
	defer obs.Time(ctx, "session.PageError.Set")(&err)

	if s.RDB == nil {
		return errors.New("page error store: redis client is nil")
	}

	if err := s.RDB.Set(ctx, pageErrorPrefix+viewerID, msg, 0).Err(); err != nil {
		return fmt.Errorf("set page error: redis set: %w", err)
	}

	return nil
}
