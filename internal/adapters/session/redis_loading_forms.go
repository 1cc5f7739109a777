package session

import (
	"context"
	"delivery-ops-service/internal/domain"
	"delivery-ops-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const loadingFormPrefix = "loading:form:"

// RedisLoadingFormStore keeps each user's open loading form as a JSON value
// that expires after TTL.
type RedisLoadingFormStore struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewRedisLoadingFormStore(rdb *redis.Client, ttl time.Duration) *RedisLoadingFormStore {
	return &RedisLoadingFormStore{RDB: rdb, TTL: ttl}
}

func (s *RedisLoadingFormStore) Get(ctx context.Context, userID string) (_ *domain.LoadingForm, err error) {
	defer obs.Time(ctx, "session.LoadingForm.Get")(&err)

	if s.RDB == nil {
		return nil, errors.New("loading form store: redis client is nil")
	}

	val, err := s.RDB.Get(ctx, loadingFormPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("loading form for user %s: %w", userID, domain.ErrNoOpenForm)
	}
	if err != nil {
		return nil, fmt.Errorf("get loading form: redis get: %w", err)
	}

	var form domain.LoadingForm
	if err := json.Unmarshal(val, &form); err != nil {
		return nil, fmt.Errorf("get loading form: decode: %w", err)
	}

	return &form, nil
}

func (s *RedisLoadingFormStore) Save(ctx context.Context, userID string, form *domain.LoadingForm) (err error) {
	defer obs.Time(ctx, "session.LoadingForm.Save")(&err)

	if s.RDB == nil {
		return errors.New("loading form store: redis client is nil")
	}

	b, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("save loading form: encode: %w", err)
	}

	if err := s.RDB.Set(ctx, loadingFormPrefix+userID, b, s.TTL).Err(); err != nil {
		return fmt.Errorf("save loading form: redis set: %w", err)
	}

	return nil
}

func (s *RedisLoadingFormStore) Delete(ctx context.Context, userID string) (err error) {
	defer obs.Time(ctx, "session.LoadingForm.Delete")(&err)

	if s.RDB == nil {
		return errors.New("loading form store: redis client is nil")
	}

	if err := s.RDB.Del(ctx, loadingFormPrefix+userID).Err(); err != nil {
		return fmt.Errorf("delete loading form: redis del: %w", err)
	}

	return nil
}
