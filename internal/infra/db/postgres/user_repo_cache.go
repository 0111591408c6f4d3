package postgres

import (
	"context"
	"encoding/json"
	"time"

	"job-tracker-api/internal/domain/model"
	"job-tracker-api/internal/domain/ports/repository"
	"job-tracker-api/internal/infra/metrics"
	red "job-tracker-api/internal/infra/redis"
)

var _ repository.UserRepository = (*userRepoCacheDecorator)(nil)

// userRepoCacheDecorator caches FindByID, which every report and email
// preview request performs.
type userRepoCacheDecorator struct {
	inner repository.UserRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewUserRepoCacheDecorator(inner repository.UserRepository, cache red.RedisClient, ttl time.Duration) repository.UserRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &userRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func userCacheKey(id string) string { return "user:id:" + id }

func (d *userRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	_ = d.cache.Del(ctx, userCacheKey(u.ID))
	return d.inner.Save(ctx, tx, u)
}

func (d *userRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	// Inside a transaction the caller wants the database view.
	if tx != nil {
		metrics.IncCacheRequest("user", metrics.CacheBypass)
		return d.inner.FindByID(ctx, tx, id)
	}

	key := userCacheKey(id)
	val, err := d.cache.Get(ctx, key)
	switch {
	case err == nil:
		var user model.User
		if json.Unmarshal([]byte(val), &user) == nil {
			metrics.IncCacheRequest("user", metrics.CacheHit)
			return &user, nil
		}
	case !red.IsMiss(err):
		metrics.IncCacheRequest("user", metrics.CacheError)
	}

	metrics.IncCacheRequest("user", metrics.CacheMiss)
	user, err := d.inner.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(user); err == nil {
		_ = d.cache.Set(ctx, key, b, d.ttl)
	}
	return user, nil
}

func (d *userRepoCacheDecorator) ListReportSubscribers(ctx context.Context, tx repository.Tx) ([]*model.User, error) {
	return d.inner.ListReportSubscribers(ctx, tx)
}
