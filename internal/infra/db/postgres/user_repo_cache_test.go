//go:build !integration

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"job-tracker-api/internal/domain"
	"job-tracker-api/internal/domain/model"
	"job-tracker-api/internal/domain/ports/repository"

	"github.com/go-redis/redis/v8"
)

func TestUserRepoCacheDecorator(t *testing.T) {
	ctx := context.Background()
	user := &model.User{ID: "user-123", Email: "ada@example.com", Name: "Ada"}

	t.Run("FindByID should fetch from DB and set cache on miss", func(t *testing.T) {
		innerCalled := false
		var setKey string
		var setTTL time.Duration

		mockRedis := &mockRedisClient{
			GetFunc: func(ctx context.Context, key string) (string, error) {
				return "", redis.Nil
			},
			SetFunc: func(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
				setKey, setTTL = key, expiration
				return nil
			},
		}
		mockInner := &mockInnerUserRepo{
			FindByIDFunc: func(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
				innerCalled = true
				return user, nil
			},
		}

		decorator := NewUserRepoCacheDecorator(mockInner, mockRedis, 10*time.Minute)
		result, err := decorator.FindByID(ctx, nil, "user-123")

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !innerCalled {
			t.Error("inner repository should be called on a cache miss")
		}
		if setKey != "user:id:user-123" || setTTL != 10*time.Minute {
			t.Errorf("unexpected cache write %q ttl %s", setKey, setTTL)
		}
		if result == nil || result.ID != "user-123" {
			t.Error("did not return the correct user from the inner repository")
		}
	})

	t.Run("FindByID should return cached data on hit", func(t *testing.T) {
		payload, _ := json.Marshal(user)
		mockRedis := &mockRedisClient{
			GetFunc: func(ctx context.Context, key string) (string, error) {
				return string(payload), nil
			},
		}
		mockInner := &mockInnerUserRepo{
			FindByIDFunc: func(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
				t.Error("inner repository should not be called on a cache hit")
				return nil, nil
			},
		}

		result, err := NewUserRepoCacheDecorator(mockInner, mockRedis, 0).FindByID(ctx, nil, "user-123")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Email != "ada@example.com" {
			t.Errorf("unexpected cached user %+v", result)
		}
	})

	t.Run("FindByID inside a transaction bypasses the cache", func(t *testing.T) {
		mockRedis := &mockRedisClient{
			GetFunc: func(ctx context.Context, key string) (string, error) {
				t.Error("cache must not be read inside a transaction")
				return "", redis.Nil
			},
		}
		mockInner := &mockInnerUserRepo{
			FindByIDFunc: func(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
				return user, nil
			},
		}
		if _, err := NewUserRepoCacheDecorator(mockInner, mockRedis, 0).FindByID(ctx, struct{}{}, "user-123"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("FindByID propagates not found without caching", func(t *testing.T) {
		mockRedis := &mockRedisClient{
			GetFunc: func(ctx context.Context, key string) (string, error) {
				return "", errors.New("redis down")
			},
			SetFunc: func(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
				t.Error("nothing should be cached for a missing user")
				return nil
			},
		}
		mockInner := &mockInnerUserRepo{
			FindByIDFunc: func(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
				return nil, domain.ErrNotFound
			},
		}
		_, err := NewUserRepoCacheDecorator(mockInner, mockRedis, 0).FindByID(ctx, nil, "ghost")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Save should invalidate the cache key", func(t *testing.T) {
		var deleted []string
		mockRedis := &mockRedisClient{
			DelFunc: func(ctx context.Context, keys ...string) error {
				deleted = append(deleted, keys...)
				return nil
			},
		}
		mockInner := &mockInnerUserRepo{
			SaveFunc: func(ctx context.Context, tx repository.Tx, u *model.User) error { return nil },
		}

		if err := NewUserRepoCacheDecorator(mockInner, mockRedis, 0).Save(ctx, nil, user); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(deleted) != 1 || deleted[0] != "user:id:user-123" {
			t.Errorf("unexpected invalidations %v", deleted)
		}
	})
}
