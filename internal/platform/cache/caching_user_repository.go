// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"todo_backend/internal/feature/user/domain/entity"
	"todo_backend/internal/feature/user/usecase"
)

// CachingUserRepository decorates a UserRepository with Redis caching of the
// names listing. It implements the decorator pattern, transparently adding
// caching without modifying the underlying repository. Every write through the
// decorator invalidates the cached listing.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "names".
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "names"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// ListNames retrieves the names listing, checking cache first then falling
// back to the database.
func (c *CachingUserRepository) ListNames(ctx context.Context) ([]string, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.ListNames(ctx)
	}

	key := c.cacheKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []string
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.ListNames(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Create persists a user and invalidates the cached names listing.
func (c *CachingUserRepository) Create(ctx context.Context, u *entity.User) error {
	if err := c.inner.Create(ctx, u); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// UpdateFields updates a user and invalidates the cached names listing.
func (c *CachingUserRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) (*entity.User, error) {
	u, err := c.inner.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return u, nil
}

// Delete removes a user and invalidates the cached names listing.
func (c *CachingUserRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByID passes through to the underlying repository.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return c.inner.FindByID(ctx, id)
}

// FindBySlug passes through to the underlying repository.
func (c *CachingUserRepository) FindBySlug(ctx context.Context, slug string) (*entity.User, error) {
	return c.inner.FindBySlug(ctx, slug)
}

// invalidate drops the cached listing. Best effort: a stale entry expires via
// TTL anyway.
func (c *CachingUserRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.cacheKey()).Err()
}

// cacheKey generates the cache key for the names listing.
func (c *CachingUserRepository) cacheKey() string {
	return c.namespace + ":all"
}
