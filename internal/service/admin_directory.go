package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/colegioeccos/requesthub/internal/repository"
)

const adminRosterCacheKey = "requesthub:admin_emails"

// rosterCache is the subset of redis.Client commands the directory uses.
type rosterCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedAdminDirectory resolves the admin roster from the principal store,
// caching it in Redis for a short TTL. The cache is dropped on every role
// change. A nil Redis client degrades to uncached lookups.
type CachedAdminDirectory struct {
	principals repository.PrincipalRepository
	cache      rosterCache
	ttl        time.Duration
	logger     *zap.Logger
}

// NewCachedAdminDirectory builds the directory.
func NewCachedAdminDirectory(principals repository.PrincipalRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedAdminDirectory {
	d := &CachedAdminDirectory{
		principals: principals,
		ttl:        ttl,
		logger:     logger,
	}
	if cache != nil {
		d.cache = cache
	}
	return d
}

// ListAdminEmails returns the current admin e-mail roster.
func (d *CachedAdminDirectory) ListAdminEmails(ctx context.Context) ([]string, error) {
	if d.cache != nil {
		cached, err := d.cache.Get(ctx, adminRosterCacheKey).Bytes()
		if err == nil {
			var emails []string
			if jsonErr := json.Unmarshal(cached, &emails); jsonErr == nil {
				return emails, nil
			}
		} else if err != redis.Nil {
			d.logger.Warn("admin roster cache read failed", zap.Error(err))
		}
	}

	emails, err := d.principals.ListAdminEmails(ctx)
	if err != nil {
		return nil, err
	}

	if d.cache != nil && d.ttl > 0 {
		encoded, err := json.Marshal(emails)
		if err == nil {
			if err := d.cache.Set(ctx, adminRosterCacheKey, encoded, d.ttl).Err(); err != nil {
				d.logger.Warn("admin roster cache write failed", zap.Error(err))
			}
		}
	}
	return emails, nil
}

// Invalidate drops the cached roster; called after role changes.
func (d *CachedAdminDirectory) Invalidate(ctx context.Context) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Del(ctx, adminRosterCacheKey).Err(); err != nil {
		d.logger.Warn("admin roster cache invalidation failed", zap.Error(err))
	}
}
