package repository

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"quotes-api/internal/domains/author/model"
	"quotes-api/pkg/cache"
)

const authorCacheKeyPrefix = "author:"

// cachedRepository adds cache-aside lookups for GetByID on top of another
// repository. Every write drops the author's key.
//
// writes counts invalidations. A lookup only fills the cache when no write
// was invalidated between its storage read and its Set, so a read that raced
// a delete cannot put the pre-delete row back.
type cachedRepository struct {
	RepositoryInterface
	cache cache.Cache
	ttl   time.Duration

	mu     sync.Mutex
	writes uint64
}

func NewCachedRepository(next RepositoryInterface, c cache.Cache, ttl time.Duration) RepositoryInterface {
	return &cachedRepository{RepositoryInterface: next, cache: c, ttl: ttl}
}

// FlushCache drops every cached author. Ids restart with a fresh memory
// store, so entries left by a previous process would be wrong.
func FlushCache(ctx context.Context, c cache.Cache) error {
	return c.DeletePattern(ctx, authorCacheKeyPrefix+"*")
}

func authorCacheKey(id int64) string {
	return authorCacheKeyPrefix + strconv.FormatInt(id, 10)
}

func (r *cachedRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	key := authorCacheKey(id)

	var a model.Author
	found, err := r.cache.Get(ctx, key, &a)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("author cache read failed")
	}
	if found && err == nil {
		return &a, nil
	}

	seen := r.writeCount()
	fresh, err := r.RepositoryInterface.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writes != seen {
		return fresh, nil
	}
	if err := r.cache.Set(ctx, key, fresh, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("author cache write failed")
	}
	return fresh, nil
}

func (r *cachedRepository) writeCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

func (r *cachedRepository) Update(ctx context.Context, id int64, patch model.AuthorPatch) (*model.Author, error) {
	a, err := r.RepositoryInterface.Update(ctx, id, patch)
	r.invalidate(ctx, id)
	return a, err
}

func (r *cachedRepository) SoftDelete(ctx context.Context, id int64) error {
	err := r.RepositoryInterface.SoftDelete(ctx, id)
	r.invalidate(ctx, id)
	return err
}

func (r *cachedRepository) Restore(ctx context.Context, id int64) (*model.Author, error) {
	a, err := r.RepositoryInterface.Restore(ctx, id)
	r.invalidate(ctx, id)
	return a, err
}

func (r *cachedRepository) Purge(ctx context.Context, id int64) error {
	err := r.RepositoryInterface.Purge(ctx, id)
	r.invalidate(ctx, id)
	return err
}

func (r *cachedRepository) invalidate(ctx context.Context, id int64) {
	r.mu.Lock()
	r.writes++
	r.mu.Unlock()

	if err := r.cache.Delete(ctx, authorCacheKey(id)); err != nil {
		log.Warn().Err(err).Int64("author_id", id).Msg("author cache invalidation failed")
	}
}
