package memory

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/service/cache/provider"
)

const cleanupInterval = time.Minute

type impl struct {
	name  string
	cache *gocache.Cache
}

// NewMemory returns an unbounded in-process cache. Entries are only dropped
// when their ttl passes or on Del, never to make room.
func NewMemory(name string) provider.Provider {
	return &impl{name, gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, expireAt, ok := im.cache.GetWithExpiration(key)
	if !ok {
		return nil, time.Duration(0), provider.ErrNotFound
	}
	if expireAt.IsZero() {
		return val.([]byte), time.Duration(0), nil
	}
	return val.([]byte), time.Until(expireAt).Round(time.Second), nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	expire := gocache.NoExpiration
	if ttl > 0 {
		expire = ttl
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	im.cache.Set(key, stored, expire)
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	im.cache.Delete(key)
	return nil
}
