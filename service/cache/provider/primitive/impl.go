package primitive

import (
	"time"

	"github.com/coocood/freecache"
	"github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/base/log"
	"github.com/x-xyz/artgallery/service/cache/provider"
)

type impl struct {
	name  string
	cache *freecache.Cache
}

// NewPrimitive returns an in-process cache of size MiB. The oldest entries are
// evicted once it is full and a value over size/1024 is refused with provider.ErrTooLarge.
func NewPrimitive(name string, size int) provider.Provider {
	return &impl{name, freecache.NewCache(size * 1024 * 1024)}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	if val, ttl, err := im.cache.GetWithExpiration([]byte(key)); err != nil {
		if err == freecache.ErrNotFound {
			return nil, time.Duration(0), provider.ErrNotFound
		}
		c.WithFields(log.Fields{"err": err, "key": key, "cache": im.name}).Error("cache.Get failed")
		return nil, time.Duration(0), err
	} else if ttl == 0 {
		return val, time.Duration(0), nil
	} else {
		return val, time.Until(time.Unix(int64(ttl), 0)).Round(time.Second), nil
	}
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if err := im.cache.Set([]byte(key), value, int(ttl.Seconds())); err == freecache.ErrLargeEntry {
		c.WithFields(log.Fields{"key": key, "size": len(value), "cache": im.name}).Warn("entry exceeds 1/1024 of the cache size")
		return provider.ErrTooLarge
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "cache": im.name}).Error("cache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}
