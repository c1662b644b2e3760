package main

import (
	"github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/base/database/redisclient"
	"github.com/x-xyz/artgallery/base/metrics"
	"github.com/x-xyz/artgallery/domain"
	"github.com/x-xyz/artgallery/domain/keys"
	"github.com/x-xyz/artgallery/service/cache"
	"github.com/x-xyz/artgallery/service/cache/provider"
	"github.com/x-xyz/artgallery/service/cache/provider/compound"
	"github.com/x-xyz/artgallery/service/cache/provider/memory"
	"github.com/x-xyz/artgallery/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/artgallery/service/cache/provider/redis"
	"github.com/x-xyz/artgallery/service/redis"
	metadata_repository "github.com/x-xyz/artgallery/stores/metadata/repository"
)

const (
	cacheBackendMemory    = "memory"
	cacheBackendFreecache = "freecache"
)

// localCacheProvider is the in-process layer. memory never evicts, freecache
// is bounded by sizeMB and refuses documents over sizeMB/1024.
func localCacheProvider(cfg metadataCacheConfig) provider.Provider {
	if cfg.Backend == cacheBackendFreecache {
		return primitive.NewPrimitive(keys.PfxArtworkMetadata, cfg.SizeMB)
	}
	return memory.NewMemory(keys.PfxArtworkMetadata)
}

// newMetadataCache layers redis behind the local cache when a redis uri is configured
func newMetadataCache(c ctx.Ctx, cfg metadataCacheConfig) (domain.MetadataCacheRepo, error) {
	cacheProvider := localCacheProvider(cfg)
	if uri := cfg.Redis.Uri; uri != "" {
		c.Info("init redis cache")
		pool, err := redisclient.ConnectRedis(uri, cfg.Redis.Password, redisclient.RedisParam{
			MaxIdle:   cfg.Redis.MaxIdle,
			MaxActive: cfg.Redis.MaxActive,
		})
		if err != nil {
			c.WithField("err", err).Error("redisclient.ConnectRedis failed")
			return nil, err
		}
		redisCache := redis.New(keys.PfxArtworkMetadata, metrics.New("redis"), &redis.Pools{Src: pool})
		cacheProvider = compound.NewCompound([]provider.Provider{
			cacheProvider,
			redisProvider.NewRedis(redisCache),
		})
	}
	return metadata_repository.NewCacheRepo(cache.New(cache.ServiceConfig{
		Ttl:   cfg.Ttl,
		Pfx:   keys.PfxArtworkMetadata,
		Cache: cacheProvider,
	})), nil
}
