package repository

import (
	"encoding/json"

	"github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/base/log"
	"github.com/x-xyz/artgallery/domain"
	"github.com/x-xyz/artgallery/service/cache"
)

type cacheRepo struct {
	cache cache.Service
}

// NewCacheRepo keeps metadata documents in cache, keyed by token id
func NewCacheRepo(cache cache.Service) domain.MetadataCacheRepo {
	return &cacheRepo{cache: cache}
}

func (r *cacheRepo) Get(c ctx.Ctx, tokenId domain.TokenId) (*domain.Metadata, error) {
	var raw json.RawMessage
	if err := r.cache.Get(c, tokenId.String(), &raw); err == cache.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		// a broken cache only costs a refetch
		c.WithFields(log.Fields{"err": err, "tokenId": tokenId}).Warn("cache.Get failed, treated as miss")
		return nil, domain.ErrNotFound
	}
	return &domain.Metadata{RawMessage: raw}, nil
}

func (r *cacheRepo) Put(c ctx.Ctx, tokenId domain.TokenId, metadata *domain.Metadata) error {
	if metadata == nil || len(metadata.RawMessage) == 0 {
		return domain.ErrInvalidJsonFormat
	}
	if err := r.cache.Set(c, tokenId.String(), metadata.RawMessage); err != nil {
		c.WithFields(log.Fields{"err": err, "tokenId": tokenId}).Warn("cache.Set failed")
		return err
	}
	return nil
}
