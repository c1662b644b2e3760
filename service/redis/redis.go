package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/artgallery/base/ctx"
)

const (
	// Forever stores a key without expiration
	Forever = time.Duration(0)
)

var (
	ErrNotFound = errors.New("redis: key not found")
	ErrNoTTL    = errors.New("redis: key has no ttl")
	ErrGapTime  = errors.New("redis: no pool available")
)

// Service is the subset of redis commands used as a cache backend
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	// TTL returns remaining seconds, ErrNoTTL for persistent keys
	TTL(context ctx.Ctx, key string) (int, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	Del(context ctx.Ctx, keys ...string) (int, error)
}
