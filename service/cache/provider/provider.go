package provider

import (
	"errors"
	"time"

	"github.com/x-xyz/artgallery/base/ctx"
)

var (
	ErrNotFound = errors.New("Cache not found")
	// ErrTooLarge is returned by bounded providers for a value they can never hold
	ErrTooLarge = errors.New("Cache entry too large")
)

// raw cache implementation, a zero ttl means the entry never expires
type Provider interface {
	Get(c ctx.Ctx, key string) ([]byte, time.Duration, error)
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key string) error
}
