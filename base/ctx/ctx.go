package ctx

import (
	"context"
	"time"

	log "github.com/x-xyz/artgallery/base/log"
)

// Ctx carries a context.Context and a field logger through every layer
type Ctx struct {
	context.Context
	log.Logger
}

func Background() Ctx {
	return Ctx{
		Context: context.Background(),
		Logger:  log.Log(),
	}
}

func WithValue(parent Ctx, key string, val interface{}) Ctx {
	return Ctx{
		Context: context.WithValue(parent, key, val),
		Logger:  parent.Logger.WithField(key, val),
	}
}

// WithLogField only decorates the logger, the underlying context is untouched
func WithLogField(parent Ctx, key string, val interface{}) Ctx {
	return Ctx{
		Context: parent.Context,
		Logger:  parent.Logger.WithField(key, val),
	}
}

func WithCancel(parent Ctx) (Ctx, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	return Ctx{
		Context: ctx,
		Logger:  parent.Logger,
	}, cancel
}

func WithTimeout(parent Ctx, timeout time.Duration) (Ctx, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return Ctx{
		Context: ctx,
		Logger:  parent.Logger,
	}, cancel
}
