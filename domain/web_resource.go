package domain

import (
	"github.com/x-xyz/artgallery/base/ctx"
)

// WebResourceReaderRepository reads the bytes an uri or content id points to
type WebResourceReaderRepository interface {
	Get(ctx.Ctx, string) ([]byte, error)
}
