package file

import (
	"github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/domain"
)

// ArtworkUploadPayload is what a creator submits before minting
type ArtworkUploadPayload struct {
	Content        []byte
	FileName       string
	Name           string `validate:"required"`
	Description    string
	Price          string         `validate:"required,numeric"`
	CreatorAddress domain.Address `validate:"required,address"`
}

type Usecase interface {
	// UploadArtwork pins the image then its metadata document and returns the metadata content id
	UploadArtwork(c ctx.Ctx, payload *ArtworkUploadPayload) (metadataCid string, err error)
}
