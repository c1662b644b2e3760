package usecase

import (
	"bytes"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/base/log"
	"github.com/x-xyz/artgallery/domain"
	"github.com/x-xyz/artgallery/domain/file"
	"github.com/x-xyz/artgallery/service/pinata"
	"golang.org/x/xerrors"
)

const (
	categoryDigitalArt = "Digital Art"
	createdAtLayout    = "2006-01-02T15:04:05.000000Z"
)

type impl struct {
	pinata pinata.Service
	now    func() time.Time
}

func New(pinata pinata.Service) file.Usecase {
	return &impl{
		pinata: pinata,
		now:    time.Now,
	}
}

func (im *impl) UploadArtwork(c ctx.Ctx, payload *file.ArtworkUploadPayload) (string, error) {
	if len(payload.Content) == 0 {
		return "", xerrors.Errorf("empty file: %w", domain.ErrBadParamInput)
	}
	if !payload.CreatorAddress.IsValid() {
		return "", domain.ErrInvalidAddress
	}

	c = ctx.WithLogField(c, "creator", payload.CreatorAddress)
	extension := detectExtension(payload.Content, payload.FileName)

	imageCid, err := im.pinata.Pin(c, bytes.NewReader(payload.Content), extension,
		pinata.WithMetadata(pinata.PinataMetadata{Name: payload.FileName}))
	if err != nil {
		c.WithField("err", err).Error("pinata.Pin failed")
		return "", mapPinError(err)
	}
	c.WithField("imageCid", imageCid).Info("image pinned")

	doc := &domain.MetadataDocument{
		Name:        payload.Name,
		Description: payload.Description,
		Image:       "ipfs://" + imageCid,
		Attributes: []domain.MetadataAttribute{
			{TraitType: "Creator", Value: string(payload.CreatorAddress)},
			{TraitType: "Category", Value: categoryDigitalArt},
			{TraitType: "Price", Value: payload.Price + " ETH"},
		},
		CreatedAt: im.now().UTC().Format(createdAtLayout),
	}

	metadataCid, err := im.pinata.PinJson(c, doc,
		pinata.WithMetadata(pinata.PinataMetadata{Name: "metadata.json"}))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "imageCid": imageCid}).Error("pinata.PinJson failed")
		return "", mapPinError(err)
	}
	c.WithFields(log.Fields{"imageCid": imageCid, "metadataCid": metadataCid}).Info("artwork pinned")
	return metadataCid, nil
}

// detectExtension sniffs content, the file name is only used when sniffing finds nothing useful
func detectExtension(content []byte, fileName string) string {
	if ext := strings.TrimPrefix(mimetype.Detect(content).Extension(), "."); ext != "" {
		return ext
	}
	if ext := strings.TrimPrefix(filepath.Ext(fileName), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return "bin"
}

func mapPinError(err error) error {
	if pinata.IsPinningError(err) {
		return xerrors.Errorf("%s: %w", err.Error(), domain.ErrServiceUnavailable)
	}
	return xerrors.Errorf("%s: %w", err.Error(), domain.ErrInternalServerError)
}
