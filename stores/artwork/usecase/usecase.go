package usecase

import (
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/artgallery/base/backoff"
	bCtx "github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/base/log"
	"github.com/x-xyz/artgallery/base/metrics"
	"github.com/x-xyz/artgallery/domain"
	"github.com/x-xyz/artgallery/domain/artwork"
	"golang.org/x/xerrors"
)

const (
	ipfsScheme = "ipfs://"
	// weiDecimals is the exponent between wei and ether
	weiDecimals = -18

	defaultWorkers      = 8
	defaultMaxAttempts  = 2
	defaultBackoff      = 200 * time.Millisecond
	defaultBackoffLimit = 2 * time.Second
)

type ArtworkUseCaseCfg struct {
	Contract artwork.ContractRepo
	Metadata domain.MetadataUseCase
	Cache    domain.MetadataCacheRepo
	// Gateway is the public ipfs gateway image urls are rewritten to
	Gateway string

	Workers      int
	MaxAttempts  int
	Backoff      time.Duration
	BackoffLimit time.Duration
}

type impl struct {
	contract artwork.ContractRepo
	metadata domain.MetadataUseCase
	cache    domain.MetadataCacheRepo
	gateway  string

	workers      int
	maxAttempts  int
	backoff      time.Duration
	backoffLimit time.Duration

	met metrics.Service
}

func New(cfg *ArtworkUseCaseCfg) artwork.Usecase {
	im := &impl{
		contract:     cfg.Contract,
		metadata:     cfg.Metadata,
		cache:        cfg.Cache,
		gateway:      strings.TrimRight(cfg.Gateway, "/"),
		workers:      cfg.Workers,
		maxAttempts:  cfg.MaxAttempts,
		backoff:      cfg.Backoff,
		backoffLimit: cfg.BackoffLimit,
		met:          metrics.New("artwork"),
	}
	if im.workers <= 0 {
		im.workers = defaultWorkers
	}
	if im.maxAttempts <= 0 {
		im.maxAttempts = defaultMaxAttempts
	}
	if im.backoff <= 0 {
		im.backoff = defaultBackoff
	}
	if im.backoffLimit <= 0 {
		im.backoffLimit = defaultBackoffLimit
	}
	return im
}

func (im *impl) Get(c bCtx.Ctx, tokenId domain.TokenId) (*artwork.Artwork, error) {
	if !tokenId.IsValid() {
		return nil, domain.ErrNotFound
	}
	a, err := im.resolve(c, tokenId)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", err.Error(), domain.ErrNotFound)
	}
	return a, nil
}

// resolve reads owner, metadata then creator and price. Owner is never cached.
func (im *impl) resolve(c bCtx.Ctx, tokenId domain.TokenId) (*artwork.Artwork, error) {
	c = bCtx.WithLogField(c, "tokenId", tokenId)
	id := tokenId.BigInt()

	var owner domain.Address
	if err := im.retry(c, func() (err error) {
		owner, err = im.contract.OwnerOf(c, id)
		return err
	}); err != nil {
		im.fail(c, "ownerOf", err)
		return nil, err
	}

	doc, err := im.getMetadata(c, tokenId)
	if err != nil {
		im.fail(c, "metadata", err)
		return nil, err
	}

	var creator domain.Address
	if err := im.retry(c, func() (err error) {
		creator, err = im.contract.GetCreator(c, id)
		return err
	}); err != nil {
		im.fail(c, "getCreator", err)
		return nil, err
	}

	var wei *big.Int
	if err := im.retry(c, func() (err error) {
		wei, err = im.contract.GetPrice(c, id)
		return err
	}); err != nil {
		im.fail(c, "getPrice", err)
		return nil, err
	}

	return &artwork.Artwork{
		TokenId:   tokenId,
		Name:      displayName(doc, tokenId),
		ImageUrl:  im.imageUrl(doc.Image),
		Price:     decimal.NewFromBigInt(wei, weiDecimals),
		Creator:   creator.ToChecksum(),
		Owner:     owner.ToChecksum(),
		IsForSale: true,
	}, nil
}

// getMetadata serves from cache, or reads tokenURI and fetches the document on a miss
func (im *impl) getMetadata(c bCtx.Ctx, tokenId domain.TokenId) (*domain.MetadataSummary, error) {
	if m, err := im.cache.Get(c, tokenId); err == nil {
		if doc, err := m.Summary(); err == nil {
			im.met.BumpSum("metadata.cache.hit", 1)
			return doc, nil
		}
		c.Warn("cached metadata unreadable, refetching")
	}
	im.met.BumpSum("metadata.cache.miss", 1)

	var uri string
	if err := im.retry(c, func() (err error) {
		uri, err = im.contract.TokenURI(c, tokenId.BigInt())
		return err
	}); err != nil {
		return nil, err
	}
	if strings.TrimSpace(uri) == "" {
		return nil, domain.ErrNoMetadata
	}

	var m *domain.Metadata
	if err := im.retry(c, func() (err error) {
		m, err = im.metadata.GetFromUri(c, uri)
		return err
	}); err != nil {
		return nil, err
	}
	doc, err := m.Summary()
	if err != nil {
		return nil, err
	}

	if err := im.cache.Put(c, tokenId, m); err != nil {
		c.WithFields(log.Fields{"err": err, "uri": uri}).Warn("cache.Put failed")
	}
	return doc, nil
}

func (im *impl) retry(c bCtx.Ctx, fn func() error) error {
	b := backoff.NewExponential(im.backoff, im.backoffLimit)
	return backoff.Retry(c, b, im.maxAttempts, isRetryable, fn)
}

func (im *impl) fail(c bCtx.Ctx, step string, err error) {
	c.WithFields(log.Fields{"err": err, "step": step}).Warn("resolve failed")
	im.met.BumpSum("resolve.err", 1, "step", step, "reason", reason(err))
}

func (im *impl) imageUrl(image string) string {
	if strings.HasPrefix(image, ipfsScheme) {
		return im.gateway + "/" + strings.TrimPrefix(image, ipfsScheme)
	}
	return image
}

func displayName(doc *domain.MetadataSummary, tokenId domain.TokenId) string {
	if strings.TrimSpace(doc.Name) == "" {
		return "Artwork #" + tokenId.String()
	}
	return doc.Name
}
