package usecase

import (
	"math"
	"sort"

	"github.com/viney-shih/goroutines"
	bCtx "github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/base/log"
	"github.com/x-xyz/artgallery/domain"
	"github.com/x-xyz/artgallery/domain/artwork"
)

type outcome struct {
	tokenId domain.TokenId
	artwork *artwork.Artwork
	err     error
}

func (im *impl) List(c bCtx.Ctx) *artwork.ScanResult {
	defer im.met.BumpTime("scan.time").End()

	total, err := im.totalSupply(c)
	if err != nil {
		c.WithField("err", err).Error("totalSupply failed")
		im.met.BumpSum("scan.err", 1, "reason", reason(err))
		return emptyResult()
	}
	return im.scan(c, total)
}

func (im *impl) ListByOwner(c bCtx.Ctx, owner domain.Address) *artwork.ScanResult {
	res := im.List(c)
	owned := make([]*artwork.Artwork, 0, len(res.Artworks))
	for _, a := range res.Artworks {
		if a.Owner.Equals(owner) {
			owned = append(owned, a)
		}
	}
	res.Artworks = owned
	return res
}

func (im *impl) totalSupply(c bCtx.Ctx) (int64, error) {
	var total int64
	err := im.retry(c, func() error {
		n, err := im.contract.TotalSupply(c)
		if err != nil {
			return err
		}
		if n.Sign() < 0 || !n.IsInt64() || n.Int64() > math.MaxInt32 {
			return domain.ErrUnexpectedCallResult
		}
		total = n.Int64()
		return nil
	})
	return total, err
}

// scan resolves tokens 1..total on a bounded pool, failures only land in Failed
func (im *impl) scan(c bCtx.Ctx, total int64) *artwork.ScanResult {
	res := emptyResult()
	if total == 0 {
		return res
	}

	b := goroutines.NewBatch(im.workers, goroutines.WithBatchSize(int(total)))
	defer b.Close()
	for i := int64(1); i <= total; i++ {
		tokenId := domain.TokenId(i)
		b.Queue(func() (interface{}, error) {
			a, err := im.resolve(c, tokenId)
			return &outcome{tokenId: tokenId, artwork: a, err: err}, nil
		})
	}
	b.QueueComplete()

	for ret := range b.Results() {
		if ret.Error() != nil {
			c.WithField("err", ret.Error()).Error("batch task failed")
			continue
		}
		o := ret.Value().(*outcome)
		if o.err != nil {
			res.Failed = append(res.Failed, o.tokenId)
			continue
		}
		res.Artworks = append(res.Artworks, o.artwork)
	}

	sort.Slice(res.Artworks, func(i, j int) bool {
		return res.Artworks[i].TokenId < res.Artworks[j].TokenId
	})
	sort.Slice(res.Failed, func(i, j int) bool {
		return res.Failed[i] < res.Failed[j]
	})

	if len(res.Failed) > 0 {
		c.WithFields(log.Fields{
			"total":  total,
			"failed": res.Failed,
		}).Warn("scan finished with unresolvable tokens")
	}
	return res
}

func emptyResult() *artwork.ScanResult {
	return &artwork.ScanResult{
		Artworks: []*artwork.Artwork{},
		Failed:   []domain.TokenId{},
	}
}
