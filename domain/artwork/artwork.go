package artwork

import (
	"encoding/json"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/domain"
)

// Artwork is a read-only projection of a minted token and its metadata,
// built fresh on every request.
type Artwork struct {
	TokenId  domain.TokenId  `json:"token_id"`
	Name     string          `json:"name"`
	ImageUrl string          `json:"image_url"`
	Price    decimal.Decimal `json:"price"`
	Creator  domain.Address  `json:"creator"`
	Owner    domain.Address  `json:"owner"`
	// IsForSale is always true, listing state is not tracked on chain yet
	IsForSale bool `json:"is_for_sale"`
}

// MarshalJSON renders price as a json number
func (a Artwork) MarshalJSON() ([]byte, error) {
	type alias Artwork
	return json.Marshal(struct {
		alias
		Price json.Number `json:"price"`
	}{
		alias: alias(a),
		Price: json.Number(a.Price.String()),
	})
}

// ScanResult is the outcome of resolving a whole collection. Both slices are
// sorted by ascending token id.
type ScanResult struct {
	Artworks []*Artwork
	Failed   []domain.TokenId
}

type Usecase interface {
	// Get resolves a single token, any resolution failure is reported as domain.ErrNotFound
	Get(c ctx.Ctx, tokenId domain.TokenId) (*Artwork, error)
	// List resolves every minted token, failures only degrade the result
	List(c ctx.Ctx) *ScanResult
	// ListByOwner is List restricted to tokens currently owned by owner
	ListByOwner(c ctx.Ctx, owner domain.Address) *ScanResult
}

// ContractRepo is the read-only view of the artwork contract
type ContractRepo interface {
	OwnerOf(c ctx.Ctx, tokenId *big.Int) (domain.Address, error)
	TokenURI(c ctx.Ctx, tokenId *big.Int) (string, error)
	GetCreator(c ctx.Ctx, tokenId *big.Int) (domain.Address, error)
	GetPrice(c ctx.Ctx, tokenId *big.Int) (*big.Int, error)
	TotalSupply(c ctx.Ctx) (*big.Int, error)
}
