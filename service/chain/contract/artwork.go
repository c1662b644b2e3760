package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/x-xyz/artgallery/base/abi"
	bCtx "github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/domain"
	"github.com/x-xyz/artgallery/domain/artwork"
	"github.com/x-xyz/artgallery/service/chain"
)

type artworkContract struct {
	client  chain.Client
	address common.Address
}

// NewArtwork returns the typed view of the artwork contract deployed at address
func NewArtwork(client chain.Client, address domain.Address) artwork.ContractRepo {
	return &artworkContract{
		client:  client,
		address: common.HexToAddress(string(address)),
	}
}

func (a *artworkContract) OwnerOf(ctx bCtx.Ctx, tokenId *big.Int) (domain.Address, error) {
	res, err := a.client.Call(ctx, a.address, abi.ArtworkABI, "ownerOf", tokenId)
	if err != nil {
		return "", err
	}
	return toAddress(res)
}

func (a *artworkContract) TokenURI(ctx bCtx.Ctx, tokenId *big.Int) (string, error) {
	res, err := a.client.Call(ctx, a.address, abi.ArtworkABI, "tokenURI", tokenId)
	if err != nil {
		return "", err
	}
	if len(res) == 0 {
		return "", domain.ErrUnexpectedCallResult
	}
	uri, ok := res[0].(string)
	if !ok {
		return "", domain.ErrUnexpectedCallResult
	}
	return uri, nil
}

func (a *artworkContract) GetCreator(ctx bCtx.Ctx, tokenId *big.Int) (domain.Address, error) {
	res, err := a.client.Call(ctx, a.address, abi.ArtworkABI, "getCreator", tokenId)
	if err != nil {
		return "", err
	}
	return toAddress(res)
}

func (a *artworkContract) GetPrice(ctx bCtx.Ctx, tokenId *big.Int) (*big.Int, error) {
	res, err := a.client.Call(ctx, a.address, abi.ArtworkABI, "getPrice", tokenId)
	if err != nil {
		return nil, err
	}
	return toBigInt(res)
}

func (a *artworkContract) TotalSupply(ctx bCtx.Ctx) (*big.Int, error) {
	res, err := a.client.Call(ctx, a.address, abi.ArtworkABI, "totalSupply")
	if err != nil {
		return nil, err
	}
	return toBigInt(res)
}

func toAddress(res []interface{}) (domain.Address, error) {
	if len(res) == 0 {
		return "", domain.ErrUnexpectedCallResult
	}
	addr, ok := res[0].(common.Address)
	if !ok {
		return "", domain.ErrUnexpectedCallResult
	}
	return domain.Address(addr.Hex()), nil
}

func toBigInt(res []interface{}) (*big.Int, error) {
	if len(res) == 0 {
		return nil, domain.ErrUnexpectedCallResult
	}
	v, ok := res[0].(*big.Int)
	if !ok {
		return nil, domain.ErrUnexpectedCallResult
	}
	return v, nil
}
