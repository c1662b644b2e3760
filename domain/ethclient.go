package domain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
)

// just using go-ethereum/ethclient
type EthClientRepo interface {
	BlockNumber(context.Context) (uint64, error)
	CallContract(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error)
}
