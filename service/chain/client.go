package chain

import (
	"errors"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	bCtx "github.com/x-xyz/artgallery/base/ctx"
	bEthereum "github.com/x-xyz/artgallery/base/ethereum"
	"github.com/x-xyz/artgallery/base/log"
	"github.com/x-xyz/artgallery/domain"
	"golang.org/x/xerrors"
)

const defaultCallTimeout = 10 * time.Second

type ClientCfg struct {
	RpcUrl string
	// CallTimeout bounds every single rpc call, 0 means defaultCallTimeout
	CallTimeout time.Duration
	// MaxConcurrentCalls caps in-flight rpc calls, 0 means unlimited
	MaxConcurrentCalls int
}

type Client interface {
	Call(ctx bCtx.Ctx, addr common.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error)
	BlockNumber(ctx bCtx.Ctx) (uint64, error)
}

type clientImpl struct {
	client      domain.EthClientRepo
	callTimeout time.Duration
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	client, err := ethclient.DialContext(ctx, cfg.RpcUrl)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"url": cfg.RpcUrl,
		}).Error("failed to dial rpc")
		return nil, err
	}
	if cfg.MaxConcurrentCalls > 0 {
		return NewClientWithRepo(bEthereum.NewThrottledClient(client, cfg.MaxConcurrentCalls), cfg), nil
	}
	return NewClientWithRepo(client, cfg), nil
}

// NewClientWithRepo builds a Client over an already connected eth client
func NewClientWithRepo(client domain.EthClientRepo, cfg *ClientCfg) Client {
	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &clientImpl{
		client:      client,
		callTimeout: timeout,
	}
}

func (c *clientImpl) Call(ctx bCtx.Ctx, addr common.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}

	callCtx, cancel := bCtx.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	res, err := c.client.CallContract(callCtx, msg, nil)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"err":    err,
		}).Warn("client.CallContract failed")
		return nil, classifyCallError(err)
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"err":    err,
		}).Error("abi.Unpack failed")
		return nil, xerrors.Errorf("%s: %w", err.Error(), domain.ErrUnexpectedCallResult)
	}
	return unpacked, nil
}

func (c *clientImpl) BlockNumber(ctx bCtx.Ctx) (uint64, error) {
	callCtx, cancel := bCtx.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	n, err := c.client.BlockNumber(callCtx)
	if err != nil {
		ctx.WithField("err", err).Warn("client.BlockNumber failed")
		return 0, err
	}
	return n, nil
}

// classifyCallError marks reverts as domain.ErrContractReverted, transport errors are returned as is
func classifyCallError(err error) error {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) || strings.Contains(err.Error(), "execution reverted") {
		return xerrors.Errorf("%s: %w", err.Error(), domain.ErrContractReverted)
	}
	return err
}
