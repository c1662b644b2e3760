package repository

import (
	"github.com/x-xyz/artgallery/base/ctx"
	hcdomain "github.com/x-xyz/artgallery/domain/healthcheck"
	"github.com/x-xyz/artgallery/service/chain"
)

type impl struct {
	client chain.Client
}

// New creates new HealthCheckRepo backed by the rpc node
func New(client chain.Client) hcdomain.HealthCheckRepo {
	return &impl{
		client: client,
	}
}

func (im *impl) PingChain(context ctx.Ctx) error {
	n, err := im.client.BlockNumber(context)
	if err != nil {
		context.WithField("err", err).Error("ping chain error")
		return err
	}
	context.WithField("blockNumber", n).Debug("chain reachable")
	return nil
}
