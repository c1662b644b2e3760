package repository

import (
	"time"

	ipfsapi "github.com/ipfs/go-ipfs-api"
	"github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/base/log"
	"github.com/x-xyz/artgallery/domain"
)

type ipfsNodeApiReaderRepo struct {
	shell      *ipfsapi.Shell
	ctxTimeout time.Duration
}

// NewIpfsNodeApiReaderRepo reads content ids with `ipfs cat` on a node api
func NewIpfsNodeApiReaderRepo(s *ipfsapi.Shell, timeout time.Duration) domain.WebResourceReaderRepository {
	return &ipfsNodeApiReaderRepo{shell: s, ctxTimeout: timeout}
}

func (r *ipfsNodeApiReaderRepo) Get(c ctx.Ctx, cid string) ([]byte, error) {
	ctx, cancel := ctx.WithTimeout(c, r.ctxTimeout)
	defer cancel()
	resp, err := r.shell.Request("cat", cid).Send(ctx)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "cid": cid}).Warn("shell.Request failed")
		return nil, classifyFetchError(err)
	}
	defer resp.Close()
	if resp.Error != nil {
		c.WithFields(log.Fields{"resp.Error": resp.Error, "cid": cid}).Warn("shell.Request failed")
		return nil, resp.Error
	}
	body, err := readLimited(resp.Output)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "cid": cid}).Error("failed to read body")
		return nil, classifyFetchError(err)
	}
	return body, nil
}
