package repository

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	bCtx "github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/domain"
)

type ipfsGatewayReaderRepo struct {
	reader  *httpReaderRepo
	gateway string
}

// NewIpfsGatewayReaderRepo reads content ids as <gateway>/<cid>
func NewIpfsGatewayReaderRepo(c http.Client, gateway string, timeout time.Duration) domain.WebResourceReaderRepository {
	return &ipfsGatewayReaderRepo{
		reader:  &httpReaderRepo{client: c, ctxTimeout: timeout},
		gateway: strings.TrimRight(gateway, "/"),
	}
}

func (r *ipfsGatewayReaderRepo) Get(c bCtx.Ctx, cid string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", r.gateway, strings.TrimLeft(cid, "/"))
	return r.reader.get(bCtx.WithLogField(c, "cid", cid), url)
}
