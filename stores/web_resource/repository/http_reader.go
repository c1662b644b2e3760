package repository

import (
	"net/http"
	"time"

	bCtx "github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/base/log"
	"github.com/x-xyz/artgallery/domain"
)

type httpReaderRepo struct {
	client     http.Client
	ctxTimeout time.Duration
	headers    map[string]string
}

func NewHttpReaderRepo(client http.Client, timeout time.Duration, headers map[string]string) domain.WebResourceReaderRepository {
	return &httpReaderRepo{client: client, ctxTimeout: timeout, headers: headers}
}

func (r *httpReaderRepo) Get(c bCtx.Ctx, url string) ([]byte, error) {
	return r.get(bCtx.WithLogField(c, "url", url), url)
}

func (r *httpReaderRepo) get(c bCtx.Ctx, url string) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(c, r.ctxTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		ctx.WithField("err", err).Error("http.NewRequest failed")
		return nil, err
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		ctx.WithField("err", err).Warn("failed with request")
		return nil, classifyFetchError(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ctx.WithField("statusCode", resp.StatusCode).Warn("non-success status")
		return nil, &domain.StatusError{StatusCode: resp.StatusCode}
	}
	body, err := readLimited(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to read body")
		return nil, classifyFetchError(err)
	}
	return body, nil
}
