package repository

import (
	"context"
	"errors"
	"io"
	"io/ioutil"
	"net"

	"github.com/x-xyz/artgallery/domain"
	"golang.org/x/xerrors"
)

// maxBodySize caps every fetched document
const maxBodySize = 10 << 20

// readLimited reads r fully, failing with domain.ErrMetadataTooLarge beyond maxBodySize
func readLimited(r io.Reader) ([]byte, error) {
	body, err := ioutil.ReadAll(io.LimitReader(r, maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxBodySize {
		return nil, domain.ErrMetadataTooLarge
	}
	return body, nil
}

// classifyFetchError maps deadline errors to domain.ErrMetadataTimeout
func classifyFetchError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return xerrors.Errorf("%s: %w", err.Error(), domain.ErrMetadataTimeout)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return xerrors.Errorf("%s: %w", err.Error(), domain.ErrMetadataTimeout)
	}
	return err
}
