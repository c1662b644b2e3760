package usecase

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	bCtx "github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/base/log"
	"github.com/x-xyz/artgallery/domain"
)

const ipfsScheme = "ipfs://"

var (
	publicGateways = []string{
		"https://gateway.pinata.cloud/ipfs/",
		"https://ipfs.io/ipfs/",
		"https://cloudflare-ipfs.com/ipfs/",
		"https://ipfs.foundation.app/ipfs/",
	}
	dedicatedPinataRegex = regexp.MustCompile(`^https://[^/]+\.mypinata\.cloud/ipfs/`)
)

type MetadataUseCaseCfg struct {
	HttpReader domain.WebResourceReaderRepository
	IpfsReader domain.WebResourceReaderRepository
}

type metadataUseCase struct {
	httpReader domain.WebResourceReaderRepository
	ipfsReader domain.WebResourceReaderRepository
}

func NewMetadataUseCase(cfg *MetadataUseCaseCfg) domain.MetadataUseCase {
	return &metadataUseCase{
		httpReader: cfg.HttpReader,
		ipfsReader: cfg.IpfsReader,
	}
}

// GetFromUri accepts ipfs://<cid>, a bare <cid> (what the contract stores at mint) or an http(s) url
func (u *metadataUseCase) GetFromUri(c bCtx.Ctx, uri string) (*domain.Metadata, error) {
	var (
		data []byte
		err  error
	)

	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, domain.ErrNoMetadata
	}

	pUrl, err := url.Parse(uri)
	if err != nil {
		c.WithFields(log.Fields{
			"url": uri,
			"err": err,
		}).Warn("failed to parse url")
		return nil, domain.ErrUnsupportedSchema
	}

	switch pUrl.Scheme {
	case "https", "http":
		data, err = u.httpReader.Get(c, uri)
		if cid := gatewayCid(uri); err != nil && cid != "" {
			c.WithFields(log.Fields{
				"url": uri,
				"cid": cid,
				"err": err,
			}).Info("falling back to ipfs")
			data, err = u.ipfsReader.Get(c, cid)
		}
	case "ipfs":
		data, err = u.ipfsReader.Get(c, ToCid(uri))
	case "":
		data, err = u.ipfsReader.Get(c, ToCid(uri))
	default:
		c.WithField("url", uri).Warn("unsupported schema")
		return nil, domain.ErrUnsupportedSchema
	}

	if err != nil {
		c.WithFields(log.Fields{
			"schema": pUrl.Scheme,
			"url":    uri,
			"err":    err,
		}).Warn("failed to fetch")
		return nil, err
	}
	if !json.Valid(data) {
		c.WithFields(log.Fields{
			"url": uri,
		}).Warn("invalid json")
		return nil, domain.ErrInvalidJsonFormat
	}

	m := &domain.Metadata{RawMessage: data}
	if _, err := m.Summary(); err != nil {
		c.WithFields(log.Fields{
			"url": uri,
		}).Warn("not a metadata document")
		return nil, err
	}
	return m, nil
}

// ToCid strips the ipfs scheme and the legacy ipfs/ path prefix
func ToCid(uri string) string {
	cid := strings.TrimPrefix(uri, ipfsScheme)
	cid = strings.TrimPrefix(cid, "ipfs/")
	return strings.TrimLeft(cid, "/")
}

// gatewayCid returns the content id behind a known public gateway url, or "" for any other url
func gatewayCid(rawUrl string) string {
	for _, p := range publicGateways {
		if strings.HasPrefix(rawUrl, p) {
			return ToCid(strings.TrimPrefix(rawUrl, p))
		}
	}
	if loc := dedicatedPinataRegex.FindStringIndex(rawUrl); loc != nil {
		return ToCid(rawUrl[loc[1]:])
	}
	return ""
}
