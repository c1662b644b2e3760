package pinata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/base/log"
	"golang.org/x/xerrors"
)

const (
	defaultEndpoint = "https://api.pinata.cloud"
	defaultTimeout  = 30 * time.Second
	pinPath         = "/pinning/pinFileToIPFS"
	pinJsonPath     = "/pinning/pinJSONToIPFS"
)

type Cfg struct {
	ApiKey    string
	ApiSecret string
	// Endpoint defaults to the public pinata api
	Endpoint string
	Timeout  time.Duration
}

type pinataImpl struct {
	apiKey    string
	apiSecret string
	endpoint  string
	client    *http.Client
}

func New(cfg *Cfg) Service {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &pinataImpl{
		apiKey:    cfg.ApiKey,
		apiSecret: cfg.ApiSecret,
		endpoint:  endpoint,
		client:    &http.Client{Timeout: timeout},
	}
}

func (im *pinataImpl) Pin(c ctx.Ctx, file io.Reader, extension string, optFns ...Options) (string, error) {
	opts, err := GetPinOptions(optFns...)

	if err != nil {
		c.WithField("err", err).Error("GetPinOptions failed")
		return "", err
	}

	var b bytes.Buffer

	w := multipart.NewWriter(&b)
	if fw, err := w.CreateFormFile("file", "file."+extension); err != nil {
		c.WithField("err", err).Error("w.CreateFormField failed")
		return "", err
	} else if _, err := io.Copy(fw, file); err != nil {
		c.WithField("err", err).Error("io.Copy failed")
		return "", err
	}

	if opts.Metadata != nil {
		if b, err := json.Marshal(opts.Metadata); err != nil {
			c.WithField("err", err).Error("json.Marshal failed")
			return "", err
		} else if err := w.WriteField("pinataMetadata", string(b)); err != nil {
			c.WithField("err", err).Error("w.WriteField failed")
			return "", err
		}
	}

	if opts.Options != nil {
		if b, err := json.Marshal(opts.Options); err != nil {
			c.WithField("err", err).Error("json.Marshal failed")
			return "", err
		} else if err := w.WriteField("pinataOptions", string(b)); err != nil {
			c.WithField("err", err).Error("w.WriteField failed")
			return "", err
		}
	}

	if err := w.Close(); err != nil {
		c.WithField("err", err).Error("w.Close failed")
		return "", err
	}

	return im.post(c, pinPath, w.FormDataContentType(), &b)
}

func (im *pinataImpl) PinJson(c ctx.Ctx, value interface{}, optFns ...Options) (string, error) {
	opts, err := GetPinOptions(optFns...)

	if err != nil {
		c.WithField("err", err).Error("GetPinOptions failed")
		return "", err
	}

	opts.PinataContent = value

	body, err := json.Marshal(opts)
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return "", err
	}

	return im.post(c, pinJsonPath, "application/json", bytes.NewBuffer(body))
}

func (im *pinataImpl) post(c ctx.Ctx, path, contentType string, body io.Reader) (string, error) {
	url := fmt.Sprintf("%s%s", im.endpoint, path)

	req, err := http.NewRequestWithContext(c, http.MethodPost, url, body)
	if err != nil {
		c.WithField("err", err).Error("http.NewRequest failed")
		return "", err
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("pinata_api_key", im.apiKey)
	req.Header.Set("pinata_secret_api_key", im.apiSecret)

	resp, err := im.client.Do(req)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "url": url}).Error("client.Do failed")
		return "", xerrors.Errorf("%s: %w", err.Error(), ErrUnreachable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(resp.Body)
		c.WithFields(log.Fields{
			"status":    resp.StatusCode,
			"errorBody": string(errorBody),
		}).Error("Request failed")
		return "", xerrors.Errorf("status %d: %w", resp.StatusCode, ErrRequestFailed)
	}

	type payload struct {
		IpfsHash string `json:"IpfsHash"`
	}

	p := &payload{}

	if err := json.NewDecoder(resp.Body).Decode(p); err != nil {
		c.WithField("err", err).Error("json.NewDecoder.Decode failed")
		return "", xerrors.Errorf("%s: %w", err.Error(), ErrUnreachable)
	}

	if p.IpfsHash == "" {
		c.Error("empty IpfsHash")
		return "", xerrors.Errorf("empty IpfsHash: %w", ErrRequestFailed)
	}

	return p.IpfsHash, nil
}
