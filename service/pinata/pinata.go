package pinata

import (
	"errors"
	"io"

	"github.com/x-xyz/artgallery/base/ctx"
)

var (
	// ErrRequestFailed is returned when pinata answers with a non-success status
	ErrRequestFailed = errors.New("request failed")
	// ErrUnreachable is returned when pinata could not be reached or answered garbage
	ErrUnreachable = errors.New("pinata unreachable")
)

type PinataMetadata struct {
	Name string `json:"name,omitempty"`
	// can only store string, bool, int
	KeyValues map[string]interface{} `json:"keyvalues,omitempty"`
}

type PinataOptions struct {
	CidVersion CidVersion `json:"cidVersion"`
}

type CidVersion uint8

const (
	CidVersion_0 CidVersion = 0
	CidVersion_1 CidVersion = 1
)

type PinOptions struct {
	Metadata      *PinataMetadata `json:"pinataMetadata,omitempty"`
	Options       *PinataOptions  `json:"pinataOptions,omitempty"`
	PinataContent interface{}     `json:"pinataContent"`
}

type Options func(*PinOptions) error

func GetPinOptions(opts ...Options) (*PinOptions, error) {
	res := &PinOptions{}

	for _, opt := range opts {
		if err := opt(res); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func WithMetadata(metadata PinataMetadata) Options {
	return func(options *PinOptions) error {
		options.Metadata = &metadata
		return nil
	}
}

func WithOptions(pinataOptions PinataOptions) Options {
	return func(options *PinOptions) error {
		options.Options = &pinataOptions
		return nil
	}
}

// IsPinningError reports whether err came from talking to pinata
func IsPinningError(err error) bool {
	return errors.Is(err, ErrRequestFailed) || errors.Is(err, ErrUnreachable)
}

type Service interface {
	// Pin uploads a file and returns its content id
	Pin(c ctx.Ctx, file io.Reader, extension string, opts ...Options) (string, error)
	// PinJson uploads value as a JSON document and returns its content id
	PinJson(c ctx.Ctx, value interface{}, opts ...Options) (string, error)
}
