package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/artgallery/domain"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MakeJsonResp writes data as is on success. An error, or any status >= 400,
// is written as ErrorResponse with the status derived from the error kind.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err, status)
		return c.JSON(status, ErrorResponse{Detail: detailOf(err, status)})
	}

	if status >= 400 {
		detail, ok := data.(string)
		if !ok {
			detail = http.StatusText(status)
		}
		return c.JSON(status, ErrorResponse{Detail: detail})
	}

	return c.JSON(status, data)
}

// StatusOf maps domain errors to http statuses, fallback is used for unknown errors
func StatusOf(err error, fallback int) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBadParamInput), errors.Is(err, domain.ErrInvalidAddress):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	case fallback >= 400:
		return fallback
	default:
		return http.StatusInternalServerError
	}
}

// detailOf keeps internal causes out of the response body
func detailOf(err error, status int) string {
	switch status {
	case http.StatusNotFound:
		return "Artwork not found"
	case http.StatusBadRequest:
		if errors.Is(err, domain.ErrInvalidAddress) {
			return domain.ErrInvalidAddress.Error()
		}
		return err.Error()
	case http.StatusServiceUnavailable:
		return "IPFS storage service unavailable"
	default:
		return "Internal error while processing the request"
	}
}
