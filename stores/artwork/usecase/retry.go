package usecase

import (
	"context"
	"errors"

	"github.com/x-xyz/artgallery/domain"
)

var permanentErrs = []error{
	domain.ErrContractReverted,
	domain.ErrUnexpectedCallResult,
	domain.ErrNoMetadata,
	domain.ErrInvalidJsonFormat,
	domain.ErrUnsupportedSchema,
	domain.ErrMetadataTooLarge,
	context.Canceled,
}

// isRetryable is false for errors another attempt cannot fix
func isRetryable(err error) bool {
	for _, p := range permanentErrs {
		if errors.Is(err, p) {
			return false
		}
	}
	var statusErr *domain.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}

// reason is a low cardinality metric tag for err
func reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrContractReverted):
		return "reverted"
	case errors.Is(err, domain.ErrNoMetadata):
		return "no_metadata"
	case errors.Is(err, domain.ErrMetadataTimeout), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, domain.ErrMetadataStatus):
		return "status"
	case errors.Is(err, domain.ErrInvalidJsonFormat):
		return "invalid_json"
	case errors.Is(err, domain.ErrUnsupportedSchema):
		return "unsupported_schema"
	default:
		return "other"
	}
}
