package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput     = errors.New("Given Param is not valid")
	ErrUnsupportedSchema = errors.New("Unsupported schema")
	ErrInvalidJsonFormat = errors.New("invalid JSON format")

	// request error
	ErrInvalidAddress = errors.New("Invalid address")

	// chain error
	ErrContractReverted     = errors.New("contract call reverted")
	ErrUnexpectedCallResult = errors.New("unexpected contract call result")

	// metadata error
	ErrNoMetadata       = errors.New("token has no metadata uri")
	ErrMetadataTimeout  = errors.New("metadata fetch timed out")
	ErrMetadataStatus   = errors.New("metadata source returned non-success status")
	ErrMetadataTooLarge = errors.New("metadata document too large")

	// ErrServiceUnavailable will throw if an upstream service (pinning) failed
	ErrServiceUnavailable = errors.New("upstream service unavailable")
)

// StatusError reports a non-success http status from a remote resource.
// It matches ErrMetadataStatus with errors.Is.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return ErrMetadataStatus.Error() + ": " + httpStatusText(e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrMetadataStatus
}

// Temporary is true for statuses worth retrying
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}
