package adapter

import "errors"

var (
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrBadGateway         = errors.New("bad gateway")
	ErrUnavailable        = errors.New("service unavailable")
	ErrGatewayTimeout     = errors.New("gateway timeout")
	ErrInternalServer     = errors.New("internal server error")
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// APIError is a non-2xx answer of the sidecar API. Message is the "error"
// field of the body, or the status text when the body has none.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel matching Status, if any.
func (e *APIError) Unwrap() error {
	return e.kind
}
