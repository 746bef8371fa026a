package engine

import "errors"

var (
	// ErrEngineUnavailable is returned when the bridge cannot be reached.
	ErrEngineUnavailable = errors.New("wallet engine unavailable")
	// ErrEngineRequest is returned when the bridge answers with an error.
	ErrEngineRequest = errors.New("wallet engine request failed")
	// ErrInvalidEngineResponse is returned when a successful answer cannot
	// be interpreted.
	ErrInvalidEngineResponse = errors.New("invalid wallet engine response")
)
