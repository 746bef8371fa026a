package lifecycle

import "errors"

var (
	ErrEngineNotInitialized = errors.New("engine not initialized")
	ErrCoordinatorStopped   = errors.New("engine coordinator is shut down")
)
