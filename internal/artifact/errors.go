package artifact

import "errors"

var (
	ErrArtifactNotFound    = errors.New("artifact not found")
	ErrInvalidArtifactPath = errors.New("invalid artifact path")
	ErrCorruptedArtifact   = errors.New("artifact is corrupted")
)
