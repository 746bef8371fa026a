package publisher

import "errors"

var (
	// ErrBundleMissing means the configured bundle directory does not exist.
	ErrBundleMissing = errors.New("publisher bundle is missing")
	// ErrAlreadyRunning is returned by Boot when the child process is alive.
	ErrAlreadyRunning = errors.New("publisher is already running")
	// ErrNotProvisioned is returned by Boot before a successful Provision.
	ErrNotProvisioned = errors.New("publisher is not provisioned")
	// ErrNotReady means the child did not answer within the ready timeout.
	ErrNotReady = errors.New("publisher did not become ready")
	// ErrExited means the child process exited on its own.
	ErrExited = errors.New("publisher exited")
)
