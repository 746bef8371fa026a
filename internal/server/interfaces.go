package server

import "context"

// Server defines the lifecycle contract of the listeners managed by this
// package.
//
// Run blocks until ctx is cancelled or a listener fails, then shuts every
// listener down. Shutdown may also be called directly.
type Server interface {
	// Listen binds every listener without serving yet. Run calls it when
	// it has not been called.
	Listen() error

	// Run serves requests and blocks until the server stops.
	Run(ctx context.Context) error

	// Shutdown gracefully stops every listener.
	Shutdown(ctx context.Context) error

	// Addrs returns the bound address of each listener keyed by name.
	Addrs() map[string]string
}
