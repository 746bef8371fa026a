// Package server wires and runs the sidecar's listeners.
//
// It owns the lifecycle of the local API server and the forward proxy
// server: loopback-only binding, serving, and graceful shutdown of every
// enabled listener.
package server
