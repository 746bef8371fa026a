// Package http implements the local sidecar API.
//
// It exposes route wiring, request handlers and middleware. Every route is
// served to loopback clients only; cross-cutting concerns such as request
// tracing, access logging, panic recovery and error-to-status mapping are
// handled here before requests are delegated to the service layer.
package http
