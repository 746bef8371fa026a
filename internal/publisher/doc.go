// Package publisher provisions and supervises the optional local publishing
// application that ships next to the sidecar.
//
// On first run the bundled application directory is copied into the data
// directory and its production config is rewritten to point at the copy.
// The child process is then started with every proxy variable aimed at the
// sidecar's forward proxy, so it can only reach what the egress guard
// allows.
package publisher
