// Package artifact keeps the proving artifacts the wallet engine downloads
// once and reuses across restarts. Artifacts are stored zstd-compressed under
// a single root directory; names are slash-separated paths relative to it.
package artifact
