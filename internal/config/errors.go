package config

import "errors"

// Validation errors returned by validate when required configuration groups
// are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates a missing data directory.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates a malformed or non-loopback API
	// address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidEgressConfigs indicates a malformed proxy or SOCKS address.
	ErrInvalidEgressConfigs = errors.New("invalid egress configuration")
	// ErrInvalidEngineConfigs indicates invalid engine bridge settings
	// (for example, an unparsable bridge URL).
	ErrInvalidEngineConfigs = errors.New("invalid engine configuration")
	// ErrInvalidPublisherConfigs indicates an enabled publisher without a
	// bundle directory or command.
	ErrInvalidPublisherConfigs = errors.New("invalid publisher configuration")
	// ErrInvalidAppConfigs indicates an unknown log level.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidClientConfigs indicates invalid walletctl settings.
	ErrInvalidClientConfigs = errors.New("invalid client configuration")
)
