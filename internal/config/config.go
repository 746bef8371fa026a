// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"time"
)

// StructuredConfig is the top-level configuration of the sidecar runtime.
// It is populated by merging a JSON file, environment variables and
// command-line flags (in increasing priority).
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-wide settings.
	App App `envPrefix:"APP_"`

	// Storage holds the location of every file the sidecar persists.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the local API listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Egress holds the outbound network policy and the anonymity transport.
	Egress Egress `envPrefix:"EGRESS_"`

	// Engine holds the wallet engine bridge settings.
	Engine Engine `envPrefix:"ENGINE_"`

	// Vault holds the credential vault settings.
	Vault Vault `envPrefix:"VAULT_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Publisher holds the embedded publishing application settings.
	Publisher Publisher `envPrefix:"PUBLISHER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds process-wide settings.
type App struct {
	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage holds the location of persisted state.
type Storage struct {
	// DataDir is the per-user application data directory. The vault file,
	// the engine database, artifacts and the provisioned publisher bundle
	// all live below it.
	// Env: STORAGE_DATA_DIR
	DataDir string `env:"DATA_DIR"`
}

// Server holds the local API listener settings.
type Server struct {
	// HTTPAddress is the loopback address of the API in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling of a single API request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AllowedOrigins are the browser origins allowed to call the API.
	// Requests carrying any other Origin header are refused.
	// Env: SERVER_ALLOWED_ORIGINS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`
}

// Egress holds the outbound network policy.
type Egress struct {
	// ExtraHosts are additional exact host names treated as local.
	// Env: EGRESS_EXTRA_HOSTS (comma separated)
	ExtraHosts []string `env:"EXTRA_HOSTS"`

	// TorSOCKSAddress is the local SOCKS5 endpoint of the anonymity
	// transport. Empty disables anonymized routing.
	// Env: EGRESS_TOR_SOCKS_ADDRESS
	TorSOCKSAddress string `env:"TOR_SOCKS_ADDRESS"`

	// AnonymizedHosts may be reached through the anonymity transport.
	// Env: EGRESS_ANONYMIZED_HOSTS (comma separated)
	AnonymizedHosts []string `env:"ANONYMIZED_HOSTS"`

	// ProxyAddress is the loopback address of the forward proxy handed to
	// child processes.
	// Env: EGRESS_PROXY_ADDRESS
	ProxyAddress string `env:"PROXY_ADDRESS"`
}

// Engine holds the wallet engine bridge settings.
type Engine struct {
	// BridgeURL is the loopback base URL of the engine bridge.
	// Env: ENGINE_BRIDGE_URL
	BridgeURL string `env:"BRIDGE_URL"`

	// NetworkName selects the chain the engine tracks.
	// Env: ENGINE_NETWORK_NAME
	NetworkName string `env:"NETWORK_NAME"`

	// ProviderURLs are the chain RPC endpoints.
	// Env: ENGINE_PROVIDER_URLS (comma separated)
	ProviderURLs []string `env:"PROVIDER_URLS"`

	// POIAggregatorURLs are the proof-of-innocence aggregator endpoints.
	// Env: ENGINE_POI_AGGREGATOR_URLS (comma separated)
	POIAggregatorURLs []string `env:"POI_AGGREGATOR_URLS"`

	// BootstrapTimeout bounds engine initialization.
	// Env: ENGINE_BOOTSTRAP_TIMEOUT
	BootstrapTimeout time.Duration `env:"BOOTSTRAP_TIMEOUT"`

	// RequestTimeout bounds each call to the bridge.
	// Env: ENGINE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Debug asks the engine for verbose logs.
	// Env: ENGINE_DEBUG
	Debug bool `env:"DEBUG"`
}

// Vault holds the credential vault settings.
type Vault struct {
	// IOTimeout bounds each vault file operation.
	// Env: VAULT_IO_TIMEOUT
	IOTimeout time.Duration `env:"IO_TIMEOUT"`
}

// Workers holds background job settings.
type Workers struct {
	// BalanceInterval is how often the spendable balance is observed.
	// Env: WORKERS_BALANCE_INTERVAL
	BalanceInterval time.Duration `env:"BALANCE_INTERVAL"`
}

// Publisher holds the embedded publishing application settings.
type Publisher struct {
	// Enabled turns provisioning and boot of the publisher on.
	// Env: PUBLISHER_ENABLED
	Enabled bool `env:"ENABLED"`

	// BundleDir is the already extracted application bundle.
	// Env: PUBLISHER_BUNDLE_DIR
	BundleDir string `env:"BUNDLE_DIR"`

	// Command is the executable started inside the provisioned directory.
	// Env: PUBLISHER_COMMAND
	Command string `env:"COMMAND"`

	// Args are passed to Command.
	// Env: PUBLISHER_ARGS (comma separated)
	Args []string `env:"ARGS"`

	// Port is the local port the publisher listens on.
	// Env: PUBLISHER_PORT
	Port int `env:"PORT"`

	// ReadyTimeout bounds the wait for the publisher to answer.
	// Env: PUBLISHER_READY_TIMEOUT
	ReadyTimeout time.Duration `env:"READY_TIMEOUT"`
}

// Default values applied to fields left empty by every source.
const (
	DefaultHTTPAddress        = "127.0.0.1:3001"
	DefaultProxyAddress       = "127.0.0.1:3128"
	DefaultEngineBridgeURL    = "http://127.0.0.1:3002"
	DefaultNetworkName        = "Ethereum"
	DefaultLogLevel           = "info"
	DefaultRequestTimeout     = 30 * time.Second
	DefaultBootstrapTimeout   = 2 * time.Minute
	DefaultEngineTimeout      = 60 * time.Second
	DefaultVaultIOTimeout     = 10 * time.Second
	DefaultBalanceInterval    = 30 * time.Second
	DefaultPublisherPort      = 2368
	DefaultPublisherReadyWait = 2 * time.Minute
)

// DefaultAllowedOrigins are the desktop shell's webview origins on each
// platform plus its dev server.
var DefaultAllowedOrigins = []string{
	"tauri://localhost",
	"http://tauri.localhost",
	"https://tauri.localhost",
	"http://localhost:1420",
}

// DefaultPOIAggregatorURLs is used when no aggregator is configured.
var DefaultPOIAggregatorURLs = []string{"https://ppoi-agg.horsewithsixlegs.xyz"}

// GetStructuredConfig loads, merges, defaults and validates the runtime
// configuration. args are the command-line arguments without the program
// name.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}

// applyDefaults fills every empty field that has a default.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = defaultDataDir()
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = append([]string(nil), DefaultAllowedOrigins...)
	}
	if cfg.Egress.ProxyAddress == "" {
		cfg.Egress.ProxyAddress = DefaultProxyAddress
	}
	if cfg.Engine.BridgeURL == "" {
		cfg.Engine.BridgeURL = DefaultEngineBridgeURL
	}
	if cfg.Engine.NetworkName == "" {
		cfg.Engine.NetworkName = DefaultNetworkName
	}
	if len(cfg.Engine.POIAggregatorURLs) == 0 {
		cfg.Engine.POIAggregatorURLs = append([]string(nil), DefaultPOIAggregatorURLs...)
	}
	if cfg.Engine.BootstrapTimeout == 0 {
		cfg.Engine.BootstrapTimeout = DefaultBootstrapTimeout
	}
	if cfg.Engine.RequestTimeout == 0 {
		cfg.Engine.RequestTimeout = DefaultEngineTimeout
	}
	if cfg.Vault.IOTimeout == 0 {
		cfg.Vault.IOTimeout = DefaultVaultIOTimeout
	}
	if cfg.Workers.BalanceInterval == 0 {
		cfg.Workers.BalanceInterval = DefaultBalanceInterval
	}
	if cfg.Publisher.Port == 0 {
		cfg.Publisher.Port = DefaultPublisherPort
	}
	if cfg.Publisher.ReadyTimeout == 0 {
		cfg.Publisher.ReadyTimeout = DefaultPublisherReadyWait
	}
}

// defaultDataDir returns <user config dir>/freedom-sidecar, or "" when the
// platform has no such directory.
func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "freedom-sidecar")
}
