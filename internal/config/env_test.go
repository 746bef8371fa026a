// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_LOG_LEVEL":    "warn",
		"STORAGE_DATA_DIR": "/var/lib/freedom",

		"SERVER_ADDRESS":         "127.0.0.1:4001",
		"SERVER_REQUEST_TIMEOUT": "15s",
		"SERVER_ALLOWED_ORIGINS": "tauri://localhost,http://localhost:5173",

		"EGRESS_EXTRA_HOSTS":       "host.docker.internal,printer.lan",
		"EGRESS_TOR_SOCKS_ADDRESS": "127.0.0.1:9050",
		"EGRESS_ANONYMIZED_HOSTS":  "rpc.example.org",
		"EGRESS_PROXY_ADDRESS":     "127.0.0.1:3129",

		"ENGINE_BRIDGE_URL":          "http://127.0.0.1:4002",
		"ENGINE_NETWORK_NAME":        "Arbitrum",
		"ENGINE_PROVIDER_URLS":       "https://rpc.example.org",
		"ENGINE_POI_AGGREGATOR_URLS": "https://poi-a.example.org,https://poi-b.example.org",
		"ENGINE_BOOTSTRAP_TIMEOUT":   "3m",
		"ENGINE_REQUEST_TIMEOUT":     "45s",
		"ENGINE_DEBUG":               "true",

		"VAULT_IO_TIMEOUT":         "5s",
		"WORKERS_BALANCE_INTERVAL": "1m",

		"PUBLISHER_ENABLED":       "true",
		"PUBLISHER_BUNDLE_DIR":    "/opt/publisher",
		"PUBLISHER_COMMAND":       "node",
		"PUBLISHER_ARGS":          "current/index.js",
		"PUBLISHER_PORT":          "2369",
		"PUBLISHER_READY_TIMEOUT": "90s",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, "/var/lib/freedom", cfg.Storage.DataDir)

	assert.Equal(t, "127.0.0.1:4001", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"tauri://localhost", "http://localhost:5173"}, cfg.Server.AllowedOrigins)

	assert.Equal(t, []string{"host.docker.internal", "printer.lan"}, cfg.Egress.ExtraHosts)
	assert.Equal(t, "127.0.0.1:9050", cfg.Egress.TorSOCKSAddress)
	assert.Equal(t, []string{"rpc.example.org"}, cfg.Egress.AnonymizedHosts)
	assert.Equal(t, "127.0.0.1:3129", cfg.Egress.ProxyAddress)

	assert.Equal(t, "http://127.0.0.1:4002", cfg.Engine.BridgeURL)
	assert.Equal(t, "Arbitrum", cfg.Engine.NetworkName)
	assert.Equal(t, []string{"https://rpc.example.org"}, cfg.Engine.ProviderURLs)
	assert.Len(t, cfg.Engine.POIAggregatorURLs, 2)
	assert.Equal(t, 3*time.Minute, cfg.Engine.BootstrapTimeout)
	assert.Equal(t, 45*time.Second, cfg.Engine.RequestTimeout)
	assert.True(t, cfg.Engine.Debug)

	assert.Equal(t, 5*time.Second, cfg.Vault.IOTimeout)
	assert.Equal(t, time.Minute, cfg.Workers.BalanceInterval)

	assert.True(t, cfg.Publisher.Enabled)
	assert.Equal(t, "/opt/publisher", cfg.Publisher.BundleDir)
	assert.Equal(t, "node", cfg.Publisher.Command)
	assert.Equal(t, []string{"current/index.js"}, cfg.Publisher.Args)
	assert.Equal(t, 2369, cfg.Publisher.Port)
	assert.Equal(t, 90*time.Second, cfg.Publisher.ReadyTimeout)
}

func TestParseEnv_PartialFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"STORAGE_DATA_DIR":         "/data",
		"ENGINE_BOOTSTRAP_TIMEOUT": "30s",
	})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "/data", cfg.Storage.DataDir)
	assert.Equal(t, 30*time.Second, cfg.Engine.BootstrapTimeout)
	assert.Empty(t, cfg.Server.HTTPAddress)
	assert.Empty(t, cfg.Egress.ExtraHosts)
	assert.Zero(t, cfg.Vault.IOTimeout)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	clearEnvVars(t)

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{
		"VAULT_IO_TIMEOUT": "soon",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnv_InvalidPort(t *testing.T) {
	setEnvVars(t, map[string]string{
		"PUBLISHER_PORT": "http",
	})

	require.Error(t, parseEnv(&StructuredConfig{}))
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		value    string
		expected time.Duration
	}{
		{"1h", time.Hour},
		{"30m", 30 * time.Minute},
		{"45s", 45 * time.Second},
		{"1h30m", 90 * time.Minute},
		{"500ms", 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			setEnvVars(t, map[string]string{"WORKERS_BALANCE_INTERVAL": tt.value})

			cfg := &StructuredConfig{}
			require.NoError(t, parseEnv(cfg))
			assert.Equal(t, tt.expected, cfg.Workers.BalanceInterval)
		})
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

var configEnvKeys = []string{
	"CONFIG",
	"APP_LOG_LEVEL",
	"STORAGE_DATA_DIR",
	"SERVER_ADDRESS",
	"SERVER_REQUEST_TIMEOUT",
	"SERVER_ALLOWED_ORIGINS",
	"EGRESS_EXTRA_HOSTS",
	"EGRESS_TOR_SOCKS_ADDRESS",
	"EGRESS_ANONYMIZED_HOSTS",
	"EGRESS_PROXY_ADDRESS",
	"ENGINE_BRIDGE_URL",
	"ENGINE_NETWORK_NAME",
	"ENGINE_PROVIDER_URLS",
	"ENGINE_POI_AGGREGATOR_URLS",
	"ENGINE_BOOTSTRAP_TIMEOUT",
	"ENGINE_REQUEST_TIMEOUT",
	"ENGINE_DEBUG",
	"VAULT_IO_TIMEOUT",
	"WORKERS_BALANCE_INTERVAL",
	"PUBLISHER_ENABLED",
	"PUBLISHER_BUNDLE_DIR",
	"PUBLISHER_COMMAND",
	"PUBLISHER_ARGS",
	"PUBLISHER_PORT",
	"PUBLISHER_READY_TIMEOUT",
	"WALLETCTL_API_URL",
	"WALLETCTL_REQUEST_TIMEOUT",
	"WALLETCTL_LOG_LEVEL",
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

// clearEnvVars unsets every variable the package reads and restores the
// previous values when the test ends.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		if prev, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { _ = os.Setenv(k, prev) })
		}
		require.NoError(t, os.Unsetenv(k))
	}
}
