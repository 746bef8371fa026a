package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "IPv6 address", addr: NetAddress{Host: "::1", Port: 3001}, expected: "[::1]:3001"},
		{name: "only port no host", addr: NetAddress{Host: "", Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		errorMsg     string
		expectedAddr NetAddress
	}{
		{name: "valid localhost", input: "localhost:8080", expectedAddr: NetAddress{Host: "localhost", Port: 8080}},
		{name: "valid IPv4", input: "127.0.0.1:9090", expectedAddr: NetAddress{Host: "127.0.0.1", Port: 9090}},
		{name: "valid IPv6", input: "[::1]:3001", expectedAddr: NetAddress{Host: "::1", Port: 3001}},
		{name: "missing colon", input: "localhost8080", expectError: true, errorMsg: "need address in a form `host:port`"},
		{name: "multiple colons without brackets", input: "host:port:extra", expectError: true, errorMsg: "need address in a form `host:port`"},
		{name: "non-numeric port", input: "localhost:abc", expectError: true, errorMsg: "invalid syntax"},
		{name: "negative port", input: "localhost:-1", expectError: true, errorMsg: "port number must be in range"},
		{name: "zero port", input: "localhost:0", expectError: true, errorMsg: "port number must be in range"},
		{name: "port too large", input: "localhost:70000", expectError: true, errorMsg: "port number must be in range"},
		{name: "invalid IP address", input: "invalid.host:8080", expectError: true, errorMsg: "incorrect IP-address provided"},
		{name: "empty string", input: "", expectError: true, errorMsg: "need address in a form `host:port`"},
		{name: "only colon", input: ":", expectError: true, errorMsg: "invalid syntax"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := &NetAddress{}
			err := addr.Set(tt.input)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedAddr.Host, addr.Host)
				assert.Equal(t, tt.expectedAddr.Port, addr.Port)
			}
		})
	}
}

// TestParseFlags tests the parseFlags function
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"-a", "127.0.0.1:4001",
				"-proxy-address", "127.0.0.1:3129",
				"-data-dir", "/var/lib/freedom",
				"-c", "/path/to/config.json",
				"-log-level", "debug",
				"-engine-url", "http://127.0.0.1:4002",
				"-network", "Arbitrum",
				"-tor-socks", "127.0.0.1:9050",
				"-bootstrap-timeout", "3m",
				"-request-timeout", "20s",
				"-allowed-origins", "tauri://localhost, http://localhost:5173,",
				"-vault-timeout", "4s",
				"-balance-interval", "1m",
				"-publisher",
				"-publisher-bundle", "/opt/publisher",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "127.0.0.1:4001", cfg.Server.HTTPAddress)
				assert.Equal(t, "127.0.0.1:3129", cfg.Egress.ProxyAddress)
				assert.Equal(t, "/var/lib/freedom", cfg.Storage.DataDir)
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
				assert.Equal(t, "debug", cfg.App.LogLevel)
				assert.Equal(t, "http://127.0.0.1:4002", cfg.Engine.BridgeURL)
				assert.Equal(t, "Arbitrum", cfg.Engine.NetworkName)
				assert.Equal(t, "127.0.0.1:9050", cfg.Egress.TorSOCKSAddress)
				assert.Equal(t, 3*time.Minute, cfg.Engine.BootstrapTimeout)
				assert.Equal(t, 20*time.Second, cfg.Server.RequestTimeout)
				assert.Equal(t, []string{"tauri://localhost", "http://localhost:5173"}, cfg.Server.AllowedOrigins)
				assert.Equal(t, 4*time.Second, cfg.Vault.IOTimeout)
				assert.Equal(t, time.Minute, cfg.Workers.BalanceInterval)
				assert.True(t, cfg.Publisher.Enabled)
				assert.Equal(t, "/opt/publisher", cfg.Publisher.BundleDir)
			},
		},
		{
			name: "config alias flag",
			args: []string{"-config", "/path/to/config.json"},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
			},
		},
		{
			name: "no flags",
			args: []string{},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, &StructuredConfig{}, cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(tt.args)
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestParseFlags_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "invalid server address format", args: []string{"-a", "invalid"}},
		{name: "invalid proxy address", args: []string{"-proxy-address", "localhost"}},
		{name: "invalid port in server address", args: []string{"-a", "localhost:abc"}},
		{name: "invalid duration", args: []string{"-vault-timeout", "soon"}},
		{name: "unknown flag", args: []string{"-grpc-address", "localhost:9090"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(tt.args)
			require.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
