package config

import (
	"flag"
	"fmt"
	"time"
)

// ClientConfig is the configuration of walletctl.
type ClientConfig struct {
	// APIURL is the base URL of the sidecar API.
	// Env: WALLETCTL_API_URL
	APIURL string `env:"API_URL"`
	// RequestTimeout bounds each API call.
	// Env: WALLETCTL_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	// LogLevel is a zerolog level name.
	// Env: WALLETCTL_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// GetClientConfig builds and validates the walletctl config from the
// WALLETCTL_* environment and the global flags in args. It returns the
// arguments left after the flags (the subcommand and its operands).
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	envCfg := &struct {
		Client ClientConfig `envPrefix:"WALLETCTL_"`
	}{}
	if err := parseEnv(envCfg); err != nil {
		return nil, nil, err
	}
	cfg := envCfg.Client

	fs := flag.NewFlagSet("walletctl", flag.ContinueOnError)
	apiURL := fs.String("api", "", "Sidecar API base URL")
	timeout := fs.Duration("timeout", 0, "Request timeout (e.g., 30s)")
	logLevel := fs.String("log-level", "", "Log level")
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}
	if *timeout != 0 {
		cfg.RequestTimeout = *timeout
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if cfg.APIURL == "" {
		cfg.APIURL = "http://" + DefaultHTTPAddress
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultEngineTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}

	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}
	return &cfg, fs.Args(), nil
}
