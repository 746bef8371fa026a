// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net"
	"net/url"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup. Defaults are applied first.
func (cfg *StructuredConfig) validate() error {
	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidAppConfigs, cfg.App.LogLevel)
	}

	if cfg.Storage.DataDir == "" {
		return fmt.Errorf("%w: data directory is required", ErrInvalidStorageConfigs)
	}

	if _, _, err := net.SplitHostPort(cfg.Server.HTTPAddress); err != nil {
		return fmt.Errorf("%w: address %q", ErrInvalidServerConfigs, cfg.Server.HTTPAddress)
	}
	for _, origin := range cfg.Server.AllowedOrigins {
		if u, err := url.Parse(origin); err != nil || u.Scheme == "" || u.Host == "" || u.Path != "" {
			return fmt.Errorf("%w: allowed origin %q", ErrInvalidServerConfigs, origin)
		}
	}

	if _, _, err := net.SplitHostPort(cfg.Egress.ProxyAddress); err != nil {
		return fmt.Errorf("%w: proxy address %q", ErrInvalidEgressConfigs, cfg.Egress.ProxyAddress)
	}
	if cfg.Egress.TorSOCKSAddress != "" {
		if _, _, err := net.SplitHostPort(cfg.Egress.TorSOCKSAddress); err != nil {
			return fmt.Errorf("%w: socks address %q", ErrInvalidEgressConfigs, cfg.Egress.TorSOCKSAddress)
		}
	}

	if err := validateHTTPURL(cfg.Engine.BridgeURL); err != nil {
		return fmt.Errorf("%w: bridge url: %v", ErrInvalidEngineConfigs, err)
	}
	if cfg.Engine.BootstrapTimeout < 0 || cfg.Engine.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidEngineConfigs)
	}

	if cfg.Publisher.Enabled {
		if cfg.Publisher.BundleDir == "" || cfg.Publisher.Command == "" {
			return fmt.Errorf("%w: bundle directory and command are required", ErrInvalidPublisherConfigs)
		}
		if cfg.Publisher.Port < 1 || cfg.Publisher.Port > 65535 {
			return fmt.Errorf("%w: port %d", ErrInvalidPublisherConfigs, cfg.Publisher.Port)
		}
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if err := validateHTTPURL(cfg.APIURL); err != nil {
		return fmt.Errorf("%w: api url: %v", ErrInvalidClientConfigs, err)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidClientConfigs)
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q must be an absolute http(s) URL", raw)
	}
	return nil
}
