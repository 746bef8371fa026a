package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the runtime flags from args.
//
// Flags:
//
//	-a API address in format [host]:[port]
//	-proxy-address forward proxy address in format [host]:[port]
//	-data-dir application data directory
//	-c/-config json file path with configs
//	-log-level zerolog level
//	-engine-url engine bridge base URL
//	-network engine network name
//	-tor-socks anonymity transport SOCKS5 address
//	-bootstrap-timeout engine bootstrap timeout (e.g., "2m")
//	-request-timeout API request timeout (e.g., "30s")
//	-allowed-origins comma-separated browser origins allowed to call the API
//	-vault-timeout vault file operation timeout (e.g., "10s")
//	-balance-interval balance observation interval (e.g., "30s")
//	-publisher enable the embedded publisher
//	-publisher-bundle publisher bundle directory
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("sidecar", flag.ContinueOnError)

	var serverAddress, proxyAddress NetAddress
	var dataDir, jsonConfigPath, logLevel string
	var engineURL, networkName, torSOCKS string
	var bootstrapTimeout, requestTimeout, vaultTimeout, balanceInterval time.Duration
	var publisherEnabled bool
	var publisherBundle string
	var allowedOrigins string

	fs.Var(&serverAddress, "a", "API net address host:port")
	fs.Var(&proxyAddress, "proxy-address", "Forward proxy net address host:port")
	fs.StringVar(&dataDir, "data-dir", "", "Application data directory")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&engineURL, "engine-url", "", "Engine bridge base URL")
	fs.StringVar(&networkName, "network", "", "Engine network name")
	fs.StringVar(&torSOCKS, "tor-socks", "", "Anonymity transport SOCKS5 address")
	fs.DurationVar(&bootstrapTimeout, "bootstrap-timeout", 0, "Engine bootstrap timeout (e.g., 2m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&allowedOrigins, "allowed-origins", "", "Comma-separated browser origins allowed to call the API")
	fs.DurationVar(&vaultTimeout, "vault-timeout", 0, "Vault I/O timeout (e.g., 10s)")
	fs.DurationVar(&balanceInterval, "balance-interval", 0, "Balance observation interval (e.g., 30s)")
	fs.BoolVar(&publisherEnabled, "publisher", false, "Provision and boot the embedded publisher")
	fs.StringVar(&publisherBundle, "publisher-bundle", "", "Publisher bundle directory")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Storage: Storage{
			DataDir: dataDir,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			AllowedOrigins: splitList(allowedOrigins),
		},
		Egress: Egress{
			TorSOCKSAddress: torSOCKS,
			ProxyAddress:    proxyAddress.String(),
		},
		Engine: Engine{
			BridgeURL:        engineURL,
			NetworkName:      networkName,
			BootstrapTimeout: bootstrapTimeout,
		},
		Vault: Vault{
			IOTimeout: vaultTimeout,
		},
		Workers: Workers{
			BalanceInterval: balanceInterval,
		},
		Publisher: Publisher{
			Enabled:   publisherEnabled,
			BundleDir: publisherBundle,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// splitList splits a comma-separated flag value, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String returns a canonical host:port string for a NetAddress.
// It returns "" when neither Host nor Port are set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(strings.TrimSpace(s))
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
