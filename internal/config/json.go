package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-encoded durations.
type StructuredJSONConfig struct {
	App struct {
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DataDir string `json:"data_dir"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"server,omitempty"`

	Egress struct {
		ExtraHosts      []string `json:"extra_hosts"`
		TorSOCKSAddress string   `json:"tor_socks_address"`
		AnonymizedHosts []string `json:"anonymized_hosts"`
		ProxyAddress    string   `json:"proxy_address"`
	} `json:"egress,omitempty"`

	Engine struct {
		BridgeURL         string   `json:"bridge_url"`
		NetworkName       string   `json:"network_name"`
		ProviderURLs      []string `json:"provider_urls"`
		POIAggregatorURLs []string `json:"poi_aggregator_urls"`
		BootstrapTimeout  Duration `json:"bootstrap_timeout"`
		RequestTimeout    Duration `json:"request_timeout"`
		Debug             bool     `json:"debug"`
	} `json:"engine,omitempty"`

	Vault struct {
		IOTimeout Duration `json:"io_timeout"`
	} `json:"vault,omitempty"`

	Workers struct {
		BalanceInterval Duration `json:"balance_interval"`
	} `json:"workers,omitempty"`

	Publisher struct {
		Enabled      bool     `json:"enabled"`
		BundleDir    string   `json:"bundle_dir"`
		Command      string   `json:"command"`
		Args         []string `json:"args"`
		Port         int      `json:"port"`
		ReadyTimeout Duration `json:"ready_timeout"`
	} `json:"publisher,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			LogLevel: jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			DataDir: jsonCfg.Storage.DataDir,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			AllowedOrigins: jsonCfg.Server.AllowedOrigins,
		},
		Egress: Egress{
			ExtraHosts:      jsonCfg.Egress.ExtraHosts,
			TorSOCKSAddress: jsonCfg.Egress.TorSOCKSAddress,
			AnonymizedHosts: jsonCfg.Egress.AnonymizedHosts,
			ProxyAddress:    jsonCfg.Egress.ProxyAddress,
		},
		Engine: Engine{
			BridgeURL:         jsonCfg.Engine.BridgeURL,
			NetworkName:       jsonCfg.Engine.NetworkName,
			ProviderURLs:      jsonCfg.Engine.ProviderURLs,
			POIAggregatorURLs: jsonCfg.Engine.POIAggregatorURLs,
			BootstrapTimeout:  time.Duration(jsonCfg.Engine.BootstrapTimeout),
			RequestTimeout:    time.Duration(jsonCfg.Engine.RequestTimeout),
			Debug:             jsonCfg.Engine.Debug,
		},
		Vault: Vault{
			IOTimeout: time.Duration(jsonCfg.Vault.IOTimeout),
		},
		Workers: Workers{
			BalanceInterval: time.Duration(jsonCfg.Workers.BalanceInterval),
		},
		Publisher: Publisher{
			Enabled:      jsonCfg.Publisher.Enabled,
			BundleDir:    jsonCfg.Publisher.BundleDir,
			Command:      jsonCfg.Publisher.Command,
			Args:         jsonCfg.Publisher.Args,
			Port:         jsonCfg.Publisher.Port,
			ReadyTimeout: time.Duration(jsonCfg.Publisher.ReadyTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
