package models

// FeeTable holds the relayer fee parameters returned by the engine on
// bootstrap, in basis points keyed by fee kind.
type FeeTable map[string]uint32

// EngineInitParams is sent to the engine bridge when it is bootstrapped.
type EngineInitParams struct {
	WalletSource       string   `json:"walletSource"`
	NetworkName        string   `json:"networkName"`
	ArtifactStoreURL   string   `json:"artifactStoreUrl"`
	DatabasePath       string   `json:"databasePath"`
	ProviderURLs       []string `json:"providerUrls"`
	POIAggregatorURLs  []string `json:"poiAggregatorUrls"`
	ShouldDebug        bool     `json:"shouldDebug"`
	UseNativeArtifacts bool     `json:"useNativeArtifacts"`
}

// EngineStatus is reported by GET /engine/status.
type EngineStatus struct {
	State       string   `json:"state"`
	EngineReady bool     `json:"engineReady"`
	WalletReady bool     `json:"walletReady"`
	FeeTable    FeeTable `json:"feeTable,omitempty"`
}
