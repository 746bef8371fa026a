// Package config provides configuration loading, merging, and validation
// facilities for the sidecar and walletctl.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. JSON config file
//  2. Environment variables
//  3. Command-line flags
//
// Fields still empty after merging receive the package defaults. The main
// entry points are [GetStructuredConfig] for the runtime and
// [GetClientConfig] for walletctl.
package config
