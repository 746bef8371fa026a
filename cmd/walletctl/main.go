package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/freedom-sidecar/internal/adapter"
	"github.com/MKhiriev/freedom-sidecar/internal/client"
	"github.com/MKhiriev/freedom-sidecar/internal/config"
	"github.com/MKhiriev/freedom-sidecar/internal/egress"
	"github.com/MKhiriev/freedom-sidecar/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		logger.NewCLILogger("walletctl").Fatal().Err(err).Msg("error getting configs")
	}
	log := logger.NewCLILogger("walletctl", cfg.LogLevel)

	if len(args) > 0 && args[0] == "build-info" {
		printBuildInfo()
		return
	}

	// the API is on loopback, so the default policy is all walletctl needs
	guard := egress.NewGuard(nil, nil, log)

	sidecar, err := adapter.NewHTTPSidecarAdapter(guard.RestyClient(cfg.APIURL, cfg.RequestTimeout), log)
	if err != nil {
		log.Fatal().Err(err).Msg("create sidecar adapter")
	}

	app, err := client.NewApp(sidecar, client.NewTerminalPasswordReader(os.Stdin, os.Stderr), os.Stdout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init walletctl error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "walletctl: %v\n", err)
		stop()
		if errors.Is(err, client.ErrUnknownCommand) || errors.Is(err, client.ErrMissingCommand) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
