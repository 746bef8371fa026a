package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/MKhiriev/freedom-sidecar/internal/config"
	"github.com/MKhiriev/freedom-sidecar/internal/crypto"
	"github.com/MKhiriev/freedom-sidecar/internal/egress"
	"github.com/MKhiriev/freedom-sidecar/internal/engine"
	"github.com/MKhiriev/freedom-sidecar/internal/handler"
	"github.com/MKhiriev/freedom-sidecar/internal/lifecycle"
	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/internal/publisher"
	"github.com/MKhiriev/freedom-sidecar/internal/server"
	"github.com/MKhiriev/freedom-sidecar/internal/service"
	"github.com/MKhiriev/freedom-sidecar/internal/session"
	"github.com/MKhiriev/freedom-sidecar/internal/vault"
	"github.com/MKhiriev/freedom-sidecar/internal/workers"
	"github.com/MKhiriev/freedom-sidecar/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("freedom-sidecar")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = logger.NewLogger("freedom-sidecar", cfg.App.LogLevel)

	log.Debug().Any("config", cfg).Msg("received configs")

	guard := egress.NewGuard(egress.NewPolicy(cfg.Egress.ExtraHosts...), nil, log.WithComponent("egress"))

	var anon egress.Dialer
	if cfg.Egress.TorSOCKSAddress != "" {
		anon, err = egress.NewTorDialer(guard, cfg.Egress.TorSOCKSAddress)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating anonymity dialer")
		}
	}
	proxy := egress.NewProxy(guard, anon, cfg.Egress.AnonymizedHosts, log.WithComponent("proxy"))

	eng := engine.NewBridge(guard.RestyClient(cfg.Engine.BridgeURL, 0), cfg.Engine.RequestTimeout, log.WithComponent("engine"))
	coordinator := lifecycle.New(eng, lifecycle.Config{
		NetworkName:       cfg.Engine.NetworkName,
		ArtifactStoreURL:  "http://" + cfg.Server.HTTPAddress + "/engine/artifacts",
		ProviderURLs:      cfg.Engine.ProviderURLs,
		POIAggregatorURLs: cfg.Engine.POIAggregatorURLs,
		BootstrapTimeout:  cfg.Engine.BootstrapTimeout,
		BalanceInterval:   cfg.Workers.BalanceInterval,
		Debug:             cfg.Engine.Debug,
	}, log.WithComponent("lifecycle"))

	keychain := crypto.NewKeyChainService()
	walletVault := vault.New(filepath.Join(cfg.Storage.DataDir, vault.FileName), keychain, cfg.Vault.IOTimeout, log.WithComponent("vault"))

	services, err := service.NewServices(service.Deps{
		Vault:       walletVault,
		KeyChain:    keychain,
		Engine:      eng,
		Sessions:    session.NewStore(),
		Coordinator: coordinator,
		BuildInfo:   models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, proxy, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, cfg.Egress, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// the engine downloads artifacts from the API while it bootstraps, so
	// the sockets are bound before it starts
	if err = srv.Listen(); err != nil {
		log.Fatal().Err(err).Msg("error binding server")
	}

	jobs := []workers.Worker{
		srv,
		workers.WorkerFunc(func(ctx context.Context) error {
			if err := coordinator.StartEngine(ctx, cfg.Storage.DataDir); err != nil {
				return fmt.Errorf("wallet engine: %w", err)
			}
			return nil
		}),
	}
	if cfg.Publisher.Enabled {
		pub := publisher.New(cfg.Publisher, cfg.Storage.DataDir, cfg.Egress.ProxyAddress, guard, log.WithComponent("publisher"))
		jobs = append(jobs, pub)
	}

	runErr := workers.NewWorkers(jobs...).Run(ctx)

	coordinator.Shutdown(context.WithoutCancel(ctx))

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Fatal().Err(runErr).Msg("sidecar stopped with error")
	}
	log.Info().Uint64("blocked_egress", guard.Blocked()).Msg("sidecar stopped")
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
