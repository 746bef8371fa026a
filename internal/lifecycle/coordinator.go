// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package lifecycle drives the wallet engine from bootstrap to shutdown and
// owns its readiness state.
package lifecycle

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MKhiriev/freedom-sidecar/internal/artifact"
	"github.com/MKhiriev/freedom-sidecar/internal/engine"
	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/internal/store"
	"github.com/MKhiriev/freedom-sidecar/internal/workers"
	"github.com/MKhiriev/freedom-sidecar/models"
)

const (
	walletsDirName   = "wallets"
	artifactsDirName = "artifacts"
	stateDBName      = "engine.db"
	engineDataName   = "engine-data"
	walletSource     = "default"

	dirPerm             = 0o700
	defaultBootstrap    = 2 * time.Minute
	engineShutdownGrace = 10 * time.Second
)

// Config parameterizes engine bootstrap.
type Config struct {
	NetworkName       string
	ArtifactStoreURL  string
	ProviderURLs      []string
	POIAggregatorURLs []string
	BootstrapTimeout  time.Duration
	BalanceInterval   time.Duration
	Debug             bool
}

// Coordinator is the single owner of the engine's readiness. Every
// transition happens under its mutex; slow work (bootstrap, registration)
// runs outside it while the state is parked in a *Starting value, so
// concurrent callers observe the transition instead of repeating it.
type Coordinator struct {
	engine engine.Engine
	cfg    Config
	logger *logger.Logger

	mu            sync.Mutex
	state         State
	engineStarted bool
	db            *store.DB
	repos         *store.Repositories
	artifacts     artifact.Store
	observer      *workers.BalanceObserver
	feeTable      models.FeeTable
}

// New returns a coordinator in the Uninitialized state.
func New(eng engine.Engine, cfg Config, log *logger.Logger) *Coordinator {
	if cfg.BootstrapTimeout <= 0 {
		cfg.BootstrapTimeout = defaultBootstrap
	}
	return &Coordinator{
		engine: eng,
		cfg:    cfg,
		logger: log.WithComponent("lifecycle"),
	}
}

// State returns the current state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// EngineReady reports whether the engine has been bootstrapped.
func (c *Coordinator) EngineReady() bool {
	return c.State().engineReady()
}

// WalletReady reports whether wallet tracking has been started.
func (c *Coordinator) WalletReady() bool {
	return c.State() == WalletReady
}

// FeeTable returns a copy of the fee table loaded on bootstrap.
func (c *Coordinator) FeeTable() models.FeeTable {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.feeTable)
}

// Status summarizes the coordinator for the API.
func (c *Coordinator) Status() models.EngineStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.EngineStatus{
		State:       c.state.String(),
		EngineReady: c.state.engineReady(),
		WalletReady: c.state == WalletReady,
		FeeTable:    maps.Clone(c.feeTable),
	}
}

// StartEngine prepares the on-disk layout under dataDir, opens the state
// database, and bootstraps the engine within the bootstrap timeout. Calling
// it again while starting or once ready logs a warning and does nothing. On
// failure the coordinator returns to Uninitialized and the error is
// returned; callers treat it as fatal.
func (c *Coordinator) StartEngine(ctx context.Context, dataDir string) error {
	c.mu.Lock()
	switch c.state {
	case Uninitialized:
		c.state = EngineStarting
	case Stopped:
		c.mu.Unlock()
		return ErrCoordinatorStopped
	default:
		state := c.state
		c.mu.Unlock()
		c.logger.Warn().Stringer("state", state).Msg("engine already started, ignoring")
		return nil
	}
	c.mu.Unlock()

	c.logger.Info().Str("data_dir", dataDir).Msg("starting wallet engine")

	res, err := c.bootstrap(ctx, dataDir)

	c.mu.Lock()
	if c.state == Stopped {
		c.mu.Unlock()
		c.release(res)
		return ErrCoordinatorStopped
	}
	if err != nil {
		c.state = Uninitialized
		c.artifacts = nil
		c.mu.Unlock()
		c.release(res)
		c.logger.Err(err).Msg("wallet engine failed to start")
		return err
	}
	c.state = EngineReady
	c.engineStarted = true
	c.db = res.db
	c.repos = res.repos
	c.artifacts = res.artifacts
	c.feeTable = res.feeTable
	c.observer = workers.NewBalanceObserver(c.engine, res.repos.Balances, c.cfg.BalanceInterval, c.logger)
	c.mu.Unlock()

	c.logger.Info().Int("fees", len(res.feeTable)).Msg("wallet engine started")
	return nil
}

// bootResult carries what bootstrap acquired, so it can be released when
// the start is abandoned.
type bootResult struct {
	db            *store.DB
	repos         *store.Repositories
	artifacts     artifact.Store
	feeTable      models.FeeTable
	engineStarted bool
}

func (c *Coordinator) bootstrap(ctx context.Context, dataDir string) (bootResult, error) {
	var res bootResult

	walletsDir := filepath.Join(dataDir, walletsDirName)
	artifactsDir := filepath.Join(dataDir, artifactsDirName)
	for _, dir := range []string{walletsDir, artifactsDir} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return res, fmt.Errorf("create engine dir: %w", err)
		}
	}

	db, err := store.NewConnectSQLite(ctx, filepath.Join(walletsDir, stateDBName), c.logger)
	if err != nil {
		return res, fmt.Errorf("open engine state db: %w", err)
	}
	res.db = db
	if err = db.Migrate(); err != nil {
		return res, fmt.Errorf("migrate engine state db: %w", err)
	}
	res.repos = store.NewRepositories(db, c.logger)

	res.artifacts, err = artifact.NewFileStore(artifactsDir, c.logger)
	if err != nil {
		return res, err
	}
	// the engine fetches artifacts through the API while it bootstraps
	c.mu.Lock()
	if c.state == EngineStarting {
		c.artifacts = res.artifacts
	}
	c.mu.Unlock()

	bootCtx, cancel := context.WithTimeout(ctx, c.cfg.BootstrapTimeout)
	defer cancel()

	res.feeTable, err = c.engine.Init(bootCtx, models.EngineInitParams{
		WalletSource:      walletSource,
		NetworkName:       c.cfg.NetworkName,
		ArtifactStoreURL:  c.cfg.ArtifactStoreURL,
		DatabasePath:      filepath.Join(walletsDir, engineDataName),
		ProviderURLs:      c.cfg.ProviderURLs,
		POIAggregatorURLs: c.cfg.POIAggregatorURLs,
		ShouldDebug:       c.cfg.Debug,
	})
	if err != nil {
		return res, fmt.Errorf("engine bootstrap: %w", err)
	}
	res.engineStarted = true

	return res, nil
}

func (c *Coordinator) release(res bootResult) {
	if res.engineStarted {
		c.stopEngine(context.Background())
	}
	if res.db != nil {
		res.db.Close()
	}
}

// StartWalletTracking registers wallet and starts observing its balance.
// It fails with ErrEngineNotInitialized before the engine is ready. Once
// tracking runs, further calls log a warning and do nothing; after
// StopWalletTracking a call resumes observation without a state change.
func (c *Coordinator) StartWalletTracking(ctx context.Context, wallet models.WalletInfo) error {
	c.mu.Lock()
	switch c.state {
	case Uninitialized, EngineStarting:
		c.mu.Unlock()
		return ErrEngineNotInitialized
	case Stopped:
		c.mu.Unlock()
		return ErrCoordinatorStopped
	case WalletStarting:
		c.mu.Unlock()
		c.logger.Warn().Str("wallet_id", wallet.ID).Msg("wallet tracking is starting, ignoring")
		return nil
	case WalletReady:
		defer c.mu.Unlock()
		if _, running := c.observer.Running(); running {
			c.logger.Warn().Str("wallet_id", wallet.ID).Msg("wallet tracking already running, ignoring")
			return nil
		}
		c.observer.Start(ctx, wallet.ID)
		return nil
	}
	c.state = WalletStarting
	repos, observer := c.repos, c.observer
	c.mu.Unlock()

	if err := repos.Wallets.Register(ctx, wallet); err != nil {
		c.mu.Lock()
		if c.state == WalletStarting {
			c.state = EngineReady
		}
		c.mu.Unlock()
		return fmt.Errorf("register engine wallet: %w", err)
	}

	c.mu.Lock()
	if c.state != WalletStarting {
		c.mu.Unlock()
		return ErrCoordinatorStopped
	}
	observer.Start(ctx, wallet.ID)
	c.state = WalletReady
	c.mu.Unlock()

	c.logger.Info().Str("wallet_id", wallet.ID).Msg("wallet tracking started")
	return nil
}

// StopWalletTracking stops balance observation. The state stays
// WalletReady.
func (c *Coordinator) StopWalletTracking() {
	c.mu.Lock()
	observer := c.observer
	c.mu.Unlock()

	if observer != nil {
		observer.Stop()
	}
}

// LatestBalance returns the most recent balance observation of walletID.
func (c *Coordinator) LatestBalance(ctx context.Context, walletID string) (models.BalanceSnapshot, error) {
	c.mu.Lock()
	ready, repos := c.state.engineReady(), c.repos
	c.mu.Unlock()

	if !ready {
		return models.BalanceSnapshot{}, ErrEngineNotInitialized
	}
	return repos.Balances.Latest(ctx, walletID)
}

// Artifacts returns the engine's artifact store.
func (c *Coordinator) Artifacts() (artifact.Store, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.artifacts == nil || c.state == Stopped {
		return nil, ErrEngineNotInitialized
	}
	return c.artifacts, nil
}

// Shutdown stops balance observation, stops the engine if it was started
// and closes the state database. It is safe to call at any point, more
// than once, and from a signal handler; failures are only logged.
func (c *Coordinator) Shutdown(ctx context.Context) {
	c.mu.Lock()
	if c.state == Stopped {
		c.mu.Unlock()
		return
	}
	c.state = Stopped
	observer, db, started := c.observer, c.db, c.engineStarted
	c.observer, c.db, c.repos, c.artifacts = nil, nil, nil, nil
	c.engineStarted = false
	c.mu.Unlock()

	c.logger.Info().Msg("stopping wallet engine")

	if observer != nil {
		observer.Stop()
	}
	if started {
		c.stopEngine(ctx)
	}
	if db != nil {
		if err := db.Close(); err != nil {
			c.logger.Err(err).Msg("error closing engine state db")
		}
	}
}

func (c *Coordinator) stopEngine(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), engineShutdownGrace)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().Any("panic", r).Msg("engine shutdown panicked")
		}
	}()

	if err := c.engine.Shutdown(ctx); err != nil {
		c.logger.Err(err).Msg("error stopping wallet engine")
	}
}
