package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/tyler-smith/go-bip39"

	"github.com/MKhiriev/freedom-sidecar/internal/crypto"
	"github.com/MKhiriev/freedom-sidecar/internal/engine"
	"github.com/MKhiriev/freedom-sidecar/internal/lifecycle"
	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/internal/session"
	"github.com/MKhiriev/freedom-sidecar/internal/store"
	"github.com/MKhiriev/freedom-sidecar/internal/vault"
	"github.com/MKhiriev/freedom-sidecar/models"
)

const (
	minPasswordLength = 8
	mnemonicEntropy   = 128
)

type walletService struct {
	vault       vault.Vault
	keyChain    crypto.KeyChainService
	engine      engine.Engine
	sessions    *session.Store
	coordinator Coordinator

	// newMnemonic is swapped in tests.
	newMnemonic func() (string, error)

	// mu serializes create, unlock, lock and password changes.
	mu     sync.Mutex
	logger *logger.Logger
}

func NewWalletService(
	v vault.Vault,
	keyChain crypto.KeyChainService,
	eng engine.Engine,
	sessions *session.Store,
	coordinator Coordinator,
	logger *logger.Logger,
) WalletService {
	return &walletService{
		vault:       v,
		keyChain:    keyChain,
		engine:      eng,
		sessions:    sessions,
		coordinator: coordinator,
		newMnemonic: generateMnemonic,
		logger:      logger,
	}
}

func generateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropy)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

func (s *walletService) Exists(ctx context.Context) (bool, error) {
	return s.vault.Exists(ctx)
}

func (s *walletService) Create(ctx context.Context, password string) (string, error) {
	log := logger.FromContext(ctx)

	if utf8.RuneCountInString(password) < minPasswordLength {
		return "", ErrInvalidPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.coordinator.EngineReady() {
		return "", lifecycle.ErrEngineNotInitialized
	}

	exists, err := s.vault.Exists(ctx)
	if err != nil {
		return "", err
	}
	if exists {
		return "", vault.ErrVaultAlreadyExists
	}

	mnemonic, err := s.newMnemonic()
	if err != nil {
		log.Err(err).Str("func", "*walletService.Create").Msg("error generating mnemonic")
		return "", fmt.Errorf("error generating mnemonic: %w", err)
	}

	salt, err := s.keyChain.GenerateSalt()
	if err != nil {
		log.Err(err).Str("func", "*walletService.Create").Msg("error generating engine salt")
		return "", fmt.Errorf("error generating Salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)

	engineKey, err := s.keyChain.DeriveEngineKey(password, saltHex)
	if err != nil {
		return "", fmt.Errorf("error deriving engine key: %w", err)
	}

	wallet, err := s.engine.CreateWallet(ctx, engineKey, mnemonic)
	if err != nil {
		log.Err(err).Str("func", "*walletService.Create").Msg("engine failed to create wallet")
		return "", err
	}

	viewingKey, err := s.engine.ShareableViewingKey(ctx, wallet.ID)
	if err != nil {
		return "", err
	}

	secret := models.WalletSecret{
		Mnemonic:             mnemonic,
		EngineWalletID:       wallet.ID,
		EngineEncryptionSalt: saltHex,
	}
	err = s.vault.Create(ctx, secret, password)
	secret.Wipe()
	if errors.Is(err, vault.ErrVaultIOTimeout) && s.publishedLate(ctx) {
		log.Warn().Str("engine_wallet_id", wallet.ID).Msg("vault file published after write timeout")
		err = nil
	}
	if err != nil {
		log.Err(err).Str("func", "*walletService.Create").Msg("error sealing wallet")
		log.Warn().Str("engine_wallet_id", wallet.ID).Msg("engine wallet created without a vault file")
		return "", err
	}

	if err = s.open(ctx, wallet, viewingKey); err != nil {
		return "", err
	}

	log.Info().Str("wallet_id", wallet.ID).Msg("wallet created")
	return wallet.Address, nil
}

func (s *walletService) Unlock(ctx context.Context, password string) (string, error) {
	log := logger.FromContext(ctx)

	if password == "" {
		return "", ErrPasswordRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.coordinator.EngineReady() {
		return "", lifecycle.ErrEngineNotInitialized
	}

	secret, err := s.vault.Unlock(ctx, password)
	if err != nil {
		return "", err
	}
	defer secret.Wipe()

	engineKey := secret.EngineEncryptionKey
	if engineKey == "" {
		engineKey, err = s.keyChain.DeriveEngineKey(password, secret.EngineEncryptionSalt)
		if err != nil {
			log.Err(err).Str("func", "*walletService.Unlock").Msg("stored engine salt is unusable")
			return "", vault.ErrInvalidPasswordOrCorrupted
		}
	}

	wallet, err := s.engine.LoadWallet(ctx, engineKey, secret.EngineWalletID)
	if err != nil {
		log.Err(err).Str("func", "*walletService.Unlock").Msg("engine failed to load wallet")
		return "", err
	}

	viewingKey, err := s.engine.ShareableViewingKey(ctx, wallet.ID)
	if err != nil {
		return "", err
	}

	if err = s.open(ctx, wallet, viewingKey); err != nil {
		return "", err
	}

	log.Info().Str("wallet_id", wallet.ID).Msg("wallet unlocked")
	return wallet.Address, nil
}

// publishedLate reports whether a vault write that timed out still landed.
// The atomic create only ever publishes a complete file, and Create is
// serialized by mu, so a file seen here is the one just sealed.
func (s *walletService) publishedLate(ctx context.Context) bool {
	exists, err := s.vault.Exists(ctx)
	return err == nil && exists
}

// open starts tracking the wallet and replaces the session. The session is
// only set once tracking is running.
func (s *walletService) open(ctx context.Context, wallet models.WalletInfo, viewingKey string) error {
	if err := s.coordinator.StartWalletTracking(ctx, wallet); err != nil {
		logger.FromContext(ctx).Err(err).Str("wallet_id", wallet.ID).Msg("error starting wallet tracking")
		s.sessions.Clear()
		return fmt.Errorf("start wallet tracking: %w", err)
	}

	s.sessions.Set(models.WalletSession{
		EngineWalletID:      wallet.ID,
		PublicAddress:       wallet.Address,
		ShareableViewingKey: viewingKey,
		UnlockedAt:          time.Now().UTC(),
	})
	return nil
}

func (s *walletService) Lock(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions.Clear()
	s.coordinator.StopWalletTracking()

	logger.FromContext(ctx).Info().Msg("wallet locked")
	return nil
}

func (s *walletService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if oldPassword == "" {
		return ErrPasswordRequired
	}
	if utf8.RuneCountInString(newPassword) < minPasswordLength {
		return ErrInvalidPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.vault.Rekey(ctx, oldPassword, newPassword); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Msg("wallet password changed")
	return nil
}

func (s *walletService) Address(ctx context.Context) (string, error) {
	return s.sessions.CurrentAddress()
}

// Balance returns the latest observed spendable balance. Before the first
// observation lands the balance is zero.
func (s *walletService) Balance(ctx context.Context) (models.BalanceResponse, error) {
	walletID, err := s.sessions.CurrentEngineID()
	if err != nil {
		return models.BalanceResponse{}, err
	}

	snapshot, err := s.coordinator.LatestBalance(ctx, walletID)
	switch {
	case errors.Is(err, store.ErrNoBalanceObserved):
		snapshot.BalanceWei = nil
	case err != nil:
		return models.BalanceResponse{}, err
	}

	wei := snapshot.BalanceWei
	if wei == nil {
		return models.BalanceResponse{Balance: formatUnits(nil, tokenDecimals), BalanceWei: "0"}, nil
	}
	return models.BalanceResponse{
		Balance:    formatUnits(wei, tokenDecimals),
		BalanceWei: wei.String(),
	}, nil
}
