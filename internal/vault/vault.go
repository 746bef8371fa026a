// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/MKhiriev/freedom-sidecar/internal/crypto"
	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/internal/utils"
	"github.com/MKhiriev/freedom-sidecar/models"
)

// FileName is the name of the vault file inside the data directory.
const FileName = "wallet.enc"

const filePerm = 0o600

// fileVault is the file-backed [Vault]. Create, Unlock and Rekey are
// serialized by mu.
type fileVault struct {
	path     string
	keychain crypto.KeyChainService
	timeout  time.Duration
	logger   *logger.Logger

	mu sync.Mutex
}

// New returns a vault stored at path. A non-positive timeout disables the
// I/O deadline.
func New(path string, keychain crypto.KeyChainService, timeout time.Duration, log *logger.Logger) Vault {
	if log == nil {
		log = logger.Nop()
	}
	return &fileVault{
		path:     path,
		keychain: keychain,
		timeout:  timeout,
		logger:   log,
	}
}

// Exists implements Vault.
func (v *fileVault) Exists(ctx context.Context) (bool, error) {
	var exists bool
	err := v.io(ctx, "stat", func() error {
		_, err := os.Stat(v.path)
		switch {
		case err == nil:
			exists = true
			return nil
		case errors.Is(err, os.ErrNotExist):
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Create implements Vault.
func (v *fileVault) Create(ctx context.Context, secret models.WalletSecret, password string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	exists, err := v.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return ErrVaultAlreadyExists
	}

	data, err := v.seal(secret, password)
	if err != nil {
		return err
	}

	err = v.io(ctx, "create", func() error {
		return utils.CreateFileAtomic(v.path, data, filePerm)
	})
	if errors.Is(err, os.ErrExist) {
		return ErrVaultAlreadyExists
	}
	if err != nil {
		return err
	}

	v.logger.Info().Str("path", v.path).Msg("wallet vault created")
	return nil
}

// Unlock implements Vault.
func (v *fileVault) Unlock(ctx context.Context, password string) (models.WalletSecret, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.unlock(ctx, password)
}

// Rekey implements Vault.
func (v *fileVault) Rekey(ctx context.Context, oldPassword, newPassword string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	secret, err := v.unlock(ctx, oldPassword)
	if err != nil {
		return err
	}
	defer secret.Wipe()

	if secret.EngineEncryptionKey == "" {
		key, err := v.keychain.DeriveEngineKey(oldPassword, secret.EngineEncryptionSalt)
		if err != nil {
			return fmt.Errorf("deriving engine key: %w", err)
		}
		secret.EngineEncryptionKey = key
	}

	data, err := v.seal(secret, newPassword)
	if err != nil {
		return err
	}

	if err = v.io(ctx, "replace", func() error {
		return utils.WriteFileAtomic(v.path, data, filePerm)
	}); err != nil {
		return err
	}

	v.logger.Info().Str("path", v.path).Msg("wallet vault re-encrypted with new password")
	return nil
}

func (v *fileVault) unlock(ctx context.Context, password string) (models.WalletSecret, error) {
	var data []byte
	err := v.io(ctx, "read", func() error {
		b, err := os.ReadFile(v.path)
		data = b
		return err
	})
	if errors.Is(err, os.ErrNotExist) {
		return models.WalletSecret{}, ErrVaultNotFound
	}
	if err != nil {
		return models.WalletSecret{}, err
	}

	secret, err := v.open(data, password)
	if err != nil {
		v.logger.Debug().Err(err).Msg("vault decode failed")
		return models.WalletSecret{}, ErrInvalidPasswordOrCorrupted
	}
	return secret, nil
}

func (v *fileVault) seal(secret models.WalletSecret, password string) ([]byte, error) {
	plaintext, err := json.Marshal(secret)
	if err != nil {
		return nil, fmt.Errorf("encoding wallet secret: %w", err)
	}
	defer clear(plaintext)

	salt, err := v.keychain.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	key := v.keychain.DeriveKey(password, salt)
	defer clear(key)

	nonce, tag, ciphertext, err := v.keychain.Seal(plaintext, key)
	if err != nil {
		return nil, fmt.Errorf("encrypting wallet secret: %w", err)
	}

	return encodeRecord(record{salt: salt, nonce: nonce, tag: tag, ciphertext: ciphertext}), nil
}

func (v *fileVault) open(data []byte, password string) (models.WalletSecret, error) {
	rec, err := decodeRecord(data)
	if err != nil {
		return models.WalletSecret{}, err
	}

	key := v.keychain.DeriveKey(password, rec.salt)
	defer clear(key)

	plaintext, err := v.keychain.Open(rec.nonce, rec.tag, rec.ciphertext, key)
	if err != nil {
		return models.WalletSecret{}, err
	}
	defer clear(plaintext)

	var secret models.WalletSecret
	if err = json.Unmarshal(plaintext, &secret); err != nil {
		return models.WalletSecret{}, err
	}
	if !secret.Valid() {
		secret.Wipe()
		return models.WalletSecret{}, errIncompleteSecret
	}
	return secret, nil
}

// io runs fn under the vault's I/O deadline. fn keeps running in the
// background after a timeout, but its result is discarded and the caller
// gets ErrVaultIOTimeout.
func (v *fileVault) io(ctx context.Context, op string, fn func() error) error {
	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("vault %s: %w", op, err)
		}
		return nil
	case <-ctx.Done():
		v.logger.Error().Str("op", op).Str("path", v.path).Msg("vault file operation timed out")
		return fmt.Errorf("vault %s: %w: %w", op, ErrVaultIOTimeout, ctx.Err())
	}
}
