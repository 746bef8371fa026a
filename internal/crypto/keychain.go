// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// Sizes of the vault's cryptographic parameters, in bytes.
const (
	SaltSize  = 32
	NonceSize = 16
	TagSize   = 16
	KeySize   = 32

	// DefaultIterations is the PBKDF2 work factor.
	DefaultIterations = 100_000
)

var (
	// ErrInvalidKey is returned when a key of the wrong length is supplied.
	ErrInvalidKey = errors.New("invalid key length")
	// ErrInvalidNonce is returned when the nonce or tag have the wrong length.
	ErrInvalidNonce = errors.New("invalid nonce or tag length")
	// ErrAuthentication is returned when GCM tag verification fails.
	ErrAuthentication = errors.New("message authentication failed")
	// ErrInvalidSalt is returned when an engine salt is not valid hex.
	ErrInvalidSalt = errors.New("invalid salt")
)

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	iterations int
	random     io.Reader
}

// NewKeyChainService constructs a [KeyChainService] using PBKDF2-HMAC-SHA256
// with [DefaultIterations] and AES-256-GCM with 16-byte nonces.
func NewKeyChainService() KeyChainService {
	return &keyChainService{iterations: DefaultIterations, random: rand.Reader}
}

// GenerateSalt implements [KeyChainService].
func (k *keyChainService) GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(k.random, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey implements [KeyChainService].
func (k *keyChainService) DeriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, k.iterations, KeySize, sha256.New)
}

// DeriveEngineKey implements [KeyChainService].
func (k *keyChainService) DeriveEngineKey(password, saltHex string) (string, error) {
	salt, err := hex.DecodeString(saltHex)
	if err != nil || len(salt) == 0 {
		return "", ErrInvalidSalt
	}
	return hex.EncodeToString(k.DeriveKey(password, salt)), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// Seal implements [KeyChainService]. Go's AEAD appends the tag to the
// ciphertext; it is split off here so callers can lay the record out as
// nonce ‖ tag ‖ ciphertext.
func (k *keyChainService) Seal(plaintext, key []byte) ([]byte, []byte, []byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err = io.ReadFull(k.random, nonce); err != nil {
		return nil, nil, nil, fmt.Errorf("generate nonce: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - TagSize
	ciphertext := append([]byte(nil), sealed[:split]...)
	tag := append([]byte(nil), sealed[split:]...)

	return nonce, tag, ciphertext, nil
}

// Open implements [KeyChainService].
func (k *keyChainService) Open(nonce, tag, ciphertext, key []byte) ([]byte, error) {
	if len(nonce) != NonceSize || len(tag) != TagSize {
		return nil, ErrInvalidNonce
	}
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}
