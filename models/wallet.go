// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"math/big"
	"time"
)

// WalletSecret is the plaintext payload sealed inside the vault file.
//
// EngineEncryptionKey is only present after a password change: the engine
// wallet keeps opening with the key it was created with, so the key derived
// from the original password is pinned here instead of being re-derived.
type WalletSecret struct {
	Mnemonic             string `json:"mnemonic"`
	EngineWalletID       string `json:"engineWalletId"`
	EngineEncryptionSalt string `json:"engineEncryptionSalt"`
	EngineEncryptionKey  string `json:"engineEncryptionKey,omitempty"`
}

// UnmarshalJSON also reads the railgunId and railgunEncryptionSalt keys used
// by legacy vault files. The current names win when both are present.
func (s *WalletSecret) UnmarshalJSON(b []byte) error {
	type plain WalletSecret
	var aux struct {
		plain
		LegacyWalletID       string `json:"railgunId"`
		LegacyEncryptionSalt string `json:"railgunEncryptionSalt"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	*s = WalletSecret(aux.plain)
	if s.EngineWalletID == "" {
		s.EngineWalletID = aux.LegacyWalletID
	}
	if s.EngineEncryptionSalt == "" {
		s.EngineEncryptionSalt = aux.LegacyEncryptionSalt
	}
	return nil
}

// Valid reports whether every field needed to reopen the engine wallet is set.
func (s WalletSecret) Valid() bool {
	return s.Mnemonic != "" && s.EngineWalletID != "" && s.EngineEncryptionSalt != ""
}

// Wipe overwrites the secret in place. Go strings are immutable, so this
// only drops the references; it is still worth doing before the value
// escapes into long-lived structures.
func (s *WalletSecret) Wipe() {
	*s = WalletSecret{}
}

// WalletSession is the in-memory state of an unlocked wallet.
type WalletSession struct {
	EngineWalletID      string    `json:"engineWalletId"`
	PublicAddress       string    `json:"address"`
	ShareableViewingKey string    `json:"-"`
	UnlockedAt          time.Time `json:"unlockedAt"`
}

// WalletInfo describes an engine wallet as reported by the engine bridge.
type WalletInfo struct {
	ID        string    `json:"id"`
	Address   string    `json:"railgunAddress"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// BalanceSnapshot is one observation of a wallet's spendable balance.
type BalanceSnapshot struct {
	WalletID   string
	BalanceWei *big.Int
	ObservedAt time.Time
}
