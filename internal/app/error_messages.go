// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// sidecar API and the walletctl client.
//
// All Msg* constants are human-readable message strings written into the
// "error" field of API responses. Keeping them in one place lets walletctl
// recognise them without duplicating the wording.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgPasswordTooShort is returned by create and password change when the
	// new password has fewer than 8 characters.
	MsgPasswordTooShort = "Password must be at least 8 characters"

	// MsgPasswordRequired is returned when a password field is empty.
	MsgPasswordRequired = "Password is required"

	// MsgWalletAlreadyExists is returned by create when a wallet file is
	// already present.
	MsgWalletAlreadyExists = "Wallet already exists"

	// MsgNoWalletFound is returned by unlock before any wallet was created.
	MsgNoWalletFound = "No wallet found"

	// MsgInvalidPassword is returned when the password does not open the
	// wallet file. Corruption is reported the same way.
	MsgInvalidPassword = "Invalid password"

	// MsgWalletLocked is returned by every endpoint that needs an unlocked
	// wallet.
	MsgWalletLocked = "Wallet is locked"

	// MsgEngineNotReady is returned while the wallet engine is still booting.
	MsgEngineNotReady = "Wallet engine is not initialized"

	// MsgEngineUnavailable is returned when the engine bridge cannot be
	// reached.
	MsgEngineUnavailable = "Wallet engine is unavailable"

	// MsgEngineRequestFailed is returned when the engine bridge rejected a
	// call.
	MsgEngineRequestFailed = "Wallet engine request failed"

	// MsgWalletIOTimeout is returned when reading or writing the wallet file
	// did not finish in time.
	MsgWalletIOTimeout = "Wallet file operation timed out"

	// MsgArtifactNotFound is returned by GET /engine/artifacts/* for an
	// unknown path.
	MsgArtifactNotFound = "Artifact not found"

	// MsgInvalidArtifactPath is returned for artifact paths that escape the
	// store.
	MsgInvalidArtifactPath = "Invalid artifact path"

	// MsgBlockedEgress is returned when a request would have left the
	// machine.
	MsgBlockedEgress = "Outgoing request to clearnet blocked for privacy"

	// MsgLocalClientsOnly is returned to callers that are not on loopback.
	MsgLocalClientsOnly = "Only local clients are accepted"

	// MsgForbiddenOrigin is returned to browser requests from an origin
	// outside the allowed list.
	MsgForbiddenOrigin = "Origin not allowed"

	// MsgNotFound is returned for unknown routes.
	MsgNotFound = "Not found"

	// MsgInternalServerError is returned when an unexpected failure occurs
	// that the client cannot resolve.
	MsgInternalServerError = "Internal server error"
)
