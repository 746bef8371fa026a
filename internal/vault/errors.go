// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import "errors"

var (
	// ErrVaultAlreadyExists is returned by Create when a vault file is present.
	ErrVaultAlreadyExists = errors.New("wallet already exists")

	// ErrVaultNotFound is returned by Unlock and Rekey when there is no vault file.
	ErrVaultNotFound = errors.New("no wallet found")

	// ErrInvalidPasswordOrCorrupted covers every failure to turn the file
	// back into a secret: bad encoding, short record, failed tag check and
	// malformed JSON alike.
	ErrInvalidPasswordOrCorrupted = errors.New("invalid password or corrupted wallet file")

	// ErrVaultIOTimeout is returned when a file operation does not finish
	// within the configured timeout.
	ErrVaultIOTimeout = errors.New("wallet file operation timed out")

	errMalformedRecord  = errors.New("malformed vault record")
	errIncompleteSecret = errors.New("vault payload is missing wallet fields")
)
