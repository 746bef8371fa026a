// Package vault keeps the wallet secret encrypted at rest.
//
// The secret is a small JSON document sealed with AES-256-GCM under a key
// derived from the user's password (PBKDF2-HMAC-SHA256). The file holds
// salt, nonce, tag and ciphertext in that order, base64-encoded behind a
// "v1:" version prefix. Files written before versioning (no prefix) are
// still readable.
//
// A wrong password and a damaged file are reported with the same error,
// [ErrInvalidPasswordOrCorrupted].
package vault
