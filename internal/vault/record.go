// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/MKhiriev/freedom-sidecar/internal/crypto"
)

const recordPrefixV1 = "v1:"

const headerSize = crypto.SaltSize + crypto.NonceSize + crypto.TagSize

// record is the decoded content of a vault file.
type record struct {
	salt       []byte
	nonce      []byte
	tag        []byte
	ciphertext []byte
}

// encodeRecord renders r in the current (v1) layout.
func encodeRecord(r record) []byte {
	raw := make([]byte, 0, headerSize+len(r.ciphertext))
	raw = append(raw, r.salt...)
	raw = append(raw, r.nonce...)
	raw = append(raw, r.tag...)
	raw = append(raw, r.ciphertext...)

	out := make([]byte, len(recordPrefixV1)+base64.StdEncoding.EncodedLen(len(raw)))
	copy(out, recordPrefixV1)
	base64.StdEncoding.Encode(out[len(recordPrefixV1):], raw)
	return out
}

// decodeRecord accepts both the v1 layout and the unprefixed legacy one.
func decodeRecord(data []byte) (record, error) {
	data = bytes.TrimSpace(data)
	data = bytes.TrimPrefix(data, []byte(recordPrefixV1))

	raw := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
	n, err := base64.StdEncoding.Decode(raw, data)
	if err != nil {
		return record{}, fmt.Errorf("%w: %v", errMalformedRecord, err)
	}
	raw = raw[:n]

	if len(raw) <= headerSize {
		return record{}, fmt.Errorf("%w: %d bytes", errMalformedRecord, len(raw))
	}

	nonceAt := crypto.SaltSize
	tagAt := nonceAt + crypto.NonceSize
	return record{
		salt:       raw[:nonceAt],
		nonce:      raw[nonceAt:tagAt],
		tag:        raw[tagAt:headerSize],
		ciphertext: raw[headerSize:],
	}, nil
}
