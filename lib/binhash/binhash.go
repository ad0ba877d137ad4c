// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/bhencode/lib/bencode"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// valueDomainKey is the BLAKE3 key for value digests: the ASCII
// domain name zero-padded to 32 bytes. Changing it invalidates every
// stored digest.
var valueDomainKey = [32]byte{
	'b', 'h', 'e', 'n', 'c', 'o', 'd', 'e', '.', 'v', 'a', 'l', 'u', 'e',
}

// HashValue returns the digest of v's canonical encoding: UTF-8 text,
// strict mode. It fails if v cannot be encoded.
func HashValue(v bencode.Value) (Hash, error) {
	encoded, err := bencode.Encode(v)
	if err != nil {
		return Hash{}, fmt.Errorf("hashing value: %w", err)
	}
	return HashEncoded(encoded), nil
}

// HashEncoded returns the digest of already-encoded data. It equals
// HashValue of the decoded value only when data is in canonical form.
func HashEncoded(data []byte) Hash {
	// NewKeyed only fails for a key that is not 32 bytes long.
	hasher, err := blake3.NewKeyed(valueDomainKey[:])
	if err != nil {
		panic("binhash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}

// HashFile decodes the file at path with options and returns the
// digest of the value it holds. Compression and the key order in the
// file do not affect the result.
func HashFile(path string, options bencode.Options) (Hash, error) {
	value, err := options.DecodeFile(path)
	if err != nil {
		return Hash{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	hash, err := HashValue(value)
	if err != nil {
		return Hash{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return hash, nil
}

// FormatDigest returns the hex-encoded string representation of a
// digest.
func FormatDigest(digest Hash) string {
	return hex.EncodeToString(digest[:])
}

// ParseDigest parses a hex-encoded digest string. Returns an error if
// the string is not a valid 64-character hex encoding of 32 bytes.
func ParseDigest(hexString string) (Hash, error) {
	var digest Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing hash digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("hash digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}
