// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash computes content digests of bhencode value trees.
//
// Because the bhencode encoder is deterministic (mapping keys are
// always written in sorted order), the encoding of a value is a
// canonical form: two Values that are Equal encode to the same bytes,
// whatever order their dict pairs were built in. Hashing that form
// gives a stable identity for a value tree, usable as a cache key or
// for change detection.
//
// Digests are BLAKE3 keyed hashes. The key separates this package's
// digests from any other BLAKE3 use of the same bytes: a value digest
// never collides with a plain hash of the encoded file.
//
// The API surface:
//
//   - [HashValue] -- digest of a value's canonical UTF-8 encoding
//   - [HashEncoded] -- digest of bytes that are already encoded
//   - [HashFile] -- decodes a file (compressed or not) and digests the
//     value it holds
//   - [FormatDigest] and [ParseDigest] -- hex string form of a [Hash]
package binhash
