// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress wraps encoded bhencode files in self-describing
// compression frames.
//
// Two algorithms are supported, each written in its standard frame
// format so that the reader needs no side channel to know how a file
// was stored:
//
//   - zstd (frame magic 28 b5 2f fd): better ratio for text-heavy
//     value trees.
//   - LZ4 (frame magic 04 22 4d 18): faster, lower ratio.
//
// Neither magic number can start a valid bhencode buffer (whose first
// byte is a digit or an ASCII tag letter), so [Decompress] passes
// uncompressed data through unchanged.
package compress
