// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bencode implements bhencode, a bencode-derived binary
// serialization format.
//
// The wire grammar extends classic bencode with booleans, floats, null,
// tuples and an order-preserving mapping:
//
//	<len>:<bytes>   byte or text string
//	i<digits>e      integer (legacy encoders also wrote floats here)
//	f<decimal>e     float
//	T, F            boolean
//	N               null
//	l...e           list
//	t...e           tuple
//	d...e           mapping
//	D...e           order-preserving mapping
//
// Values are an immutable tagged union ([Value]) built with explicit
// constructors:
//
//	data, err := bencode.Encode(bencode.Dict(
//		bencode.Pair{Key: bencode.Text("foo"), Value: bencode.Int(42)},
//	))
//	value, err := bencode.Decode(data)
//
// Native Go values can be converted at the boundary with [FromNative]
// or encoded directly with [Marshal]. The encoder never inspects Go
// types itself: it dispatches only on [Kind].
//
// Mappings are always written with keys in ascending byte order, which
// makes encoding deterministic: the same Value always produces the same
// bytes. The decoder does not require sorted input.
//
// A buffer whose first byte is not 'l' or 'd' is decoded as an implicit
// tuple of back-to-back top-level values. Decoding a bare "i1e"
// therefore yields a one-element tuple, and an empty buffer yields an
// empty tuple. A buffer starting with 'l' or 'd' must hold exactly one
// value: bytes after it fail with [ErrTrailingData] instead of being
// ignored.
//
// Decoders and encoders keep all state local to a single call, so any
// number of calls may run concurrently.
package bencode
