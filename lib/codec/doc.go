// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec transcodes bhencode value trees to and from CBOR.
//
// bhencode is compact and deterministic but only bhencode decoders can
// read it. CBOR (RFC 8949) is the interchange form for tools that
// cannot: every variant of a [bencode.Value] maps onto a CBOR item, and
// the variants CBOR has no native form for travel inside tags:
//
//	bytes, text, integer, float, bool, null   native CBOR items
//	list                                      array
//	dict with only text keys                  map
//	tuple                                     tag 27001 (array)
//	ordered dict                              tag 27002 (flat key/value array)
//	dict with other keys                      tag 27003 (flat key/value array)
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer and float encodings, no indefinite-length
// items. As with bhencode itself, the same Value always produces the
// same bytes.
//
//	data, err := codec.ToCBOR(value)
//	value, err := codec.FromCBOR(data)
//
// [Diagnose] renders CBOR as RFC 8949 diagnostic notation for logs and
// debugging.
package codec
