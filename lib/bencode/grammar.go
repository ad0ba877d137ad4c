// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

// Wire tags. These bytes are the format; changing any of them breaks
// compatibility with existing encoded data.
const (
	tagInteger     byte = 'i'
	tagFloat       byte = 'f'
	tagTrue        byte = 'T'
	tagFalse       byte = 'F'
	tagNull        byte = 'N'
	tagList        byte = 'l'
	tagTuple       byte = 't'
	tagDict        byte = 'd'
	tagOrderedDict byte = 'D'
	tagEnd         byte = 'e'
	lengthSep      byte = ':'
)

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
