// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"log/slog"
)

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is
// zero.
const DefaultMaxDepth = 512

// Options configures a decode or encode call. The zero value decodes
// and encodes UTF-8 text in strict mode.
type Options struct {
	// Encoding names the charset used for text strings: any IANA or
	// WHATWG name ("utf-8", "iso-8859-1", "windows-1252", "shift_jis").
	// Empty means UTF-8. "none" or "raw" disables text handling: the
	// decoder produces Bytes values and the encoder writes Text as its
	// UTF-8 bytes.
	Encoding string

	// Permissive makes the encoder skip values it cannot encode
	// instead of failing. Each skipped value is logged at Warn level.
	// The output is then incomplete and may not decode.
	Permissive bool

	// MaxDepth bounds the nesting of lists, tuples and mappings. Zero
	// means DefaultMaxDepth; a negative value disables the limit.
	MaxDepth int

	// Logger receives permissive-mode diagnostics. If nil,
	// slog.Default() is used.
	Logger *slog.Logger
}

// resolved is Options after validation, private to a single call.
type resolved struct {
	charset  charset
	strict   bool
	maxDepth int
	logger   *slog.Logger
}

func (o Options) resolve() (resolved, error) {
	charset, err := lookupCharset(o.Encoding)
	if err != nil {
		return resolved{}, err
	}

	maxDepth := o.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}

	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return resolved{
		charset:  charset,
		strict:   !o.Permissive,
		maxDepth: maxDepth,
		logger:   logger,
	}, nil
}

// ValidateEncoding reports whether name is a charset the codec can use.
func ValidateEncoding(name string) error {
	_, err := lookupCharset(name)
	return err
}
