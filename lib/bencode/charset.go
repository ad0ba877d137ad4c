// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// charset converts string payloads between wire bytes and Go strings.
// Exactly one of raw, native or encoding applies.
type charset struct {
	name string

	// raw keeps decoded strings as Bytes.
	raw bool

	// native is UTF-8, handled without x/text so that invalid input
	// is rejected instead of replaced with U+FFFD.
	native bool

	encoding encoding.Encoding
}

func lookupCharset(name string) (charset, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "", "utf-8", "utf8":
		return charset{name: "utf-8", native: true}, nil
	case "none", "raw":
		return charset{name: "none", raw: true}, nil
	}

	found, err := ianaindex.IANA.Encoding(normalized)
	if err != nil || found == nil {
		found, err = htmlindex.Get(normalized)
		if err != nil {
			return charset{}, fmt.Errorf("bencode: unknown encoding %q", name)
		}
	}
	if found == unicode.UTF8 {
		return charset{name: "utf-8", native: true}, nil
	}
	return charset{name: normalized, encoding: found}, nil
}

// decode turns a wire string into a Bytes or Text value.
func (c charset) decode(payload []byte) (Value, error) {
	switch {
	case c.raw:
		return Bytes(payload), nil
	case c.native:
		if !utf8.Valid(payload) {
			return Value{}, fmt.Errorf("%s: invalid byte sequence", c.name)
		}
		return Text(string(payload)), nil
	}

	decoded, err := c.encoding.NewDecoder().Bytes(payload)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", c.name, err)
	}
	return Text(string(decoded)), nil
}

// encode returns the wire bytes of a text string.
func (c charset) encode(text string) ([]byte, error) {
	if c.raw {
		return []byte(text), nil
	}
	if c.native {
		if !utf8.ValidString(text) {
			return nil, fmt.Errorf("%s: invalid byte sequence", c.name)
		}
		return []byte(text), nil
	}
	encoded, err := c.encoding.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	return encoded, nil
}
