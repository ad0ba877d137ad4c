// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"errors"
	"fmt"
	"strconv"
)

// Decoding failure kinds. Every error returned by the decoder is a
// [*DecodingError] that matches exactly one of these with errors.Is.
var (
	ErrEndOfInput        = errors.New("unexpected end of input")
	ErrInvalidTag        = errors.New("invalid tag byte")
	ErrMissingTerminator = errors.New("missing terminator")
	ErrInvalidLength     = errors.New("invalid string length")
	ErrInvalidInteger    = errors.New("invalid integer")
	ErrInvalidFloat      = errors.New("invalid float")
	ErrInvalidText       = errors.New("string is not valid in the configured charset")
	ErrDanglingKey       = errors.New("mapping key without a value")
	ErrTrailingData      = errors.New("trailing data after top-level value")
	ErrTooDeep           = errors.New("nesting exceeds maximum depth")
)

// Encoding failure kinds, matched with errors.Is against an
// [*EncodingError].
var (
	ErrUnsupportedValue    = errors.New("unsupported value")
	ErrUnrepresentableText = errors.New("text cannot be represented in the configured charset")
)

// DecodingError reports malformed input. Offset is the cursor position
// at the point of failure.
type DecodingError struct {
	// Kind is one of the Err* decoding sentinels.
	Kind error

	// Offset is the byte offset into the input.
	Offset int

	// Tag is the offending byte for ErrInvalidTag and
	// ErrMissingTerminator (the terminator that was not found).
	Tag byte

	// Err is an underlying cause such as a strconv error, or nil.
	Err error
}

func (e *DecodingError) Error() string {
	message := "bencode: decoding: " + e.Kind.Error()
	switch e.Kind {
	case ErrInvalidTag:
		message += fmt.Sprintf(" %s", strconv.QuoteRune(rune(e.Tag)))
	case ErrMissingTerminator:
		message += fmt.Sprintf(" %q", e.Tag)
	}
	message += fmt.Sprintf(" at offset %d", e.Offset)
	if e.Err != nil {
		message += ": " + e.Err.Error()
	}
	return message
}

func (e *DecodingError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// EncodingError reports a value the encoder could not write in strict
// mode.
type EncodingError struct {
	// Kind is one of the Err* encoding sentinels.
	Kind error

	// Repr is a printable representation of the offending value.
	Repr string

	// Err is an underlying cause, or nil.
	Err error
}

func (e *EncodingError) Error() string {
	message := fmt.Sprintf("bencode: encoding: %v: %s", e.Kind, e.Repr)
	if e.Err != nil {
		message += ": " + e.Err.Error()
	}
	return message
}

func (e *EncodingError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
