// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"bytes"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Encode writes v with UTF-8 text in strict mode.
func Encode(v Value) ([]byte, error) {
	return Options{}.Encode(v)
}

// Marshal converts a native Go value with [FromNative] and encodes it
// with UTF-8 text in strict mode.
func Marshal(native any) ([]byte, error) {
	return Options{}.Marshal(native)
}

// Encode writes v using these options. In strict mode a value that
// cannot be encoded fails the whole call and no bytes are returned.
func (o Options) Encode(v Value) ([]byte, error) {
	return o.AppendEncode(nil, v)
}

// Marshal converts native with [FromNative] and encodes the result.
func (o Options) Marshal(native any) ([]byte, error) {
	return o.Encode(FromNative(native))
}

// AppendEncode appends the encoding of v to dst. On failure it returns
// dst with its original length alongside the error.
func (o Options) AppendEncode(dst []byte, v Value) ([]byte, error) {
	resolved, err := o.resolve()
	if err != nil {
		return dst, err
	}

	encoder := encoder{buffer: dst, options: resolved}
	if err := encoder.encode(v); err != nil {
		return dst[:len(dst):len(dst)], err
	}
	return encoder.buffer, nil
}

// encoder owns the output buffer of one encode call.
type encoder struct {
	buffer  []byte
	options resolved
}

func (e *encoder) encode(v Value) error {
	switch v.kind {
	case KindBytes:
		e.appendString(v.bytes)
	case KindText:
		encoded, err := e.options.charset.encode(v.text)
		if err != nil {
			return e.unencodable(v, ErrUnrepresentableText, err)
		}
		e.appendString(encoded)
	case KindInteger:
		e.buffer = append(e.buffer, tagInteger)
		e.buffer = v.integer.Append(e.buffer, 10)
		e.buffer = append(e.buffer, tagEnd)
	case KindFloat:
		e.buffer = append(e.buffer, tagFloat)
		e.buffer = append(e.buffer, formatFloat(v.float)...)
		e.buffer = append(e.buffer, tagEnd)
	case KindBool:
		if v.boolean {
			e.buffer = append(e.buffer, tagTrue)
		} else {
			e.buffer = append(e.buffer, tagFalse)
		}
	case KindNull:
		e.buffer = append(e.buffer, tagNull)
	case KindList:
		return e.encodeSequence(tagList, v.items)
	case KindTuple:
		return e.encodeSequence(tagTuple, v.items)
	case KindDict:
		return e.encodeMapping(tagDict, v.pairs)
	case KindOrderedDict:
		return e.encodeMapping(tagOrderedDict, v.pairs)
	default:
		return e.unencodable(v, ErrUnsupportedValue, nil)
	}
	return nil
}

func (e *encoder) appendString(payload []byte) {
	e.buffer = strconv.AppendInt(e.buffer, int64(len(payload)), 10)
	e.buffer = append(e.buffer, lengthSep)
	e.buffer = append(e.buffer, payload...)
}

func (e *encoder) encodeSequence(tag byte, items []Value) error {
	e.buffer = append(e.buffer, tag)
	for _, item := range items {
		if err := e.encode(item); err != nil {
			return err
		}
	}
	e.buffer = append(e.buffer, tagEnd)
	return nil
}

// encodeMapping writes pairs sorted by key. Both mapping kinds are
// sorted; the 'D' tag only tells the decoder to keep the order it
// reads.
func (e *encoder) encodeMapping(tag byte, pairs []Pair) error {
	type sortablePair struct {
		sortKey []byte
		pair    Pair
	}
	sorted := make([]sortablePair, len(pairs))
	for i, pair := range pairs {
		sorted[i] = sortablePair{sortKey: e.keyBytes(pair.Key), pair: pair}
	}
	slices.SortStableFunc(sorted, func(a, b sortablePair) int {
		if order := bytes.Compare(a.sortKey, b.sortKey); order != 0 {
			return order
		}
		return int(a.pair.Key.kind) - int(b.pair.Key.kind)
	})

	e.buffer = append(e.buffer, tag)
	for _, entry := range sorted {
		if err := e.encode(entry.pair.Key); err != nil {
			return err
		}
		if err := e.encode(entry.pair.Value); err != nil {
			return err
		}
	}
	e.buffer = append(e.buffer, tagEnd)
	return nil
}

// keyBytes returns the bytes a mapping key sorts by: the payload for
// string keys, the kind-prefixed wire form for anything else.
func (e *encoder) keyBytes(key Value) []byte {
	switch key.kind {
	case KindBytes:
		return key.bytes
	case KindText:
		if encoded, err := e.options.charset.encode(key.text); err == nil {
			return encoded
		}
		return []byte(key.text)
	default:
		return []byte(identity(key))
	}
}

// unencodable fails in strict mode and logs and skips otherwise.
func (e *encoder) unencodable(v Value, kind error, cause error) error {
	if e.options.strict {
		return &EncodingError{Kind: kind, Repr: v.String(), Err: cause}
	}
	attributes := []any{"value", v.String(), "reason", kind.Error()}
	if cause != nil {
		attributes = append(attributes, "error", cause)
	}
	e.options.logger.Warn("skipping unencodable value", attributes...)
	return nil
}

// formatFloat renders f as the shortest decimal that parses back to
// the same float64. Values with a decimal exponent in [-4, 16) use
// positional notation with at least one fractional digit; others use
// scientific notation with an upper-case 'E', since a lower-case 'e'
// would end the float token early. Non-finite values are written inf,
// -inf and nan.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	scientific := strconv.FormatFloat(f, 'E', -1, 64)
	_, exponentText, _ := strings.Cut(scientific, "E")
	exponent, _ := strconv.Atoi(exponentText)
	if exponent < -4 || exponent >= 16 {
		return scientific
	}

	positional := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(positional, ".") {
		positional += ".0"
	}
	return positional
}
