// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"bytes"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// String renders v for logs and error messages:
//
//	{"bar": "spam", "foo": 42}   dict
//	ordered{"a": 1}              ordered dict
//	[1, 2.5, null]               list
//	(true, false)                tuple
//	b"\x00\xff"                  bytes
//
// The rendering is not a wire format and is not parsed anywhere.
func (v Value) String() string {
	var builder strings.Builder
	v.writeTo(&builder)
	return builder.String()
}

func (v Value) writeTo(builder *strings.Builder) {
	switch v.kind {
	case KindInvalid:
		if v.native == nil {
			builder.WriteString("invalid")
			return
		}
		fmt.Fprintf(builder, "invalid(%T %v)", v.native, v.native)
	case KindBytes:
		builder.WriteByte('b')
		builder.WriteString(strconv.Quote(string(v.bytes)))
	case KindText:
		builder.WriteString(strconv.Quote(v.text))
	case KindInteger:
		builder.WriteString(v.integer.String())
	case KindFloat:
		builder.WriteString(formatFloat(v.float))
	case KindBool:
		builder.WriteString(strconv.FormatBool(v.boolean))
	case KindNull:
		builder.WriteString("null")
	case KindList:
		writeItems(builder, "[", v.items, "]")
	case KindTuple:
		writeItems(builder, "(", v.items, ")")
	case KindDict:
		writePairs(builder, "{", v.pairs)
	case KindOrderedDict:
		writePairs(builder, "ordered{", v.pairs)
	}
}

func writeItems(builder *strings.Builder, opening string, items []Value, closing string) {
	builder.WriteString(opening)
	for i, item := range items {
		if i > 0 {
			builder.WriteString(", ")
		}
		item.writeTo(builder)
	}
	builder.WriteString(closing)
}

func writePairs(builder *strings.Builder, opening string, pairs []Pair) {
	builder.WriteString(opening)
	for i, pair := range pairs {
		if i > 0 {
			builder.WriteString(", ")
		}
		pair.Key.writeTo(builder)
		builder.WriteString(": ")
		pair.Value.writeTo(builder)
	}
	builder.WriteByte('}')
}

// Native converts v to plain Go values: []byte, string, int64 (or
// *big.Int when the integer does not fit), float64, bool, nil, []any
// for lists and tuples, and map[string]any for both mapping kinds.
// Mapping keys that are not strings are rendered with String. The
// pair order of an ordered dict is lost; use [Value.Pairs] to keep it.
func (v Value) Native() any {
	switch v.kind {
	case KindInvalid:
		return v.native
	case KindBytes:
		return bytes.Clone(v.bytes)
	case KindText:
		return v.text
	case KindInteger:
		if v.integer.IsInt64() {
			return v.integer.Int64()
		}
		return new(big.Int).Set(v.integer)
	case KindFloat:
		return v.float
	case KindBool:
		return v.boolean
	case KindNull:
		return nil
	case KindList, KindTuple:
		items := make([]any, len(v.items))
		for i, item := range v.items {
			items[i] = item.Native()
		}
		return items
	case KindDict, KindOrderedDict:
		entries := make(map[string]any, len(v.pairs))
		for _, pair := range v.pairs {
			entries[nativeKey(pair.Key)] = pair.Value.Native()
		}
		return entries
	}
	return nil
}

func nativeKey(key Value) string {
	switch key.kind {
	case KindText:
		return key.text
	case KindBytes:
		return string(key.bytes)
	default:
		return key.String()
	}
}
