// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"bytes"
	"fmt"
	"math"
	"math/big"
	"slices"
	"strconv"
)

// Kind identifies the variant held by a [Value]. Each kind has exactly
// one wire tag, except [KindBytes] and [KindText] which share the
// length-prefixed form and differ only in how the payload is
// interpreted.
type Kind uint8

const (
	// KindInvalid is the zero Kind. A Value of this kind carries a
	// native value that [FromNative] could not convert; the encoder
	// rejects it in strict mode and skips it otherwise.
	KindInvalid Kind = iota
	KindBytes
	KindText
	KindInteger
	KindFloat
	KindBool
	KindNull
	KindList
	KindTuple
	KindDict
	KindOrderedDict
)

// String returns the lower-case name of the kind.
func (kind Kind) String() string {
	switch kind {
	case KindInvalid:
		return "invalid"
	case KindBytes:
		return "bytes"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	case KindDict:
		return "dict"
	case KindOrderedDict:
		return "ordered-dict"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(kind))
	}
}

// Value is one node of a value tree. Values are immutable: the
// constructors copy their arguments and the accessors return copies,
// so a Value can be shared freely between goroutines.
//
// The zero Value has [KindInvalid].
type Value struct {
	kind    Kind
	bytes   []byte
	text    string
	integer *big.Int
	float   float64
	boolean bool
	items   []Value
	pairs   []Pair

	// native is the unconvertible input behind a KindInvalid value.
	native any
}

// Pair is one key/value entry of a mapping.
type Pair struct {
	Key   Value
	Value Value
}

// Bytes returns an opaque byte string value.
func Bytes(data []byte) Value {
	return Value{kind: KindBytes, bytes: bytes.Clone(nonNil(data))}
}

// Text returns a text string value. The text is converted to the
// configured charset when encoded.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Int returns an integer value.
func Int(i int64) Value {
	return Value{kind: KindInteger, integer: big.NewInt(i)}
}

// Uint returns an integer value from an unsigned integer.
func Uint(u uint64) Value {
	return Value{kind: KindInteger, integer: new(big.Int).SetUint64(u)}
}

// BigInt returns an arbitrary-precision integer value. A nil pointer
// is treated as zero.
func BigInt(i *big.Int) Value {
	integer := new(big.Int)
	if i != nil {
		integer.Set(i)
	}
	return Value{kind: KindInteger, integer: integer}
}

// Float returns a floating-point value.
func Float(f float64) Value {
	return Value{kind: KindFloat, float: f}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// List returns a resizable ordered sequence.
func List(items ...Value) Value {
	return Value{kind: KindList, items: cloneItems(items)}
}

// Tuple returns a fixed-arity ordered sequence. A tuple holds the same
// payload as a list but is tagged distinctly on the wire.
func Tuple(items ...Value) Value {
	return Value{kind: KindTuple, items: cloneItems(items)}
}

// Dict returns a mapping with no ordering guarantee. When a key
// repeats, the last value wins and keeps the position of the first
// occurrence.
func Dict(pairs ...Pair) Value {
	return Value{kind: KindDict, pairs: mergePairs(pairs)}
}

// OrderedDict returns a mapping that preserves the order in which its
// pairs were given. Duplicate keys are merged as in [Dict].
func OrderedDict(pairs ...Pair) Value {
	return Value{kind: KindOrderedDict, pairs: mergePairs(pairs)}
}

func invalid(native any) Value {
	return Value{kind: KindInvalid, native: native}
}

// Kind returns the variant of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsValid reports whether v holds an encodable variant.
func (v Value) IsValid() bool {
	return v.kind != KindInvalid
}

// AsBytes returns a copy of the payload of a [KindBytes] value, or the
// UTF-8 bytes of a [KindText] value.
func (v Value) AsBytes() ([]byte, bool) {
	switch v.kind {
	case KindBytes:
		return bytes.Clone(v.bytes), true
	case KindText:
		return []byte(v.text), true
	default:
		return nil, false
	}
}

// AsText returns the string of a [KindText] value.
func (v Value) AsText() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// AsBigInt returns a copy of the integer of a [KindInteger] value.
func (v Value) AsBigInt() (*big.Int, bool) {
	if v.kind != KindInteger {
		return nil, false
	}
	return new(big.Int).Set(v.integer), true
}

// AsInt64 returns the integer of a [KindInteger] value when it fits in
// an int64.
func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindInteger || !v.integer.IsInt64() {
		return 0, false
	}
	return v.integer.Int64(), true
}

// AsFloat returns the number of a [KindFloat] value.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.float, true
}

// AsBool returns the boolean of a [KindBool] value.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.boolean, true
}

// Len returns the number of bytes in a string value, elements in a
// sequence or pairs in a mapping. Scalars have length zero.
func (v Value) Len() int {
	switch v.kind {
	case KindBytes:
		return len(v.bytes)
	case KindText:
		return len(v.text)
	case KindList, KindTuple:
		return len(v.items)
	case KindDict, KindOrderedDict:
		return len(v.pairs)
	default:
		return 0
	}
}

// Index returns element i of a list or tuple. It panics if v is not a
// sequence or i is out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindList && v.kind != KindTuple {
		panic("bencode: Index of " + v.kind.String() + " value")
	}
	return v.items[i]
}

// Items returns the elements of a list or tuple, or nil for any other
// kind.
func (v Value) Items() []Value {
	if v.kind != KindList && v.kind != KindTuple {
		return nil
	}
	return cloneItems(v.items)
}

// Pairs returns the entries of a mapping in their stored order, or nil
// for any other kind.
func (v Value) Pairs() []Pair {
	if v.kind != KindDict && v.kind != KindOrderedDict {
		return nil
	}
	pairs := make([]Pair, len(v.pairs))
	copy(pairs, v.pairs)
	return pairs
}

// Lookup returns the value stored under key in a mapping.
func (v Value) Lookup(key Value) (Value, bool) {
	if v.kind != KindDict && v.kind != KindOrderedDict {
		return Value{}, false
	}
	id := identity(key)
	for _, pair := range v.pairs {
		if identity(pair.Key) == id {
			return pair.Value, true
		}
	}
	return Value{}, false
}

// LookupText is Lookup with a text key.
func (v Value) LookupText(key string) (Value, bool) {
	return v.Lookup(Text(key))
}

// Equal reports whether v and other hold the same tree. Bytes and Text
// are different kinds even when their payloads match, as are List and
// Tuple, and Dict and OrderedDict. Dict equality ignores pair order;
// OrderedDict equality does not. NaN floats compare equal to each
// other.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInvalid:
		return false
	case KindBytes:
		return bytes.Equal(v.bytes, other.bytes)
	case KindText:
		return v.text == other.text
	case KindInteger:
		return v.integer.Cmp(other.integer) == 0
	case KindFloat:
		if math.IsNaN(v.float) && math.IsNaN(other.float) {
			return true
		}
		return v.float == other.float
	case KindBool:
		return v.boolean == other.boolean
	case KindNull:
		return true
	case KindList, KindTuple:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindOrderedDict:
		if len(v.pairs) != len(other.pairs) {
			return false
		}
		for i := range v.pairs {
			if !v.pairs[i].Key.Equal(other.pairs[i].Key) || !v.pairs[i].Value.Equal(other.pairs[i].Value) {
				return false
			}
		}
		return true
	case KindDict:
		if len(v.pairs) != len(other.pairs) {
			return false
		}
		for _, pair := range v.pairs {
			found, ok := other.Lookup(pair.Key)
			if !ok || !pair.Value.Equal(found) {
				return false
			}
		}
		return true
	}
	return false
}

func nonNil(data []byte) []byte {
	if data == nil {
		return []byte{}
	}
	return data
}

func cloneItems(items []Value) []Value {
	cloned := make([]Value, len(items))
	copy(cloned, items)
	return cloned
}

func mergePairs(pairs []Pair) []Pair {
	merged := make([]Pair, 0, len(pairs))
	positions := make(map[string]int, len(pairs))
	for _, pair := range pairs {
		id := identity(pair.Key)
		if position, ok := positions[id]; ok {
			merged[position].Value = pair.Value
			continue
		}
		positions[id] = len(merged)
		merged = append(merged, pair)
	}
	return merged
}

// identity returns a string that is equal for two keys exactly when
// the keys are Equal. It is the UTF-8 wire form prefixed by the kind,
// with mapping entries in sorted order.
func identity(v Value) string {
	return string(appendIdentity(nil, v))
}

func appendIdentity(dst []byte, v Value) []byte {
	dst = append(dst, byte(v.kind))
	switch v.kind {
	case KindInvalid:
		return fmt.Appendf(dst, "%T:%v", v.native, v.native)
	case KindBytes:
		dst = strconv.AppendInt(dst, int64(len(v.bytes)), 10)
		dst = append(dst, ':')
		return append(dst, v.bytes...)
	case KindText:
		dst = strconv.AppendInt(dst, int64(len(v.text)), 10)
		dst = append(dst, ':')
		return append(dst, v.text...)
	case KindInteger:
		return v.integer.Append(dst, 10)
	case KindFloat:
		switch {
		case math.IsNaN(v.float):
			return append(dst, "nan"...)
		case v.float == 0:
			return append(dst, '0')
		}
		return strconv.AppendFloat(dst, v.float, 'g', -1, 64)
	case KindBool:
		if v.boolean {
			return append(dst, tagTrue)
		}
		return append(dst, tagFalse)
	case KindNull:
		return dst
	case KindList, KindTuple, KindOrderedDict:
		for _, item := range v.items {
			dst = appendIdentity(dst, item)
		}
		for _, pair := range v.pairs {
			dst = appendIdentity(dst, pair.Key)
			dst = appendIdentity(dst, pair.Value)
		}
		return append(dst, tagEnd)
	case KindDict:
		entries := make([]string, len(v.pairs))
		for i, pair := range v.pairs {
			entries[i] = string(appendIdentity(appendIdentity(nil, pair.Key), pair.Value))
		}
		slices.Sort(entries)
		for _, entry := range entries {
			dst = append(dst, entry...)
		}
		return append(dst, tagEnd)
	}
	return dst
}
