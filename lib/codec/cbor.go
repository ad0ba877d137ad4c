// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/bureau-foundation/bhencode/lib/bencode"
)

// CBOR tag numbers for the variants without a native CBOR form. These
// values are part of the transcoded format; changing them breaks every
// document already written.
const (
	TupleTag       uint64 = 27001
	OrderedDictTag uint64 = 27002
	PairsTag       uint64 = 27003
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items.
var encMode cbor.EncMode

// decMode is the CBOR decoder used by FromCBOR.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Only text-keyed dicts become CBOR maps, so any-typed maps
		// decode as map[string]any. A map with other keys cannot
		// have come from ToCBOR and fails to decode.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// ToCBOR encodes v as deterministic CBOR. It fails for invalid values.
func ToCBOR(v bencode.Value) ([]byte, error) {
	item, err := toItem(v)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(item)
}

// FromCBOR decodes CBOR produced by [ToCBOR]. Other CBOR is accepted
// as long as it uses only the item types ToCBOR writes.
func FromCBOR(data []byte) (bencode.Value, error) {
	var item any
	if err := decMode.Unmarshal(data, &item); err != nil {
		return bencode.Value{}, fmt.Errorf("codec: decoding CBOR: %w", err)
	}
	return fromItem(item)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// DiagnoseFirst returns the CBOR diagnostic notation for the first
// data item in data, along with the remaining unconsumed bytes. Use
// this to process CBOR sequences one item at a time.
func DiagnoseFirst(data []byte) (string, []byte, error) {
	return cbor.DiagnoseFirst(data)
}

func toItem(v bencode.Value) (any, error) {
	switch v.Kind() {
	case bencode.KindBytes:
		data, _ := v.AsBytes()
		return data, nil
	case bencode.KindText:
		text, _ := v.AsText()
		return text, nil
	case bencode.KindInteger:
		integer, _ := v.AsBigInt()
		return integer, nil
	case bencode.KindFloat:
		float, _ := v.AsFloat()
		return float, nil
	case bencode.KindBool:
		boolean, _ := v.AsBool()
		return boolean, nil
	case bencode.KindNull:
		return nil, nil
	case bencode.KindList:
		return toItems(v.Items())
	case bencode.KindTuple:
		items, err := toItems(v.Items())
		if err != nil {
			return nil, err
		}
		return cbor.Tag{Number: TupleTag, Content: items}, nil
	case bencode.KindDict:
		if entries, ok, err := toTextMap(v.Pairs()); err != nil || ok {
			return entries, err
		}
		flat, err := toFlatPairs(v.Pairs())
		if err != nil {
			return nil, err
		}
		return cbor.Tag{Number: PairsTag, Content: flat}, nil
	case bencode.KindOrderedDict:
		flat, err := toFlatPairs(v.Pairs())
		if err != nil {
			return nil, err
		}
		return cbor.Tag{Number: OrderedDictTag, Content: flat}, nil
	default:
		return nil, fmt.Errorf("codec: cannot transcode %s value %s", v.Kind(), v)
	}
}

func toItems(values []bencode.Value) ([]any, error) {
	items := make([]any, len(values))
	for i, value := range values {
		item, err := toItem(value)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

// toTextMap returns the pairs as a map when every key is text. ok is
// false when some key is not.
func toTextMap(pairs []bencode.Pair) (map[string]any, bool, error) {
	entries := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, isText := pair.Key.AsText()
		if !isText {
			return nil, false, nil
		}
		item, err := toItem(pair.Value)
		if err != nil {
			return nil, false, err
		}
		entries[key] = item
	}
	return entries, true, nil
}

func toFlatPairs(pairs []bencode.Pair) ([]any, error) {
	flat := make([]any, 0, 2*len(pairs))
	for _, pair := range pairs {
		key, err := toItem(pair.Key)
		if err != nil {
			return nil, err
		}
		value, err := toItem(pair.Value)
		if err != nil {
			return nil, err
		}
		flat = append(flat, key, value)
	}
	return flat, nil
}

func fromItem(item any) (bencode.Value, error) {
	switch typed := item.(type) {
	case nil:
		return bencode.Null(), nil
	case bool:
		return bencode.Bool(typed), nil
	case uint64:
		return bencode.Uint(typed), nil
	case int64:
		return bencode.Int(typed), nil
	case big.Int:
		return bencode.BigInt(&typed), nil
	case *big.Int:
		return bencode.BigInt(typed), nil
	case float64:
		return bencode.Float(typed), nil
	case []byte:
		return bencode.Bytes(typed), nil
	case string:
		return bencode.Text(typed), nil
	case []any:
		items, err := fromItems(typed)
		if err != nil {
			return bencode.Value{}, err
		}
		return bencode.List(items...), nil
	case map[string]any:
		pairs := make([]bencode.Pair, 0, len(typed))
		for key, entry := range typed {
			value, err := fromItem(entry)
			if err != nil {
				return bencode.Value{}, err
			}
			pairs = append(pairs, bencode.Pair{Key: bencode.Text(key), Value: value})
		}
		return bencode.Dict(pairs...), nil
	case cbor.Tag:
		return fromTag(typed)
	default:
		return bencode.Value{}, fmt.Errorf("codec: unsupported CBOR item of type %T", item)
	}
}

func fromTag(tag cbor.Tag) (bencode.Value, error) {
	content, ok := tag.Content.([]any)
	if !ok {
		return bencode.Value{}, fmt.Errorf("codec: tag %d content is %T, want an array", tag.Number, tag.Content)
	}

	switch tag.Number {
	case TupleTag:
		items, err := fromItems(content)
		if err != nil {
			return bencode.Value{}, err
		}
		return bencode.Tuple(items...), nil
	case OrderedDictTag, PairsTag:
		if len(content)%2 != 0 {
			return bencode.Value{}, fmt.Errorf("codec: tag %d holds %d items, want key/value pairs", tag.Number, len(content))
		}
		items, err := fromItems(content)
		if err != nil {
			return bencode.Value{}, err
		}
		pairs := make([]bencode.Pair, 0, len(items)/2)
		for i := 0; i < len(items); i += 2 {
			pairs = append(pairs, bencode.Pair{Key: items[i], Value: items[i+1]})
		}
		if tag.Number == OrderedDictTag {
			return bencode.OrderedDict(pairs...), nil
		}
		return bencode.Dict(pairs...), nil
	default:
		return bencode.Value{}, fmt.Errorf("codec: unsupported CBOR tag %d", tag.Number)
	}
}

func fromItems(items []any) ([]bencode.Value, error) {
	values := make([]bencode.Value, len(items))
	for i, item := range items {
		value, err := fromItem(item)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return values, nil
}
