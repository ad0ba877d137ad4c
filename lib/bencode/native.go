// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"math/big"
	"reflect"
)

// FromNative converts a Go value to a [Value]. This is the only place
// in the package that looks at Go types; the encoder works on Kind
// alone.
//
//	nil, nil pointers            Null
//	Value, *Value                unchanged
//	bool                         Bool
//	integer kinds, big.Int       Integer
//	float32, float64             Float
//	string                       Text
//	[]byte, [N]byte              Bytes
//	other arrays                 Tuple
//	other slices                 List
//	maps                         Dict
//
// Pointers and interfaces are followed. Any other value (structs,
// channels, funcs, complex numbers) becomes a [KindInvalid] Value,
// which the encoder rejects in strict mode and skips in permissive
// mode.
func FromNative(native any) Value {
	switch typed := native.(type) {
	case nil:
		return Null()
	case Value:
		return typed
	case *Value:
		if typed == nil {
			return Null()
		}
		return *typed
	case bool:
		return Bool(typed)
	case string:
		return Text(typed)
	case []byte:
		return Bytes(typed)
	case int:
		return Int(int64(typed))
	case int64:
		return Int(typed)
	case uint64:
		return Uint(typed)
	case float64:
		return Float(typed)
	case *big.Int:
		if typed == nil {
			return Null()
		}
		return BigInt(typed)
	case big.Int:
		return BigInt(&typed)
	case []any:
		items := make([]Value, len(typed))
		for i, item := range typed {
			items[i] = FromNative(item)
		}
		return Value{kind: KindList, items: items}
	case map[string]any:
		pairs := make([]Pair, 0, len(typed))
		for key, item := range typed {
			pairs = append(pairs, Pair{Key: Text(key), Value: FromNative(item)})
		}
		return Value{kind: KindDict, pairs: pairs}
	}
	return fromReflect(reflect.ValueOf(native))
}

func fromReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return FromNative(rv.Elem().Interface())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return Text(rv.String())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(rv.Bytes())
		}
		return Value{kind: KindList, items: reflectItems(rv)}
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			data := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(data), rv)
			return Value{kind: KindBytes, bytes: data}
		}
		return Value{kind: KindTuple, items: reflectItems(rv)}
	case reflect.Map:
		pairs := make([]Pair, 0, rv.Len())
		iterator := rv.MapRange()
		for iterator.Next() {
			pairs = append(pairs, Pair{
				Key:   FromNative(iterator.Key().Interface()),
				Value: FromNative(iterator.Value().Interface()),
			})
		}
		return Dict(pairs...)
	}
	return invalid(rv.Interface())
}

func reflectItems(rv reflect.Value) []Value {
	items := make([]Value, rv.Len())
	for i := range items {
		items[i] = FromNative(rv.Index(i).Interface())
	}
	return items
}
