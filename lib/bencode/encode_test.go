// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"math/big"
	"strings"
	"testing"
)

func TestEncodeFixture(t *testing.T) {
	data, err := Marshal(map[string]any{"foo": 42, "bar": "spam"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := "d3:bar4:spam3:fooi42ee"; string(data) != want {
		t.Errorf("Marshal = %q, want %q", data, want)
	}
}

func TestEncodeValues(t *testing.T) {
	huge, _ := new(big.Int).SetString("-98765432109876543210", 10)

	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"bytes", Bytes([]byte{0x00, 0x01}), "2:\x00\x01"},
		{"text", Text("spam"), "4:spam"},
		{"empty text", Text(""), "0:"},
		{"multibyte text", Text("é"), "2:\xc3\xa9"},
		{"zero", Int(0), "i0e"},
		{"negative", Int(-3), "i-3e"},
		{"max uint64", Uint(math.MaxUint64), "i18446744073709551615e"},
		{"big integer", BigInt(huge), "i-98765432109876543210e"},
		{"float", Float(2.5), "f2.5e"},
		{"integral float", Float(1), "f1.0e"},
		{"negative zero", Float(math.Copysign(0, -1)), "f-0.0e"},
		{"small float", Float(0.0001), "f0.0001e"},
		{"tiny float", Float(1.5e-5), "f1.5E-05e"},
		{"large float", Float(1e16), "f1E+16e"},
		{"positional float", Float(123.456), "f123.456e"},
		{"infinity", Float(math.Inf(1)), "finfe"},
		{"negative infinity", Float(math.Inf(-1)), "f-infe"},
		{"nan", Float(math.NaN()), "fnane"},
		{"true", Bool(true), "T"},
		{"false", Bool(false), "F"},
		{"null", Null(), "N"},
		{"empty list", List(), "le"},
		{"empty tuple", Tuple(), "te"},
		{"empty dict", Dict(), "de"},
		{"empty ordered dict", OrderedDict(), "De"},
		{"list", List(Int(1), Text("a"), Null()), "li1e1:aNe"},
		{"tuple", Tuple(Bool(true), Float(0.5)), "tTf0.5ee"},
		{"dict keys sorted", Dict(textPair("b", Int(1)), textPair("a", Int(2))), "d1:ai2e1:bi1ee"},
		{"ordered dict keys sorted", OrderedDict(textPair("z", Int(1)), textPair("a", Int(2))), "D1:ai2e1:zi1ee"},
		{"byte order not length order", Dict(textPair("b", Int(1)), textPair("aa", Int(2))), "d2:aai2e1:bi1ee"},
		{"bytes keys", Dict(Pair{Key: Bytes([]byte{0xff}), Value: Null()}, Pair{Key: Bytes([]byte{0x01}), Value: Null()}), "d1:\x01N1:\xffNe"},
		{"nested", List(Dict(textPair("k", List(Tuple())))), "ld1:klteeee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.value)
			if err != nil {
				t.Fatalf("Encode(%s): %v", tt.value, err)
			}
			if string(data) != tt.want {
				t.Errorf("Encode(%s) = %q, want %q", tt.value, data, tt.want)
			}
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	native := map[string]any{
		"zeta":  []any{1, 2.5, "three"},
		"alpha": map[string]any{"y": true, "x": nil},
		"mid":   []byte("raw"),
	}

	first, err := Marshal(native)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	for range 10 {
		again, err := Marshal(native)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("deterministic encoding violated: %q != %q", first, again)
		}
	}
}

func TestRoundtrip(t *testing.T) {
	huge, _ := new(big.Int).SetString("1000000000000000000000000", 10)

	values := []Value{
		List(),
		Dict(),
		List(Text("spam"), Int(-1), BigInt(huge), Float(3.25), Bool(true), Bool(false), Null()),
		List(Tuple(Int(1), Tuple()), List(List())),
		Dict(textPair("z", Int(1)), textPair("a", List(Dict(textPair("deep", Float(1e-300)))))),
		List(OrderedDict(textPair("a", Int(1)), textPair("b", Int(2)))),
		List(Float(0.1), Float(1e300), Float(math.Inf(-1)), Float(math.NaN())),
	}

	for _, value := range values {
		data, err := Encode(value)
		if err != nil {
			t.Fatalf("Encode(%s): %v", value, err)
		}
		decoded, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode(%q): %v", data, err)
		}
		if !decoded.Equal(value) {
			t.Errorf("roundtrip mismatch: got %s, want %s (wire %q)", decoded, value, data)
		}
	}
}

func TestRoundtripScalarsAreWrapped(t *testing.T) {
	for _, value := range []Value{Bool(true), Null(), Int(7), Text("x"), Tuple(Int(1))} {
		data, err := Encode(value)
		if err != nil {
			t.Fatalf("Encode(%s): %v", value, err)
		}
		decoded, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode(%q): %v", data, err)
		}
		if want := Tuple(value); !decoded.Equal(want) {
			t.Errorf("Decode(Encode(%s)) = %s, want %s", value, decoded, want)
		}
	}
}

func TestRoundtripUnorderedInput(t *testing.T) {
	data, err := Encode(Dict(textPair("z", Int(1)), textPair("a", Int(2))))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for key, want := range map[string]int64{"z": 1, "a": 2} {
		found, ok := decoded.LookupText(key)
		if !ok {
			t.Fatalf("key %q missing from %s", key, decoded)
		}
		if got, _ := found.AsInt64(); got != want {
			t.Errorf("%q = %d, want %d", key, got, want)
		}
	}
}

func TestEncodeStrictRejectsUnsupported(t *testing.T) {
	tests := []struct {
		name   string
		native any
	}{
		{"struct", struct{ Name string }{"x"}},
		{"channel in list", []any{1, make(chan int)}},
		{"complex in dict", map[string]any{"c": complex(1, 2)}},
		{"zero value", Value{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal(tt.native)
			if err == nil {
				t.Fatalf("Marshal(%v) should fail, got %q", tt.native, data)
			}
			if data != nil {
				t.Errorf("Marshal returned partial output %q", data)
			}
			if !errors.Is(err, ErrUnsupportedValue) {
				t.Errorf("error = %v, want ErrUnsupportedValue", err)
			}
			var encodingError *EncodingError
			if !errors.As(err, &encodingError) {
				t.Fatalf("error %v is not an *EncodingError", err)
			}
			if !strings.HasPrefix(encodingError.Repr, "invalid") {
				t.Errorf("Repr = %q, want the invalid value", encodingError.Repr)
			}
		})
	}
}

func TestEncodePermissiveSkips(t *testing.T) {
	var logOutput bytes.Buffer
	options := Options{
		Permissive: true,
		Logger:     slog.New(slog.NewTextHandler(&logOutput, nil)),
	}

	data, err := options.Marshal([]any{1, struct{}{}, 2})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := "li1ei2ee"; string(data) != want {
		t.Errorf("Marshal = %q, want %q", data, want)
	}
	if !strings.Contains(logOutput.String(), "skipping unencodable value") {
		t.Errorf("log output %q does not record the skipped value", logOutput.String())
	}
}

func TestEncodePermissiveMappingValue(t *testing.T) {
	options := Options{
		Permissive: true,
		Logger:     slog.New(slog.DiscardHandler),
	}

	// The key is written and its value skipped, so the output is
	// malformed; permissive mode only guarantees that encoding
	// continues.
	data, err := options.Marshal(map[string]any{"a": func() {}, "b": 1})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := "d1:a1:bi1ee"; string(data) != want {
		t.Errorf("Marshal = %q, want %q", data, want)
	}
}

func TestEncodeCharset(t *testing.T) {
	latin1 := Options{Encoding: "iso-8859-1"}

	data, err := latin1.Encode(List(Text("é")))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if want := "l1:\xe9e"; string(data) != want {
		t.Errorf("Encode = %q, want %q", data, want)
	}

	_, err = latin1.Encode(List(Text("日本")))
	if !errors.Is(err, ErrUnrepresentableText) {
		t.Fatalf("error = %v, want ErrUnrepresentableText", err)
	}

	// Text holding invalid UTF-8 would not decode again.
	data, err = Encode(List(Text("\xff")))
	if !errors.Is(err, ErrUnrepresentableText) {
		t.Fatalf("Encode(invalid utf-8) = %q, %v, want ErrUnrepresentableText", data, err)
	}

	raw, err := Options{Encoding: "raw"}.Encode(List(Text("\xff")))
	if err != nil {
		t.Fatalf("raw Encode: %v", err)
	}
	if want := "l1:\xffe"; string(raw) != want {
		t.Errorf("raw Encode = %q, want %q", raw, want)
	}
}

func TestEncodeUnknownEncoding(t *testing.T) {
	if _, err := (Options{Encoding: "klingon"}).Encode(Int(1)); err == nil {
		t.Fatal("Encode should reject an unknown encoding")
	}
}

func TestAppendEncode(t *testing.T) {
	prefix := []byte("prefix:")

	data, err := Options{}.AppendEncode(prefix, Int(5))
	if err != nil {
		t.Fatalf("AppendEncode: %v", err)
	}
	if want := "prefix:i5e"; string(data) != want {
		t.Errorf("AppendEncode = %q, want %q", data, want)
	}

	failed, err := Options{}.AppendEncode(prefix, List(Int(1), Value{}))
	if err == nil {
		t.Fatal("AppendEncode of an invalid value should fail")
	}
	if string(failed) != "prefix:" {
		t.Errorf("AppendEncode on failure = %q, want the untouched prefix", failed)
	}
}

func BenchmarkEncode(b *testing.B) {
	value := Dict(
		textPair("announce", Text("http://example.com/a")),
		textPair("info", Dict(
			textPair("name", Text("dataset.bin")),
			textPair("length", Int(1048576)),
			textPair("piece length", Int(262144)),
		)),
		textPair("tags", List(Text("a"), Text("b"), Text("c"))),
	)

	b.ReportAllocs()
	for b.Loop() {
		Encode(value)
	}
}
