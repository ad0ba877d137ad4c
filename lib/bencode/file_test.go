// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/bhencode/lib/compress"
	"github.com/bureau-foundation/bhencode/lib/testutil"
)

func TestDecodeFile(t *testing.T) {
	path := testutil.WriteFile(t, "fixture.bhen", []byte("d3:bar4:spam3:fooi42ee"))

	got, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	want := Dict(textPair("bar", Text("spam")), textPair("foo", Int(42)))
	if !got.Equal(want) {
		t.Errorf("DecodeFile = %s, want %s", got, want)
	}
}

func TestWriteFileRoundtrip(t *testing.T) {
	value := Dict(
		textPair("items", List(Int(1), Float(2.5), Text("three"), Null())),
		textPair("ok", Bool(true)),
	)

	for _, compression := range []compress.Tag{compress.None, compress.LZ4, compress.Zstd} {
		t.Run(compression.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "value.bhen")
			if err := WriteFile(path, value, compression); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			stored, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("os.ReadFile: %v", err)
			}
			if got := compress.Detect(stored); got != compression {
				t.Errorf("stored file compression = %s, want %s", got, compression)
			}

			encoded, err := Encode(value)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			plain, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if !bytes.Equal(plain, encoded) {
				t.Errorf("ReadFile = %q, want %q", plain, encoded)
			}

			got, err := DecodeFile(path)
			if err != nil {
				t.Fatalf("DecodeFile: %v", err)
			}
			if !got.Equal(value) {
				t.Errorf("DecodeFile = %s, want %s", got, value)
			}
		})
	}
}

func TestWriteFileStrictFailureLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "value.bhen")
	if err := WriteFile(path, List(Value{}), compress.None); err == nil {
		t.Fatal("WriteFile of an invalid value should fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file should not exist after a failed write: %v", err)
	}
}

func TestDecodeFileWithOptions(t *testing.T) {
	path := testutil.WriteFile(t, "latin1.bhen", []byte("l1:\xe9e"))

	got, err := Options{Encoding: "iso-8859-1"}.DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if want := List(Text("é")); !got.Equal(want) {
		t.Errorf("DecodeFile = %s, want %s", got, want)
	}
}

func TestDecodeFileMissing(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "does-not-exist"))
	testutil.RequireErrorIs(t, err, os.ErrNotExist, "decoding a nonexistent file")
}
