// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/bhencode/lib/compress"
)

// ReadFile returns the encoded content of the file at path. A zstd or
// LZ4 frame around the content is removed.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	data, err = compress.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// DecodeFile reads the file at path and decodes it with UTF-8 text.
func DecodeFile(path string) (Value, error) {
	return Options{}.DecodeFile(path)
}

// DecodeFile reads the file at path and decodes it using these
// options.
func (o Options) DecodeFile(path string) (Value, error) {
	data, err := ReadFile(path)
	if err != nil {
		return Value{}, err
	}
	return o.Decode(data)
}

// WriteFile encodes v, compresses it with the given algorithm and
// replaces the file at path atomically: the data is written to a
// temporary file in the same directory and renamed into place.
func (o Options) WriteFile(path string, v Value, compression compress.Tag) error {
	encoded, err := o.Encode(v)
	if err != nil {
		return err
	}
	data, err := compress.Compress(encoded, compression)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	temporary, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	temporaryPath := temporary.Name()

	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := temporary.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteFile encodes v with UTF-8 text in strict mode and writes it to
// path. See [Options.WriteFile].
func WriteFile(path string, v Value, compression compress.Tag) error {
	return Options{}.WriteFile(path, v, compression)
}
