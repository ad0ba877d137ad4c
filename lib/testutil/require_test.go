// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

// recorder captures Fatalf calls instead of stopping the test.
type recorder struct {
	failed  bool
	message string
}

func (r *recorder) Helper() {}

func (r *recorder) Fatalf(format string, args ...any) {
	r.failed = true
	r.message = fmt.Sprintf(format, args...)
}

func TestRequireErrorIs(t *testing.T) {
	sentinel := errors.New("sentinel")

	var passing recorder
	RequireErrorIs(&passing, fmt.Errorf("wrapped: %w", sentinel), sentinel)
	if passing.failed {
		t.Errorf("wrapped sentinel should match: %s", passing.message)
	}

	var mismatched recorder
	RequireErrorIs(&mismatched, errors.New("other"), sentinel, "decoding %s", "input")
	if !mismatched.failed || !strings.HasPrefix(mismatched.message, "decoding input:") {
		t.Errorf("mismatch should fail with the formatted message, got %q", mismatched.message)
	}

	var missing recorder
	RequireErrorIs(&missing, nil, sentinel)
	if !missing.failed {
		t.Error("nil error should fail")
	}
}

func TestRequireNoError(t *testing.T) {
	var passing recorder
	RequireNoError(&passing, nil)
	if passing.failed {
		t.Errorf("nil error should pass: %s", passing.message)
	}

	var failing recorder
	RequireNoError(&failing, errors.New("boom"), "step")
	if !failing.failed || !strings.Contains(failing.message, "boom") {
		t.Errorf("non-nil error should fail, got %q", failing.message)
	}
}

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, "fixture.bhen", []byte("le"))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "le" {
		t.Errorf("fixture content = %q, want %q", data, "le")
	}
}
