// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for bhencode packages.
//
// [WriteFile] writes fixture bytes into a per-test temporary directory
// and returns the path. The directory is removed when the test
// completes.
//
// [RequireErrorIs] and [RequireNoError] fail the test with a formatted
// message when an error does not match expectations.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no bhencode-internal dependencies, so the core
// package's own tests can use it.
package testutil
