// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for bhencode callers.
//
// Configuration is loaded from a single file specified by either the
// BHENCODE_CONFIG environment variable (via [Load]) or an explicit path
// (via [LoadFile]). There are no fallbacks and no automatic file search.
//
// The file is YAML. Files ending in .json or .jsonc are read as JSON
// with comments and trailing commas allowed. Fields absent from the
// file keep their [Default] values.
//
// Key exports:
//
//   - [Config] -- charset, strictness, nesting limit, file compression
//   - [Default] -- UTF-8, strict, default depth, no compression
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Options] -- the bencode.Options a Config describes
package config
