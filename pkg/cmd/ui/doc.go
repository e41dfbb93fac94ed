// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

// Package ui provides the diagnostics sink used by commands and the
// preprocessor for user-facing output, warnings and debug traces.
package ui
