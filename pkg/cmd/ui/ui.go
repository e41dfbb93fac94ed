// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"io"
)

// UI is the diagnostics sink threaded through the preprocessor. Soft
// failures surface via Warnf; Debugf traces resolution steps.
type UI interface {
	Printf(string, ...interface{})
	Debugf(string, ...interface{})
	Warnf(str string, args ...interface{})
	DebugWriter() io.Writer
}
