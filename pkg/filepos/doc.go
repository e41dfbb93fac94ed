// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package filepos provides the concept of Position: a source name (usually a
file) together with a line and column within that source.

Positions are carried by placeholders so that every diagnostic the
preprocessor emits can point at the exact spot in the authored document.

Not all Positions point within a file (e.g. trees assembled in memory). The
zero value, available via NewUnknownPosition(), represents this case.
*/
package filepos
