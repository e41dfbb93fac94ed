// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package files provides primitives for loading data from file or file-like
Source's, plus the point-read Loader interface the preprocessor resolves
!include directives through.

This keeps the rest of yamlprep out of the details of how bytes are
obtained, and lets tests feed documents entirely from memory.
*/
package files
