// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

// Package preprocessor resolves the preprocessing directives of a YAML
// configuration document: ${...} variable references with optional
// defaults, !include and !insert composition, !if conditionals, YAML merge
// keys, package sections and the !remove/!replace/!nosub overrides.
//
// Parsing turns directives into placeholders; resolution passes walk the
// tree and replace them. The first pass settles interpolation, conditionals
// and inclusion, merge keys are folded next, package sections are merged
// into the root, and a final pass applies !replace and !remove so that
// those directives can shield keys from package merging.
package preprocessor
