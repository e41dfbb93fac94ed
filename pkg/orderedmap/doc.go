// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package orderedmap provides a map implementation where the order of keys is
maintained (unlike the native Go map).

This flavor of map is what keeps yamlprep's output deterministic and stable:
mappings come out in the order they were authored.
*/
package orderedmap
