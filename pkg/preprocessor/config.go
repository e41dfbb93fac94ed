// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor

const (
	// MaxIncludeDepth bounds how deep !include chains may nest.
	MaxIncludeDepth = 10

	// MaxVarNestingDepth bounds how many times a scalar is rescanned for
	// ${...} references, which bounds nested default expressions.
	MaxVarNestingDepth = 10
)

// Reserved top-level keys consumed by the preprocessor itself.
const (
	variablesKey = "variables"
	templatesKey = "templates"
	packagesKey  = "packages"
	settingsKey  = "preprocessor"
)

// PackageIDVar is the variable injected into every !include and !insert
// found inside a package, naming the package being merged.
const PackageIDVar = "package_id"

// hiddenKeyPrefix marks keys that are stripped from the final output.
const hiddenKeyPrefix = "."
