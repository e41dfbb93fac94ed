// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor

import (
	"strings"

	"github.com/yamlprep/yamlprep/pkg/orderedmap"

	cmdui "github.com/yamlprep/yamlprep/pkg/cmd/ui"
)

// mergePackages folds each entry of the packages section into the root in
// order. The root always wins over packages, and earlier packages win over
// later ones since they reach the root first. Every !include and !insert
// inside a package gets the package name injected as the package_id
// variable before resolution.
func (c *fileContext) mergePackages(root *orderedmap.Map, packages interface{}) error {
	if ph, ok := packages.(Placeholder); ok {
		resolved, err := c.proc.Process(ph, resolveKinds)
		if err != nil {
			return err
		}
		packages = resolved
	}

	pkgs, ok := packages.(*orderedmap.Map)
	if !ok {
		c.ui().Warnf("Ignoring '%s' section: expected a mapping\n", packagesKey)
		return nil
	}

	for _, item := range pkgs.Items() {
		pkgID := stringifyVar(item.Key)

		injected := injectPackageID(item.Value, pkgID)
		resolved, err := c.proc.Process(injected, resolveKinds)
		if err != nil {
			return err
		}
		resolved = ResolveMergeKeys(resolved, c.ui())
		resolved = stripEmptyValues(resolved)

		pkgMap, ok := resolved.(*orderedmap.Map)
		if !ok {
			if resolved != nil {
				c.ui().Warnf("Ignoring package '%s': expected a mapping\n", pkgID)
			}
			continue
		}

		mergePackage(root, pkgMap, c.ui())
	}
	return nil
}

func mergePackage(main, pkg *orderedmap.Map, u cmdui.UI) {
	for _, item := range pkg.Items() {
		mainVal, found := main.Get(item.Key)
		if !found {
			main.Set(item.Key, item.Value)
			continue
		}

		switch typedMain := mainVal.(type) {
		case *ReplacePlaceholder, *SubstitutionPlaceholder:
			// pending directive on the main side keeps priority

		case *orderedmap.Map:
			if pkgMap, ok := item.Value.(*orderedmap.Map); ok {
				mergePackage(typedMain, pkgMap, u)
			} else {
				u.Warnf("Cannot merge key '%v': mapping vs %T, keeping existing value\n", item.Key, item.Value)
			}

		case []interface{}:
			if pkgList, ok := item.Value.([]interface{}); ok {
				merged := append(append([]interface{}{}, pkgList...), typedMain...)
				main.Set(item.Key, merged)
			} else {
				u.Warnf("Cannot merge key '%v': sequence vs %T, keeping existing value\n", item.Key, item.Value)
			}

		default:
			switch item.Value.(type) {
			case *orderedmap.Map, []interface{}:
				u.Warnf("Cannot merge key '%v': %T vs %T, keeping existing value\n", item.Key, mainVal, item.Value)
			default:
				// scalar on the main side wins silently
			}
		}
	}
}

// injectPackageID rebuilds include and insert placeholders with the
// package name as an injected variable, descending through containers and
// placeholder arguments. Explicitly passed vars still win at resolution.
func injectPackageID(data interface{}, pkgID string) interface{} {
	vars := orderedmap.NewMap()
	vars.Set(PackageIDVar, pkgID)

	var inject func(data interface{}) interface{}
	inject = func(data interface{}) interface{} {
		switch typed := data.(type) {
		case *IncludePlaceholder:
			p := typed.withInjectedVars(vars)
			p.args = inject(p.args)
			return p
		case *InsertPlaceholder:
			p := typed.withInjectedVars(vars)
			p.args = inject(p.args)
			return p
		case *IfPlaceholder:
			return &IfPlaceholder{inject(typed.val), typed.pos}
		case *ReplacePlaceholder:
			return &ReplacePlaceholder{inject(typed.val), typed.pos}
		case *NoSubPlaceholder:
			return &NoSubPlaceholder{inject(typed.val), typed.pos}
		case *orderedmap.Map:
			out := orderedmap.NewMap()
			typed.Iterate(func(k, v interface{}) {
				out.Set(inject(k), inject(v))
			})
			return out
		case []interface{}:
			out := make([]interface{}, len(typed))
			for i, item := range typed {
				out[i] = inject(item)
			}
			return out
		default:
			return data
		}
	}
	return inject(data)
}

// stripEmptyValues drops blank strings, empty mappings and empty sequences
// from package content before merging, collapsing containers that become
// empty. Returns nil when nothing substantial remains.
func stripEmptyValues(data interface{}) interface{} {
	switch typed := data.(type) {
	case string:
		if strings.TrimSpace(typed) == "" {
			return nil
		}
		return typed

	case *orderedmap.Map:
		out := orderedmap.NewMap()
		typed.Iterate(func(k, v interface{}) {
			if stripped := stripEmptyValues(v); stripped != nil {
				out.Set(k, stripped)
			}
		})
		if out.Len() == 0 {
			return nil
		}
		return out

	case []interface{}:
		var out []interface{}
		for _, item := range typed {
			if stripped := stripEmptyValues(item); stripped != nil {
				out = append(out, stripped)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out

	default:
		return data
	}
}
