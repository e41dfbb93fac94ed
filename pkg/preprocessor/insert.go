// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor

import (
	"github.com/yamlprep/yamlprep/pkg/orderedmap"
)

// resolveInsert expands a template defined in the current file's templates
// section. Variable references inside the template resolve against the
// caller's scope overlaid with the insertion's own vars; everything else
// in the template (nested includes, conditionals) is left to the walker's
// re-processing of the result. Malformed arguments degrade to an empty
// mapping.
func (c *fileContext) resolveInsert(ph Placeholder) (interface{}, error) {
	ins := ph.(*InsertPlaceholder)

	name, argVars, ok := c.parseCallArgs(ins.Value(), "template", "!insert", ins.Pos())
	if !ok {
		return orderedmap.NewMap(), nil
	}

	tpl, found := c.templates.Get(name)
	if !found {
		c.ui().Warnf("Template '%s' not found%s\n", name, atPos(ins.Pos()))
		return nil, nil
	}

	combined := combineVars(c.vars, ins.injectedVars, argVars)

	override := func(p Placeholder) (interface{}, error) {
		return c.substitute(combined, p.(*SubstitutionPlaceholder))
	}
	return c.proc.ProcessWith(tpl, KindSubstitution, override)
}
