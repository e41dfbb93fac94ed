// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor

import (
	"github.com/yamlprep/yamlprep/pkg/orderedmap"
)

// resolveIf picks the branch of a !if construct. Returning nil (false
// condition without an else) removes the surrounding entry. Branches are
// handed back unresolved; the walker finishes only the selected one.
func (c *fileContext) resolveIf(ph Placeholder) (interface{}, error) {
	ifp := ph.(*IfPlaceholder)

	switch form := ifp.Value().(type) {
	case *orderedmap.Map:
		cond, found := conditionOf(form, "if")
		if !found {
			c.ui().Warnf("Malformed !if%s: missing 'if' key\n", atPos(ifp.Pos()))
			return nil, nil
		}
		if c.evalCondition(cond) {
			val, _ := form.Get("then")
			return val, nil
		}
		val, _ := form.Get("else")
		return val, nil

	case []interface{}:
		for _, entry := range form {
			em, ok := entry.(*orderedmap.Map)
			if !ok {
				c.ui().Warnf("Malformed !if%s: branch entries must be mappings\n", atPos(ifp.Pos()))
				continue
			}

			cond, found := conditionOf(em, "if")
			if !found {
				cond, found = conditionOf(em, "elseif")
			}
			if found {
				if c.evalCondition(cond) {
					val, _ := em.Get("then")
					return val, nil
				}
				continue
			}

			if val, found := em.Get("else"); found {
				return val, nil
			}
			c.ui().Warnf("Malformed !if%s: branch entry without condition\n", atPos(ifp.Pos()))
		}
		return nil, nil

	default:
		c.ui().Warnf("Malformed !if%s: expected mapping or sequence\n", atPos(ifp.Pos()))
		return nil, nil
	}
}

// conditionOf fetches a condition under key, also accepting the
// "condition" spelling for the plain "if" form.
func conditionOf(m *orderedmap.Map, key string) (interface{}, bool) {
	if val, found := m.Get(key); found {
		return val, true
	}
	if key == "if" {
		if val, found := m.Get("condition"); found {
			return val, true
		}
	}
	return nil, false
}
