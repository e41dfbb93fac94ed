// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor

import (
	"strings"

	"github.com/yamlprep/yamlprep/pkg/filepos"
	"github.com/yamlprep/yamlprep/pkg/orderedmap"
)

// parseCallArgs interprets the argument of a !include or !insert. Two
// shapes are accepted: a scalar name with optional URL style arguments
// ("file.yaml?size=5&wide", a bare flag meaning true), or a mapping with
// the name under nameKey plus an optional "vars" mapping.
func (c *fileContext) parseCallArgs(val interface{}, nameKey, directive string, pos *filepos.Position) (string, *orderedmap.Map, bool) {
	vars := orderedmap.NewMap()

	switch typed := val.(type) {
	case string:
		name := typed
		if i := strings.IndexByte(typed, '?'); i >= 0 {
			name = typed[:i]
			for _, pair := range strings.Split(typed[i+1:], "&") {
				if pair == "" {
					continue
				}
				if j := strings.IndexByte(pair, '='); j >= 0 {
					vars.Set(pair[:j], InferScalar(pair[j+1:]))
				} else {
					vars.Set(pair, true)
				}
			}
		}
		if name == "" {
			c.ui().Warnf("Malformed %s%s: missing '%s' parameter\n", directive, atPos(pos), nameKey)
			return "", nil, false
		}
		return name, vars, true

	case *orderedmap.Map:
		nameVal, found := typed.Get(nameKey)
		name, _ := nameVal.(string)
		if !found || name == "" {
			c.ui().Warnf("Malformed %s%s: missing '%s' parameter\n", directive, atPos(pos), nameKey)
			return "", nil, false
		}
		if v, found := typed.Get("vars"); found {
			if m, ok := v.(*orderedmap.Map); ok {
				vars = m
			} else {
				c.ui().Warnf("Malformed %s%s: 'vars' must be a mapping\n", directive, atPos(pos))
			}
		}
		return name, vars, true

	default:
		c.ui().Warnf("Malformed %s%s: missing '%s' parameter\n", directive, atPos(pos), nameKey)
		return "", nil, false
	}
}
