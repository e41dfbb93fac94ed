// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yamlprep/yamlprep/pkg/filepos"
	"github.com/yamlprep/yamlprep/pkg/orderedmap"
)

// varPattern matches one ${...} reference: a name, optionally followed by
// "-" (default on absent) or ":-" (default on absent or empty) and a
// default that may be double quoted, single quoted or bare. A bare default
// cannot contain braces, so nested references resolve innermost first
// across repeated scans.
var varPattern = regexp.MustCompile(`\$\{(\w+)(?:(:?-)(?:"([^"]*)"|'([^']*)'|([^{}]*)))?\}`)

var numberPattern = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)

// substitute resolves every ${...} reference in expr against vars. A scalar
// that consists of exactly one reference keeps the variable's native type;
// anything else concatenates into a string, which is then re-inferred as
// int, float or bool when it reads as one.
func (c *fileContext) substitute(vars *orderedmap.Map, ph *SubstitutionPlaceholder) (interface{}, error) {
	expr := ph.Expr()

	if loc := varPattern.FindStringIndex(expr); loc != nil && loc[0] == 0 && loc[1] == len(expr) {
		idx := varPattern.FindStringSubmatchIndex(expr)
		name := expr[idx[2]:idx[3]]
		if val, found := vars.Get(name); found {
			if _, isStr := val.(string); !isStr && val != nil {
				op := ""
				if idx[4] >= 0 {
					op = expr[idx[4]:idx[5]]
				}
				if op != ":-" || !isBlankValue(val) {
					return val, nil
				}
			}
		}
	}

	cur := expr
	for pass := 0; ; pass++ {
		if pass >= MaxVarNestingDepth {
			return nil, fmt.Errorf("Variable expression '%s' did not settle after %d passes%s",
				expr, MaxVarNestingDepth, atPos(ph.Pos()))
		}
		next, changed := c.resolveRefs(vars, cur)
		if !changed {
			break
		}
		cur = next
	}

	if cur == expr {
		return expr, nil
	}
	return InferScalar(cur), nil
}

// resolveRefs replaces every reference matched in one scan.
func (c *fileContext) resolveRefs(vars *orderedmap.Map, s string) (string, bool) {
	changed := false
	out := varPattern.ReplaceAllStringFunc(s, func(match string) string {
		changed = true

		idx := varPattern.FindStringSubmatchIndex(match)
		name := match[idx[2]:idx[3]]

		op := ""
		if idx[4] >= 0 {
			op = match[idx[4]:idx[5]]
		}
		def := ""
		for g := 3; g <= 5; g++ {
			if idx[2*g] >= 0 {
				def = match[idx[2*g] : idx[2*g+1]]
				break
			}
		}

		val, found := vars.Get(name)
		switch op {
		case "-":
			if !found {
				return def
			}
			return stringifyVar(val)
		case ":-":
			if !found || stringifyVar(val) == "" {
				return def
			}
			return stringifyVar(val)
		default:
			if !found {
				c.ui().Debugf("Undefined variable '%s'\n", name)
				return ""
			}
			return stringifyVar(val)
		}
	})
	return out, changed
}

func stringifyVar(val interface{}) string {
	switch typed := val.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		return fmt.Sprintf("%v", typed)
	}
}

func isBlankValue(val interface{}) bool {
	return val == nil || stringifyVar(val) == ""
}

// InferScalar re-applies scalar type inference to an interpolated string:
// integers and floats become numbers, case-insensitive true/false becomes
// bool, everything else stays a string.
func InferScalar(s string) interface{} {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(v)
	}
	if numberPattern.MatchString(s) {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	if strings.EqualFold(s, "true") {
		return true
	}
	if strings.EqualFold(s, "false") {
		return false
	}
	return s
}

func atPos(pos *filepos.Position) string {
	if pos == nil {
		return ""
	}
	return " at " + pos.AsCompactString()
}
