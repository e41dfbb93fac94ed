// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor

import (
	"fmt"
	"strings"

	"github.com/k14s/starlark-go/starlark"

	"github.com/yamlprep/yamlprep/pkg/orderedmap"
)

// evalCondition decides a !if condition. Booleans pass through; strings
// short-circuit on bare true/false, otherwise evaluate as an expression
// with the current variables in scope. A failed evaluation degrades to the
// truthiness of the string itself. Other values go by truthiness.
func (c *fileContext) evalCondition(val interface{}) bool {
	switch typed := val.(type) {
	case bool:
		return typed
	case string:
		s := strings.TrimSpace(typed)
		if strings.EqualFold(s, "true") {
			return true
		}
		if strings.EqualFold(s, "false") {
			return false
		}
		result, err := c.evalExpr(s)
		if err != nil {
			c.ui().Warnf("Failed to evaluate condition '%s': %s\n", s, err)
			return s != ""
		}
		return result
	case nil:
		return false
	case int:
		return typed != 0
	case int64:
		return typed != 0
	case float64:
		return typed != 0
	case *orderedmap.Map:
		return typed.Len() > 0
	case []interface{}:
		return len(typed) > 0
	default:
		return true
	}
}

func (c *fileContext) evalExpr(src string) (result bool, err error) {
	// the starlark scanner panics on syntax errors
	defer func() {
		if r := recover(); r != nil {
			result = false
			err = fmt.Errorf("%v", r)
		}
	}()

	thread := &starlark.Thread{Name: "condition"}

	env := starlark.StringDict{}
	c.vars.Iterate(func(k, v interface{}) {
		name, ok := k.(string)
		if !ok {
			return
		}
		if sv, err := asStarlarkValue(v); err == nil {
			env[name] = sv
		}
	})

	val, err := starlark.Eval(thread, "condition", src, env)
	if err != nil {
		return false, err
	}
	return bool(val.Truth()), nil
}

func asStarlarkValue(val interface{}) (starlark.Value, error) {
	switch typed := val.(type) {
	case nil:
		return starlark.None, nil
	case bool:
		return starlark.Bool(typed), nil
	case string:
		return starlark.String(typed), nil
	case int:
		return starlark.MakeInt(typed), nil
	case int64:
		return starlark.MakeInt64(typed), nil
	case uint64:
		return starlark.MakeUint64(typed), nil
	case float64:
		return starlark.Float(typed), nil
	case []interface{}:
		var items []starlark.Value
		for _, item := range typed {
			sv, err := asStarlarkValue(item)
			if err != nil {
				return nil, err
			}
			items = append(items, sv)
		}
		return starlark.NewList(items), nil
	case *orderedmap.Map:
		result := &starlark.Dict{}
		err := typed.IterateErr(func(k, v interface{}) error {
			sk, err := asStarlarkValue(k)
			if err != nil {
				return err
			}
			sv, err := asStarlarkValue(v)
			if err != nil {
				return err
			}
			return result.SetKey(sk, sv)
		})
		if err != nil {
			return nil, err
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T in condition scope", val)
	}
}
