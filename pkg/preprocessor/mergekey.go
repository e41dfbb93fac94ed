// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor

import (
	"strings"

	"github.com/yamlprep/yamlprep/pkg/orderedmap"

	cmdui "github.com/yamlprep/yamlprep/pkg/cmd/ui"
)

// ResolveMergeKeys applies YAML merge key semantics ("<<") bottom up.
// Explicit keys always win; between merge sources the first mention wins.
// A merge value may be a mapping or a sequence of mappings; merging is not
// deep, merged values are taken as they are. A null merge value merges
// nothing.
func ResolveMergeKeys(data interface{}, u cmdui.UI) interface{} {
	switch typed := data.(type) {
	case *orderedmap.Map:
		out := orderedmap.NewMap()
		var merges []interface{}

		for _, item := range typed.Items() {
			val := ResolveMergeKeys(item.Value, u)
			if _, isMerge := item.Key.(*MergeKeyPlaceholder); isMerge {
				merges = append(merges, val)
				continue
			}
			out.Set(item.Key, val)
		}

		for _, src := range merges {
			mergeInto(out, src, u)
		}
		return out

	case []interface{}:
		out := make([]interface{}, len(typed))
		for i, item := range typed {
			out[i] = ResolveMergeKeys(item, u)
		}
		return out

	default:
		return data
	}
}

func mergeInto(dst *orderedmap.Map, src interface{}, u cmdui.UI) {
	switch typed := src.(type) {
	case nil:
		// `<<: null` merges nothing

	case string:
		// an unset reference interpolates to "", which merges nothing
		if strings.TrimSpace(typed) != "" {
			u.Warnf("Cannot merge value of type %T, expected a mapping\n", typed)
		}

	case *orderedmap.Map:
		typed.Iterate(func(k, v interface{}) {
			dst.Insert(k, v)
		})

	case []interface{}:
		for _, el := range typed {
			if m, ok := el.(*orderedmap.Map); ok {
				m.Iterate(func(k, v interface{}) {
					dst.Insert(k, v)
				})
			} else {
				u.Warnf("Cannot merge value of type %T, expected a mapping\n", el)
			}
		}

	default:
		u.Warnf("Cannot merge value of type %T, expected a mapping\n", typed)
	}
}
