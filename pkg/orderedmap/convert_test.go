// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package orderedmap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlprep/yamlprep/pkg/orderedmap"
)

func TestFromUnorderedMapsDoesNotMutateInput(t *testing.T) {
	input := map[string]interface{}{
		"key": []interface{}{map[string]interface{}{"nested": "value"}},
	}
	want := map[string]interface{}{
		"key": []interface{}{map[string]interface{}{"nested": "value"}},
	}

	orderedmap.Conversion{Object: input}.FromUnorderedMaps()

	require.Equal(t, want, input)
}

func TestFromUnorderedMapsSortsKeys(t *testing.T) {
	input := map[string]interface{}{"b": 2, "a": 1, "c": 3}

	result := orderedmap.Conversion{Object: input}.FromUnorderedMaps()

	m, ok := result.(*orderedmap.Map)
	require.True(t, ok)
	require.Equal(t, []interface{}{"a", "b", "c"}, m.Keys())
}

func TestAsUnorderedStringMapsPanicsOnPlainMap(t *testing.T) {
	input := orderedmap.NewMap()
	input.Set("key", map[string]interface{}{"plain": true})

	require.Panics(t, func() {
		orderedmap.Conversion{Object: input}.AsUnorderedStringMaps()
	})
}
